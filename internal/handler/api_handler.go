package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goty/backend/internal/catalog"
	"goty/backend/internal/config"
	"goty/backend/internal/directory"
	"goty/backend/internal/discord"
	"goty/backend/internal/votes"
)

const searchLimit = 12

// IdentityResolver resolves a Discord access token to its user. The
// concrete implementation is the discord client; tests inject a fake.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, accessToken string) (discord.User, error)
}

// API bundles everything the handlers need: no package-level state.
type API struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Votes    *votes.Store
	Users    *directory.Directory
	Discord  *discord.Client
	Resolver IdentityResolver
}

// region --- DTOs ---

// VoteInput is the body for casting or deleting a vote.
type VoteInput struct {
	GameName    string `json:"gameName" binding:"required" example:"Celeste"`
	AccessToken string `json:"accessToken" binding:"required"`
}

// PatchVoteInput is the body for hiding or unhiding a vote. Hidden is a
// pointer so an explicit false still passes validation.
type PatchVoteInput struct {
	GameName    string `json:"gameName" binding:"required" example:"Celeste"`
	AccessToken string `json:"accessToken" binding:"required"`
	Hidden      *bool  `json:"hidden" binding:"required"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// region --- Game Handlers ---

// SearchGames godoc
// @Summary      Search the game catalog
// @Description  Fuzzy-matches game names and returns the best-scoring games. An empty query returns an empty list.
// @Tags         games
// @Produce      json
// @Param        q query string false "Search query"
// @Success      200 {array} models.Game
// @Router       /games/ [get]
func (a *API) SearchGames(c *gin.Context) {
	c.JSON(http.StatusOK, a.Catalog.Search(c.Query("q"), searchLimit))
}

// endregion

// region --- Vote Handlers ---

// AddVote godoc
// @Summary      Cast a vote
// @Description  Resolves the access token to a user and casts their vote for a game, subject to the free and per-genre quotas.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        input body VoteInput true "Vote"
// @Success      201 {object} votes.UserReport
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse "Discord rejected the token"
// @Failure      403 {object} ErrorResponse "Voting is disabled"
// @Failure      404 {object} ErrorResponse "Unknown game"
// @Failure      409 {object} ErrorResponse "Quota exhausted or duplicate vote"
// @Router       /vote/ [post]
func (a *API) AddVote(c *gin.Context) {
	if !a.votingEnabled(c) {
		return
	}
	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := a.resolveUser(c, input.AccessToken)
	if !ok {
		return
	}

	if err := a.Votes.Add(input.GameName, user.ID); err != nil {
		c.JSON(voteErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	report, err := a.Votes.UserVotes(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load votes"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// PatchVote godoc
// @Summary      Hide or unhide a vote
// @Description  Flips the hidden flag on the user's vote. Hidden votes still count toward scores; only the voter's name is withheld.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        input body PatchVoteInput true "Vote patch"
// @Success      200 {object} votes.UserReport
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Voting is disabled"
// @Failure      404 {object} ErrorResponse "No such vote"
// @Router       /vote/ [patch]
func (a *API) PatchVote(c *gin.Context) {
	if !a.votingEnabled(c) {
		return
	}
	var input PatchVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := a.resolveUser(c, input.AccessToken)
	if !ok {
		return
	}

	if err := a.Votes.SetHidden(input.GameName, user.ID, *input.Hidden); err != nil {
		c.JSON(voteErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	report, err := a.Votes.UserVotes(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load votes"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteVote godoc
// @Summary      Retract a vote
// @Description  Removes the user's vote for a game, freeing up its quota bucket.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        input body VoteInput true "Vote"
// @Success      200 {object} votes.UserReport
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Voting is disabled"
// @Failure      404 {object} ErrorResponse "No such vote"
// @Router       /vote/ [delete]
func (a *API) DeleteVote(c *gin.Context) {
	if !a.votingEnabled(c) {
		return
	}
	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := a.resolveUser(c, input.AccessToken)
	if !ok {
		return
	}

	if err := a.Votes.Delete(input.GameName, user.ID); err != nil {
		c.JSON(voteErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	report, err := a.Votes.UserVotes(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load votes"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// endregion

// region --- Helpers ---

func (a *API) votingEnabled(c *gin.Context) bool {
	if a.Config.DisableVoting {
		c.JSON(http.StatusForbidden, gin.H{"error": "Voting is disabled"})
		return false
	}
	return true
}

func (a *API) resolveUser(c *gin.Context, accessToken string) (discord.User, bool) {
	user, err := a.Resolver.ResolveUser(c.Request.Context(), accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return discord.User{}, false
	}
	return user, true
}

func voteErrorStatus(err error) int {
	var quotaErr *votes.QuotaError
	switch {
	case errors.Is(err, votes.ErrGameNotFound), errors.Is(err, votes.ErrVoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, votes.ErrAlreadyVoted), errors.As(err, &quotaErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// endregion
