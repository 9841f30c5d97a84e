package handler

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"goty/backend/internal/auth"
)

// Home renders the landing page. When the session cookie resolves to a
// user, the page also carries their vote buckets.
func (a *API) Home(c *gin.Context) {
	data := gin.H{"Config": a.Config}
	if a.Discord != nil && a.Discord.Configured() {
		data["AuthURL"] = a.Discord.AuthURL()
	}

	if tok := c.GetString(auth.ContextAccessToken); tok != "" {
		user, err := a.Resolver.ResolveUser(c.Request.Context(), tok)
		if err == nil {
			if report, rerr := a.Votes.UserVotes(user.ID); rerr == nil {
				data["User"] = user
				data["AccessToken"] = tok
				data["UserVotes"] = report
			}
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// Results renders the ranked tally, optionally filtered to one genre from
// the URL (capitalized before the catalog lookup).
func (a *API) Results(c *gin.Context) {
	if !a.Config.AllowViewingResults {
		c.String(http.StatusForbidden, "Results are not available yet")
		return
	}

	genre := capitalize(c.Param("genre"))
	report, err := a.Votes.Results(genre, a.Users)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load results")
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Config": a.Config,
		"Genre":  genre,
		"Report": report,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
