// Package votes owns the vote store: the flat vote file, the per-user and
// per-genre quota rules, and the tally that feeds the results page.
package votes

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"goty/backend/internal/catalog"
	"goty/backend/internal/config"
	"goty/backend/internal/models"
	"goty/backend/internal/storage"
)

var (
	// ErrGameNotFound rejects votes for games outside the catalog.
	ErrGameNotFound = errors.New("game not found")
	// ErrVoteNotFound signals a delete or hide for a vote that does not
	// exist.
	ErrVoteNotFound = errors.New("vote not found")
	// ErrAlreadyVoted rejects a second vote for the same game by the same
	// user.
	ErrAlreadyVoted = errors.New("vote already exists for this game")
)

// QuotaError reports an exhausted vote bucket. Genre is empty when the free
// section ran out.
type QuotaError struct {
	Genre string
}

func (e *QuotaError) Error() string {
	if e.Genre == "" {
		return "no more votes available for free section"
	}
	return fmt.Sprintf("no more votes available for %s", e.Genre)
}

// UserVote is one of a user's votes joined with its catalog record.
type UserVote struct {
	Game   models.Game `json:"game"`
	Time   time.Time   `json:"time"`
	Hidden bool        `json:"hidden"`
}

// GenreBucket reports one quota genre's votes and remaining allowance.
type GenreBucket struct {
	Votes     []UserVote `json:"votes"`
	Remaining int        `json:"remaining"`
}

// UserReport partitions a user's votes. Votes and Remaining cover the free
// section (games matching no quota genre); Genres holds one bucket per
// configured quota genre. A vote whose game carries several quota genres
// appears in every matching bucket - bucket membership is independent, only
// quota gating picks a single bucket.
type UserReport struct {
	Votes     []UserVote             `json:"votes"`
	Remaining int                    `json:"remaining"`
	Genres    map[string]GenreBucket `json:"genres"`
}

// Entry is one row of the tally.
type Entry struct {
	GameName string `json:"gameName"`
	Score    int    `json:"score"`
}

// Row is one results-page row: a ranked game, its score, and the display
// names of the voters who didn't hide their vote.
type Row struct {
	Game   models.Game `json:"game"`
	Score  int         `json:"score"`
	Voters []string    `json:"voters"`
}

// Report is the aggregated results view. Participants counts distinct
// users across all votes, hidden or not, regardless of any genre filter.
type Report struct {
	Rows         []Row `json:"rows"`
	Participants int   `json:"participants"`
}

// NameResolver turns a user id into something printable.
type NameResolver interface {
	DisplayName(userID string) string
}

// Store owns the flat vote file. Every mutation runs load -> mutate -> save
// under one mutex, so concurrent requests cannot lose each other's writes.
type Store struct {
	mu      sync.Mutex
	path    string
	cfg     *config.Config
	catalog *catalog.Catalog
}

// NewStore returns a vote store persisting to the YAML file at path.
func NewStore(path string, cfg *config.Config, cat *catalog.Catalog) *Store {
	return &Store{path: path, cfg: cfg, catalog: cat}
}

func (s *Store) load() ([]models.Vote, error) {
	var votes []models.Vote
	if err := storage.Load(s.path, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *Store) save(votes []models.Vote) error {
	return storage.Save(s.path, votes)
}

// Add casts a vote. It fails without writing when the game is unknown, the
// user already voted for it, or the vote's bucket has no remaining quota.
func (s *Store) Add(gameName, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.load()
	if err != nil {
		return err
	}
	game, err := s.catalog.Lookup(gameName)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrGameNotFound, gameName)
	}
	for _, v := range votes {
		if v.GameName == gameName && v.UserID == userID {
			return ErrAlreadyVoted
		}
	}

	report := s.userVotes(userID, votes)
	if genre, ok := s.quotaGenreFor(game); ok {
		if report.Genres[genre].Remaining <= 0 {
			return &QuotaError{Genre: genre}
		}
	} else if report.Remaining <= 0 {
		return &QuotaError{}
	}

	vote := models.Vote{GameName: gameName, UserID: userID, Time: time.Now().UTC()}
	slog.Info("new vote", "game", gameName, "user", userID)
	return s.save(append(votes, vote))
}

// Delete removes the user's vote for a game. Deleting a vote that does not
// exist is an error, not a silent no-op.
func (s *Store) Delete(gameName, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.load()
	if err != nil {
		return err
	}
	for i, v := range votes {
		if v.GameName == gameName && v.UserID == userID {
			return s.save(slices.Delete(votes, i, i+1))
		}
	}
	return fmt.Errorf("%w for game %q", ErrVoteNotFound, gameName)
}

// SetHidden flips the hidden flag on the user's vote for a game.
func (s *Store) SetHidden(gameName, userID string, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.load()
	if err != nil {
		return err
	}
	for i := range votes {
		if votes[i].GameName == gameName && votes[i].UserID == userID {
			votes[i].Hidden = hidden
			return s.save(votes)
		}
	}
	return fmt.Errorf("%w for game %q", ErrVoteNotFound, gameName)
}

// UserVotes reports a user's votes partitioned into the free section and
// the per-genre quota buckets.
func (s *Store) UserVotes(userID string) (UserReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.load()
	if err != nil {
		return UserReport{}, err
	}
	return s.userVotes(userID, votes), nil
}

// quotaGenreFor classifies a game for quota gating: the first configured
// quota genre (in QuotaGenres order) the game carries wins; no match means
// the free section.
func (s *Store) quotaGenreFor(game models.Game) (string, bool) {
	for _, genre := range s.cfg.QuotaGenres() {
		if hasGenre(game, genre) {
			return genre, true
		}
	}
	return "", false
}

// hasGenre matches genre names case-insensitively; config keys and URL
// parameters don't always carry the catalog's exact casing.
func hasGenre(game models.Game, genre string) bool {
	for _, g := range game.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func (s *Store) userVotes(userID string, votes []models.Vote) UserReport {
	var mine []UserVote
	for _, v := range votes {
		if v.UserID != userID {
			continue
		}
		game, err := s.catalog.Lookup(v.GameName)
		if err != nil {
			// Vote for a game dropped from the catalog; not rendered
			// and not counted against any quota.
			continue
		}
		mine = append(mine, UserVote{Game: game, Time: v.Time, Hidden: v.Hidden})
	}

	report := UserReport{Genres: make(map[string]GenreBucket, len(s.cfg.VotesPerGenrePerUser))}
	for _, uv := range mine {
		if _, ok := s.quotaGenreFor(uv.Game); !ok {
			report.Votes = append(report.Votes, uv)
		}
	}
	report.Remaining = s.cfg.VotesPerUser - len(report.Votes)

	for genre, quota := range s.cfg.VotesPerGenrePerUser {
		bucket := GenreBucket{}
		for _, uv := range mine {
			if hasGenre(uv.Game, genre) {
				bucket.Votes = append(bucket.Votes, uv)
			}
		}
		bucket.Remaining = quota - len(bucket.Votes)
		report.Genres[genre] = bucket
	}
	return report
}

// Top tallies every vote - hidden ones included, hiding only redacts the
// voter's name - and returns games by descending score. Genre filters to
// games carrying that genre; empty means all. Ties keep first-vote order.
func (s *Store) Top(genre string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.load()
	if err != nil {
		return nil, err
	}
	return s.top(genre, votes), nil
}

func (s *Store) top(genre string, votes []models.Vote) []Entry {
	scores := make(map[string]int)
	var order []string
	for _, v := range votes {
		game, err := s.catalog.Lookup(v.GameName)
		if err != nil {
			continue
		}
		if genre != "" && !hasGenre(game, genre) {
			continue
		}
		if _, seen := scores[v.GameName]; !seen {
			order = append(order, v.GameName)
		}
		scores[v.GameName]++
	}

	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		entries = append(entries, Entry{GameName: name, Score: scores[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// Results joins the tally with catalog records and voter display names.
func (s *Store) Results(genre string, names NameResolver) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := s.load()
	if err != nil {
		return Report{}, err
	}

	users := make(map[string]struct{})
	for _, v := range votes {
		users[v.UserID] = struct{}{}
	}

	var rows []Row
	for _, e := range s.top(genre, votes) {
		game, err := s.catalog.Lookup(e.GameName)
		if err != nil {
			continue
		}
		var voters []string
		for _, v := range votes {
			if v.GameName == e.GameName && !v.Hidden {
				voters = append(voters, names.DisplayName(v.UserID))
			}
		}
		rows = append(rows, Row{Game: game, Score: e.Score, Voters: voters})
	}
	return Report{Rows: rows, Participants: len(users)}, nil
}
