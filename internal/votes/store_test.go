package votes

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"goty/backend/internal/catalog"
	"goty/backend/internal/config"
	"goty/backend/internal/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Game{
		{Name: "Celeste", Slug: "celeste", Genres: []string{"Platform", "Indie"}},
		{Name: "Hades", Slug: "hades", Genres: []string{"Adventure", "Indie"}},
		{Name: "Tunic", Slug: "tunic", Genres: []string{"Adventure"}},
		{Name: "Stray", Slug: "stray", Genres: []string{"Adventure"}},
		{Name: "Fuser", Slug: "fuser", Genres: []string{"Music"}},
		{Name: "Trombone Champ", Slug: "trombone-champ", Genres: []string{"Music", "Indie"}},
	})
}

func testConfig() *config.Config {
	return &config.Config{
		VotesPerUser:         3,
		VotesPerGenrePerUser: map[string]int{"Music": 1},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "votes.yml")
	return NewStore(path, testConfig(), testCatalog())
}

func mustAdd(t *testing.T, s *Store, game, user string) {
	t.Helper()
	if err := s.Add(game, user); err != nil {
		t.Fatalf("Add(%q, %q) failed: %v", game, user, err)
	}
}

func TestAddUnknownGame(t *testing.T) {
	s := newTestStore(t)
	err := s.Add("Nonexistent", "u1")
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestAddDuplicateVote(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Celeste", "u1")
	if err := s.Add("Celeste", "u1"); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestFreeQuotaEnforced(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Celeste", "u1")
	mustAdd(t, s, "Hades", "u1")
	mustAdd(t, s, "Tunic", "u1")

	// A genre vote in between must not count against the free quota.
	if err := s.Add("Trombone Champ", "u1"); err != nil {
		t.Fatalf("genre vote should not count against free quota: %v", err)
	}

	var quotaErr *QuotaError
	err := s.Add("Stray", "u1")
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaError, got %v", err)
	}
	if quotaErr.Genre != "" {
		t.Errorf("expected free-section quota error, got genre %q", quotaErr.Genre)
	}
}

func TestGenreQuotaEnforced(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Fuser", "u1")

	var quotaErr *QuotaError
	err := s.Add("Trombone Champ", "u1")
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaError, got %v", err)
	}
	if quotaErr.Genre != "Music" {
		t.Errorf("expected Music quota error, got genre %q", quotaErr.Genre)
	}

	// The free section must be untouched by the genre vote.
	report, err := s.UserVotes("u1")
	if err != nil {
		t.Fatal(err)
	}
	if report.Remaining != 3 {
		t.Errorf("free remaining = %d, want 3", report.Remaining)
	}
	if got := report.Genres["Music"].Remaining; got != 0 {
		t.Errorf("Music remaining = %d, want 0", got)
	}
}

func TestUserVotesZeroVotes(t *testing.T) {
	s := newTestStore(t)
	report, err := s.UserVotes("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if report.Remaining != 3 {
		t.Errorf("remaining = %d, want votesPerUser (3)", report.Remaining)
	}
	if len(report.Votes) != 0 {
		t.Errorf("expected no free votes, got %d", len(report.Votes))
	}
	bucket, ok := report.Genres["Music"]
	if !ok {
		t.Fatal("missing Music bucket for user with no votes")
	}
	if bucket.Remaining != 1 {
		t.Errorf("Music remaining = %d, want its quota (1)", bucket.Remaining)
	}
}

func TestGenreBucketMembershipIsIndependent(t *testing.T) {
	// Trombone Champ carries Music and Indie: it gates against the Music
	// quota but must also show up only in the Music bucket here, and
	// never in the free section.
	s := newTestStore(t)
	mustAdd(t, s, "Trombone Champ", "u1")

	report, err := s.UserVotes("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Votes) != 0 {
		t.Errorf("genre vote leaked into the free section: %d votes", len(report.Votes))
	}
	if report.Remaining != 3 {
		t.Errorf("free remaining = %d, want 3", report.Remaining)
	}
	if got := len(report.Genres["Music"].Votes); got != 1 {
		t.Errorf("Music bucket has %d votes, want 1", got)
	}
}

func TestAddDeleteRoundTrip(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Celeste", "u1")
	mustAdd(t, s, "Hades", "u2")

	before, err := s.load()
	if err != nil {
		t.Fatal(err)
	}

	mustAdd(t, s, "Tunic", "u1")
	if err := s.Delete("Tunic", "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	after, err := s.load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("add+delete did not restore the vote list:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestDeleteMissingVote(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete("Celeste", "u1"); !errors.Is(err, ErrVoteNotFound) {
		t.Errorf("expected ErrVoteNotFound, got %v", err)
	}
}

func TestSetHiddenMissingVote(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetHidden("Celeste", "u1", true); !errors.Is(err, ErrVoteNotFound) {
		t.Errorf("expected ErrVoteNotFound, got %v", err)
	}
}

func TestTopCountsHiddenVotes(t *testing.T) {
	// Literal scenario: (G1,u1,visible), (G1,u2,hidden), (G2,u3,visible)
	// must tally to [(G1,2), (G2,1)] - hiding never costs a point.
	s := newTestStore(t)
	mustAdd(t, s, "Celeste", "u1")
	mustAdd(t, s, "Celeste", "u2")
	mustAdd(t, s, "Hades", "u3")
	if err := s.SetHidden("Celeste", "u2", true); err != nil {
		t.Fatal(err)
	}

	top, err := s.Top("")
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{GameName: "Celeste", Score: 2}, {GameName: "Hades", Score: 1}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("Top() = %+v, want %+v", top, want)
	}
}

func TestTopGenreFilter(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Celeste", "u1")
	mustAdd(t, s, "Fuser", "u1")
	mustAdd(t, s, "Fuser", "u2")

	top, err := s.Top("Music")
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{GameName: "Fuser", Score: 2}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("Top(Music) = %+v, want %+v", top, want)
	}
}

func TestTopTieBreakKeepsFirstVoteOrder(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Hades", "u1")
	mustAdd(t, s, "Celeste", "u2")
	mustAdd(t, s, "Hades", "u3")
	mustAdd(t, s, "Celeste", "u4")

	top, err := s.Top("")
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{GameName: "Hades", Score: 2}, {GameName: "Celeste", Score: 2}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("Top() = %+v, want %+v", top, want)
	}
}

type staticNames map[string]string

func (n staticNames) DisplayName(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return id
}

func TestResults(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Celeste", "u1")
	mustAdd(t, s, "Celeste", "u2")
	mustAdd(t, s, "Fuser", "u3")
	if err := s.SetHidden("Celeste", "u2", true); err != nil {
		t.Fatal(err)
	}

	names := staticNames{"u1": "Alice", "u2": "Bob", "u3": "Carol"}
	report, err := s.Results("", names)
	if err != nil {
		t.Fatal(err)
	}

	if report.Participants != 3 {
		t.Errorf("participants = %d, want 3 (hidden voters still count)", report.Participants)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(report.Rows))
	}

	first := report.Rows[0]
	if first.Game.Name != "Celeste" || first.Score != 2 {
		t.Errorf("first row = %s/%d, want Celeste/2", first.Game.Name, first.Score)
	}
	if !reflect.DeepEqual(first.Voters, []string{"Alice"}) {
		t.Errorf("voters = %v, want [Alice] (Bob hid his vote)", first.Voters)
	}

	// A genre filter narrows the rows but never the participant count.
	filtered, err := s.Results("Music", names)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Participants != 3 {
		t.Errorf("filtered participants = %d, want 3", filtered.Participants)
	}
	if len(filtered.Rows) != 1 || filtered.Rows[0].Game.Name != "Fuser" {
		t.Errorf("filtered rows = %+v, want just Fuser", filtered.Rows)
	}
}

func TestVotesPersistAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.yml")
	cfg := testConfig()
	cat := testCatalog()

	s1 := NewStore(path, cfg, cat)
	mustAdd(t, s1, "Celeste", "u1")

	s2 := NewStore(path, cfg, cat)
	report, err := s2.UserVotes("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Votes) != 1 || report.Votes[0].Game.Name != "Celeste" {
		t.Errorf("vote did not survive a reload: %+v", report.Votes)
	}
	if report.Votes[0].Time.IsZero() {
		t.Error("persisted vote lost its timestamp")
	}
}
