package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadWritesDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.VotesPerUser != 3 {
		t.Errorf("votesPerUser = %d, want 3", cfg.VotesPerUser)
	}
	if got := cfg.VotesPerGenrePerUser["Music"]; got != 1 {
		t.Errorf("votesPerGenrePerUser[Music] = %d, want 1", got)
	}
	if cfg.Year != time.Now().Year() {
		t.Errorf("year = %d, want current year", cfg.Year)
	}
	if cfg.DisableVoting || cfg.AllowViewingResults {
		t.Error("voting gates should default off")
	}

	if _, err := os.Stat(filepath.Join(root, "data", "config.yml")); err != nil {
		t.Errorf("default config file was not written: %v", err)
	}
}

func TestLoadReadsExistingConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "votesPerUser: 5\nyear: 2024\ndisableVoting: true\nvotesPerGenrePerUser:\n  Music: 2\n  Sport: 1\n"
	if err := os.WriteFile(filepath.Join(root, "data", "config.yml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.VotesPerUser != 5 {
		t.Errorf("votesPerUser = %d, want 5", cfg.VotesPerUser)
	}
	if cfg.Year != 2024 {
		t.Errorf("year = %d, want 2024", cfg.Year)
	}
	if !cfg.DisableVoting {
		t.Error("disableVoting should be true")
	}
	if got, want := cfg.QuotaGenres(), []string{"Music", "Sport"}; !reflect.DeepEqual(got, want) {
		t.Errorf("QuotaGenres() = %v, want sorted %v", got, want)
	}
}

func TestSecretKeyPersists(t *testing.T) {
	root := t.TempDir()

	first, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.SecretKey) != 64 {
		t.Fatalf("secret key length = %d, want 64 hex chars", len(first.SecretKey))
	}

	second, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if first.SecretKey != second.SecretKey {
		t.Error("secret key changed between loads")
	}
}

func TestGamesPath(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Year = 2025

	if got, want := cfg.GamesPath(0), filepath.Join(root, "data", "goty_2025_games.yml"); got != want {
		t.Errorf("GamesPath(0) = %q, want %q", got, want)
	}
	if got, want := cfg.GamesPath(2023), filepath.Join(root, "data", "goty_2023_games.yml"); got != want {
		t.Errorf("GamesPath(2023) = %q, want %q", got, want)
	}
}
