package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Config holds every recognized option. The config file lives at
// data/config.yml and is written out with defaults on first run.
type Config struct {
	Addr    string  `mapstructure:"addr"`
	BaseURL string  `mapstructure:"baseUrl"`
	Discord Discord `mapstructure:"discord"`
	IGDB    IGDB    `mapstructure:"igdb"`

	VotesPerUser         int            `mapstructure:"votesPerUser"`
	VotesPerGenrePerUser map[string]int `mapstructure:"votesPerGenrePerUser"`
	Year                 int            `mapstructure:"year"`
	DisableVoting        bool           `mapstructure:"disableVoting"`
	AllowViewingResults  bool           `mapstructure:"allowViewingResults"`

	// SecretKey signs session tokens. Generated and persisted on first
	// run, never read from the config file.
	SecretKey string `mapstructure:"-"`

	dataDir string
	varDir  string
}

// Discord holds the OAuth application credentials.
type Discord struct {
	ClientID     string `mapstructure:"clientId"`
	ClientSecret string `mapstructure:"clientSecret"`
}

// IGDB holds the catalog API credentials used by the fetch-games job.
type IGDB struct {
	ClientID     string `mapstructure:"clientId"`
	ClientSecret string `mapstructure:"clientSecret"`
}

// Load reads the config under root, creating data/ and var/ plus a default
// config file and secret key when they don't exist yet.
func Load(root string) (*Config, error) {
	dataDir := filepath.Join(root, "data")
	varDir := filepath.Join(root, "var")
	for _, dir := range []string{dataDir, varDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	v := viper.New()
	path := filepath.Join(dataDir, "config.yml")
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("addr", ":8080")
	v.SetDefault("baseUrl", "http://localhost:8080")
	v.SetDefault("votesPerUser", 3)
	v.SetDefault("votesPerGenrePerUser", map[string]int{"Music": 1})
	v.SetDefault("year", time.Now().Year())
	v.SetDefault("disableVoting", false)
	v.SetDefault("allowViewingResults", false)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := v.SafeWriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		slog.Info("wrote default config", "path", path)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// viper lowercases map keys; restore the display casing so genre
	// headings render the way they were configured. Matching against
	// game genres is case-insensitive regardless.
	if len(cfg.VotesPerGenrePerUser) > 0 {
		genres := make(map[string]int, len(cfg.VotesPerGenrePerUser))
		for genre, quota := range cfg.VotesPerGenrePerUser {
			genres[capitalizeFirst(genre)] = quota
		}
		cfg.VotesPerGenrePerUser = genres
	}

	key, err := loadOrCreateSecretKey(filepath.Join(varDir, "secret_key.txt"))
	if err != nil {
		return nil, err
	}
	cfg.SecretKey = key
	cfg.dataDir = dataDir
	cfg.varDir = varDir
	return &cfg, nil
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func loadOrCreateSecretKey(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return strings.TrimSpace(string(b)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read secret key: %w", err)
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	key := hex.EncodeToString(raw)
	if err := os.WriteFile(path, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("write secret key: %w", err)
	}
	return key, nil
}

// GamesPath is the catalog file for a year; zero means the active year.
func (c *Config) GamesPath(year int) string {
	if year == 0 {
		year = c.Year
	}
	return filepath.Join(c.dataDir, fmt.Sprintf("goty_%d_games.yml", year))
}

// VotesPath is the flat vote store file.
func (c *Config) VotesPath() string {
	return filepath.Join(c.varDir, "votes.yml")
}

// UsersPath is the user-id-to-display-name cache file.
func (c *Config) UsersPath() string {
	return filepath.Join(c.varDir, "users.yml")
}

// QuotaGenres returns the quota-genre names in a fixed order. The map
// decodes unordered, so first-match classification sorts the names to stay
// deterministic across restarts.
func (c *Config) QuotaGenres() []string {
	genres := make([]string, 0, len(c.VotesPerGenrePerUser))
	for g := range c.VotesPerGenrePerUser {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
