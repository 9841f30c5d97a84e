package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"goty/backend/internal/config"
	"goty/backend/internal/igdb"
	"goty/backend/internal/storage"
)

// fetch-games is the offline catalog ingestion job: it pulls the year's
// releases from IGDB and writes the flat games file the server loads at
// startup.
//
//	fetch-games [-stop-at N] [year]
func main() {
	stopAt := flag.Int("stop-at", -1, "stop after N fetched games")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	year := cfg.Year
	if flag.NArg() > 0 {
		year, err = strconv.Atoi(flag.Arg(0))
		if err != nil {
			slog.Error("invalid year argument", "arg", flag.Arg(0))
			os.Exit(1)
		}
	}

	if cfg.IGDB.ClientID == "" || cfg.IGDB.ClientSecret == "" {
		slog.Error("igdb credentials missing from config")
		os.Exit(1)
	}

	ctx := context.Background()
	client := igdb.NewClient(ctx, cfg.IGDB.ClientID, cfg.IGDB.ClientSecret)

	games, err := client.GamesForYear(ctx, year, *stopAt)
	if err != nil {
		slog.Error("fetch failed", "year", year, "error", err)
		os.Exit(1)
	}

	path := cfg.GamesPath(year)
	if err := storage.Save(path, games); err != nil {
		slog.Error("failed to write catalog", "path", path, "error", err)
		os.Exit(1)
	}
	slog.Info("wrote catalog", "path", path, "games", len(games))
}
