package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"goty/backend/internal/catalog"
	"goty/backend/internal/config"
	"goty/backend/internal/directory"
	"goty/backend/internal/discord"
	"goty/backend/internal/handler"
	"goty/backend/internal/votes"

	// Swagger imports
	_ "goty/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           GOTY Vote API
// @version         1.0
// @description     JSON API for the community game-of-the-year vote.
// @host            localhost:8080
// @BasePath        /api
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.GamesPath(0))
	if err != nil {
		slog.Error("failed to load game catalog; run fetch-games first", "year", cfg.Year, "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "year", cfg.Year, "games", cat.Len())

	users := directory.New(cfg.UsersPath())
	store := votes.NewStore(cfg.VotesPath(), cfg, cat)
	dc := discord.NewClient(cfg.Discord.ClientID, cfg.Discord.ClientSecret, cfg.BaseURL+"/auth/callback", users)
	if !dc.Configured() {
		slog.Warn("discord credentials missing; login is disabled")
	}

	h := &handler.API{
		Config:   cfg,
		Catalog:  cat,
		Votes:    store,
		Users:    users,
		Discord:  dc,
		Resolver: dc,
	}

	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.Register(router)

	slog.Info("server listening", "addr", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
