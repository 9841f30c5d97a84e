package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goty/backend/internal/auth"
)

// Register attaches every application route to the engine. Swagger and
// template loading stay in main; tests mount this on a bare engine.
func (a *API) Register(router *gin.Engine) {
	pages := router.Group("/")
	pages.Use(auth.SessionMiddleware(a.Config.SecretKey))
	{
		pages.GET("/", a.Home)
		pages.GET("/results", a.Results)
		pages.GET("/results/:genre", a.Results)
	}

	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/callback", a.Callback)
		authRoutes.GET("/logout", a.Logout)
	}

	api := router.Group("/api")
	{
		api.GET("/games", a.SearchGames)
		api.GET("/games/", a.SearchGames)

		vote := api.Group("/vote")
		{
			vote.POST("/", a.AddVote)
			vote.PATCH("/", a.PatchVote)
			vote.DELETE("/", a.DeleteVote)
		}
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
