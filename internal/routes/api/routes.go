package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	apiGroup.Post("/games", CreateGame)

	// Routes of an existing game
	gameGroup := apiGroup.Group("/games/:id", middleware.LoadSession())
	gameGroup.Get("/", GetGame)
	gameGroup.Post("/moves", PlayMove)
	gameGroup.Post("/restart", RestartGame)
	gameGroup.Delete("/", DeleteGame)
}
