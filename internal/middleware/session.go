package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/services"
)

// SessionKey is the fiber locals key of the session loaded by LoadSession.
const SessionKey = "session"

// LoadSession middleware that resolves the :id route parameter into a game session.
func LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid game ID",
			})
		}

		s := c.Locals("services").(*services.Services) //nolint: errcheck

		session, err := s.Sessions.Get(id)
		if errors.Is(err, services.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals(SessionKey, session)
		return c.Next()
	}
}

// GetSession returns the session loaded by LoadSession.
func GetSession(c *fiber.Ctx) *services.Session {
	return c.Locals(SessionKey).(*services.Session) //nolint: errcheck
}
