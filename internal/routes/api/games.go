package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/services"
)

func getServices(c *fiber.Ctx) *services.Services {
	return c.Locals("services").(*services.Services) //nolint: errcheck
}

// CreateGame starts a new game. The computer opens if the human plays white.
func CreateGame(c *fiber.Ctx) error {
	var req models.NewGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	s := getServices(c)

	gameCfg, err := req.Resolve(s.Config.Game)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	controller, err := s.NewGame(gameCfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session := s.Sessions.Create(controller)

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(session.ID().String(), controller))
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var resp *models.GameResponse
	_ = session.Use(func(controller *game.Controller) error {
		resp = models.NewGameResponse(session.ID().String(), controller)
		return nil
	})

	return c.Status(fiber.StatusOK).JSON(resp)
}

// PlayMove plays the human's move followed by the computer's replies. Illegal moves leave
// the game untouched and are reported with applied set to false.
func PlayMove(c *fiber.Ctx) error {
	var req models.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session := middleware.GetSession(c)

	var resp *models.GameResponse
	err := session.Use(func(controller *game.Controller) error {
		applied := controller.HumanMove(*req.Row, *req.Col)

		var err error
		if applied {
			err = controller.Advance()
		}

		resp = models.NewGameResponse(session.ID().String(), controller).WithApplied(applied)
		return err
	})
	if err != nil {
		// The human move stays on the board, so clients get the game they are stuck in.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"game":  resp,
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// RestartGame replaces the game with a fresh one using the same settings.
func RestartGame(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	var resp *models.GameResponse
	err := session.Swap(func(controller *game.Controller) (*game.Controller, error) {
		restarted, err := controller.Restart()
		if err != nil {
			return nil, err
		}
		if err = restarted.Advance(); err != nil {
			return nil, err
		}
		resp = models.NewGameResponse(session.ID().String(), restarted)
		return restarted, nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteGame removes a game.
func DeleteGame(c *fiber.Ctx) error {
	session := middleware.GetSession(c)

	if err := getServices(c).Sessions.Delete(session.ID()); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
