package middleware

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/lk16/reversi/internal/services"
)

// Logging middleware that logs route, status code, response time and the game session if any.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path}${session}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     os.Stderr,
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
			"session": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				session, ok := c.Locals(SessionKey).(*services.Session)
				if !ok {
					return 0, nil
				}
				return fmt.Fprintf(output, " | %s", session.ID())
			},
		},
	})
}
