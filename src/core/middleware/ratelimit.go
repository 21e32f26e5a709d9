package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
)

// RateLimit caps requests per client IP within the window. Exceeding the cap
// yields the RATE_LIMIT_ERROR envelope.
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperror.RateLimit("too many requests, please try again later")
		},
	})
}
