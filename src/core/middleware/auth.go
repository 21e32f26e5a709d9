package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	jwtware "github.com/gofiber/contrib/jwt"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/config"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "user-session"

// Protected validates the session cookie and attaches user_id to the context.
// The token is an HS256-signed claim, never a parseable plain string.
func Protected() fiber.Handler {
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not set in the environment variables") // Panic to prevent startup
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(jwtSecret)},
		TokenLookup:  "cookie:" + SessionCookie,
		ErrorHandler: sessionError,
		SuccessHandler: func(c *fiber.Ctx) error {
			user := c.Locals("user").(*jwt.Token)
			claims := user.Claims.(jwt.MapClaims)
			if userID, ok := claims["sub"].(string); ok {
				c.Locals("user_id", userID)
				return c.Next()
			}
			return apperror.Authentication("session token missing subject")
		},
	})
}

// sessionError maps any token failure (missing, malformed, expired) to a 401.
func sessionError(c *fiber.Ctx, err error) error {
	appErr := apperror.Authentication("authentication required")
	appErr.Err = err
	return appErr
}

// SessionUserID returns the authenticated user's id, set by Protected.
func SessionUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, apperror.Authentication("authentication required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Authentication("invalid session subject")
	}
	return userID, nil
}
