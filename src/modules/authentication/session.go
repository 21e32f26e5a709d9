package authentication

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ismaelstrey/quiz-biblico/src/core/config"
	"github.com/ismaelstrey/quiz-biblico/src/core/middleware"
)

// Sessions live for seven days, matching the cookie max-age.
const sessionTTL = 7 * 24 * time.Hour

// IssueSessionToken signs a session token bound to exactly one user id. The
// id travels as a verified claim; nothing trust-sensitive is ever parsed out
// of an unsigned string.
func IssueSessionToken(userID uuid.UUID) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["sub"] = userID.String()
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(sessionTTL).Unix()

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
