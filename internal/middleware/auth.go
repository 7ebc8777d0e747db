package middleware

import (
	"github.com/dommaster/backend/internal/dto"
	"github.com/dommaster/backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// SessionProtected rejects requests without a valid session cookie.
// The parsed token lands in c.Locals("user") for session.FromContext.
func SessionProtected(sessions *session.Manager) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: sessions.Secret()},
		TokenLookup: "cookie:" + sessions.CookieName(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: sign in required",
			})
		},
	})
}
