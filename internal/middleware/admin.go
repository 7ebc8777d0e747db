package middleware

import (
	"github.com/dommaster/backend/internal/dto"
	"github.com/dommaster/backend/internal/models"
	"github.com/dommaster/backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired checks the role claim in the session and re-checks the
// stored role, so a demoted admin loses access without waiting for the
// cookie to expire.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := session.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !ident.Role.IsAdmin() {
			return forbidden(c)
		}

		var user models.User
		if err := db.Select("id", "role").First(&user, ident.UserID).Error; err != nil {
			return forbidden(c)
		}
		if !user.Role.IsAdmin() {
			return forbidden(c)
		}

		return c.Next()
	}
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Admin access required",
	})
}
