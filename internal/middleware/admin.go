package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired checks, in order: the admin token header, the configured
// admin email allow-list, and the stored profile role.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := cfg.AdminEmailList()

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		claims, err := GetClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, strings.ToLower(email)) {
			return c.Next()
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			var profile models.Profile
			if err := db.First(&profile, "id = ?", sub).Error; err == nil {
				if profile.Role == models.RoleAdmin {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
