package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"feedsoko/internal/domain"
	applog "feedsoko/internal/log"
	"feedsoko/internal/services"
)

// SessionToken reads the session id from the sid cookie or an
// Authorization: Bearer header (the mobile client uses the latter).
func SessionToken(c *fiber.Ctx) string {
	if sid := c.Cookies("sid"); sid != "" {
		return sid
	}
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// AttachUser resolves the session user, if any, into Locals for handlers
// and the logger. Never rejects.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := SessionToken(c); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	}
}

func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		return c.Next()
	}
}

func RequireSeller(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		if u.UserType != domain.UserSeller {
			applog.Security(c, "access.denied.seller", nil)
			return jsonErr(c, fiber.StatusForbidden, "seller account required")
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
