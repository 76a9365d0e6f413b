package middleware

import (
	"strings"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/helper"
	"github.com/SundayYogurt/inventory_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth *helper.Auth, userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		userID, err := auth.ResolveSession(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		user, err := userSvc.GetByID(userID)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "session utilisateur invalide",
			})
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// RequirePermission gates a route on one capability of the authenticated
// user. Admins pass every check.
func RequirePermission(check func(p domain.Permission) bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(domain.User)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		if !user.Permissions.IsAdmin && !check(user.Permissions) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "permission refusée",
			})
		}

		return ctx.Next()
	}
}

func AdminOnly() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.IsAdmin })
}

func CanViewDashboard() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.CanViewDashboard })
}

func CanReadList() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.CanReadList })
}

func CanCreate() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.CanCreate })
}

func CanUpdate() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.CanUpdate })
}

func CanDelete() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.CanDelete })
}

func CanExport() fiber.Handler {
	return RequirePermission(func(p domain.Permission) bool { return p.CanExport })
}
