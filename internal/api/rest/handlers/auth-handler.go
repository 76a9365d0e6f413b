package handlers

import (
	"strings"

	"github.com/SundayYogurt/inventory_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/SundayYogurt/inventory_service/internal/helper"
	"github.com/SundayYogurt/inventory_service/internal/services"
	"github.com/SundayYogurt/inventory_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc  services.UserService
	auth *helper.Auth
}

func NewAuthHandler(svc services.UserService, auth *helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/login", h.Login)

	protected := api.Group("", middleware.AuthMiddleware(h.auth, h.svc))
	protected.Post("/logout", h.Logout)
	protected.Get("/me", h.Me)
	protected.Put("/theme", h.SetTheme)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email et mot de passe requis")
	}
	if requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email et mot de passe requis")
	}

	res, err := h.svc.Login(requestBody.Email, requestBody.Password)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	token := strings.TrimSpace(ctx.Get("Authorization"))
	if token == "" {
		token = strings.TrimSpace(ctx.Cookies("access_token"))
	}
	if err := h.svc.Logout(user, token); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Déconnexion réussie")
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) SetTheme(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.ThemeRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Theme == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "thème requis")
	}

	updated, err := h.svc.SetTheme(user, requestBody.Theme)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewUserResponse(updated))
}
