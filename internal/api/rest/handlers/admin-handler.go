package handlers

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/SundayYogurt/inventory_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/SundayYogurt/inventory_service/internal/helper"
	"github.com/SundayYogurt/inventory_service/internal/interfaces"
	"github.com/SundayYogurt/inventory_service/internal/services"
	"github.com/SundayYogurt/inventory_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	configSvc services.ConfigService
	userSvc   services.UserService
	audit     services.AuditService
	uploader  interfaces.Uploader
	auth      *helper.Auth
}

func NewAdminHandler(
	configSvc services.ConfigService,
	userSvc services.UserService,
	audit services.AuditService,
	uploader interfaces.Uploader,
	auth *helper.Auth,
) *AdminHandler {
	return &AdminHandler{
		configSvc: configSvc,
		userSvc:   userSvc,
		audit:     audit,
		uploader:  uploader,
		auth:      auth,
	}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App) {
	admin := app.Group("/api/admin",
		middleware.AuthMiddleware(h.auth, h.userSvc),
		middleware.AdminOnly(),
	)

	cfg := admin.Group("/config")
	cfg.Put("/company-name", h.UpdateCompanyName)
	cfg.Post("/company-logo", h.UploadCompanyLogo)
	cfg.Post("/locations", h.AddLocation)
	cfg.Put("/locations/:code", h.RenameLocation)
	cfg.Delete("/locations/:code", h.RemoveLocation)
	cfg.Post("/states", h.AddState)
	cfg.Put("/states/:value", h.RenameState)
	cfg.Delete("/states/:value", h.RemoveState)
	cfg.Post("/holder-presences", h.AddHolderPresence)
	cfg.Put("/holder-presences/:value", h.RenameHolderPresence)
	cfg.Delete("/holder-presences/:value", h.RemoveHolderPresence)
	cfg.Post("/categories", h.AddCategory)
	cfg.Put("/categories/:code/description", h.UpdateCategoryDescription)
	cfg.Delete("/categories/:code", h.RemoveCategory)
	cfg.Post("/categories/:code/items", h.AddCategoryItem)
	cfg.Put("/categories/:code/items/:item", h.RenameCategoryItem)
	cfg.Delete("/categories/:code/items/:item", h.RemoveCategoryItem)
	cfg.Post("/custom-fields", h.AddCustomField)
	cfg.Put("/custom-fields/:id", h.UpdateCustomField)
	cfg.Post("/custom-fields/:id/archive", h.ToggleCustomFieldArchive)
	cfg.Delete("/custom-fields/:id", h.DeleteCustomField)
	cfg.Put("/core-fields/:key", h.UpdateCoreField)

	users := admin.Group("/users")
	users.Get("/", h.ListUsers)
	users.Post("/", h.CreateUser)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)

	admin.Get("/logs", h.ListLogs)
}

func (h *AdminHandler) UpdateCompanyName(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CompanyNameRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.UpdateCompanyName(user, requestBody.Name)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

// POST /api/admin/config/company-logo
// form-data: file=<image>
func (h *AdminHandler) UploadCompanyLogo(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	if h.uploader == nil {
		return utils.ResponseError(ctx, fiber.StatusServiceUnavailable, "stockage d'images non configuré")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxUploadSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 10MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	raw, err := utils.ReadAllLimit(f, maxUploadSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	normalized, err := utils.NormalizeToJPG(raw, 512, 90)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "image invalide")
	}

	uploadCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	filename := fmt.Sprintf("logo_%d", time.Now().Unix())
	url, err := h.uploader.UploadBytes(uploadCtx, "inventory/branding", filename, normalized)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, fmt.Sprintf("upload failed: %v", err))
	}

	cfg, err := h.configSvc.UpdateCompanyLogo(user, url)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) AddLocation(ctx *fiber.Ctx) error {
	return h.valueMutation(ctx, h.configSvc.AddLocation)
}

func (h *AdminHandler) RenameLocation(ctx *fiber.Ctx) error {
	return h.renameMutation(ctx, "code", h.configSvc.RenameLocation)
}

func (h *AdminHandler) RemoveLocation(ctx *fiber.Ctx) error {
	return h.paramMutation(ctx, "code", h.configSvc.RemoveLocation)
}

func (h *AdminHandler) AddState(ctx *fiber.Ctx) error {
	return h.valueMutation(ctx, h.configSvc.AddState)
}

func (h *AdminHandler) RenameState(ctx *fiber.Ctx) error {
	return h.renameMutation(ctx, "value", h.configSvc.RenameState)
}

func (h *AdminHandler) RemoveState(ctx *fiber.Ctx) error {
	return h.paramMutation(ctx, "value", h.configSvc.RemoveState)
}

func (h *AdminHandler) AddHolderPresence(ctx *fiber.Ctx) error {
	return h.valueMutation(ctx, h.configSvc.AddHolderPresence)
}

func (h *AdminHandler) RenameHolderPresence(ctx *fiber.Ctx) error {
	return h.renameMutation(ctx, "value", h.configSvc.RenameHolderPresence)
}

func (h *AdminHandler) RemoveHolderPresence(ctx *fiber.Ctx) error {
	return h.paramMutation(ctx, "value", h.configSvc.RemoveHolderPresence)
}

func (h *AdminHandler) AddCategory(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CategoryRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.AddCategory(user, requestBody.Code, requestBody.Description)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) UpdateCategoryDescription(ctx *fiber.Ctx) error {
	return h.renameMutation(ctx, "code", h.configSvc.UpdateCategoryDescription)
}

func (h *AdminHandler) RemoveCategory(ctx *fiber.Ctx) error {
	return h.paramMutation(ctx, "code", h.configSvc.RemoveCategory)
}

func (h *AdminHandler) AddCategoryItem(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CategoryItemRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.AddCategoryItem(user, ctx.Params("code"), requestBody.Item)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) RenameCategoryItem(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	oldItem, err := urlDecodeParam(ctx, "item")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "paramètre invalide")
	}

	var requestBody dto.ValueRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.RenameCategoryItem(user, ctx.Params("code"), oldItem, requestBody.Value)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) RemoveCategoryItem(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	item, err := urlDecodeParam(ctx, "item")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "paramètre invalide")
	}

	cfg, err := h.configSvc.RemoveCategoryItem(user, ctx.Params("code"), item)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) AddCustomField(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CustomFieldRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.AddCustomField(user, requestBody.Label, requestBody.Type, requestBody.Options)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) UpdateCustomField(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CustomFieldRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.UpdateCustomField(user, ctx.Params("id"), requestBody.Label, requestBody.Type, requestBody.Options)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) ToggleCustomFieldArchive(ctx *fiber.Ctx) error {
	return h.paramMutation(ctx, "id", h.configSvc.ToggleCustomFieldArchive)
}

func (h *AdminHandler) DeleteCustomField(ctx *fiber.Ctx) error {
	return h.paramMutation(ctx, "id", h.configSvc.DeleteCustomField)
}

func (h *AdminHandler) UpdateCoreField(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.CoreFieldRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := h.configSvc.UpdateCoreField(user, ctx.Params("key"), requestBody.Label, requestBody.IsVisible)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AdminHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := h.userSvc.List()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewUserResponses(users))
}

func (h *AdminHandler) CreateUser(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var input dto.UserInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	created, err := h.userSvc.Create(user, input)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.NewUserResponse(created))
}

func (h *AdminHandler) UpdateUser(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var input dto.UserInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	updated, err := h.userSvc.Update(user, ctx.Params("id"), input)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.NewUserResponse(updated))
}

func (h *AdminHandler) DeleteUser(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	if err := h.userSvc.Delete(user, ctx.Params("id")); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Utilisateur supprimé")
}

func (h *AdminHandler) ListLogs(ctx *fiber.Ctx) error {
	logs, err := h.audit.List()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, logs)
}

// urlDecodeParam reads a path parameter that may carry percent-encoded
// characters (accents, spaces in category items).
func urlDecodeParam(ctx *fiber.Ctx, param string) (string, error) {
	return url.PathUnescape(ctx.Params(param))
}

// valueMutation handles the add endpoints whose body is {"value": ...}.
func (h *AdminHandler) valueMutation(ctx *fiber.Ctx, fn func(actor domain.User, value string) (domain.AppConfig, error)) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.ValueRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := fn(user, requestBody.Value)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

// renameMutation handles the rename endpoints: the old value is the path
// parameter, the new one comes in a {"value": ...} body.
func (h *AdminHandler) renameMutation(ctx *fiber.Ctx, param string, fn func(actor domain.User, oldValue, newValue string) (domain.AppConfig, error)) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	oldValue, err := urlDecodeParam(ctx, param)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "paramètre invalide")
	}

	var requestBody dto.ValueRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	cfg, err := fn(user, oldValue, requestBody.Value)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

// paramMutation handles the delete endpoints keyed by a path parameter.
func (h *AdminHandler) paramMutation(ctx *fiber.Ctx, param string, fn func(actor domain.User, value string) (domain.AppConfig, error)) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	value, err := urlDecodeParam(ctx, param)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "paramètre invalide")
	}

	cfg, err := fn(user, value)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}
