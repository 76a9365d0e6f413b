package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
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

const maxUploadSize = 10 * 1024 * 1024 // 10MB

type AssetHandler struct {
	svc       services.AssetService
	importSvc services.ImportService
	sheetSvc  services.SpreadsheetService
	configSvc services.ConfigService
	audit     services.AuditService
	uploader  interfaces.Uploader
	auth      *helper.Auth
	userSvc   services.UserService
}

func NewAssetHandler(
	svc services.AssetService,
	importSvc services.ImportService,
	sheetSvc services.SpreadsheetService,
	configSvc services.ConfigService,
	audit services.AuditService,
	uploader interfaces.Uploader,
	auth *helper.Auth,
	userSvc services.UserService,
) *AssetHandler {
	return &AssetHandler{
		svc:       svc,
		importSvc: importSvc,
		sheetSvc:  sheetSvc,
		configSvc: configSvc,
		audit:     audit,
		uploader:  uploader,
		auth:      auth,
		userSvc:   userSvc,
	}
}

func (h *AssetHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.AuthMiddleware(h.auth, h.userSvc))

	api.Get("/config", h.GetConfig)
	api.Get("/dashboard/stats", middleware.CanViewDashboard(), h.DashboardStats)

	assets := api.Group("/assets")
	assets.Get("/", middleware.CanReadList(), h.List)
	assets.Get("/code-preview", middleware.CanCreate(), h.CodePreview)
	assets.Get("/export", middleware.CanExport(), h.Export)
	assets.Get("/template", middleware.CanExport(), h.Template)
	assets.Post("/import", middleware.AdminOnly(), h.Import)
	assets.Get("/:id", middleware.CanReadList(), h.Get)
	assets.Post("/", middleware.CanCreate(), h.Create)
	assets.Put("/:id", middleware.CanUpdate(), h.Update)
	assets.Delete("/:id", middleware.CanDelete(), h.Archive)
	assets.Post("/:id/photo", middleware.CanUpdate(), h.UploadPhoto)
}

func (h *AssetHandler) GetConfig(ctx *fiber.Ctx) error {
	cfg, err := h.configSvc.Get()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cfg)
}

func (h *AssetHandler) DashboardStats(ctx *fiber.Ctx) error {
	stats, err := h.svc.Stats()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, stats)
}

func (h *AssetHandler) List(ctx *fiber.Ctx) error {
	if ctx.QueryBool("includeArchived", false) {
		assets, err := h.svc.List(true)
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
		}
		return utils.ResponseSuccess(ctx, fiber.StatusOK, assets)
	}

	page, err := h.svc.Search(ctx.Query("q"), ctx.QueryInt("page", 1))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, page)
}

func (h *AssetHandler) Get(ctx *fiber.Ctx) error {
	asset, err := h.svc.Get(ctx.Params("id"))
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, asset)
}

func (h *AssetHandler) CodePreview(ctx *fiber.Ctx) error {
	preview, err := h.svc.PreviewCode(
		ctx.Query("year"),
		ctx.Query("location"),
		ctx.Query("category"),
	)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, preview)
}

func (h *AssetHandler) Create(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var input dto.AssetInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	asset, err := h.svc.Create(user, input)
	if err != nil {
		if errors.Is(err, services.ErrMissingRequired) || errors.Is(err, services.ErrCodeIncomplete) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, asset)
}

func (h *AssetHandler) Update(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var input dto.AssetInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "corps de requête invalide")
	}

	asset, err := h.svc.Update(user, ctx.Params("id"), input)
	if err != nil {
		if errors.Is(err, services.ErrReasonRequired) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	}
	if asset == nil {
		// Unknown id is tolerated, nothing was changed.
		return utils.ResponseSuccess(ctx, fiber.StatusOK, nil)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, asset)
}

func (h *AssetHandler) Archive(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	if err := h.svc.Archive(user, ctx.Params("id")); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Actif archivé")
}

// POST /api/assets/:id/photo
// form-data: file=<image>
func (h *AssetHandler) UploadPhoto(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	if h.uploader == nil {
		return utils.ResponseError(ctx, fiber.StatusServiceUnavailable, "stockage de photos non configuré")
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
	normalized, err := utils.NormalizeToJPG(raw, 1600, 85)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "image invalide")
	}

	uploadCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	id := ctx.Params("id")
	filename := fmt.Sprintf("asset_%s_%d", id, time.Now().Unix())
	url, err := h.uploader.UploadBytes(uploadCtx, "inventory/assets", filename, normalized)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, fmt.Sprintf("upload failed: %v", err))
	}

	asset, err := h.svc.SetPhoto(user, id, url)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, asset)
}

func (h *AssetHandler) Export(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	assets, err := h.svc.List(false)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	cfg, err := h.configSvc.Get()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	f, err := h.sheetSvc.Export(assets, cfg)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.audit.Record(user, domain.ActionExport, "Export Excel de l'inventaire", "", nil); err != nil {
		log.Printf("record export log error: %v", err)
	}

	filename := fmt.Sprintf("Inventaire_EDC_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}

func (h *AssetHandler) Template(ctx *fiber.Ctx) error {
	cfg, err := h.configSvc.Get()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	f, err := h.sheetSvc.Template(cfg)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="Modele_Import_EDC.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// POST /api/assets/import
// form-data: file=<xlsx>
func (h *AssetHandler) Import(ctx *fiber.Ctx) error {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}
	if file.Size > maxUploadSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 10MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	res, err := h.importSvc.ImportWorkbook(user, f)
	if err != nil {
		var rowErrs *services.ImportValidationError
		if errors.As(err, &rowErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   err.Error(),
				"details": rowErrs.Rows,
			})
		}
		var missing *services.MissingColumnsError
		if errors.As(err, &missing) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   err.Error(),
				"details": missing.Columns,
			})
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
