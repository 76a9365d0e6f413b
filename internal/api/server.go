package api

import (
	"log"

	"github.com/SundayYogurt/inventory_service/config"
	"github.com/SundayYogurt/inventory_service/infra/queue"
	"github.com/SundayYogurt/inventory_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/helper"
	"github.com/SundayYogurt/inventory_service/internal/interfaces"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/SundayYogurt/inventory_service/internal/services"
	"github.com/SundayYogurt/inventory_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := repository.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- Repositories ----------
	assetRepo := repository.NewAssetRepository(db)
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewLogRepository(db)
	configRepo := repository.NewConfigRepository(db)

	seedDefaults(configRepo, userRepo, cfg)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	var up interfaces.Uploader
	if cfg.CloudinaryURL != "" {
		cld, err := cloudinary.New()
		if err != nil {
			log.Fatalf("cloudinary init error: %v", err)
		}
		up = cloudinary.NewCloudinaryUploader(cld)
	} else {
		log.Println("cloudinary not configured, photo uploads disabled")
	}

	authHelper := helper.SetupAuth()

	// ---------- Services ----------
	auditSvc := services.NewAuditService(logRepo, kafkaProducer)
	configSvc := services.NewConfigService(configRepo, auditSvc)
	userSvc := services.NewUserService(userRepo, authHelper, auditSvc)
	assetSvc := services.NewAssetService(assetRepo, configSvc, auditSvc)
	sheetSvc := services.NewSpreadsheetService()
	importSvc := services.NewImportService(assetRepo, configSvc, sheetSvc, auditSvc)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(userSvc, authHelper)
	authHandler.SetupRoutes(app)

	assetHandler := handlers.NewAssetHandler(assetSvc, importSvc, sheetSvc, configSvc, auditSvc, up, authHelper, userSvc)
	assetHandler.SetupRoutes(app)

	adminHandler := handlers.NewAdminHandler(configSvc, userSvc, auditSvc, up, authHelper)
	adminHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// seedDefaults writes the default taxonomy and the bootstrap admin account
// on a fresh database. Existing data is never touched.
func seedDefaults(configRepo repository.ConfigRepository, userRepo repository.UserRepository, cfg config.Config) {
	_, found, err := configRepo.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if !found {
		if err := configRepo.Save(domain.DefaultConfig()); err != nil {
			log.Fatalf("config seed error: %v", err)
		}
		log.Println("default configuration seeded")
	}

	users, err := userRepo.LoadAll()
	if err != nil {
		log.Fatalf("user load error: %v", err)
	}
	if len(users) == 0 {
		admin := domain.DefaultAdmin(cfg.AdminEmail, cfg.AdminPassword)
		if err := userRepo.ReplaceAll([]domain.User{admin}); err != nil {
			log.Fatalf("admin seed error: %v", err)
		}
		log.Println("bootstrap admin seeded:", admin.Email)
	}
}
