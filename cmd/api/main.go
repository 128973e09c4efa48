package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"siaga-bencana/internal/config"
	"siaga-bencana/internal/handler"
	"siaga-bencana/internal/middleware"
	"siaga-bencana/internal/repository"
	"siaga-bencana/internal/service"
	"siaga-bencana/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Registration and login are the only unauthenticated endpoints.
	v1.Post("/users", h.Auth.Register)
	v1.Post("/sessions", h.Auth.Login)
	v1.Post("/sessions/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Delete("/sessions", h.Auth.Logout)

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Delete("/me", h.User.DeleteAccount)
	users.Get("/volunteers", h.User.ListVolunteers)

	disasters := protected.Group("/disasters")
	disasters.Get("/", h.Disaster.List)
	disasters.Post("/", h.Disaster.Create)
	disasters.Get("/:id", h.Disaster.Get)
	disasters.Patch("/:id/status", middleware.RequireRole("volunteer"), h.Disaster.UpdateStatus)
	disasters.Get("/:id/history", h.Disaster.History)
	disasters.Post("/:id/images", h.Disaster.UploadImage)

	resources := protected.Group("/resources")
	resources.Get("/", h.Resource.List)
	resources.Post("/", middleware.RequireRole("volunteer"), h.Resource.Create)
	resources.Get("/:id", h.Resource.Get)
	resources.Put("/:id", middleware.RequireRole("volunteer"), h.Resource.Update)
	resources.Delete("/:id", middleware.RequireRole("admin"), h.Resource.Delete)
}
