package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.OrderStatus{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := seedStatuses(db); err != nil {
		log.Fatalf("Failed to seed order statuses: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	statusRepo := repositories.NewGORMStatusRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, services.AuthConfig{
		SecretKey:     cfg.JWTSecret,
		Algorithm:     cfg.JWTAlgorithm,
		TokenLifetime: cfg.TokenLifetime,
	})
	userService := services.NewUserService(userRepo, orderRepo)
	productService := services.NewProductService(productRepo)
	statusService := services.NewStatusService(statusRepo, orderRepo)

	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(orderRepo, productRepo, statusRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, orderService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	statusHandler := handlers.NewStatusHandler(statusService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	auth := middleware.AuthRequired(authService)
	admin := middleware.AdminRequired()

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1, auth, admin)
	productHandler.RegisterRoutes(apiV1, auth, admin)
	orderHandler.RegisterRoutes(apiV1, auth, admin)
	statusHandler.RegisterRoutes(apiV1, auth, admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting order event consumer...")
			err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Order event %s: %s", msg.RoutingKey, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Order event consumer stopped: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// seedStatuses ensures the canonical order lifecycle statuses exist. The
// order workflow treats a missing "pending" row as a configuration error, so
// seeding runs on every boot and is idempotent.
func seedStatuses(db *gorm.DB) error {
	names := []string{
		models.StatusPending,
		models.StatusProcessing,
		models.StatusCompleted,
		models.StatusCanceled,
	}
	repo := repositories.NewGORMStatusRepository(db)
	for _, name := range names {
		if _, err := repo.GetByName(name); err == nil {
			continue
		}
		if err := repo.Create(&models.OrderStatus{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
