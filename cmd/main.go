package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"swapnest/internal/api"
	"swapnest/internal/config"
	"swapnest/internal/consumer"
	"swapnest/internal/repository"
	"swapnest/internal/service"
	"swapnest/migrations"
)

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to database")
				return db, nil
			}
		}
		log.Printf("Retry %d: failed to connect to database: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to database after retries: %v", err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg.DBDSN)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := migrations.AutoMigrate(db, 5); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := cfg.NewKafkaWriter(cfg.OrderTopic)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	imageRepo := repository.NewProductImageRepository(db)
	cartRepo := repository.NewCartRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	chatRepo := repository.NewChatRepository(db)

	authService := service.NewAuthService(userRepo, rdb, cfg.JWTSecret)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, imageRepo, rdb)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(settlementRepo, rdb, kafkaWriter)
	orderService := service.NewOrderService(orderRepo)
	transactionService := service.NewTransactionService(transactionRepo, productRepo)
	reportService := service.NewReportService(reportRepo)
	chatService := service.NewChatService(chatRepo, productRepo)

	handlers := &api.Handlers{
		Auth:        api.NewAuthHandler(authService),
		Product:     api.NewProductHandler(productService),
		Category:    api.NewCategoryHandler(categoryService),
		Cart:        api.NewCartHandler(cartService),
		Checkout:    api.NewCheckoutHandler(checkoutService),
		Order:       api.NewOrderHandler(orderService),
		Transaction: api.NewTransactionHandler(transactionService),
		Report:      api.NewReportHandler(reportService),
		Chat:        api.NewChatHandler(chatService),
		Admin:       api.NewAdminHandler(userService, productService),
	}

	orderConsumer := consumer.NewConsumer(
		cfg.NewKafkaReader(cfg.OrderTopic, "swapnest-cache-group"),
		productService,
	)
	go orderConsumer.Run(context.Background())

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     40,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	api.RegisterRoutes(e, cfg.JWTSecret, handlers)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "swapnest",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
