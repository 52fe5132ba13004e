package main

import (
	"time"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/config"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/database"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/handlers"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/redis"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/AdinubaEze/chiifykitchen-backend/pkg/gateway"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.AppEnv)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		zap.S().Fatalw("failed to connect to database", "error", err)
	}
	if err := database.Seed(db); err != nil {
		zap.S().Fatalw("failed to seed database", "error", err)
	}

	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		zap.S().Fatalw("failed to connect to redis", "error", err)
	}

	paystackClient := gateway.NewPaystackClient(cfg.PaystackBaseURL)
	flutterwaveClient := gateway.NewFlutterwaveClient(cfg.FlutterwaveBaseURL)

	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTSecret, tokenTTL)
	addressService := services.NewAddressService(addressRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	tableService := services.NewTableService(tableRepo)
	settingsService := services.NewSettingsService(settingRepo, redisClient)
	orderService := services.NewOrderService(db, orderRepo, paymentRepo, tableRepo, productRepo, addressRepo, settingsService)
	paymentService := services.NewPaymentService(db, paymentRepo, orderRepo, settingsService, paystackClient, flutterwaveClient)

	authHandler := handlers.NewAuthHandler(authService)
	addressHandler := handlers.NewAddressHandler(addressService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	tableHandler := handlers.NewTableHandler(tableService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authRequired := handlers.AuthMiddleware(authService)
	adminOnly := handlers.RequireRole("admin")

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", authRequired, authHandler.Me)
		api.POST("/auth/logout", authRequired, authHandler.Logout)

		api.GET("/categories", categoryHandler.List)
		api.GET("/categories/:id", categoryHandler.Get)
		api.POST("/categories", authRequired, adminOnly, categoryHandler.Create)
		api.PUT("/categories/:id", authRequired, adminOnly, categoryHandler.Update)
		api.DELETE("/categories/:id", authRequired, adminOnly, categoryHandler.Delete)

		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products", authRequired, adminOnly, productHandler.Create)
		api.PUT("/products/:id", authRequired, adminOnly, productHandler.Update)
		api.DELETE("/products/:id", authRequired, adminOnly, productHandler.Delete)

		api.GET("/tables", tableHandler.List)
		api.GET("/tables/:id", tableHandler.Get)
		api.POST("/tables", authRequired, adminOnly, tableHandler.Create)
		api.PUT("/tables/:id", authRequired, adminOnly, tableHandler.Update)
		api.DELETE("/tables/:id", authRequired, adminOnly, tableHandler.Delete)

		api.GET("/addresses", authRequired, addressHandler.List)
		api.POST("/addresses", authRequired, addressHandler.Create)
		api.PUT("/addresses/:id", authRequired, addressHandler.Update)
		api.DELETE("/addresses/:id", authRequired, addressHandler.Delete)
		api.POST("/addresses/:id/set-default", authRequired, addressHandler.SetDefault)

		api.GET("/orders", authRequired, orderHandler.List)
		api.GET("/orders/:id", authRequired, orderHandler.Get)
		api.POST("/orders", authRequired, orderHandler.Create)
		api.POST("/orders/:id", authRequired, adminOnly, orderHandler.Update)
		api.POST("/orders/:id/cancel", authRequired, orderHandler.Cancel)

		api.POST("/payments/initiate", authRequired, paymentHandler.Initiate)
		api.POST("/payments/verify", authRequired, paymentHandler.Verify)
		api.GET("/payments", authRequired, adminOnly, paymentHandler.List)
		api.GET("/payments/:id", authRequired, adminOnly, paymentHandler.Get)
		api.PATCH("/payments/:id", authRequired, adminOnly, paymentHandler.Update)

		api.GET("/settings", handlers.OptionalAuth(authService), settingsHandler.Get)
		api.POST("/settings", authRequired, adminOnly, settingsHandler.Update)
		api.POST("/settings/payment-gateways/:gateway/toggle", authRequired, adminOnly, settingsHandler.ToggleGateway)
	}

	zap.S().Infow("server starting", "port", cfg.ServerPort, "env", cfg.AppEnv)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		zap.S().Fatalw("server exited", "error", err)
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
