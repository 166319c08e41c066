package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/config"
	"github.com/toykart/storefront/internal/handler"
	"github.com/toykart/storefront/internal/middleware"
	"github.com/toykart/storefront/internal/repository"
	"github.com/toykart/storefront/internal/service"
	"github.com/toykart/storefront/internal/validator"
	"github.com/toykart/storefront/pkg/cache"
	"github.com/toykart/storefront/pkg/database"
	"github.com/toykart/storefront/pkg/events"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Optional infrastructure: a nil cache or publisher disables the feature.
	readCache := cache.New(ctx, cfg.Cache.RedisAddr, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	publisher, err := events.New(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to event broker")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Toykart Storefront",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())

	validate := validator.New()

	pricing := service.Pricing{
		ShippingFee:           cfg.Checkout.ShippingFee,
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	bannerRepo := repository.NewBannerRepository(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, cfg.Auth.RootAdminEmail)
	catalogService := service.NewCatalogService(productRepo, bannerRepo, readCache)
	cartService := service.NewCartService(cartRepo, productRepo, pool, pricing)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	couponService := service.NewCouponService(couponRepo)
	checkoutService := service.NewCheckoutService(pool, cartRepo, productRepo, couponRepo, orderRepo, pricing, publisher)
	orderService := service.NewOrderService(orderRepo, publisher)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService, validate)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate)
	orderHandler := handler.NewOrderHandler(orderService, authService)
	adminHandler := handler.NewAdminHandler(catalogService, couponService, orderService, authService, validate)
	healthHandler := handler.NewHealthHandler(pool)

	app.Get("/health", healthHandler.Check)

	// Public routes
	app.Post("/api/auth/register", authHandler.Register)
	app.Post("/api/auth/login", authHandler.Login)
	app.Get("/api/products", catalogHandler.ListProducts)
	app.Get("/api/products/:id", catalogHandler.GetProduct)
	app.Get("/api/banner", catalogHandler.GetBanner)

	// Authenticated routes
	authed := app.Group("/api", middleware.RequireAuth(authService))
	authed.Get("/profile", authHandler.GetProfile)
	authed.Put("/profile", authHandler.UpdateProfile)
	authed.Get("/cart", cartHandler.GetCart)
	authed.Post("/cart", cartHandler.AddItem)
	authed.Put("/cart/:id", cartHandler.UpdateItem)
	authed.Delete("/cart/:id", cartHandler.RemoveItem)
	authed.Delete("/cart", cartHandler.ClearCart)
	authed.Get("/wishlist", wishlistHandler.List)
	authed.Post("/wishlist", wishlistHandler.Add)
	authed.Delete("/wishlist/:productID", wishlistHandler.Remove)
	authed.Post("/checkout/quote", checkoutHandler.Quote)
	authed.Post("/checkout", checkoutHandler.PlaceOrder)
	authed.Get("/orders", orderHandler.List)
	authed.Get("/orders/:id", orderHandler.Get)

	// Admin routes
	admin := authed.Group("/admin", middleware.RequireAdmin(authService))
	admin.Post("/products", adminHandler.CreateProduct)
	admin.Put("/products/:id", adminHandler.UpdateProduct)
	admin.Delete("/products/:id", adminHandler.DeleteProduct)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Patch("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Get("/coupons", adminHandler.ListCoupons)
	admin.Post("/coupons", adminHandler.CreateCoupon)
	admin.Put("/coupons/:id", adminHandler.UpdateCoupon)
	admin.Delete("/coupons/:id", adminHandler.DeleteCoupon)
	admin.Put("/banner", adminHandler.UpdateBanner)
	admin.Get("/admins", adminHandler.ListAdmins)
	admin.Post("/admins", adminHandler.GrantAdmin)
	admin.Delete("/admins/:userID", adminHandler.RevokeAdmin)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	publisher.Close()
	readCache.Close()
	pool.Close()
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
