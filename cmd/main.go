package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	configs "github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/handler"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/middleware"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/repository"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/router"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/service"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/cache"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/circuit"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/database"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/redis"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDatabase(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if config.App.Seed {
		if err := database.Seed(db); err != nil {
			logger.GetLogger().Error("Failed to seed database", zap.Error(err))
		} else {
			logger.GetLogger().Info("Database seeded successfully")
		}
	}

	store := newCacheStore(config)
	defer func() {
		if closer, ok := store.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	// Request binding and patched documents share one rule set.
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Register(engine)
	}
	validate := validation.New()

	// Repositories
	categoryRepo := repository.NewSupplierCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	transactionRepo := repository.NewSupplierTransactionRepository(db)

	registry := routing.NewRouteRegistry(logger.GetLogger())

	// Services
	links := service.NewLinkGenerator(registry)
	cacheService := service.NewCacheService(store, config.Cache.TTL)
	jwtService := service.NewJWTService(config.JWT)
	categoryService := service.NewSupplierCategoryService(categoryRepo, links, cacheService, validate, config.Paging)
	supplierService := service.NewSupplierService(supplierRepo, categoryRepo, links, cacheService, validate, config.Paging)
	transactionService := service.NewSupplierTransactionService(transactionRepo, supplierRepo, links, cacheService, validate, config.Paging)

	engine := router.NewRouter(
		handler.NewRootHandler(links, config),
		handler.NewHealthHandler(db, cacheService, config),
		handler.NewCacheHandler(cacheService),
		handler.NewSupplierHandler(supplierService, registry, config),
		handler.NewSupplierCategoryHandler(categoryService, registry, config),
		handler.NewSupplierTransactionHandler(transactionService, registry, config),

		middleware.NewValidationMiddleware(validate),
		middleware.NewJWTMiddleware(jwtService, config.JWT.Enabled),
		registry,
		config,
	).SetupRoutes()

	logger.GetLogger().Info("Route registry initialized",
		zap.Int("route_count", registry.Count()),
		zap.Bool("jwt_enabled", config.JWT.Enabled),
	)
	logger.GetLogger().Debug("Named routes", zap.Strings("routes", registry.List()))

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
}

// newCacheStore prefers Redis and falls back to the in-process cache when
// Redis is disabled or unreachable.
func newCacheStore(config *configs.Config) cache.Store {
	if config.Redis.Enabled {
		client, err := redis.NewClient(config)
		if err == nil {
			breaker := circuit.NewBreaker("redis", circuit.DefaultConfig(), logger.GetLogger())
			return cache.NewGuardedStore(client, breaker)
		}
		logger.GetLogger().Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	}
	return cache.NewCache(config.Cache.CleanupEvery)
}
