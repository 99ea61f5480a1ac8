package router

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/handler"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/middleware"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
)

type Router struct {
	rootHandler        *handler.RootHandler
	healthHandler      *handler.HealthHandler
	cacheHandler       *handler.CacheHandler
	supplierHandler    *handler.SupplierHandler
	categoryHandler    *handler.SupplierCategoryHandler
	transactionHandler *handler.SupplierTransactionHandler

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	routes  *routing.RouteRegistry
	Config  *config.Config
}

func NewRouter(
	root *handler.RootHandler,
	health *handler.HealthHandler,
	cache *handler.CacheHandler,
	suppliers *handler.SupplierHandler,
	categories *handler.SupplierCategoryHandler,
	transactions *handler.SupplierTransactionHandler,

	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	routes *routing.RouteRegistry,
	config *config.Config,
) *Router {
	return &Router{
		rootHandler:        root,
		healthHandler:      health,
		cacheHandler:       cache,
		supplierHandler:    suppliers,
		categoryHandler:    categories,
		transactionHandler: transactions,

		validMw: validMw,
		jwtMw:   jwtMw,
		routes:  routes,
		Config:  config,
	}
}

// SetupRoutes builds the engine. Every route is registered by name so links
// and Location headers can be generated from it.
func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ContextMiddleware(r.Config.App.Timeout))
	if r.Config.App.Debug {
		router.Use(middleware.RequestResponseMiddleware())
	}
	router.Use(middleware.ContextValidationMiddleware())
	router.Use(middleware.CORS())

	router.NoRoute(notFound)
	router.NoMethod(r.methodNotAllowed)

	v1 := router.Group(constants.APIPrefix)
	{
		r.routes.Handle(v1, constants.RouteHealth, http.MethodGet, "/health", r.healthHandler.HealthCheck)

		limited := v1.Group("")
		limited.Use(middleware.RateLimit(
			r.Config.RateLimit.Request,
			time.Duration(r.Config.RateLimit.Duration)*time.Second,
			r.Config.RateLimit.Burst,
		))

		r.routes.Handle(limited, constants.RouteGetRoot, http.MethodGet, "", r.rootHandler.GetRoot)

		r.supplierRoutes(limited)
		r.supplierCategoryRoutes(limited)
		r.supplierTransactionRoutes(limited)
		r.cacheRoutes(limited)
	}

	return router
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgNotFound, nil))
}

// methodNotAllowed answers 405 with the registered methods in Allow when
// the path is known to the registry, and 404 otherwise.
func (r *Router) methodNotAllowed(c *gin.Context) {
	path := c.Request.URL.Path
	if _, _, err := r.routes.Match(path, c.Request.Method); !errors.Is(err, routing.ErrMethodNotAllowed) {
		notFound(c)
		return
	}

	if methods, err := r.routes.AllowedMethods(path); err == nil {
		c.Header(constants.HeaderAllow, strings.Join(methods, ", "))
	}
	c.JSON(http.StatusMethodNotAllowed, constants.BuildErrorResponse(constants.MsgMethodNotAllowed, nil))
}

func (r *Router) cacheRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(r.jwtMw.RequireAuth())
	{
		r.routes.Handle(admin, constants.RouteCacheStats, http.MethodGet, "/cache/stats", r.cacheHandler.GetCacheStats)
		r.routes.Handle(admin, constants.RouteClearCache, http.MethodDelete, "/cache", r.cacheHandler.ClearAllCache)
	}
}
