package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/database"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// CachePinger is the part of the cache service the health check needs.
type CachePinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      *gorm.DB
	cache   CachePinger
	cfg     *config.Config
	started time.Time
}

func NewHealthHandler(db *gorm.DB, cache CachePinger, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		cfg:     cfg,
		started: time.Now(),
	}
}

// HealthCheck reports database and cache state. Only the database decides
// the overall status; the cache is optional.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := dto.HealthResponse{
		Status:  statusHealthy,
		Service: h.cfg.App.Name,
		Checks:  make(map[string]string),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}

	if err := h.checkDatabase(ctx); err != nil {
		response.Status = statusUnhealthy
		response.Checks["database"] = statusUnhealthy
	} else {
		response.Checks["database"] = statusHealthy
		response.Database = database.Stats(h.db)
	}
	response.Checks["cache"] = h.checkCache(ctx)

	statusCode := http.StatusOK
	if response.Status == statusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return gorm.ErrInvalidDB
	}
	if err := database.Ping(ctx, h.db); err != nil {
		logger.GetLogger().Error("Database ping failed", zap.Error(err))
		return err
	}
	return nil
}

func (h *HealthHandler) checkCache(ctx context.Context) string {
	if h.cache == nil || !h.cache.Enabled() {
		return statusDisabled
	}
	if err := h.cache.Ping(ctx); err != nil {
		logger.GetLogger().Warn("Cache ping failed", zap.Error(err))
		return statusUnhealthy
	}
	return statusHealthy
}
