package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/service"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

type CacheHandler struct {
	cacheService *service.CacheService
}

func NewCacheHandler(cacheService *service.CacheService) *CacheHandler {
	return &CacheHandler{
		cacheService: cacheService,
	}
}

// GetCacheStats returns cache statistics
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.cacheService.Stats(c.Request.Context()),
	})
}

// ClearAllCache drops every cached entity. It needs ?confirm=true.
func (h *CacheHandler) ClearAllCache(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please add ?confirm=true to clear all cache",
		})
		return
	}

	if err := h.cacheService.ClearAll(c.Request.Context()); err != nil {
		logger.GetLogger().Error("Failed to clear all cache",
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to clear all cache",
		})
		return
	}

	logger.GetLogger().Warn("All cache cleared by admin")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All cache cleared successfully",
	})
}
