package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/service"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/cache"
)

func setupCacheHandler(t *testing.T) (*gin.Engine, *cache.Cache) {
	t.Helper()

	store := cache.NewCache(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	h := NewCacheHandler(service.NewCacheService(store, time.Minute))
	r := gin.New()
	r.GET("/admin/cache/stats", h.GetCacheStats)
	r.DELETE("/admin/cache", h.ClearAllCache)
	return r, store
}

func TestGetCacheStats(t *testing.T) {
	r, _ := setupCacheHandler(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/cache/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeBody(t, w.Body.Bytes())["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "memory", data["store"])
	assert.Equal(t, "healthy", data["status"])
}

func TestClearAllCache(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedItems  int
	}{
		{name: "requires confirmation", target: "/admin/cache", expectedStatus: http.StatusBadRequest, expectedItems: 1},
		{name: "confirmed", target: "/admin/cache?confirm=true", expectedStatus: http.StatusOK, expectedItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := setupCacheHandler(t)
			require.NoError(t, store.Set(context.Background(), service.SupplierCacheKey(1), []byte(`{}`), time.Minute))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedItems, store.Len())
		})
	}
}
