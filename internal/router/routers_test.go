package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/handler"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/middleware"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Timeout: time.Second},
		RateLimit: config.RateLimitConfig{
			Request:  100,
			Duration: 60,
			Burst:    100,
		},
		Paging: config.PagingConfig{
			DefaultPageSize: constants.DefaultPageSize,
			MaxPageSize:     constants.MaxPageSize,
		},
	}
}

// newTestEngine wires the production route table. Services are nil: only
// routing, registry lookups and the 404/405 paths are exercised.
func newTestEngine(t *testing.T) (*gin.Engine, *routing.RouteRegistry) {
	t.Helper()

	cfg := testConfig()
	registry := routing.NewRouteRegistry(zap.NewNop())

	var engine *gin.Engine
	require.NotPanics(t, func() {
		engine = NewRouter(
			handler.NewRootHandler(nil, cfg),
			handler.NewHealthHandler(nil, nil, cfg),
			handler.NewCacheHandler(nil),
			handler.NewSupplierHandler(nil, registry, cfg),
			handler.NewSupplierCategoryHandler(nil, registry, cfg),
			handler.NewSupplierTransactionHandler(nil, registry, cfg),

			middleware.NewValidationMiddleware(validation.New()),
			middleware.NewJWTMiddleware(nil, false),
			registry,
			cfg,
		).SetupRoutes()
	})

	return engine, registry
}

func TestSetupRoutesRegistersNamedRoutes(t *testing.T) {
	_, registry := newTestEngine(t)

	assert.Equal(t, 30, registry.Count())

	for _, name := range []string{
		constants.RouteGetRoot,
		constants.RouteGetSupplier,
		constants.RouteGetSupplierCategoryColl,
		constants.RouteGetSupplierForCategory,
		constants.RouteGetTransaction,
		constants.RouteDeleteTransaction,
	} {
		_, ok := registry.Get(name)
		assert.True(t, ok, name)
	}
}

func TestSetupRoutesBuildsLinks(t *testing.T) {
	_, registry := newTestEngine(t)

	tests := []struct {
		route  string
		params routing.Params
		want   string
	}{
		{constants.RouteGetRoot, nil, "http://api.test/api/v1"},
		{constants.RouteGetSupplier, routing.Params{"id": 12}, "http://api.test/api/v1/suppliers/12"},
		{constants.RouteGetSupplierCategoryColl, routing.Params{"ids": "(1,2)"}, "http://api.test/api/v1/suppliercategories/collection/%281%2C2%29"},
		{constants.RouteGetSupplierForCategory, routing.Params{"id": 2, "supplierId": 5}, "http://api.test/api/v1/suppliercategories/2/suppliers/5"},
		{constants.RouteGetTransaction, routing.Params{"supplierId": 7, "id": 3}, "http://api.test/api/v1/suppliertransactions/7/transactions/3"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got, err := registry.URL("http://api.test", tt.route, tt.params, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := registry.URL("http://api.test", constants.RouteGetTransaction, routing.Params{"supplierId": 7}, nil)
	assert.ErrorIs(t, err, routing.ErrMissingParameter)
}

func TestSetupRoutesUnmatchedRequests(t *testing.T) {
	engine, _ := newTestEngine(t)

	tests := []struct {
		name          string
		method        string
		target        string
		expectedCode  int
		expectedAllow string
		expectedMsg   string
	}{
		{
			name:          "method not allowed on collection",
			method:        http.MethodPatch,
			target:        "/api/v1/suppliers",
			expectedCode:  http.StatusMethodNotAllowed,
			expectedAllow: "GET, HEAD, OPTIONS, POST",
			expectedMsg:   constants.MsgMethodNotAllowed,
		},
		{
			name:          "method not allowed on entity",
			method:        http.MethodPost,
			target:        "/api/v1/suppliers/3",
			expectedCode:  http.StatusMethodNotAllowed,
			expectedAllow: "DELETE, GET, PATCH, PUT",
			expectedMsg:   constants.MsgMethodNotAllowed,
		},
		{
			name:         "unknown path",
			method:       http.MethodGet,
			target:       "/api/v1/customers",
			expectedCode: http.StatusNotFound,
			expectedMsg:  constants.MsgNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedAllow, w.Header().Get(constants.HeaderAllow))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMsg, body["message"])
		})
	}
}

func TestSetupRoutesSuppliersOptions(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/suppliers", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, HEAD, OPTIONS, POST", w.Header().Get(constants.HeaderAllow))
}
