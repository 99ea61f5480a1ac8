package routing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupTestLogger() *zap.Logger {
	return zap.NewNop()
}

func setupTestRegistry(t *testing.T) *RouteRegistry {
	t.Helper()

	registry := NewRouteRegistry(setupTestLogger())
	routes := []struct{ name, method, path string }{
		{"GetSuppliers", "GET", "/api/v1/suppliers"},
		{"CreateSupplier", "POST", "/api/v1/suppliers"},
		{"SupplierById", "GET", "/api/v1/suppliers/:id"},
		{"GetTransactionForSupplier", "GET", "/api/v1/suppliertransactions/:supplierId/transactions/:id"},
		{"DeleteSupplierTransaction", "DELETE", "/api/v1/suppliertransactions/:supplierId/transactions/:id"},
		{"CreateSupplierTransactionCollection", "POST", "/api/v1/suppliertransactions/:supplierId/transactions/collection"},
	}
	for _, r := range routes {
		if err := registry.AddRoute(r.name, r.method, r.path); err != nil {
			t.Fatalf("AddRoute(%s): %v", r.name, err)
		}
	}
	return registry
}

func TestNewRouteRegistry(t *testing.T) {
	registry := NewRouteRegistry(setupTestLogger())

	if registry == nil {
		t.Fatal("Expected registry, got nil")
	}

	if registry.Count() != 0 {
		t.Errorf("Expected count 0, got %d", registry.Count())
	}
}

func TestRouteRegistry_AddRoute(t *testing.T) {
	registry := NewRouteRegistry(setupTestLogger())

	tests := []struct {
		name      string
		routeName string
		method    string
		path      string
		wantErr   error
	}{
		{name: "Add simple route", routeName: "GetSuppliers", method: "GET", path: "/suppliers"},
		{name: "Add route with parameter", routeName: "SupplierById", method: "GET", path: "/suppliers/:id"},
		{name: "Same path other method", routeName: "CreateSupplier", method: "POST", path: "/suppliers"},
		{name: "Duplicate name", routeName: "GetSuppliers", method: "PUT", path: "/other", wantErr: ErrRouteAlreadyExists},
		{name: "Duplicate path and method", routeName: "ListSuppliers", method: "GET", path: "/suppliers", wantErr: ErrRouteAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.AddRoute(tt.routeName, tt.method, tt.path)

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}

			if tt.wantErr == nil && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}

	if registry.Count() != 3 {
		t.Errorf("Expected count 3, got %d", registry.Count())
	}
}

func TestRouteRegistry_URL(t *testing.T) {
	registry := setupTestRegistry(t)

	tests := []struct {
		name    string
		route   string
		base    string
		params  Params
		query   url.Values
		want    string
		wantErr error
	}{
		{
			name:  "Static route",
			route: "GetSuppliers",
			base:  "http://localhost:8080/",
			want:  "http://localhost:8080/api/v1/suppliers",
		},
		{
			name:   "Composite key",
			route:  "GetTransactionForSupplier",
			base:   "https://wwi.example.com",
			params: Params{"supplierId": 4, "id": 2071},
			want:   "https://wwi.example.com/api/v1/suppliertransactions/4/transactions/2071",
		},
		{
			name:   "Query string",
			route:  "SupplierById",
			params: Params{"id": "12"},
			query:  url.Values{"fields": {"supplierName,supplierId"}},
			want:   "/api/v1/suppliers/12?fields=supplierName%2CsupplierId",
		},
		{
			name:   "Parameter is path escaped",
			route:  "SupplierById",
			params: Params{"id": "a b/c"},
			want:   "/api/v1/suppliers/a%20b%2Fc",
		},
		{
			name:    "Missing parameter",
			route:   "GetTransactionForSupplier",
			params:  Params{"supplierId": 4},
			wantErr: ErrMissingParameter,
		},
		{
			name:    "Nil parameter",
			route:   "SupplierById",
			params:  Params{"id": nil},
			wantErr: ErrMissingParameter,
		},
		{
			name:    "Empty parameter",
			route:   "SupplierById",
			params:  Params{"id": ""},
			wantErr: ErrMissingParameter,
		},
		{
			name:    "No parameters at all",
			route:   "DeleteSupplierTransaction",
			wantErr: ErrMissingParameter,
		},
		{
			name:    "Unknown route",
			route:   "Nope",
			wantErr: ErrRouteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.URL(tt.base, tt.route, tt.params, tt.query)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCompilePath(t *testing.T) {
	tests := []struct {
		path       string
		wantParams []string
	}{
		{"/", nil},
		{"/api/v1/suppliers", nil},
		{"/api/v1/suppliers/:id", []string{"id"}},
		{"/api/v1/suppliertransactions/:supplierId/transactions/:id", []string{"supplierId", "id"}},
		{"/api/v1/suppliercategories/collection/:ids", []string{"ids"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			tmpl, params, err := compilePath("route", tt.path)
			if err != nil {
				t.Fatalf("Expected path to compile, got %v", err)
			}
			if tmpl == nil {
				t.Fatal("Expected template, got nil")
			}
			if !reflect.DeepEqual(params, tt.wantParams) {
				t.Errorf("Expected params %v, got %v", tt.wantParams, params)
			}
		})
	}
}

func TestRouteRegistry_Match(t *testing.T) {
	registry := setupTestRegistry(t)

	tests := []struct {
		name       string
		path       string
		method     string
		wantRoute  string
		wantParams map[string]string
		wantErr    error
	}{
		{
			name:       "Static path",
			path:       "/api/v1/suppliers",
			method:     "GET",
			wantRoute:  "GetSuppliers",
			wantParams: map[string]string{},
		},
		{
			name:       "Parameters captured",
			path:       "/api/v1/suppliertransactions/4/transactions/9",
			method:     "DELETE",
			wantRoute:  "DeleteSupplierTransaction",
			wantParams: map[string]string{"supplierId": "4", "id": "9"},
		},
		{
			name:       "Static segment wins over parameter",
			path:       "/api/v1/suppliertransactions/4/transactions/collection",
			method:     "POST",
			wantRoute:  "CreateSupplierTransactionCollection",
			wantParams: map[string]string{"supplierId": "4"},
		},
		{
			name:    "Method not allowed",
			path:    "/api/v1/suppliers/3",
			method:  "PATCH",
			wantErr: ErrMethodNotAllowed,
		},
		{
			name:    "Unknown path",
			path:    "/api/v1/customers",
			method:  "GET",
			wantErr: ErrRouteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, params, err := registry.Match(tt.path, tt.method)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if route.Name != tt.wantRoute {
				t.Errorf("Expected route %s, got %s", tt.wantRoute, route.Name)
			}
			if !reflect.DeepEqual(params, tt.wantParams) {
				t.Errorf("Expected params %v, got %v", tt.wantParams, params)
			}
		})
	}
}

func TestRouteRegistry_AllowedMethods(t *testing.T) {
	registry := setupTestRegistry(t)

	methods, err := registry.AllowedMethods("/api/v1/suppliers")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reflect.DeepEqual(methods, []string{"GET", "POST"}) {
		t.Errorf("Expected [GET POST], got %v", methods)
	}

	if _, err := registry.AllowedMethods("/api/v1"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("Expected ErrRouteNotFound for an intermediate node, got %v", err)
	}
}

func TestRouteRegistry_Handle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	registry := NewRouteRegistry(setupTestLogger())

	v1 := engine.Group("/api").Group("/v1")
	registry.Handle(v1, "SupplierById", http.MethodGet, "/suppliers/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})

	route, ok := registry.Get("SupplierById")
	if !ok {
		t.Fatal("Expected route to be registered")
	}
	if route.Path != "/api/v1/suppliers/:id" {
		t.Errorf("Expected full path, got %s", route.Path)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/suppliers/5", nil))
	if w.Code != http.StatusOK || w.Body.String() != "5" {
		t.Errorf("Expected 200 and body 5, got %d %q", w.Code, w.Body.String())
	}
}

func TestRouteRegistry_List(t *testing.T) {
	registry := setupTestRegistry(t)

	names := registry.List()
	if len(names) != 6 {
		t.Fatalf("Expected 6 routes, got %d", len(names))
	}
	if names[0] != "CreateSupplier" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri  string
		want []string
	}{
		{"/", []string{}},
		{"", []string{}},
		{"/api/v1/suppliers/", []string{"api", "v1", "suppliers"}},
		{"suppliers/:id", []string{"suppliers", ":id"}},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := ParseURI(tt.uri); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
