// Package routing keeps a registry of named routes so links can be built
// from a route name and its parameters instead of hand-formatted strings.
package routing

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	// ErrRouteNotFound is returned when no route matches a name or path
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is returned when a path exists but not for the method
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrRouteAlreadyExists is returned for a duplicate name or path+method
	ErrRouteAlreadyExists = errors.New("route already exists")

	// ErrMissingParameter is returned when a URL is built without every
	// path parameter
	ErrMissingParameter = errors.New("missing route parameter")
)

// Params are the path parameter values used to build a URL.
type Params map[string]any

// Route is a named method and path pair. Path uses gin syntax, e.g.
// /api/v1/suppliertransactions/:supplierId/transactions/:id.
type Route struct {
	Name   string
	Method string
	Path   string
	params []string
	tmpl   *template.Template
}

// RouteRegistry maps route names to routes and paths to allowed methods.
type RouteRegistry struct {
	mu     sync.RWMutex
	root   *TrieNode
	routes map[string]*Route
	logger *zap.Logger
}

// NewRouteRegistry creates a new route registry
func NewRouteRegistry(logger *zap.Logger) *RouteRegistry {
	return &RouteRegistry{
		root:   NewTrieNode(""),
		routes: make(map[string]*Route),
		logger: logger,
	}
}

var funcs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["pathEscape"] = url.PathEscape
	return fm
}()

// compilePath turns /a/:id/b into a template and returns the parameter
// names it expects, in path order.
func compilePath(name, path string) (*template.Template, []string, error) {
	var (
		b      strings.Builder
		params []string
	)
	for _, segment := range ParseURI(path) {
		b.WriteByte('/')
		if IsParameterSegment(segment) {
			param := segment[1:]
			params = append(params, param)
			fmt.Fprintf(&b, `{{ get . %q | toString | pathEscape }}`, param)
			continue
		}
		b.WriteString(segment)
	}
	if b.Len() == 0 {
		b.WriteByte('/')
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(b.String())
	if err != nil {
		return nil, nil, err
	}
	return tmpl, params, nil
}

// missingParam returns the first parameter of route without a non-empty
// value in params.
func (route *Route) missingParam(params Params) (string, bool) {
	for _, name := range route.params {
		v, ok := params[name]
		if !ok || v == nil || fmt.Sprint(v) == "" {
			return name, true
		}
	}
	return "", false
}

// AddRoute registers a named route.
func (r *RouteRegistry) AddRoute(name, method, path string) error {
	tmpl, params, err := compilePath(name, path)
	if err != nil {
		return fmt.Errorf("compile route %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[name]; exists {
		return fmt.Errorf("%w: name=%s", ErrRouteAlreadyExists, name)
	}

	node := r.root
	for _, segment := range ParseURI(path) {
		node = node.AddChild(segment)
	}
	if node.routes == nil {
		node.routes = make(map[string]*Route)
	}
	if _, exists := node.routes[method]; exists {
		return fmt.Errorf("%w: path=%s, method=%s", ErrRouteAlreadyExists, path, method)
	}

	route := &Route{Name: name, Method: method, Path: path, params: params, tmpl: tmpl}
	node.routes[method] = route
	r.routes[name] = route

	r.logger.Debug("Route registered",
		zap.String("name", name),
		zap.String("method", method),
		zap.String("path", path),
	)

	return nil
}

// Handle registers a named route with both the registry and a gin group.
func (r *RouteRegistry) Handle(rg *gin.RouterGroup, name, method, relativePath string, handlers ...gin.HandlerFunc) {
	full := joinPaths(rg.BasePath(), relativePath)
	if err := r.AddRoute(name, method, full); err != nil {
		panic(err)
	}
	rg.Handle(method, relativePath, handlers...)
}

// URL builds the link for a named route. base is prepended as is, e.g.
// "https://api.example.com"; query may be nil.
func (r *RouteRegistry) URL(base, name string, params Params, query url.Values) (string, error) {
	r.mu.RLock()
	route, ok := r.routes[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: name=%s", ErrRouteNotFound, name)
	}

	if param, missing := route.missingParam(params); missing {
		return "", fmt.Errorf("%w: route=%s, param=%s", ErrMissingParameter, name, param)
	}

	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	if err := route.tmpl.Execute(&b, map[string]any(params)); err != nil {
		return "", fmt.Errorf("build url for route %s: %w", name, err)
	}
	if encoded := query.Encode(); encoded != "" {
		b.WriteByte('?')
		b.WriteString(encoded)
	}
	return b.String(), nil
}

// Match finds the route registered for path and method.
func (r *RouteRegistry) Match(path, method string) (*Route, map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, params := r.find(path)
	if node == nil || len(node.routes) == 0 {
		return nil, nil, ErrRouteNotFound
	}

	route, exists := node.routes[method]
	if !exists {
		return nil, nil, ErrMethodNotAllowed
	}
	return route, params, nil
}

// AllowedMethods lists the methods registered for path, sorted.
func (r *RouteRegistry) AllowedMethods(path string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, _ := r.find(path)
	if node == nil || len(node.routes) == 0 {
		return nil, ErrRouteNotFound
	}

	methods := make([]string, 0, len(node.routes))
	for m := range node.routes {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return methods, nil
}

func (r *RouteRegistry) find(path string) (*TrieNode, map[string]string) {
	params := make(map[string]string)
	node := r.root
	for _, segment := range ParseURI(path) {
		if node = node.FindChild(segment, params); node == nil {
			return nil, nil
		}
	}
	return node, params
}

// Get returns a route by name.
func (r *RouteRegistry) Get(name string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, exists := r.routes[name]
	return route, exists
}

// Count returns the total number of routes
func (r *RouteRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.routes)
}

// List returns all route names, sorted.
func (r *RouteRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func joinPaths(base, relative string) string {
	if relative == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(relative, "/")
}
