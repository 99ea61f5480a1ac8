package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/service"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Register(binding.Validator.Engine().(*validator.Validate))
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Name: "wwi-test"}}
}

func page(n int) shaping.MetaData {
	return shaping.MetaData{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalCount: int64(n)}
}

// fakeSupplierAPI serves a fixed set of suppliers. Methods a test does not
// exercise fall through to the nil embedded interface.
type fakeSupplierAPI struct {
	SupplierAPI
	suppliers map[int]dto.SupplierDto
	lastRep   service.Representation
	lastPatch []byte
}

func newFakeSupplierAPI() *fakeSupplierAPI {
	return &fakeSupplierAPI{suppliers: map[int]dto.SupplierDto{
		1: {SupplierID: 1, SupplierName: "A Datum Corporation", SupplierCategoryID: 2},
		2: {SupplierID: 2, SupplierName: "Contoso, Ltd.", SupplierCategoryID: 2},
	}}
}

func (f *fakeSupplierAPI) sorted() []dto.SupplierDto {
	out := make([]dto.SupplierDto, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b dto.SupplierDto) int { return a.SupplierID - b.SupplierID })
	return out
}

func (f *fakeSupplierAPI) List(ctx context.Context, params dto.RequestParameters, rep service.Representation) (*service.CollectionResponse, error) {
	f.lastRep = rep
	records := shaping.Shape(ctx, f.sorted(), params.Fields, dto.SupplierFields)
	return &service.CollectionResponse{Body: records, Records: records, Pagination: page(len(records))}, nil
}

func (f *fakeSupplierAPI) Get(ctx context.Context, id int, rep service.Representation) (shaping.ShapedRecord, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return shaping.ShapedRecord{}, apperrors.ErrSupplierNotFound
	}
	return shaping.ShapeOne(ctx, s, rep.Fields, dto.SupplierFields), nil
}

func (f *fakeSupplierAPI) Create(_ context.Context, req dto.SupplierForCreationDto) (*dto.SupplierDto, error) {
	if req.SupplierCategoryID == 9 {
		return nil, apperrors.ErrSupplierCategoryNotFound
	}
	created := dto.SupplierDto{SupplierID: 3, SupplierName: req.SupplierName, SupplierCategoryID: req.SupplierCategoryID}
	f.suppliers[3] = created
	return &created, nil
}

func (f *fakeSupplierAPI) Patch(_ context.Context, id int, patch []byte) error {
	f.lastPatch = patch
	if _, ok := f.suppliers[id]; !ok {
		return apperrors.ErrSupplierNotFound
	}
	return apperrors.WithFields(apperrors.ErrValidation, map[string]string{"supplierName": "supplierName is required"})
}

func (f *fakeSupplierAPI) Delete(_ context.Context, id int) error {
	if _, ok := f.suppliers[id]; !ok {
		return apperrors.ErrSupplierNotFound
	}
	delete(f.suppliers, id)
	return nil
}

type fakeCategoryAPI struct {
	SupplierCategoryAPI
	categories []dto.SupplierCategoryDto
	lastIDs    []int
}

func (f *fakeCategoryAPI) List(ctx context.Context, params dto.RequestParameters, _ service.Representation) (*service.CollectionResponse, error) {
	records := shaping.Shape(ctx, f.categories, params.Fields, dto.SupplierCategoryFields)
	return &service.CollectionResponse{Body: records, Records: records, Pagination: page(len(records))}, nil
}

func (f *fakeCategoryAPI) GetCollection(_ context.Context, ids []int) ([]dto.SupplierCategoryDto, error) {
	f.lastIDs = ids
	var out []dto.SupplierCategoryDto
	for _, id := range ids {
		i := slices.IndexFunc(f.categories, func(c dto.SupplierCategoryDto) bool { return c.SupplierCategoryID == id })
		if i < 0 {
			return nil, apperrors.ErrSupplierCategoryNotFound
		}
		out = append(out, f.categories[i])
	}
	return out, nil
}

func (f *fakeCategoryAPI) CreateCollection(_ context.Context, reqs []dto.SupplierCategoryForCreationDto) ([]dto.SupplierCategoryDto, error) {
	out := make([]dto.SupplierCategoryDto, len(reqs))
	for i, req := range reqs {
		out[i] = dto.SupplierCategoryDto{SupplierCategoryID: 10 + i, SupplierCategoryName: req.SupplierCategoryName}
	}
	return out, nil
}

type fakeTransactionAPI struct {
	SupplierTransactionAPI
	lastParams dto.TransactionParameters
}

func (f *fakeTransactionAPI) List(_ context.Context, supplierID int, params dto.TransactionParameters, rep service.Representation) (*service.CollectionResponse, error) {
	f.lastParams = params
	if supplierID != 7 {
		return nil, apperrors.ErrSupplierNotFound
	}
	if params.MaxPaymentMethod < params.MinPaymentMethod {
		return nil, apperrors.ErrInvalidRange
	}
	record := shaping.NewShapedRecord(1)
	record.Set("supplierTransactionId", 3)
	resp := &service.CollectionResponse{Body: []shaping.ShapedRecord{record}, Records: []shaping.ShapedRecord{record}, Pagination: page(1)}
	if rep.MediaType.IsHateoas() {
		resp.Body = &shaping.LinkEnvelope{
			Value: []shaping.ShapedRecord{record},
			Links: []shaping.Link{{Href: rep.BaseURL + "/api/v1/suppliertransactions/7/transactions", Rel: "self", Method: http.MethodGet}},
		}
	}
	return resp, nil
}

type fakeRootLinks struct{}

func (fakeRootLinks) Root(base string) ([]shaping.Link, error) {
	return []shaping.Link{{Href: base + "/api/v1", Rel: "self", Method: http.MethodGet}}, nil
}

type testAPI struct {
	engine       *gin.Engine
	suppliers    *fakeSupplierAPI
	categories   *fakeCategoryAPI
	transactions *fakeTransactionAPI
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := testConfig()
	routes := routing.NewRouteRegistry(zap.NewNop())
	api := &testAPI{
		engine:    gin.New(),
		suppliers: newFakeSupplierAPI(),
		categories: &fakeCategoryAPI{categories: []dto.SupplierCategoryDto{
			{SupplierCategoryID: 1, SupplierCategoryName: "Other Wholesaler"},
			{SupplierCategoryID: 2, SupplierCategoryName: "Novelty, Goods"},
		}},
		transactions: &fakeTransactionAPI{},
	}

	root := NewRootHandler(fakeRootLinks{}, cfg)
	suppliers := NewSupplierHandler(api.suppliers, routes, cfg)
	categories := NewSupplierCategoryHandler(api.categories, routes, cfg)
	transactions := NewSupplierTransactionHandler(api.transactions, routes, cfg)

	v1 := api.engine.Group("/api/v1")
	routes.Handle(v1, constants.RouteGetRoot, http.MethodGet, "", root.GetRoot)

	s := v1.Group("/suppliers")
	routes.Handle(s, constants.RouteGetSuppliers, http.MethodGet, "", suppliers.GetSuppliers)
	routes.Handle(s, constants.RouteHeadSuppliers, http.MethodHead, "", suppliers.GetSuppliers)
	routes.Handle(s, constants.RouteSuppliersOptions, http.MethodOptions, "", suppliers.GetSuppliersOptions)
	routes.Handle(s, constants.RouteCreateSupplier, http.MethodPost, "", suppliers.CreateSupplier)
	routes.Handle(s, constants.RouteGetSupplier, http.MethodGet, "/:id", suppliers.GetSupplier)
	routes.Handle(s, constants.RoutePatchSupplier, http.MethodPatch, "/:id", suppliers.PartiallyUpdateSupplier)
	routes.Handle(s, constants.RouteDeleteSupplier, http.MethodDelete, "/:id", suppliers.DeleteSupplier)

	sc := v1.Group("/suppliercategories")
	routes.Handle(sc, constants.RouteGetSupplierCategories, http.MethodGet, "", categories.GetSupplierCategories)
	routes.Handle(sc, constants.RouteGetSupplierCategoryColl, http.MethodGet, "/collection/:ids", categories.GetSupplierCategoryCollection)
	routes.Handle(sc, constants.RouteCreateSupplierCategoryColl, http.MethodPost, "/collection",
		func(c *gin.Context) {
			var reqs []dto.SupplierCategoryForCreationDto
			if err := c.ShouldBindJSON(&reqs); err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			c.Set(constants.GinKeyValidatedBody, &reqs)
		},
		categories.CreateSupplierCategoryCollection)

	st := v1.Group("/suppliertransactions/:supplierId/transactions")
	routes.Handle(st, constants.RouteGetTransactions, http.MethodGet, "", transactions.GetTransactionsForSupplier)

	return api
}

func (a *testAPI) do(method, target, accept, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if accept != "" {
		req.Header.Set(constants.HeaderAccept, accept)
	}
	if body != "" {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}
