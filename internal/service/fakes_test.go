package service

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/repository"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
)

var testPaging = config.PagingConfig{DefaultPageSize: 10, MaxPageSize: 50}

// newTestLinks registers the named routes the link builders resolve.
func newTestLinks(t *testing.T) *LinkGenerator {
	t.Helper()

	registry := routing.NewRouteRegistry(zap.NewNop())
	routes := []struct{ name, method, path string }{
		{constants.RouteGetRoot, http.MethodGet, "/api/v1"},
		{constants.RouteGetSuppliers, http.MethodGet, "/api/v1/suppliers"},
		{constants.RouteCreateSupplier, http.MethodPost, "/api/v1/suppliers"},
		{constants.RouteGetSupplier, http.MethodGet, "/api/v1/suppliers/:id"},
		{constants.RouteUpdateSupplier, http.MethodPut, "/api/v1/suppliers/:id"},
		{constants.RoutePatchSupplier, http.MethodPatch, "/api/v1/suppliers/:id"},
		{constants.RouteDeleteSupplier, http.MethodDelete, "/api/v1/suppliers/:id"},
		{constants.RouteGetSupplierCategories, http.MethodGet, "/api/v1/suppliercategories"},
		{constants.RouteGetSupplierCategory, http.MethodGet, "/api/v1/suppliercategories/:id"},
		{constants.RouteUpdateSupplierCategory, http.MethodPut, "/api/v1/suppliercategories/:id"},
		{constants.RoutePatchSupplierCategory, http.MethodPatch, "/api/v1/suppliercategories/:id"},
		{constants.RouteDeleteSupplierCategory, http.MethodDelete, "/api/v1/suppliercategories/:id"},
		{constants.RouteGetTransactions, http.MethodGet, "/api/v1/suppliertransactions/:supplierId/transactions"},
		{constants.RouteGetTransaction, http.MethodGet, "/api/v1/suppliertransactions/:supplierId/transactions/:id"},
		{constants.RouteUpdateTransaction, http.MethodPut, "/api/v1/suppliertransactions/:supplierId/transactions/:id"},
		{constants.RoutePatchTransaction, http.MethodPatch, "/api/v1/suppliertransactions/:supplierId/transactions/:id"},
		{constants.RouteDeleteTransaction, http.MethodDelete, "/api/v1/suppliertransactions/:supplierId/transactions/:id"},
	}
	for _, r := range routes {
		require.NoError(t, registry.AddRoute(r.name, r.method, r.path))
	}
	return NewLinkGenerator(registry)
}

type fakeCategoryStore struct {
	categories map[int]model.SupplierCategory
	getCalls   int
	updated    []model.Supplier
}

func newFakeCategoryStore(categories ...model.SupplierCategory) *fakeCategoryStore {
	f := &fakeCategoryStore{categories: make(map[int]model.SupplierCategory)}
	for _, c := range categories {
		f.categories[c.SupplierCategoryID] = c
	}
	return f
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id int) (*model.SupplierCategory, error) {
	f.getCalls++
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCategoryStore) GetByIDs(_ context.Context, ids []int) ([]model.SupplierCategory, error) {
	var out []model.SupplierCategory
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) GetAll(context.Context) ([]model.SupplierCategory, error) {
	out := make([]model.SupplierCategory, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryStore) Exists(_ context.Context, id int) (bool, error) {
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryStore) nextID() int {
	next := 1
	for id := range f.categories {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (f *fakeCategoryStore) Create(_ context.Context, category *model.SupplierCategory) error {
	category.SupplierCategoryID = f.nextID()
	f.categories[category.SupplierCategoryID] = *category
	return nil
}

func (f *fakeCategoryStore) CreateMany(ctx context.Context, categories []model.SupplierCategory) error {
	for i := range categories {
		if err := f.Create(ctx, &categories[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *model.SupplierCategory, suppliers []model.Supplier) error {
	f.categories[category.SupplierCategoryID] = *category
	f.updated = suppliers
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id int) error {
	if _, ok := f.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeSupplierStore struct {
	suppliers   map[int]model.Supplier
	existsCalls int
}

func newFakeSupplierStore(suppliers ...model.Supplier) *fakeSupplierStore {
	f := &fakeSupplierStore{suppliers: make(map[int]model.Supplier)}
	for _, s := range suppliers {
		f.suppliers[s.SupplierID] = s
	}
	return f
}

func (f *fakeSupplierStore) GetByID(_ context.Context, id int) (*model.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeSupplierStore) GetForCategory(_ context.Context, categoryID, id int) (*model.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok || s.SupplierCategoryID != categoryID {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeSupplierStore) GetAll(context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSupplierStore) ListByCategory(_ context.Context, categoryID int) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range f.suppliers {
		if s.SupplierCategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSupplierStore) Exists(_ context.Context, id int) (bool, error) {
	f.existsCalls++
	_, ok := f.suppliers[id]
	return ok, nil
}

func (f *fakeSupplierStore) Create(_ context.Context, supplier *model.Supplier) error {
	supplier.SupplierID = len(f.suppliers) + 1
	f.suppliers[supplier.SupplierID] = *supplier
	return nil
}

func (f *fakeSupplierStore) Update(_ context.Context, supplier *model.Supplier) error {
	f.suppliers[supplier.SupplierID] = *supplier
	return nil
}

func (f *fakeSupplierStore) Delete(_ context.Context, id int) error {
	if _, ok := f.suppliers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.suppliers, id)
	return nil
}

type fakeTransactionStore struct {
	transactions []model.SupplierTransaction
	listCalls    int
	lastFilter   repository.TransactionFilter
}

func (f *fakeTransactionStore) matches(t model.SupplierTransaction, filter repository.TransactionFilter) bool {
	if t.SupplierID != filter.SupplierID {
		return false
	}
	if t.PaymentMethodID == nil || !filter.PaymentMethods.Contains(*t.PaymentMethodID) {
		return false
	}
	invoice := strings.TrimSpace(filter.InvoiceNumber)
	return invoice == "" || t.SupplierInvoiceNumber == invoice
}

func (f *fakeTransactionStore) GetByID(_ context.Context, supplierID, id int) (*model.SupplierTransaction, error) {
	for _, t := range f.transactions {
		if t.SupplierID == supplierID && t.SupplierTransactionID == id {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransactionStore) List(_ context.Context, filter repository.TransactionFilter) ([]model.SupplierTransaction, error) {
	f.listCalls++
	f.lastFilter = filter
	var out []model.SupplierTransaction
	for _, t := range f.transactions {
		if f.matches(t, filter) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) Count(_ context.Context, filter repository.TransactionFilter) (int64, error) {
	var n int64
	for _, t := range f.transactions {
		if f.matches(t, filter) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionStore) CreateMany(_ context.Context, transactions []*model.SupplierTransaction) error {
	for _, t := range transactions {
		t.SupplierTransactionID = len(f.transactions) + 1
		f.transactions = append(f.transactions, *t)
	}
	return nil
}

func (f *fakeTransactionStore) Update(_ context.Context, transaction *model.SupplierTransaction) error {
	for i, t := range f.transactions {
		if t.SupplierTransactionID == transaction.SupplierTransactionID {
			f.transactions[i] = *transaction
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTransactionStore) Delete(_ context.Context, supplierID, id int) error {
	i := slices.IndexFunc(f.transactions, func(t model.SupplierTransaction) bool {
		return t.SupplierID == supplierID && t.SupplierTransactionID == id
	})
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	f.transactions = slices.Delete(f.transactions, i, i+1)
	return nil
}
