package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/cache"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

func newCategoryService(t *testing.T, store cache.Store) (*SupplierCategoryService, *fakeCategoryStore) {
	t.Helper()
	repo := newFakeCategoryStore(
		model.SupplierCategory{SupplierCategoryID: 1, SupplierCategoryName: "Other Wholesaler"},
		model.SupplierCategory{SupplierCategoryID: 2, SupplierCategoryName: "Food Supplier"},
		model.SupplierCategory{SupplierCategoryID: 3, SupplierCategoryName: "Novelty Goods Supplier"},
	)
	svc := NewSupplierCategoryService(repo, newTestLinks(t), NewCacheService(store, time.Minute), validation.New(), testPaging)
	return svc, repo
}

func TestSupplierCategoryList(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.RequestParameters
		expected []int
		hasNext  bool
	}{
		{
			name:     "default order is by id",
			params:   dto.RequestParameters{},
			expected: []int{1, 2, 3},
		},
		{
			name:     "ordered by name",
			params:   dto.RequestParameters{OrderBy: "supplierCategoryName"},
			expected: []int{2, 3, 1},
		},
		{
			name:     "second page",
			params:   dto.RequestParameters{PageNumber: 2, PageSize: 2},
			expected: []int{3},
		},
		{
			name:     "first page has next",
			params:   dto.RequestParameters{PageNumber: 1, PageSize: 2},
			expected: []int{1, 2},
			hasNext:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCategoryService(t, nil)

			resp, err := svc.List(context.Background(), tt.params, Representation{MediaType: jsonMediaType(t)})
			require.NoError(t, err)

			assert.Equal(t, tt.expected, recordIDs(t, resp.Records, "supplierCategoryId"))
			assert.Equal(t, int64(3), resp.Pagination.TotalCount)
			assert.Equal(t, tt.hasNext, resp.Pagination.HasNext)
		})
	}
}

func TestSupplierCategoryGetUsesCache(t *testing.T) {
	store := cache.NewCache(time.Hour)
	defer store.Close()
	svc, repo := newCategoryService(t, store)
	ctx := context.Background()

	first, err := svc.Get(ctx, 2, Representation{MediaType: jsonMediaType(t)})
	require.NoError(t, err)
	second, err := svc.Get(ctx, 2, Representation{MediaType: jsonMediaType(t)})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls)
	name, _ := second.Get("supplierCategoryName")
	assert.Equal(t, "Food Supplier", name)
	assert.Equal(t, first.Keys(), second.Keys())
}

func TestSupplierCategoryGetNotFound(t *testing.T) {
	svc, _ := newCategoryService(t, nil)

	_, err := svc.Get(context.Background(), 42, Representation{MediaType: jsonMediaType(t)})

	assert.ErrorIs(t, err, apperrors.ErrSupplierCategoryNotFound)
	assert.Equal(t, 404, apperrors.ToHTTPStatus(err))
}

func TestSupplierCategoryGetCollection(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int
		expected error
		count    int
	}{
		{name: "all present", ids: []int{1, 3}, count: 2},
		{name: "duplicates collapse", ids: []int{2, 2}, count: 1},
		{name: "one missing", ids: []int{1, 9}, expected: apperrors.ErrSupplierCategoryNotFound},
		{name: "empty", ids: nil, expected: apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCategoryService(t, nil)

			categories, err := svc.GetCollection(context.Background(), tt.ids)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				return
			}
			require.NoError(t, err)
			assert.Len(t, categories, tt.count)
		})
	}
}

func TestSupplierCategoryCreate(t *testing.T) {
	svc, repo := newCategoryService(t, nil)

	created, err := svc.Create(context.Background(), dto.SupplierCategoryForCreationDto{
		SupplierCategoryName: "  Toy Supplier ",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, created.SupplierCategoryID)
	assert.Equal(t, "Toy Supplier", created.SupplierCategoryName)
	assert.Equal(t, model.SystemUserID, created.LastEditedBy)
	assert.Len(t, repo.categories, 4)
}

func TestSupplierCategoryCreateCollectionSize(t *testing.T) {
	svc, _ := newCategoryService(t, nil)

	_, err := svc.CreateCollection(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	tooMany := make([]dto.SupplierCategoryForCreationDto, 101)
	_, err = svc.CreateCollection(context.Background(), tooMany)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 400, apperrors.ToHTTPStatus(err))
}

func TestSupplierCategoryUpdateAppendsSuppliers(t *testing.T) {
	store := cache.NewCache(time.Hour)
	defer store.Close()
	svc, repo := newCategoryService(t, store)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, Representation{MediaType: jsonMediaType(t)})
	require.NoError(t, err)

	err = svc.Update(ctx, 1, dto.SupplierCategoryForUpdateDto{
		SupplierCategoryName: "Wholesaler",
		Suppliers:            []dto.SupplierForCreationDto{{SupplierName: "Contoso"}},
	})
	require.NoError(t, err)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, 1, repo.updated[0].SupplierCategoryID)

	record, err := svc.Get(ctx, 1, Representation{MediaType: jsonMediaType(t)})
	require.NoError(t, err)
	name, _ := record.Get("supplierCategoryName")
	assert.Equal(t, "Wholesaler", name)
	assert.Equal(t, 3, repo.getCalls)
}

func TestSupplierCategoryPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    string
		expected error
		field    string
	}{
		{name: "rename", patch: `[{"op":"replace","path":"/supplierCategoryName","value":"Packaging"}]`},
		{name: "not a patch document", patch: `not json`, expected: apperrors.ErrInvalidPatch},
		{
			name:     "blank name",
			patch:    `[{"op":"replace","path":"/supplierCategoryName","value":""}]`,
			expected: apperrors.ErrValidation,
			field:    "supplierCategoryName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newCategoryService(t, nil)

			err := svc.Patch(context.Background(), 3, []byte(tt.patch))
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				assert.Equal(t, 422, apperrors.ToHTTPStatus(err))
				if tt.field != "" {
					assert.Contains(t, apperrors.GetFieldErrors(err), tt.field)
				}
				assert.Equal(t, "Novelty Goods Supplier", repo.categories[3].SupplierCategoryName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Packaging", repo.categories[3].SupplierCategoryName)
		})
	}
}

func TestSupplierCategoryDelete(t *testing.T) {
	svc, repo := newCategoryService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 2))
	assert.NotContains(t, repo.categories, 2)
	assert.ErrorIs(t, svc.Delete(ctx, 2), apperrors.ErrSupplierCategoryNotFound)
}
