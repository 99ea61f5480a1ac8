package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

func newSupplierService(t *testing.T) (*SupplierService, *fakeSupplierStore) {
	t.Helper()
	categories := newFakeCategoryStore(
		model.SupplierCategory{SupplierCategoryID: 2, SupplierCategoryName: "Novelty Goods Supplier"},
		model.SupplierCategory{SupplierCategoryID: 4, SupplierCategoryName: "Toy Supplier"},
	)
	repo := newFakeSupplierStore(
		model.Supplier{SupplierID: 1, SupplierName: "A Datum Corporation", SupplierCategoryID: 2, PhoneNumber: "(847) 555-0100"},
		model.Supplier{SupplierID: 2, SupplierName: "Contoso, Ltd.", SupplierCategoryID: 4, PhoneNumber: "(360) 555-0100"},
		model.Supplier{SupplierID: 3, SupplierName: "Consolidated Messenger", SupplierCategoryID: 2, PhoneNumber: "(209) 555-0100"},
	)
	svc := NewSupplierService(repo, categories, newTestLinks(t), NewCacheService(nil, 0), validation.New(), testPaging)
	return svc, repo
}

func TestSupplierListOrderedByName(t *testing.T) {
	svc, _ := newSupplierService(t)

	resp, err := svc.List(context.Background(), dto.RequestParameters{OrderBy: "supplierName desc", Fields: "supplierName"},
		Representation{MediaType: jsonMediaType(t)})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 1}, recordIDs(t, resp.Records, "supplierId"))
	assert.Equal(t, []string{"supplierName", "supplierId"}, resp.Records[0].Keys())
}

func TestSupplierListForCategory(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()

	resp, err := svc.ListForCategory(ctx, 2, dto.RequestParameters{}, Representation{MediaType: jsonMediaType(t)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, recordIDs(t, resp.Records, "supplierId"))
	assert.Equal(t, int64(2), resp.Pagination.TotalCount)

	_, err = svc.ListForCategory(ctx, 9, dto.RequestParameters{}, Representation{MediaType: jsonMediaType(t)})
	assert.ErrorIs(t, err, apperrors.ErrSupplierCategoryNotFound)
}

func TestSupplierListWithLinks(t *testing.T) {
	svc, _ := newSupplierService(t)

	resp, err := svc.List(context.Background(), dto.RequestParameters{PageSize: 1, Fields: "supplierName"}, Representation{
		MediaType: hateoasMediaType(t),
		BaseURL:   "http://api.test",
	})
	require.NoError(t, err)

	envelope, ok := resp.Body.(*shaping.LinkEnvelope)
	require.True(t, ok)
	require.Len(t, envelope.Value, 1)

	raw, ok := envelope.Value[0].Get(shaping.LinksField)
	require.True(t, ok)
	links := raw.([]shaping.Link)
	assert.Equal(t, "http://api.test/api/v1/suppliers/1?fields=supplierName", links[0].Href)
	assert.Equal(t, "http://api.test/api/v1/suppliers/1", links[1].Href)
	assert.Equal(t, "delete_supplier", links[1].Rel)
}

func TestSupplierGetForCategory(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()
	rep := Representation{MediaType: jsonMediaType(t)}

	record, err := svc.GetForCategory(ctx, 4, 2, rep)
	require.NoError(t, err)
	name, _ := record.Get("supplierName")
	assert.Equal(t, "Contoso, Ltd.", name)

	_, err = svc.GetForCategory(ctx, 2, 2, rep)
	assert.ErrorIs(t, err, apperrors.ErrSupplierNotFound)

	_, err = svc.GetForCategory(ctx, 9, 2, rep)
	assert.ErrorIs(t, err, apperrors.ErrSupplierCategoryNotFound)
}

func TestSupplierCreate(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.SupplierForCreationDto
		expected error
		status   int
	}{
		{
			name: "created in existing category",
			req:  dto.SupplierForCreationDto{SupplierName: "Fabrikam, Inc.", SupplierCategoryID: 4},
		},
		{
			name:     "category is required",
			req:      dto.SupplierForCreationDto{SupplierName: "Fabrikam, Inc."},
			expected: apperrors.ErrValidation,
			status:   422,
		},
		{
			name:     "unknown category",
			req:      dto.SupplierForCreationDto{SupplierName: "Fabrikam, Inc.", SupplierCategoryID: 9},
			expected: apperrors.ErrSupplierCategoryNotFound,
			status:   404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newSupplierService(t)

			created, err := svc.Create(context.Background(), tt.req)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				assert.Equal(t, tt.status, apperrors.ToHTTPStatus(err))
				assert.Len(t, repo.suppliers, 3)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, created.SupplierID)
			assert.Equal(t, 4, created.SupplierCategoryID)
		})
	}
}

func TestSupplierCreateReportsCategoryField(t *testing.T) {
	svc, _ := newSupplierService(t)

	_, err := svc.Create(context.Background(), dto.SupplierForCreationDto{SupplierName: "Fabrikam, Inc."})

	assert.Contains(t, apperrors.GetFieldErrors(err), "supplierCategoryId")
}

func TestSupplierPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    string
		expected error
	}{
		{name: "replace phone", patch: `[{"op":"replace","path":"/phoneNumber","value":"(847) 555-0199"}]`},
		{name: "move to known category", patch: `[{"op":"replace","path":"/supplierCategoryId","value":4}]`},
		{name: "blank name", patch: `[{"op":"replace","path":"/supplierName","value":""}]`, expected: apperrors.ErrValidation},
		{name: "test op fails", patch: `[{"op":"test","path":"/supplierName","value":"nope"}]`, expected: apperrors.ErrInvalidPatch},
		{name: "move to unknown category", patch: `[{"op":"replace","path":"/supplierCategoryId","value":9}]`, expected: apperrors.ErrSupplierCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newSupplierService(t)

			err := svc.Patch(context.Background(), 1, []byte(tt.patch))
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				assert.Equal(t, "A Datum Corporation", repo.suppliers[1].SupplierName)
				assert.Equal(t, 2, repo.suppliers[1].SupplierCategoryID)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSupplierUpdateNotFound(t *testing.T) {
	svc, _ := newSupplierService(t)

	err := svc.Update(context.Background(), 99, dto.SupplierForUpdateDto{SupplierName: "Nobody"})

	assert.ErrorIs(t, err, apperrors.ErrSupplierNotFound)
}

func TestSupplierDelete(t *testing.T) {
	svc, repo := newSupplierService(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 3))
	assert.NotContains(t, repo.suppliers, 3)
	assert.ErrorIs(t, svc.Delete(ctx, 3), apperrors.ErrSupplierNotFound)
}
