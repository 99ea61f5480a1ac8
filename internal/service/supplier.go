package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

type SupplierService struct {
	repo       SupplierStore
	categories SupplierCategoryStore
	links      *LinkGenerator
	cache      *CacheService
	validate   *validator.Validate
	paging     config.PagingConfig
}

func NewSupplierService(repo SupplierStore, categories SupplierCategoryStore, links *LinkGenerator, cache *CacheService, validate *validator.Validate, paging config.PagingConfig) *SupplierService {
	return &SupplierService{
		repo:       repo,
		categories: categories,
		links:      links,
		cache:      cache,
		validate:   validate,
		paging:     paging,
	}
}

func (s *SupplierService) List(ctx context.Context, params dto.RequestParameters, rep Representation) (*CollectionResponse, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.List")
	return s.render(ctx, s.repo.GetAll, params, rep)
}

// ListForCategory pages the suppliers of one category.
func (s *SupplierService) ListForCategory(ctx context.Context, categoryID int, params dto.RequestParameters, rep Representation) (*CollectionResponse, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.ListForCategory")

	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.render(ctx, func(ctx context.Context) ([]model.Supplier, error) {
		return s.repo.ListByCategory(ctx, categoryID)
	}, params, rep)
}

func (s *SupplierService) render(ctx context.Context, load func(context.Context) ([]model.Supplier, error), params dto.RequestParameters, rep Representation) (*CollectionResponse, error) {
	params.Normalize(s.paging, constants.DefaultSupplierOrderBy)

	src := loaderSource[dto.SupplierDto](func(ctx context.Context) ([]dto.SupplierDto, error) {
		suppliers, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return dto.NewSupplierDtos(suppliers), nil
	})

	resp, err := renderCollection(ctx, src, dto.SupplierFields, shaping.Query[dto.SupplierDto]{
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
		OrderBy:    params.OrderBy,
		Fields:     params.Fields,
	}, rep.MediaType, s.links.Suppliers(rep.BaseURL))
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierNotFound)
	}
	return resp, nil
}

// RequireSupplier loads the supplier or fails with a not found error.
func (s *SupplierService) RequireSupplier(ctx context.Context, id int) (*model.Supplier, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierNotFound)
	}
	return supplier, nil
}

func (s *SupplierService) requireCategory(ctx context.Context, categoryID int) error {
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return apperrors.ErrSupplierCategoryNotFound
	}
	return nil
}

// Get returns the shaped supplier, served from the cache when possible.
func (s *SupplierService) Get(ctx context.Context, id int, rep Representation) (shaping.ShapedRecord, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.Get")

	var supplier dto.SupplierDto
	key := SupplierCacheKey(id)
	if !s.cache.Get(ctx, key, &supplier) {
		m, err := s.RequireSupplier(ctx, id)
		if err != nil {
			return shaping.ShapedRecord{}, err
		}
		supplier = dto.NewSupplierDto(m)
		s.cache.Set(ctx, key, supplier)
	}

	return renderEntity(ctx, supplier, dto.SupplierFields, rep, s.links.Suppliers(rep.BaseURL))
}

func (s *SupplierService) GetForCategory(ctx context.Context, categoryID, id int, rep Representation) (shaping.ShapedRecord, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.GetForCategory")

	if err := s.requireCategory(ctx, categoryID); err != nil {
		return shaping.ShapedRecord{}, err
	}
	m, err := s.repo.GetForCategory(ctx, categoryID, id)
	if err != nil {
		return shaping.ShapedRecord{}, lookupError(err, apperrors.ErrSupplierNotFound)
	}
	return renderEntity(ctx, dto.NewSupplierDto(m), dto.SupplierFields, rep, s.links.Suppliers(rep.BaseURL))
}

// Create adds a supplier to an existing category.
func (s *SupplierService) Create(ctx context.Context, req dto.SupplierForCreationDto) (*dto.SupplierDto, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.Create")

	if req.SupplierCategoryID == 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation, map[string]string{
			"supplierCategoryId": "supplierCategoryId is required",
		})
	}
	if err := s.requireCategory(ctx, req.SupplierCategoryID); err != nil {
		return nil, err
	}

	supplier := req.ToModel()
	if err := s.repo.Create(ctx, &supplier); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Supplier created").
		Int("supplier_id", supplier.SupplierID).
		Int("supplier_category_id", supplier.SupplierCategoryID).
		Log()

	created := dto.NewSupplierDto(&supplier)
	return &created, nil
}

func (s *SupplierService) Update(ctx context.Context, id int, req dto.SupplierForUpdateDto) error {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.Update")

	supplier, err := s.RequireSupplier(ctx, id)
	if err != nil {
		return err
	}
	return s.save(ctx, supplier, req)
}

func (s *SupplierService) Patch(ctx context.Context, id int, patch []byte) error {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.Patch")

	supplier, err := s.RequireSupplier(ctx, id)
	if err != nil {
		return err
	}

	req, err := applyPatch(s.validate, dto.NewSupplierForUpdateDto(supplier), patch)
	if err != nil {
		logger.InfoWithContext(ctx, "Supplier patch rejected").
			Int("supplier_id", id).
			Err(err).
			Log()
		return err
	}
	return s.save(ctx, supplier, req)
}

func (s *SupplierService) save(ctx context.Context, supplier *model.Supplier, req dto.SupplierForUpdateDto) error {
	if req.SupplierCategoryID != 0 && req.SupplierCategoryID != supplier.SupplierCategoryID {
		if err := s.requireCategory(ctx, req.SupplierCategoryID); err != nil {
			return err
		}
	}

	req.ApplyTo(supplier)
	if err := s.repo.Update(ctx, supplier); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, SupplierCacheKey(supplier.SupplierID))
	return nil
}

// Delete removes the supplier and its transactions.
func (s *SupplierService) Delete(ctx context.Context, id int) error {
	ctx = ctxutil.WithLayer(ctx, "service", "Supplier.Delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrSupplierNotFound)
	}

	s.cache.Invalidate(ctx, SupplierCacheKey(id))
	s.cache.InvalidatePrefix(ctx, fmt.Sprintf("%s%d:", constants.CacheKeySupplierTransaction, id))
	return nil
}
