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

type SupplierCategoryService struct {
	repo     SupplierCategoryStore
	links    *LinkGenerator
	cache    *CacheService
	validate *validator.Validate
	paging   config.PagingConfig
}

func NewSupplierCategoryService(repo SupplierCategoryStore, links *LinkGenerator, cache *CacheService, validate *validator.Validate, paging config.PagingConfig) *SupplierCategoryService {
	return &SupplierCategoryService{
		repo:     repo,
		links:    links,
		cache:    cache,
		validate: validate,
		paging:   paging,
	}
}

func (s *SupplierCategoryService) List(ctx context.Context, params dto.RequestParameters, rep Representation) (*CollectionResponse, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.List")
	params.Normalize(s.paging, constants.DefaultCategoryOrderBy)

	src := loaderSource[dto.SupplierCategoryDto](func(ctx context.Context) ([]dto.SupplierCategoryDto, error) {
		categories, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return dto.NewSupplierCategoryDtos(categories), nil
	})

	resp, err := renderCollection(ctx, src, dto.SupplierCategoryFields, shaping.Query[dto.SupplierCategoryDto]{
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
		OrderBy:    params.OrderBy,
		Fields:     params.Fields,
	}, rep.MediaType, s.links.SupplierCategories(rep.BaseURL))
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierCategoryNotFound)
	}
	return resp, nil
}

// RequireCategory loads the category or fails with a not found error.
func (s *SupplierCategoryService) RequireCategory(ctx context.Context, id int) (*model.SupplierCategory, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierCategoryNotFound)
	}
	return category, nil
}

func (s *SupplierCategoryService) Get(ctx context.Context, id int, rep Representation) (shaping.ShapedRecord, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.Get")

	var category dto.SupplierCategoryDto
	key := SupplierCategoryCacheKey(id)
	if !s.cache.Get(ctx, key, &category) {
		m, err := s.RequireCategory(ctx, id)
		if err != nil {
			return shaping.ShapedRecord{}, err
		}
		category = dto.NewSupplierCategoryDto(m)
		s.cache.Set(ctx, key, category)
	}

	return renderEntity(ctx, category, dto.SupplierCategoryFields, rep, s.links.SupplierCategories(rep.BaseURL))
}

// GetCollection returns exactly the requested categories, or a not found
// error when any of them is missing.
func (s *SupplierCategoryService) GetCollection(ctx context.Context, ids []int) ([]dto.SupplierCategoryDto, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.GetCollection")

	if len(ids) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "ids are required")
	}

	unique := uniqueIDs(ids)
	categories, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierCategoryNotFound)
	}
	if len(categories) != len(unique) {
		logger.InfoWithContext(ctx, "Supplier category collection incomplete").
			Int("requested", len(unique)).
			Int("found", len(categories)).
			Log()
		return nil, apperrors.ErrSupplierCategoryNotFound
	}
	return dto.NewSupplierCategoryDtos(categories), nil
}

func (s *SupplierCategoryService) Create(ctx context.Context, req dto.SupplierCategoryForCreationDto) (*dto.SupplierCategoryDto, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.Create")

	category := req.ToModel()
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	created := dto.NewSupplierCategoryDto(&category)
	return &created, nil
}

func (s *SupplierCategoryService) CreateCollection(ctx context.Context, reqs []dto.SupplierCategoryForCreationDto) ([]dto.SupplierCategoryDto, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.CreateCollection")

	if err := checkCollectionSize(len(reqs)); err != nil {
		return nil, err
	}

	categories := make([]model.SupplierCategory, len(reqs))
	for i, req := range reqs {
		categories[i] = req.ToModel()
	}
	if err := s.repo.CreateMany(ctx, categories); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return dto.NewSupplierCategoryDtos(categories), nil
}

func (s *SupplierCategoryService) Update(ctx context.Context, id int, req dto.SupplierCategoryForUpdateDto) error {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.Update")

	category, err := s.RequireCategory(ctx, id)
	if err != nil {
		return err
	}
	return s.save(ctx, category, req)
}

func (s *SupplierCategoryService) Patch(ctx context.Context, id int, patch []byte) error {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.Patch")

	category, err := s.RequireCategory(ctx, id)
	if err != nil {
		return err
	}

	req, err := applyPatch(s.validate, dto.NewSupplierCategoryForUpdateDto(category), patch)
	if err != nil {
		logger.InfoWithContext(ctx, "Supplier category patch rejected").
			Int("supplier_category_id", id).
			Err(err).
			Log()
		return err
	}
	return s.save(ctx, category, req)
}

func (s *SupplierCategoryService) save(ctx context.Context, category *model.SupplierCategory, req dto.SupplierCategoryForUpdateDto) error {
	suppliers := req.ApplyTo(category)
	if err := s.repo.Update(ctx, category, suppliers); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, SupplierCategoryCacheKey(category.SupplierCategoryID))
	return nil
}

// Delete removes the category with its suppliers and their transactions.
func (s *SupplierCategoryService) Delete(ctx context.Context, id int) error {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierCategory.Delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrSupplierCategoryNotFound)
	}

	s.cache.Invalidate(ctx, SupplierCategoryCacheKey(id))
	s.cache.InvalidatePrefix(ctx, constants.CacheKeySupplier)
	s.cache.InvalidatePrefix(ctx, constants.CacheKeySupplierTransaction)
	return nil
}

func checkCollectionSize(n int) error {
	if n == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "collection is empty")
	}
	if n > constants.MaxCollectionCreateRequest {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("collection exceeds %d items", constants.MaxCollectionCreateRequest))
	}
	return nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
