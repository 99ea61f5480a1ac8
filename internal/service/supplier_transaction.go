package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/repository"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

type SupplierTransactionService struct {
	repo      SupplierTransactionStore
	suppliers SupplierStore
	links     *LinkGenerator
	cache     *CacheService
	validate  *validator.Validate
	paging    config.PagingConfig
}

func NewSupplierTransactionService(repo SupplierTransactionStore, suppliers SupplierStore, links *LinkGenerator, cache *CacheService, validate *validator.Validate, paging config.PagingConfig) *SupplierTransactionService {
	return &SupplierTransactionService{
		repo:      repo,
		suppliers: suppliers,
		links:     links,
		cache:     cache,
		validate:  validate,
		paging:    paging,
	}
}

// transactionSource pushes the supplier, payment method and invoice filters
// down to the database and counts with the same filter.
type transactionSource struct {
	repo   SupplierTransactionStore
	filter repository.TransactionFilter
}

func (t transactionSource) FetchFilteredSorted(ctx context.Context, pred shaping.Predicate[dto.SupplierTransactionDto], compare shaping.Comparator[dto.SupplierTransactionDto]) ([]dto.SupplierTransactionDto, error) {
	transactions, err := t.repo.List(ctx, t.filter)
	if err != nil {
		return nil, err
	}
	return shaping.FilterSort(dto.NewSupplierTransactionDtos(transactions), pred, compare), nil
}

func (t transactionSource) Count(ctx context.Context, _ shaping.Predicate[dto.SupplierTransactionDto]) (int64, error) {
	return t.repo.Count(ctx, t.filter)
}

// List runs the transaction pipeline for one supplier. An inverted payment
// method range is rejected before any query runs.
func (s *SupplierTransactionService) List(ctx context.Context, supplierID int, params dto.TransactionParameters, rep Representation) (*CollectionResponse, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierTransaction.List")

	paymentMethods := params.PaymentMethodRange()
	if err := paymentMethods.Validate(); err != nil {
		logger.InfoWithContext(ctx, "Rejected payment method range").
			Int("min_payment_method", paymentMethods.Min).
			Int("max_payment_method", paymentMethods.Max).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInvalidRange, err)
	}

	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	params.Normalize(s.paging, constants.DefaultTransactionOrderBy)

	src := transactionSource{
		repo: s.repo,
		filter: repository.TransactionFilter{
			SupplierID:     supplierID,
			PaymentMethods: paymentMethods,
			InvoiceNumber:  params.SupplierInvoiceNumber,
		},
	}
	query := shaping.Query[dto.SupplierTransactionDto]{
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
		OrderBy:    params.OrderBy,
		Fields:     params.Fields,
		Predicate: shaping.And(
			shaping.InRange(dto.PaymentMethodOf, paymentMethods),
			shaping.Equals(dto.InvoiceNumberOf, params.SupplierInvoiceNumber),
		),
	}

	resp, err := renderCollection(ctx, src, dto.SupplierTransactionFields, query, rep.MediaType,
		s.links.SupplierTransactions(rep.BaseURL, supplierID))
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierTransactionNotFound)
	}
	return resp, nil
}

func (s *SupplierTransactionService) requireSupplier(ctx context.Context, supplierID int) error {
	exists, err := s.suppliers.Exists(ctx, supplierID)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return apperrors.ErrSupplierNotFound
	}
	return nil
}

// RequireTransaction checks the supplier, then loads the transaction. The
// loaded entity is handed back to the caller.
func (s *SupplierTransactionService) RequireTransaction(ctx context.Context, supplierID, id int) (*model.SupplierTransaction, error) {
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	transaction, err := s.repo.GetByID(ctx, supplierID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSupplierTransactionNotFound)
	}
	return transaction, nil
}

func (s *SupplierTransactionService) Get(ctx context.Context, supplierID, id int, rep Representation) (shaping.ShapedRecord, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierTransaction.Get")

	var transaction dto.SupplierTransactionDto
	key := SupplierTransactionCacheKey(supplierID, id)
	if !s.cache.Get(ctx, key, &transaction) {
		m, err := s.RequireTransaction(ctx, supplierID, id)
		if err != nil {
			return shaping.ShapedRecord{}, err
		}
		transaction = dto.NewSupplierTransactionDto(m)
		s.cache.Set(ctx, key, transaction)
	}

	return renderEntity(ctx, transaction, dto.SupplierTransactionFields, rep,
		s.links.SupplierTransactions(rep.BaseURL, supplierID))
}

func (s *SupplierTransactionService) Create(ctx context.Context, supplierID int, req dto.SupplierTransactionForCreationDto) (*dto.SupplierTransactionDto, error) {
	created, err := s.CreateCollection(ctx, supplierID, []dto.SupplierTransactionForCreationDto{req})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateCollection inserts all transactions for the supplier, or none.
func (s *SupplierTransactionService) CreateCollection(ctx context.Context, supplierID int, reqs []dto.SupplierTransactionForCreationDto) ([]dto.SupplierTransactionDto, error) {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierTransaction.Create")

	if err := checkCollectionSize(len(reqs)); err != nil {
		return nil, err
	}
	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	transactions := make([]*model.SupplierTransaction, len(reqs))
	for i, req := range reqs {
		t := req.ToModel(supplierID)
		transactions[i] = &t
	}
	if err := s.repo.CreateMany(ctx, transactions); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.SupplierTransactionDto, len(transactions))
	for i, t := range transactions {
		out[i] = dto.NewSupplierTransactionDto(t)
	}
	return out, nil
}

func (s *SupplierTransactionService) Update(ctx context.Context, supplierID, id int, req dto.SupplierTransactionForUpdateDto) error {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierTransaction.Update")

	transaction, err := s.RequireTransaction(ctx, supplierID, id)
	if err != nil {
		return err
	}
	return s.save(ctx, transaction, req)
}

func (s *SupplierTransactionService) Patch(ctx context.Context, supplierID, id int, patch []byte) error {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierTransaction.Patch")

	transaction, err := s.RequireTransaction(ctx, supplierID, id)
	if err != nil {
		return err
	}

	req, err := applyPatch(s.validate, dto.NewSupplierTransactionForUpdateDto(transaction), patch)
	if err != nil {
		logger.InfoWithContext(ctx, "Supplier transaction patch rejected").
			Int("supplier_id", supplierID).
			Int("supplier_transaction_id", id).
			Err(err).
			Log()
		return err
	}
	return s.save(ctx, transaction, req)
}

func (s *SupplierTransactionService) save(ctx context.Context, transaction *model.SupplierTransaction, req dto.SupplierTransactionForUpdateDto) error {
	req.ApplyTo(transaction)
	if err := s.repo.Update(ctx, transaction); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, SupplierTransactionCacheKey(transaction.SupplierID, transaction.SupplierTransactionID))
	return nil
}

func (s *SupplierTransactionService) Delete(ctx context.Context, supplierID, id int) error {
	ctx = ctxutil.WithLayer(ctx, "service", "SupplierTransaction.Delete")

	if err := s.requireSupplier(ctx, supplierID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, supplierID, id); err != nil {
		return lookupError(err, apperrors.ErrSupplierTransactionNotFound)
	}
	s.cache.Invalidate(ctx, SupplierTransactionCacheKey(supplierID, id))
	return nil
}
