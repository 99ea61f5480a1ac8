package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// TransactionFilter is the part of a transaction list query evaluated by
// the database.
type TransactionFilter struct {
	SupplierID     int
	PaymentMethods shaping.Range[int]
	InvoiceNumber  string
}

func (f TransactionFilter) apply(query *gorm.DB) *gorm.DB {
	query = query.
		Where("supplier_id = ?", f.SupplierID).
		Where("payment_method_id BETWEEN ? AND ?", f.PaymentMethods.Min, f.PaymentMethods.Max)
	if term := strings.TrimSpace(f.InvoiceNumber); term != "" {
		query = query.Where("supplier_invoice_number = ?", f.InvoiceNumber)
	}
	return query
}

type SupplierTransactionRepository struct {
	db *gorm.DB
}

func NewSupplierTransactionRepository(db *gorm.DB) *SupplierTransactionRepository {
	return &SupplierTransactionRepository{db: db}
}

func (r *SupplierTransactionRepository) GetByID(ctx context.Context, supplierID, id int) (*model.SupplierTransaction, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierTransaction.GetByID")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").Err(err).Log()
		return nil, err
	}

	start := time.Now()
	var transaction model.SupplierTransaction
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND supplier_transaction_id = ?", supplierID, id).
		First(&transaction).Error
	duration := time.Since(start)

	if err != nil {
		logger.DebugWithContext(ctx, "Supplier transaction lookup failed").
			Int("supplier_id", supplierID).
			Int("supplier_transaction_id", id).
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Supplier transaction retrieved").
		Int("supplier_id", supplierID).
		Int("supplier_transaction_id", id).
		Duration(duration).
		Log()
	return &transaction, nil
}

// List returns every transaction matching filter in id order. Ordering for
// the response is applied afterwards by the caller.
func (r *SupplierTransactionRepository) List(ctx context.Context, filter TransactionFilter) ([]model.SupplierTransaction, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierTransaction.List")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").Err(err).Log()
		return nil, err
	}

	start := time.Now()
	var transactions []model.SupplierTransaction
	query := filter.apply(r.db.WithContext(ctx).Model(&model.SupplierTransaction{}))
	if err := query.Order("supplier_transaction_id").Find(&transactions).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch supplier transactions").
			Int("supplier_id", filter.SupplierID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.InfoWithContext(ctx, "Supplier transactions retrieved").
		Int("supplier_id", filter.SupplierID).
		Int("min_payment_method", filter.PaymentMethods.Min).
		Int("max_payment_method", filter.PaymentMethods.Max).
		String("invoice_number", filter.InvoiceNumber).
		Int("returned_count", len(transactions)).
		Duration(time.Since(start)).
		Log()
	return transactions, nil
}

// Count counts the transactions matching filter.
func (r *SupplierTransactionRepository) Count(ctx context.Context, filter TransactionFilter) (int64, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierTransaction.Count")

	var total int64
	query := filter.apply(r.db.WithContext(ctx).Model(&model.SupplierTransaction{}))
	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count supplier transactions").
			Int("supplier_id", filter.SupplierID).
			Err(err).
			Log()
		return 0, err
	}
	return total, nil
}

func (r *SupplierTransactionRepository) Create(ctx context.Context, transaction *model.SupplierTransaction) error {
	return r.CreateMany(ctx, []*model.SupplierTransaction{transaction})
}

// CreateMany inserts every transaction or none.
func (r *SupplierTransactionRepository) CreateMany(ctx context.Context, transactions []*model.SupplierTransaction) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierTransaction.Create")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range transactions {
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create supplier transactions").
			Int("count", len(transactions)).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier transactions created").
		Int("count", len(transactions)).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *SupplierTransactionRepository) Update(ctx context.Context, transaction *model.SupplierTransaction) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierTransaction.Update")

	start := time.Now()
	if err := r.db.WithContext(ctx).Save(transaction).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to update supplier transaction").
			Int("supplier_transaction_id", transaction.SupplierTransactionID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier transaction updated").
		Int("supplier_transaction_id", transaction.SupplierTransactionID).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *SupplierTransactionRepository) Delete(ctx context.Context, supplierID, id int) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierTransaction.Delete")

	start := time.Now()
	res := r.db.WithContext(ctx).
		Where("supplier_id = ? AND supplier_transaction_id = ?", supplierID, id).
		Delete(&model.SupplierTransaction{})
	if res.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete supplier transaction").
			Int("supplier_transaction_id", id).
			Duration(time.Since(start)).
			Err(res.Error).
			Log()
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Supplier transaction deleted").
		Int("supplier_id", supplierID).
		Int("supplier_transaction_id", id).
		Duration(time.Since(start)).
		Log()
	return nil
}
