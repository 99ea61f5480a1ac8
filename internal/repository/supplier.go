package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int) (*model.Supplier, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.GetByID")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").Err(err).Log()
		return nil, err
	}

	start := time.Now()
	var supplier model.Supplier
	result := r.db.WithContext(ctx).Where("supplier_id = ?", id).First(&supplier)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Supplier lookup failed").
			Int("supplier_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Supplier retrieved").
		Int("supplier_id", id).
		String("name", supplier.SupplierName).
		Duration(duration).
		Log()
	return &supplier, nil
}

// GetForCategory loads a supplier only if it belongs to categoryID.
func (r *SupplierRepository) GetForCategory(ctx context.Context, categoryID, id int) (*model.Supplier, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.GetForCategory")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var supplier model.Supplier
	err := r.db.WithContext(ctx).
		Where("supplier_category_id = ? AND supplier_id = ?", categoryID, id).
		First(&supplier).Error
	if err != nil {
		logger.DebugWithContext(ctx, "Supplier of category lookup failed").
			Int("supplier_category_id", categoryID).
			Int("supplier_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) GetAll(ctx context.Context) ([]model.Supplier, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.GetAll")
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *SupplierRepository) ListByCategory(ctx context.Context, categoryID int) ([]model.Supplier, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.ListByCategory")
	return r.list(ctx, r.db.WithContext(ctx).Where("supplier_category_id = ?", categoryID))
}

func (r *SupplierRepository) list(ctx context.Context, query *gorm.DB) ([]model.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var suppliers []model.Supplier
	if err := query.Order("supplier_id").Find(&suppliers).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch suppliers").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Suppliers retrieved").
		Int("returned_count", len(suppliers)).
		Duration(time.Since(start)).
		Log()
	return suppliers, nil
}

func (r *SupplierRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("supplier_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.Create")

	start := time.Now()
	if err := r.db.WithContext(ctx).Omit("SupplierCategory", "Transactions").Create(supplier).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create supplier").
			String("name", supplier.SupplierName).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier created").
		Int("supplier_id", supplier.SupplierID).
		Int("supplier_category_id", supplier.SupplierCategoryID).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *model.Supplier) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.Update")

	start := time.Now()
	if err := r.db.WithContext(ctx).Omit("SupplierCategory", "Transactions").Save(supplier).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to update supplier").
			Int("supplier_id", supplier.SupplierID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier updated").
		Int("supplier_id", supplier.SupplierID).
		Duration(time.Since(start)).
		Log()
	return nil
}

// Delete removes the supplier and its transactions.
func (r *SupplierRepository) Delete(ctx context.Context, id int) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "Supplier.Delete")

	start := time.Now()
	var removedTransactions int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("supplier_id = ?", id).Delete(&model.SupplierTransaction{})
		if res.Error != nil {
			return res.Error
		}
		removedTransactions = res.RowsAffected

		res = tx.Where("supplier_id = ?", id).Delete(&model.Supplier{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete supplier").
			Int("supplier_id", id).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier deleted").
		Int("supplier_id", id).
		Int64("transactions_removed", removedTransactions).
		Duration(time.Since(start)).
		Log()
	return nil
}
