package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

type SupplierCategoryRepository struct {
	db *gorm.DB
}

func NewSupplierCategoryRepository(db *gorm.DB) *SupplierCategoryRepository {
	return &SupplierCategoryRepository{db: db}
}

func (r *SupplierCategoryRepository) GetByID(ctx context.Context, id int) (*model.SupplierCategory, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.GetByID")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").Err(err).Log()
		return nil, err
	}

	start := time.Now()
	var category model.SupplierCategory
	result := r.db.WithContext(ctx).Where("supplier_category_id = ?", id).First(&category)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Supplier category lookup failed").
			Int("supplier_category_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Supplier category retrieved").
		Int("supplier_category_id", id).
		Duration(duration).
		Log()
	return &category, nil
}

// GetByIDs returns the categories found among ids, in id order. Missing ids
// are simply absent.
func (r *SupplierCategoryRepository) GetByIDs(ctx context.Context, ids []int) ([]model.SupplierCategory, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.GetByIDs")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var categories []model.SupplierCategory
	err := r.db.WithContext(ctx).
		Where("supplier_category_id IN ?", ids).
		Order("supplier_category_id").
		Find(&categories).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch supplier categories by id").
			Int("requested", len(ids)).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Supplier categories retrieved by id").
		Int("requested", len(ids)).
		Int("returned_count", len(categories)).
		Duration(time.Since(start)).
		Log()
	return categories, nil
}

func (r *SupplierCategoryRepository) GetAll(ctx context.Context) ([]model.SupplierCategory, error) {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.GetAll")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var categories []model.SupplierCategory
	if err := r.db.WithContext(ctx).Order("supplier_category_id").Find(&categories).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch supplier categories").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Supplier categories retrieved").
		Int("returned_count", len(categories)).
		Duration(time.Since(start)).
		Log()
	return categories, nil
}

func (r *SupplierCategoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SupplierCategory{}).
		Where("supplier_category_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Create inserts category together with any suppliers it carries.
func (r *SupplierCategoryRepository) Create(ctx context.Context, category *model.SupplierCategory) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.Create")

	start := time.Now()
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create supplier category").
			String("name", category.SupplierCategoryName).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier category created").
		Int("supplier_category_id", category.SupplierCategoryID).
		Int("suppliers", len(category.Suppliers)).
		Duration(time.Since(start)).
		Log()
	return nil
}

// CreateMany inserts every category or none.
func (r *SupplierCategoryRepository) CreateMany(ctx context.Context, categories []model.SupplierCategory) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.CreateMany")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			if err := tx.Create(&categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create supplier category collection").
			Int("count", len(categories)).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier category collection created").
		Int("count", len(categories)).
		Duration(time.Since(start)).
		Log()
	return nil
}

// Update saves category and appends suppliers to it in one transaction.
func (r *SupplierCategoryRepository) Update(ctx context.Context, category *model.SupplierCategory, suppliers []model.Supplier) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.Update")

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Suppliers").Save(category).Error; err != nil {
			return err
		}
		if len(suppliers) > 0 {
			return tx.Create(&suppliers).Error
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to update supplier category").
			Int("supplier_category_id", category.SupplierCategoryID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier category updated").
		Int("supplier_category_id", category.SupplierCategoryID).
		Int("suppliers_added", len(suppliers)).
		Duration(time.Since(start)).
		Log()
	return nil
}

// Delete removes the category, its suppliers and their transactions.
func (r *SupplierCategoryRepository) Delete(ctx context.Context, id int) error {
	ctx = ctxutil.WithLayer(ctx, "repository", "SupplierCategory.Delete")

	start := time.Now()
	var removedSuppliers int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplierIDs := tx.Model(&model.Supplier{}).
			Select("supplier_id").
			Where("supplier_category_id = ?", id)

		if err := tx.Where("supplier_id IN (?)", supplierIDs).
			Delete(&model.SupplierTransaction{}).Error; err != nil {
			return err
		}

		res := tx.Where("supplier_category_id = ?", id).Delete(&model.Supplier{})
		if res.Error != nil {
			return res.Error
		}
		removedSuppliers = res.RowsAffected

		res = tx.Where("supplier_category_id = ?", id).Delete(&model.SupplierCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete supplier category").
			Int("supplier_category_id", id).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Supplier category deleted").
		Int("supplier_category_id", id).
		Int64("suppliers_removed", removedSuppliers).
		Duration(time.Since(start)).
		Log()
	return nil
}
