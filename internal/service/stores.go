package service

import (
	"context"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/repository"
)

// The store interfaces are implemented by the gorm repositories.

type SupplierCategoryStore interface {
	GetByID(ctx context.Context, id int) (*model.SupplierCategory, error)
	GetByIDs(ctx context.Context, ids []int) ([]model.SupplierCategory, error)
	GetAll(ctx context.Context) ([]model.SupplierCategory, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, category *model.SupplierCategory) error
	CreateMany(ctx context.Context, categories []model.SupplierCategory) error
	Update(ctx context.Context, category *model.SupplierCategory, suppliers []model.Supplier) error
	Delete(ctx context.Context, id int) error
}

type SupplierStore interface {
	GetByID(ctx context.Context, id int) (*model.Supplier, error)
	GetForCategory(ctx context.Context, categoryID, id int) (*model.Supplier, error)
	GetAll(ctx context.Context) ([]model.Supplier, error)
	ListByCategory(ctx context.Context, categoryID int) ([]model.Supplier, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, supplier *model.Supplier) error
	Update(ctx context.Context, supplier *model.Supplier) error
	Delete(ctx context.Context, id int) error
}

type SupplierTransactionStore interface {
	GetByID(ctx context.Context, supplierID, id int) (*model.SupplierTransaction, error)
	List(ctx context.Context, filter repository.TransactionFilter) ([]model.SupplierTransaction, error)
	Count(ctx context.Context, filter repository.TransactionFilter) (int64, error)
	CreateMany(ctx context.Context, transactions []*model.SupplierTransaction) error
	Update(ctx context.Context, transaction *model.SupplierTransaction) error
	Delete(ctx context.Context, supplierID, id int) error
}

var (
	_ SupplierCategoryStore    = (*repository.SupplierCategoryRepository)(nil)
	_ SupplierStore            = (*repository.SupplierRepository)(nil)
	_ SupplierTransactionStore = (*repository.SupplierTransactionRepository)(nil)
)
