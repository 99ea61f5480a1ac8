package handler

import (
	"context"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/service"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// Handlers depend on these narrow views of the services.

type SupplierAPI interface {
	List(ctx context.Context, params dto.RequestParameters, rep service.Representation) (*service.CollectionResponse, error)
	ListForCategory(ctx context.Context, categoryID int, params dto.RequestParameters, rep service.Representation) (*service.CollectionResponse, error)
	Get(ctx context.Context, id int, rep service.Representation) (shaping.ShapedRecord, error)
	GetForCategory(ctx context.Context, categoryID, id int, rep service.Representation) (shaping.ShapedRecord, error)
	Create(ctx context.Context, req dto.SupplierForCreationDto) (*dto.SupplierDto, error)
	Update(ctx context.Context, id int, req dto.SupplierForUpdateDto) error
	Patch(ctx context.Context, id int, patch []byte) error
	Delete(ctx context.Context, id int) error
}

type SupplierCategoryAPI interface {
	List(ctx context.Context, params dto.RequestParameters, rep service.Representation) (*service.CollectionResponse, error)
	Get(ctx context.Context, id int, rep service.Representation) (shaping.ShapedRecord, error)
	GetCollection(ctx context.Context, ids []int) ([]dto.SupplierCategoryDto, error)
	Create(ctx context.Context, req dto.SupplierCategoryForCreationDto) (*dto.SupplierCategoryDto, error)
	CreateCollection(ctx context.Context, reqs []dto.SupplierCategoryForCreationDto) ([]dto.SupplierCategoryDto, error)
	Update(ctx context.Context, id int, req dto.SupplierCategoryForUpdateDto) error
	Patch(ctx context.Context, id int, patch []byte) error
	Delete(ctx context.Context, id int) error
}

type SupplierTransactionAPI interface {
	List(ctx context.Context, supplierID int, params dto.TransactionParameters, rep service.Representation) (*service.CollectionResponse, error)
	Get(ctx context.Context, supplierID, id int, rep service.Representation) (shaping.ShapedRecord, error)
	Create(ctx context.Context, supplierID int, req dto.SupplierTransactionForCreationDto) (*dto.SupplierTransactionDto, error)
	CreateCollection(ctx context.Context, supplierID int, reqs []dto.SupplierTransactionForCreationDto) ([]dto.SupplierTransactionDto, error)
	Update(ctx context.Context, supplierID, id int, req dto.SupplierTransactionForUpdateDto) error
	Patch(ctx context.Context, supplierID, id int, patch []byte) error
	Delete(ctx context.Context, supplierID, id int) error
}

var (
	_ SupplierAPI            = (*service.SupplierService)(nil)
	_ SupplierCategoryAPI    = (*service.SupplierCategoryService)(nil)
	_ SupplierTransactionAPI = (*service.SupplierTransactionService)(nil)
)
