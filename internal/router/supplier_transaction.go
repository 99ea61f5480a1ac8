package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
)

func (r *Router) supplierTransactionRoutes(version *gin.RouterGroup) {
	transactions := version.Group("/suppliertransactions/:supplierId/transactions")
	{
		r.routes.Handle(transactions, constants.RouteGetTransactions, http.MethodGet, "", r.transactionHandler.GetTransactionsForSupplier)
		r.routes.Handle(transactions, constants.RouteHeadTransactions, http.MethodHead, "", r.transactionHandler.GetTransactionsForSupplier)
		r.routes.Handle(transactions, constants.RouteGetTransaction, http.MethodGet, "/:id", r.transactionHandler.GetTransactionForSupplier)
	}

	protected := transactions.Group("")
	protected.Use(r.jwtMw.RequireAuth())
	{
		r.routes.Handle(protected, constants.RouteCreateTransaction, http.MethodPost, "", r.transactionHandler.CreateTransactionForSupplier)
		r.routes.Handle(protected, constants.RouteCreateTransactionColl, http.MethodPost, "/collection",
			r.validMw.ValidateRequestBody(func() any { return &[]dto.SupplierTransactionForCreationDto{} }),
			r.transactionHandler.CreateTransactionCollectionForSupplier)
		r.routes.Handle(protected, constants.RouteUpdateTransaction, http.MethodPut, "/:id", r.transactionHandler.UpdateTransactionForSupplier)
		r.routes.Handle(protected, constants.RoutePatchTransaction, http.MethodPatch, "/:id", r.transactionHandler.PartiallyUpdateTransactionForSupplier)
		r.routes.Handle(protected, constants.RouteDeleteTransaction, http.MethodDelete, "/:id", r.transactionHandler.DeleteTransactionForSupplier)
	}
}
