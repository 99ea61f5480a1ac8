package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
)

type SupplierTransactionHandler struct {
	transactions SupplierTransactionAPI
	routes       *routing.RouteRegistry
	cfg          *config.Config
}

func NewSupplierTransactionHandler(transactions SupplierTransactionAPI, routes *routing.RouteRegistry, cfg *config.Config) *SupplierTransactionHandler {
	return &SupplierTransactionHandler{transactions: transactions, routes: routes, cfg: cfg}
}

// GetTransactionsForSupplier serves GET and HEAD. The pagination metadata
// travels in the X-Pagination header.
func (h *SupplierTransactionHandler) GetTransactionsForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetTransactionsForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	mt, ok := negotiate(c)
	if !ok {
		return
	}

	var params dto.TransactionParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidQuery, err.Error()))
		return
	}

	logger.InfoWithContext(ctx, "Get transactions for supplier request").
		Int("supplier_id", supplierID).
		Int("page", params.PageNumber).
		Int("page_size", params.PageSize).
		String("order_by", params.OrderBy).
		String("fields", params.Fields).
		Log()

	resp, err := h.transactions.List(ctx, supplierID, params, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier transactions", err)
		return
	}

	logger.InfoWithContext(ctx, "Supplier transactions fetched").
		Int("supplier_id", supplierID).
		Int64("total", resp.Pagination.TotalCount).
		Int("returned_count", len(resp.Records)).
		Log()

	writePagination(c, resp.Pagination)
	writeBody(c, http.StatusOK, mt, resp.Body)
}

func (h *SupplierTransactionHandler) GetTransactionForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetTransactionForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	mt, ok := negotiate(c)
	if !ok {
		return
	}

	record, err := h.transactions.Get(ctx, supplierID, id, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier transaction", err)
		return
	}
	writeBody(c, http.StatusOK, mt, record)
}

func (h *SupplierTransactionHandler) CreateTransactionForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CreateTransactionForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	var req dto.SupplierTransactionForCreationDto
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.transactions.Create(ctx, supplierID, req)
	if err != nil {
		respondError(c, ctx, "Failed to create supplier transaction", err)
		return
	}

	location, err := h.routes.URL(requestBaseURL(c, h.cfg.App.BaseURL), constants.RouteGetTransaction,
		routing.Params{"supplierId": supplierID, "id": created.SupplierTransactionID}, nil)
	if err == nil {
		c.Header(constants.HeaderLocation, location)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SupplierTransactionHandler) CreateTransactionCollectionForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CreateTransactionCollectionForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	reqs, ok := validatedBody[[]dto.SupplierTransactionForCreationDto](c)
	if !ok {
		return
	}

	created, err := h.transactions.CreateCollection(ctx, supplierID, reqs)
	if err != nil {
		respondError(c, ctx, "Failed to create supplier transaction collection", err)
		return
	}

	location, err := h.routes.URL(requestBaseURL(c, h.cfg.App.BaseURL), constants.RouteGetTransactions,
		routing.Params{"supplierId": supplierID}, nil)
	if err == nil {
		c.Header(constants.HeaderLocation, location)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SupplierTransactionHandler) UpdateTransactionForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdateTransactionForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SupplierTransactionForUpdateDto
	if !bindJSON(c, &req) {
		return
	}

	if err := h.transactions.Update(ctx, supplierID, id, req); err != nil {
		respondError(c, ctx, "Failed to update supplier transaction", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierTransactionHandler) PartiallyUpdateTransactionForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "PartiallyUpdateTransactionForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(c)
	if !ok {
		return
	}

	if err := h.transactions.Patch(ctx, supplierID, id, patch); err != nil {
		respondError(c, ctx, "Failed to patch supplier transaction", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierTransactionHandler) DeleteTransactionForSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "DeleteTransactionForSupplier")

	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.transactions.Delete(ctx, supplierID, id); err != nil {
		respondError(c, ctx, "Failed to delete supplier transaction", err)
		return
	}
	c.Status(http.StatusNoContent)
}
