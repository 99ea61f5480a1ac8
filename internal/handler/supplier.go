package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
)

type SupplierHandler struct {
	suppliers SupplierAPI
	routes    *routing.RouteRegistry
	cfg       *config.Config
}

func NewSupplierHandler(suppliers SupplierAPI, routes *routing.RouteRegistry, cfg *config.Config) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, routes: routes, cfg: cfg}
}

// GetSuppliers serves GET and HEAD /suppliers.
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSuppliers")

	mt, ok := negotiate(c)
	if !ok {
		return
	}

	var params dto.RequestParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidQuery, err.Error()))
		return
	}

	resp, err := h.suppliers.List(ctx, params, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch suppliers", err)
		return
	}

	logger.InfoWithContext(ctx, "Suppliers fetched").
		Int("page", resp.Pagination.CurrentPage).
		Int64("total", resp.Pagination.TotalCount).
		Int("returned_count", len(resp.Records)).
		Log()

	writePagination(c, resp.Pagination)
	writeBody(c, http.StatusOK, mt, resp.Body)
}

// GetSuppliersOptions advertises the methods allowed on the collection.
func (h *SupplierHandler) GetSuppliersOptions(c *gin.Context) {
	methods, err := h.routes.AllowedMethods(c.FullPath())
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header(constants.HeaderAllow, strings.Join(methods, ", "))
	c.Status(http.StatusOK)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSupplier")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	mt, ok := negotiate(c)
	if !ok {
		return
	}

	record, err := h.suppliers.Get(ctx, id, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier", err)
		return
	}

	c.Header(constants.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(h.cfg.Cache.HTTPMaxAge.Seconds())))
	writeBody(c, http.StatusOK, mt, record)
}

func (h *SupplierHandler) GetSuppliersForCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSuppliersForCategory")

	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	mt, ok := negotiate(c)
	if !ok {
		return
	}

	var params dto.RequestParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidQuery, err.Error()))
		return
	}

	resp, err := h.suppliers.ListForCategory(ctx, categoryID, params, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch suppliers for category", err)
		return
	}

	writePagination(c, resp.Pagination)
	writeBody(c, http.StatusOK, mt, resp.Body)
}

func (h *SupplierHandler) GetSupplierForCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSupplierForCategory")

	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	supplierID, ok := parseID(c, "supplierId")
	if !ok {
		return
	}
	mt, ok := negotiate(c)
	if !ok {
		return
	}

	record, err := h.suppliers.GetForCategory(ctx, categoryID, supplierID, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier for category", err)
		return
	}
	writeBody(c, http.StatusOK, mt, record)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CreateSupplier")

	var req dto.SupplierForCreationDto
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.suppliers.Create(ctx, req)
	if err != nil {
		respondError(c, ctx, "Failed to create supplier", err)
		return
	}

	location, err := h.routes.URL(requestBaseURL(c, h.cfg.App.BaseURL), constants.RouteGetSupplier,
		routing.Params{"id": created.SupplierID}, nil)
	if err == nil {
		c.Header(constants.HeaderLocation, location)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdateSupplier")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SupplierForUpdateDto
	if !bindJSON(c, &req) {
		return
	}

	if err := h.suppliers.Update(ctx, id, req); err != nil {
		respondError(c, ctx, "Failed to update supplier", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierHandler) PartiallyUpdateSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "PartiallyUpdateSupplier")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(c)
	if !ok {
		return
	}

	if err := h.suppliers.Patch(ctx, id, patch); err != nil {
		respondError(c, ctx, "Failed to patch supplier", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "DeleteSupplier")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.suppliers.Delete(ctx, id); err != nil {
		respondError(c, ctx, "Failed to delete supplier", err)
		return
	}

	logger.InfoWithContext(ctx, "Supplier deleted").Int("supplier_id", id).Log()
	c.Status(http.StatusNoContent)
}
