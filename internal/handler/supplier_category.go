package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
)

type SupplierCategoryHandler struct {
	categories SupplierCategoryAPI
	routes     *routing.RouteRegistry
	cfg        *config.Config
}

func NewSupplierCategoryHandler(categories SupplierCategoryAPI, routes *routing.RouteRegistry, cfg *config.Config) *SupplierCategoryHandler {
	return &SupplierCategoryHandler{categories: categories, routes: routes, cfg: cfg}
}

// GetSupplierCategories serves JSON, hypermedia JSON or CSV.
func (h *SupplierCategoryHandler) GetSupplierCategories(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSupplierCategories")

	mt, ok := negotiate(c)
	if !ok {
		return
	}

	var params dto.RequestParameters
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidQuery, err.Error()))
		return
	}

	resp, err := h.categories.List(ctx, params, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier categories", err)
		return
	}

	writePagination(c, resp.Pagination)
	if wantsCSV(mt) {
		if err := writeCSV(c, resp.Records); err != nil {
			logger.ErrorWithContext(ctx, "Failed to write CSV").Err(err).Log()
		}
		return
	}
	writeBody(c, http.StatusOK, mt, resp.Body)
}

func (h *SupplierCategoryHandler) GetSupplierCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSupplierCategory")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	mt, ok := negotiate(c)
	if !ok {
		return
	}

	record, err := h.categories.Get(ctx, id, representation(c, mt, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier category", err)
		return
	}
	writeBody(c, http.StatusOK, mt, record)
}

// GetSupplierCategoryCollection answers /suppliercategories/collection/(1,2,3).
func (h *SupplierCategoryHandler) GetSupplierCategoryCollection(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetSupplierCategoryCollection")

	ids, err := parseIDList(c.Param("ids"))
	if err != nil || len(ids) == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgIDsRequired, c.Param("ids")))
		return
	}

	categories, err := h.categories.GetCollection(ctx, ids)
	if err != nil {
		respondError(c, ctx, "Failed to fetch supplier category collection", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *SupplierCategoryHandler) CreateSupplierCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CreateSupplierCategory")

	var req dto.SupplierCategoryForCreationDto
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.categories.Create(ctx, req)
	if err != nil {
		respondError(c, ctx, "Failed to create supplier category", err)
		return
	}

	location, err := h.routes.URL(requestBaseURL(c, h.cfg.App.BaseURL), constants.RouteGetSupplierCategory,
		routing.Params{"id": created.SupplierCategoryID}, nil)
	if err == nil {
		c.Header(constants.HeaderLocation, location)
	}
	c.JSON(http.StatusCreated, created)
}

// CreateSupplierCategoryCollection expects the body already decoded and
// validated by the validation middleware.
func (h *SupplierCategoryHandler) CreateSupplierCategoryCollection(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CreateSupplierCategoryCollection")

	reqs, ok := validatedBody[[]dto.SupplierCategoryForCreationDto](c)
	if !ok {
		return
	}

	created, err := h.categories.CreateCollection(ctx, reqs)
	if err != nil {
		respondError(c, ctx, "Failed to create supplier category collection", err)
		return
	}

	ids := make([]int, len(created))
	for i, category := range created {
		ids[i] = category.SupplierCategoryID
	}
	location, err := h.routes.URL(requestBaseURL(c, h.cfg.App.BaseURL), constants.RouteGetSupplierCategoryColl,
		routing.Params{"ids": formatIDList(ids)}, nil)
	if err == nil {
		c.Header(constants.HeaderLocation, location)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SupplierCategoryHandler) UpdateSupplierCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdateSupplierCategory")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SupplierCategoryForUpdateDto
	if !bindJSON(c, &req) {
		return
	}

	if err := h.categories.Update(ctx, id, req); err != nil {
		respondError(c, ctx, "Failed to update supplier category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierCategoryHandler) PartiallyUpdateSupplierCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "PartiallyUpdateSupplierCategory")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(c)
	if !ok {
		return
	}

	if err := h.categories.Patch(ctx, id, patch); err != nil {
		respondError(c, ctx, "Failed to patch supplier category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplierCategoryHandler) DeleteSupplierCategory(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "DeleteSupplierCategory")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.categories.Delete(ctx, id); err != nil {
		respondError(c, ctx, "Failed to delete supplier category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseIDList accepts "1,2,3" with or without surrounding parentheses.
func parseIDList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatIDList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
