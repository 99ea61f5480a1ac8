package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
)

func (r *Router) supplierCategoryRoutes(version *gin.RouterGroup) {
	categories := version.Group("/suppliercategories")
	{
		r.routes.Handle(categories, constants.RouteGetSupplierCategories, http.MethodGet, "", r.categoryHandler.GetSupplierCategories)
		r.routes.Handle(categories, constants.RouteGetSupplierCategory, http.MethodGet, "/:id", r.categoryHandler.GetSupplierCategory)
		r.routes.Handle(categories, constants.RouteGetSupplierCategoryColl, http.MethodGet, "/collection/:ids", r.categoryHandler.GetSupplierCategoryCollection)
		r.routes.Handle(categories, constants.RouteGetSuppliersForCategory, http.MethodGet, "/:id/suppliers", r.supplierHandler.GetSuppliersForCategory)
		r.routes.Handle(categories, constants.RouteGetSupplierForCategory, http.MethodGet, "/:id/suppliers/:supplierId", r.supplierHandler.GetSupplierForCategory)
	}

	protected := categories.Group("")
	protected.Use(r.jwtMw.RequireAuth())
	{
		r.routes.Handle(protected, constants.RouteCreateSupplierCategory, http.MethodPost, "", r.categoryHandler.CreateSupplierCategory)
		r.routes.Handle(protected, constants.RouteCreateSupplierCategoryColl, http.MethodPost, "/collection",
			r.validMw.ValidateRequestBody(func() any { return &[]dto.SupplierCategoryForCreationDto{} }),
			r.categoryHandler.CreateSupplierCategoryCollection)
		r.routes.Handle(protected, constants.RouteUpdateSupplierCategory, http.MethodPut, "/:id", r.categoryHandler.UpdateSupplierCategory)
		r.routes.Handle(protected, constants.RoutePatchSupplierCategory, http.MethodPatch, "/:id", r.categoryHandler.PartiallyUpdateSupplierCategory)
		r.routes.Handle(protected, constants.RouteDeleteSupplierCategory, http.MethodDelete, "/:id", r.categoryHandler.DeleteSupplierCategory)
	}
}
