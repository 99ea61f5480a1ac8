package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
)

func (r *Router) supplierRoutes(version *gin.RouterGroup) {
	suppliers := version.Group("/suppliers")
	{
		r.routes.Handle(suppliers, constants.RouteGetSuppliers, http.MethodGet, "", r.supplierHandler.GetSuppliers)
		r.routes.Handle(suppliers, constants.RouteHeadSuppliers, http.MethodHead, "", r.supplierHandler.GetSuppliers)
		r.routes.Handle(suppliers, constants.RouteSuppliersOptions, http.MethodOptions, "", r.supplierHandler.GetSuppliersOptions)
		r.routes.Handle(suppliers, constants.RouteGetSupplier, http.MethodGet, "/:id", r.supplierHandler.GetSupplier)
	}

	// Writes need a token when JWT is enabled.
	protected := suppliers.Group("")
	protected.Use(r.jwtMw.RequireAuth())
	{
		r.routes.Handle(protected, constants.RouteCreateSupplier, http.MethodPost, "", r.supplierHandler.CreateSupplier)
		r.routes.Handle(protected, constants.RouteUpdateSupplier, http.MethodPut, "/:id", r.supplierHandler.UpdateSupplier)
		r.routes.Handle(protected, constants.RoutePatchSupplier, http.MethodPatch, "/:id", r.supplierHandler.PartiallyUpdateSupplier)
		r.routes.Handle(protected, constants.RouteDeleteSupplier, http.MethodDelete, "/:id", r.supplierHandler.DeleteSupplier)
	}
}
