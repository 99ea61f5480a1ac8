package service

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/routing"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// LinkGenerator resolves named routes into absolute links.
type LinkGenerator struct {
	routes *routing.RouteRegistry
}

func NewLinkGenerator(routes *routing.RouteRegistry) *LinkGenerator {
	return &LinkGenerator{routes: routes}
}

func (g *LinkGenerator) link(base, name, rel, method string, params routing.Params, fields string) (shaping.Link, error) {
	var query url.Values
	if strings.TrimSpace(fields) != "" {
		query = url.Values{constants.QueryParamFields: {fields}}
	}
	href, err := g.routes.URL(base, name, params, query)
	if err != nil {
		return shaping.Link{}, err
	}
	return shaping.Link{Href: href, Rel: rel, Method: method}, nil
}

// entityLinks builds the self, delete, update and partial update links
// every resource exposes.
func (g *LinkGenerator) entityLinks(base, resource string, names [4]string, params routing.Params, fields string) ([]shaping.Link, error) {
	specs := []struct {
		name, rel, method, fields string
	}{
		{names[0], constants.RelSelf, http.MethodGet, fields},
		{names[1], "delete_" + resource, http.MethodDelete, ""},
		{names[2], "update_" + resource, http.MethodPut, ""},
		{names[3], "partially_update_" + resource, http.MethodPatch, ""},
	}

	links := make([]shaping.Link, 0, len(specs))
	for _, s := range specs {
		l, err := g.link(base, s.name, s.rel, s.method, params, s.fields)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}

// Root lists the entry points of the API.
func (g *LinkGenerator) Root(base string) ([]shaping.Link, error) {
	self, err := g.link(base, constants.RouteGetRoot, constants.RelSelf, http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	suppliers, err := g.link(base, constants.RouteGetSuppliers, "suppliers", http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	categories, err := g.link(base, constants.RouteGetSupplierCategories, "supplier_categories", http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	createSupplier, err := g.link(base, constants.RouteCreateSupplier, "create_supplier", http.MethodPost, nil, "")
	if err != nil {
		return nil, err
	}
	return []shaping.Link{self, suppliers, categories, createSupplier}, nil
}

func (g *LinkGenerator) Suppliers(base string) shaping.LinkBuilder[dto.SupplierDto] {
	return supplierLinks{gen: g, base: base}
}

func (g *LinkGenerator) SupplierCategories(base string) shaping.LinkBuilder[dto.SupplierCategoryDto] {
	return categoryLinks{gen: g, base: base}
}

func (g *LinkGenerator) SupplierTransactions(base string, supplierID int) shaping.LinkBuilder[dto.SupplierTransactionDto] {
	return transactionLinks{gen: g, base: base, supplierID: supplierID}
}

type supplierLinks struct {
	gen  *LinkGenerator
	base string
}

func (l supplierLinks) EntityLinks(s dto.SupplierDto, fields string) ([]shaping.Link, error) {
	return l.gen.entityLinks(l.base, "supplier", [4]string{
		constants.RouteGetSupplier,
		constants.RouteDeleteSupplier,
		constants.RouteUpdateSupplier,
		constants.RoutePatchSupplier,
	}, routing.Params{"id": s.SupplierID}, fields)
}

func (l supplierLinks) CollectionLinks() ([]shaping.Link, error) {
	self, err := l.gen.link(l.base, constants.RouteGetSuppliers, constants.RelSelf, http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	return []shaping.Link{self}, nil
}

type categoryLinks struct {
	gen  *LinkGenerator
	base string
}

func (l categoryLinks) EntityLinks(c dto.SupplierCategoryDto, fields string) ([]shaping.Link, error) {
	return l.gen.entityLinks(l.base, "supplier_category", [4]string{
		constants.RouteGetSupplierCategory,
		constants.RouteDeleteSupplierCategory,
		constants.RouteUpdateSupplierCategory,
		constants.RoutePatchSupplierCategory,
	}, routing.Params{"id": c.SupplierCategoryID}, fields)
}

func (l categoryLinks) CollectionLinks() ([]shaping.Link, error) {
	self, err := l.gen.link(l.base, constants.RouteGetSupplierCategories, constants.RelSelf, http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	}
	return []shaping.Link{self}, nil
}

type transactionLinks struct {
	gen        *LinkGenerator
	base       string
	supplierID int
}

func (l transactionLinks) EntityLinks(t dto.SupplierTransactionDto, fields string) ([]shaping.Link, error) {
	return l.gen.entityLinks(l.base, "transaction", [4]string{
		constants.RouteGetTransaction,
		constants.RouteDeleteTransaction,
		constants.RouteUpdateTransaction,
		constants.RoutePatchTransaction,
	}, routing.Params{"supplierId": t.SupplierID, "id": t.SupplierTransactionID}, fields)
}

func (l transactionLinks) CollectionLinks() ([]shaping.Link, error) {
	self, err := l.gen.link(l.base, constants.RouteGetTransactions, constants.RelSelf, http.MethodGet,
		routing.Params{"supplierId": l.supplierID}, "")
	if err != nil {
		return nil, err
	}
	return []shaping.Link{self}, nil
}
