package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/dto"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// RootLinks builds the links advertised at the api root.
type RootLinks interface {
	Root(base string) ([]shaping.Link, error)
}

type RootHandler struct {
	links RootLinks
	cfg   *config.Config
}

func NewRootHandler(links RootLinks, cfg *config.Config) *RootHandler {
	return &RootHandler{links: links, cfg: cfg}
}

// GetRoot answers with the navigation links only when the api root media
// type is requested; any other Accept gets 204.
func (h *RootHandler) GetRoot(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetRoot")

	mt, err := shaping.ParseMediaType(c.GetHeader(constants.HeaderAccept))
	if err != nil || !strings.EqualFold(mt.Type+"/"+mt.SubType, constants.ContentTypeAPIRoot) {
		c.Status(http.StatusNoContent)
		return
	}

	links, err := h.links.Root(requestBaseURL(c, h.cfg.App.BaseURL))
	if err != nil {
		respondError(c, ctx, "Failed to build api root links", err)
		return
	}

	c.Header(constants.HeaderContentType, constants.ContentTypeAPIRoot)
	c.JSON(http.StatusOK, dto.RootDto{Links: links})
}
