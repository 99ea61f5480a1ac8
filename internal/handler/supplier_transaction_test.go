package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
)

func TestGetTransactionsForSupplier(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		accept         string
		expectedStatus int
	}{
		{name: "json", path: "/api/v1/suppliertransactions/7/transactions", accept: "application/json", expectedStatus: http.StatusOK},
		{name: "unknown supplier", path: "/api/v1/suppliertransactions/8/transactions", accept: "application/json", expectedStatus: http.StatusNotFound},
		{name: "invalid supplier id", path: "/api/v1/suppliertransactions/x/transactions", accept: "application/json", expectedStatus: http.StatusBadRequest},
		{name: "inverted range", path: "/api/v1/suppliertransactions/7/transactions?minPaymentMethod=4&maxPaymentMethod=1", accept: "application/json", expectedStatus: http.StatusBadRequest},
		{name: "range not numeric", path: "/api/v1/suppliertransactions/7/transactions?minPaymentMethod=abc", accept: "application/json", expectedStatus: http.StatusBadRequest},
		{name: "missing accept", path: "/api/v1/suppliertransactions/7/transactions", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			w := api.do(http.MethodGet, tt.path, tt.accept, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetTransactionsDefaultsPaymentRange(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/suppliertransactions/7/transactions?supplierInvoiceNumber=INV-3", "application/json", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, api.transactions.lastParams.MinPaymentMethod)
	assert.Equal(t, 4, api.transactions.lastParams.MaxPaymentMethod)
	assert.Equal(t, "INV-3", api.transactions.lastParams.SupplierInvoiceNumber)
}

func TestGetTransactionsInvertedRangeMessage(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/suppliertransactions/7/transactions?minPaymentMethod=3&maxPaymentMethod=2", "application/json", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrInvalidRange.Message, decodeBody(t, w.Body.Bytes())["details"])
}

func TestGetTransactionsWithLinks(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/suppliertransactions/7/transactions", constants.ContentTypeHateoas, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeHateoas, w.Header().Get(constants.HeaderContentType))

	body := decodeBody(t, w.Body.Bytes())
	assert.Len(t, body["value"], 1)
	links, ok := body["links"].([]any)
	require.True(t, ok)
	assert.Equal(t, "http://example.com/api/v1/suppliertransactions/7/transactions", links[0].(map[string]any)["href"])
}
