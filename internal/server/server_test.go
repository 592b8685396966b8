package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/pipeline"
	"github.com/rezonia/afip-submitter/internal/portal"
	"github.com/rezonia/afip-submitter/internal/server"
)

func newTestServer() *server.Server {
	sim := portal.NewSimulator()
	p := pipeline.New(sim, sim, sim)

	config := &server.Config{
		Address:       ":8080",
		MaxConcurrent: 4,
		BatchDelay:    0,
		Debug:         true,
	}
	return server.NewServer(config, p)
}

func recordSet(cuits ...string) []byte {
	today := time.Now().Format(model.DateLayout)
	var records []string
	for _, cuit := range cuits {
		records = append(records, fmt.Sprintf(`{
			"issuer": {"cuit": "%s", "type": "MONOTRIBUTO"},
			"recipient": {"iva_condition": "CONSUMIDOR_FINAL"},
			"invoice": {
				"type": "FACTURA_C",
				"punto_venta": "3",
				"issuance_date": "%s",
				"concept_type": "PRODUCTOS",
				"service_period": {},
				"payment": {"methods": ["CONTADO"]},
				"items": {
					"code": "123",
					"concept": "venta de productos",
					"unit_price": "1500.50"
				}
			}
		}`, cuit, today))
	}
	return []byte("[" + strings.Join(records, ",") + "]")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestValidateEndpoint_Valid(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", bytes.NewReader(recordSet("20111111112")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ValidationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Valid)
	require.Len(t, response.Requests, 1)
	assert.Equal(t, "20111111112", response.Requests[0].IssuerCUIT)
	assert.True(t, response.Requests[0].Valid)
}

func TestValidateEndpoint_Invalid(t *testing.T) {
	srv := newTestServer()

	body := recordSet("20111111112")
	body = bytes.Replace(body, []byte(`"punto_venta": "3"`), []byte(`"punto_venta": "123456"`), 1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ValidationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.False(t, response.Valid)
	require.Len(t, response.Requests, 1)
	assert.Contains(t, response.Requests[0].Error, "punto de venta")
}

func TestValidateEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint_MalformedJSON(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/validate", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response server.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.Error)
}

func TestSubmitEndpoint(t *testing.T) {
	srv := newTestServer()

	// two records for the same issuer force two batches
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/submit",
		bytes.NewReader(recordSet("20111111112", "20111111112", "20222222223")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.SubmitResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 3, response.Total)
	assert.Equal(t, 3, response.Succeeded)
	assert.Equal(t, 0, response.Failed)
	assert.Equal(t, 2, response.Batches)
	require.Len(t, response.Results, 3)
	for _, res := range response.Results {
		assert.Equal(t, model.StatusSuccess, res.Status)
		assert.NotEmpty(t, res.DocumentID)
	}
}

func TestSubmitEndpoint_PartialFailure(t *testing.T) {
	sim := portal.NewSimulator()
	sim.FailStepFor(portal.StepLineItems, "20222222223", "boom")
	p := pipeline.New(sim, sim, sim)

	srv := server.NewServer(&server.Config{
		Address:       ":8080",
		MaxConcurrent: 4,
	}, p)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/submit",
		bytes.NewReader(recordSet("20111111112", "20222222223")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.SubmitResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 1, response.Succeeded)
	assert.Equal(t, 1, response.Failed)
}
