package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/export"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/handler"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/normalize"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/refdata"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/service"
)

func newExportHandler(t *testing.T) (*handler.ExportHandler, *service.RecordService) {
	t.Helper()
	svc := service.NewRecordService(&memStore{}, normalize.New(refdata.Default()), nil, testLogger())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return handler.NewExportHandler(svc, export.NewRenderer(), nil, testLogger()), svc
}

func TestExportHandler_Fields(t *testing.T) {
	h, _ := newExportHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/fields", nil)
	rr := httptest.NewRecorder()
	h.HandleFields(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var fields []export.Field
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&fields))
	assert.Len(t, fields, 19)
	assert.Equal(t, "name", fields[0].Key)
	assert.True(t, fields[0].Default)
}

func TestExportHandler_RecordsPDF(t *testing.T) {
	h, svc := newExportHandler(t)

	_, err := svc.Add(context.Background(), service.RecordInput{
		Name: "Kamala", NIC: "912345678V", DOB: "1991-03-21",
		PoliticalPartyID: "123456", Priority: "3", Address: "addr",
		Region: "NR", AGADivision: "AGA-02", GSDivision: "GS-104", PoolingBooth: "PB-01",
	})
	assert.NoError(t, err)

	body := `{"fields": ["name", "nic"], "filters": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/export/records", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.HandleRecords(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "user_records_")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestExportHandler_EmptySetRefused(t *testing.T) {
	h, _ := newExportHandler(t)

	body := `{"fields": ["name"], "filters": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/export/records", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.HandleRecords(rr, req)

	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)

	var res handler.ErrorResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, "precondition_failed", res.Error)
}

func TestExportHandler_AddressListPDF(t *testing.T) {
	h, svc := newExportHandler(t)

	_, err := svc.Add(context.Background(), service.RecordInput{
		Name: "Kamala", NIC: "912345678V", DOB: "1991-03-21",
		PoliticalPartyID: "123456", Priority: "3", Address: "12 Temple Road",
		Region: "NR", AGADivision: "AGA-02", GSDivision: "GS-104", PoolingBooth: "PB-01",
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/export/addresses", bytes.NewBufferString(`{"filters": {}}`))
	rr := httptest.NewRecorder()
	h.HandleAddresses(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "address_list_")
}
