package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/export"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/filter"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/metrics"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/service"
)

// ExportHandler renders PDF downloads over the filtered record set. The
// filters arrive with the request so the export matches exactly what the
// table view shows, pagination aside.
type ExportHandler struct {
	records  *service.RecordService
	renderer *export.Renderer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewExportHandler creates an ExportHandler. metrics may be nil (tests).
func NewExportHandler(records *service.RecordService, renderer *export.Renderer, m *metrics.Metrics, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{records: records, renderer: renderer, metrics: m, logger: logger}
}

// HandleFields returns the export column catalogue for the field picker.
//
// HTTP: GET /api/export/fields
func (h *ExportHandler) HandleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, export.Fields)
}

type exportRequest struct {
	Fields  []string    `json:"fields"`
	Filters filter.Spec `json:"filters"`
}

// HandleRecords renders the tabular report over the filtered set.
//
// HTTP: POST /api/export/records
// REQUEST BODY: {"fields": ["name","nic"], "filters": {...}}
// RESPONSE: application/pdf attachment
func (h *ExportHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	var in exportRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid export JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "Invalid JSON body",
		})
		return
	}

	records := h.records.Filtered(in.Filters)

	start := time.Now()
	pdf, err := h.renderer.Records(records, in.Fields)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.ObserveExportLatency(time.Since(start))
	h.metrics.IncrementExport("records")

	h.logger.Info("records exported",
		slog.Int("records", len(records)),
		slog.Int("fields", len(in.Fields)),
	)
	servePDF(w, pdf, fmt.Sprintf("user_records_%s.pdf", time.Now().Format("2006-01-02")))
}

// HandleAddresses renders the card-style address list over the filtered set.
//
// HTTP: POST /api/export/addresses
// REQUEST BODY: {"filters": {...}}
// RESPONSE: application/pdf attachment
func (h *ExportHandler) HandleAddresses(w http.ResponseWriter, r *http.Request) {
	var in exportRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid export JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "Invalid JSON body",
		})
		return
	}

	records := h.records.Filtered(in.Filters)

	start := time.Now()
	pdf, err := h.renderer.AddressList(records)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.ObserveExportLatency(time.Since(start))
	h.metrics.IncrementExport("addresses")

	h.logger.Info("address list exported", slog.Int("records", len(records)))
	servePDF(w, pdf, fmt.Sprintf("address_list_%s.pdf", time.Now().Format("2006-01-02")))
}

func servePDF(w http.ResponseWriter, pdf []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.Write(pdf)
}
