package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/filter"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/service"
)

// RecordHandler exposes the record collection over HTTP. It owns no state —
// parsing and status codes here, everything else in the service.
type RecordHandler struct {
	records *service.RecordService
	logger  *slog.Logger
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(records *service.RecordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

// listResponse is a result page plus the page-number window the pagination
// bar renders (0 marks an ellipsis).
type listResponse struct {
	filter.Page
	Pages []int `json:"pages"`
}

// HandleList returns one page of the filtered collection.
//
// HTTP: GET /api/records?name=&nic=&gsDivision=&poolingBooth=&priority=&page=&pageSize=
//
// All filters are optional and combine with AND. Out-of-range page numbers
// are clamped, never rejected.
func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := filter.Spec{
		Name:         q.Get("name"),
		NIC:          q.Get("nic"),
		GSDivision:   q.Get("gsDivision"),
		PoolingBooth: q.Get("poolingBooth"),
		Priority:     q.Get("priority"),
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result := h.records.List(spec, page, pageSize)
	writeJSON(w, http.StatusOK, listResponse{
		Page:  result,
		Pages: filter.PageWindow(result.Page, result.TotalPages),
	})
}

// HandleGet returns a single record.
//
// HTTP: GET /api/records/{id}
func (h *RecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// HandleCreate adds a new record.
//
// HTTP: POST /api/records
// REQUEST BODY: a RecordInput JSON object; location fields are raw selector
// values, resolved server-side.
func (h *RecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid record JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "Invalid JSON body",
		})
		return
	}

	record, err := h.records.Add(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// HandleUpdate replaces an existing record's fields.
//
// HTTP: PUT /api/records/{id}
func (h *RecordHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid record JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "Invalid JSON body",
		})
		return
	}

	record, err := h.records.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// HandleDelete removes one record.
//
// HTTP: DELETE /api/records/{id}?confirm=true
//
// The confirm parameter carries the UI's destructive-action acknowledgement;
// without it the delete is refused with 412.
func (h *RecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.Context(), r.PathValue("id"), confirmed(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteAll clears the whole collection.
//
// HTTP: DELETE /api/records?confirm=true
func (h *RecordHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteAll(r.Context(), confirmed(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStats returns the landing-page counters.
//
// HTTP: GET /api/records/stats
func (h *RecordHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.records.Stats())
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
