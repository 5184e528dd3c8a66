package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/service"
)

// CommunityHandler exposes the community collection and the tag suggestion
// list the record form's community picker uses.
type CommunityHandler struct {
	communities *service.CommunityService
	records     *service.RecordService
	logger      *slog.Logger
}

// NewCommunityHandler creates a CommunityHandler. The record service is
// needed because suggestions merge both collections.
func NewCommunityHandler(communities *service.CommunityService, records *service.RecordService, logger *slog.Logger) *CommunityHandler {
	return &CommunityHandler{communities: communities, records: records, logger: logger}
}

// HandleList returns all communities, newest first.
//
// HTTP: GET /api/communities
func (h *CommunityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.communities.List())
}

// HandleCreate adds a community.
//
// HTTP: POST /api/communities
// REQUEST BODY: {"name": "...", "agaDivision": "...", "gsDivision": "..."}
func (h *CommunityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CommunityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid community JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "Invalid JSON body",
		})
		return
	}

	community, err := h.communities.Add(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, community)
}

// HandleSuggestions returns the merged, de-duplicated community names from
// the standalone collection and from every record.
//
// HTTP: GET /api/communities/suggestions
func (h *CommunityHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK,
		service.Suggestions(h.communities.Names(), h.records.CommunityNames()))
}
