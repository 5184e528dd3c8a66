package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/apperror"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/config"
)

// SettingsHandler exposes the storage settings page: where the data files
// live and which backend holds them. Changing the directory takes effect
// immediately — the working sets reload from the new location.
type SettingsHandler struct {
	cfg    *config.Manager
	reload func(context.Context) error
	logger *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler. reload is called after a
// successful directory change to re-read both collections.
func NewSettingsHandler(cfg *config.Manager, reload func(context.Context) error, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{cfg: cfg, reload: reload, logger: logger}
}

type settingsResponse struct {
	DataDirectory        string `json:"dataDirectory"`
	DefaultDataDirectory string `json:"defaultDataDirectory"`
	StorageBackend       string `json:"storageBackend"`
}

// HandleGet returns the current settings.
//
// HTTP: GET /api/settings
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg.Load()
	writeJSON(w, http.StatusOK, settingsResponse{
		DataDirectory:        cfg.DataDirectory,
		DefaultDataDirectory: h.cfg.DefaultDataDirectory(),
		StorageBackend:       cfg.StorageBackend,
	})
}

// HandleUpdate changes the data directory.
//
// HTTP: PUT /api/settings
// REQUEST BODY: {"dataDirectory": "/path/to/dir"}
//
// An empty dataDirectory resets to the default. The backend setting is
// read-only here; switching backends takes a restart.
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DataDirectory string `json:"dataDirectory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid settings JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "Invalid JSON body",
		})
		return
	}

	dir := strings.TrimSpace(in.DataDirectory)
	if dir == "" {
		dir = h.cfg.DefaultDataDirectory()
	}

	if err := h.cfg.SetDataDirectory(dir); err != nil {
		h.logger.Error("failed to set data directory",
			slog.String("dir", dir),
			slog.String("error", err.Error()),
		)
		writeError(w, apperror.ValidationFailed("dataDirectory", "could not use the selected directory"))
		return
	}

	h.logger.Info("data directory changed", slog.String("dir", dir))

	// Best effort: a missing file in the new directory is normal for a fresh
	// location, so a reload failure doesn't undo the setting change.
	if err := h.reload(r.Context()); err != nil {
		h.logger.Warn("reload after directory change failed", slog.String("error", err.Error()))
	}

	h.HandleGet(w, r)
}
