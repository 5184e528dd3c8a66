// Package config manages the per-user settings file. It lives outside the
// data directory — in a fixed dot-directory under the user's home — so the
// app can find its data directory before anything else is loaded.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Backend names for the storage layer.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the persisted settings document.
type Config struct {
	DataDirectory  string `json:"dataDirectory"`
	StorageBackend string `json:"storageBackend,omitempty"`
}

// Manager loads and saves the settings file. The storage layer re-reads the
// config on every operation (the host process in the original did exactly
// that), so a data-directory change applies without restarting — Manager
// therefore has to be safe for concurrent use.
type Manager struct {
	mu   sync.Mutex
	path string
	home string
}

// NewManager creates a Manager over the default per-user location:
// ~/.desktop-crud-app/config.json.
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: resolving home directory: %w", err)
	}
	return &Manager{
		path: filepath.Join(home, ".desktop-crud-app", "config.json"),
		home: home,
	}, nil
}

// NewManagerAt creates a Manager over an explicit file path. Tests point this
// at a temp directory.
func NewManagerAt(path string) *Manager {
	return &Manager{path: path, home: filepath.Dir(filepath.Dir(path))}
}

// DefaultDataDirectory is where data files go until the user picks somewhere.
func (m *Manager) DefaultDataDirectory() string {
	return filepath.Join(m.home, "Desktop CRUD App Data")
}

// Load reads the settings file. A missing or unreadable file falls back to
// the defaults rather than failing — the app must always be able to start.
func (m *Manager) Load() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() Config {
	cfg := Config{
		DataDirectory:  m.DefaultDataDirectory(),
		StorageBackend: BackendJSON,
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return cfg
	}

	var stored Config
	if err := json.Unmarshal(data, &stored); err != nil {
		return cfg
	}
	if stored.DataDirectory != "" {
		cfg.DataDirectory = stored.DataDirectory
	}
	if stored.StorageBackend != "" {
		cfg.StorageBackend = stored.StorageBackend
	}
	return cfg
}

// Save persists the settings file, creating its directory if needed. The file
// is pretty-printed like every other document the app writes.
func (m *Manager) Save(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("config: creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding config: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing config: %w", err)
	}
	return nil
}

// SetDataDirectory updates the data directory, ensures it exists, and
// persists the change. This is the programmatic stand-in for the interactive
// directory chooser.
func (m *Manager) SetDataDirectory(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg := m.load()
	cfg.DataDirectory = dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("config: creating config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing config: %w", err)
	}
	return nil
}

// EnsureDataDirectory creates the configured data directory if it is missing.
func (m *Manager) EnsureDataDirectory() error {
	dir := m.Load().DataDirectory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: creating data directory %s: %w", dir, err)
	}
	return nil
}
