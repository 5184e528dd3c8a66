// Package jsonfile implements the storage gateway over plain JSON files:
// records.json and communities.json in the user-configured data directory,
// each a pretty-printed array holding the whole collection.
//
// The data directory is re-resolved from config on every operation. That is
// deliberate — the original host process did the same — so pointing the app
// at a different directory takes effect on the very next read or write.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/config"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/repository"
)

// File names of the persisted collections.
const (
	RecordsFile     = "records.json"
	CommunitiesFile = "communities.json"
)

// COMPILE-TIME INTERFACE CHECK:
// Verifies that *Store implements repository.Store; a missing method fails
// the build here instead of at a distant call site.
var _ repository.Store = (*Store)(nil)

// Store persists collections as JSON documents under the configured
// data directory.
type Store struct {
	cfg *config.Manager
}

// New creates a Store over the given config manager.
func New(cfg *config.Manager) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) ReadRecords(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := s.read(ctx, RecordsFile, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

func (s *Store) WriteRecords(ctx context.Context, records []model.Record) error {
	return s.write(ctx, RecordsFile, records)
}

func (s *Store) ReadCommunities(ctx context.Context) ([]model.Community, error) {
	var communities []model.Community
	if err := s.read(ctx, CommunitiesFile, &communities); err != nil {
		return nil, err
	}
	if communities == nil {
		communities = []model.Community{}
	}
	return communities, nil
}

func (s *Store) WriteCommunities(ctx context.Context, communities []model.Community) error {
	return s.write(ctx, CommunitiesFile, communities)
}

// read decodes one collection file into out. A missing file is not an error:
// the collection simply doesn't exist yet and decodes as empty. Anything else
// (unreadable file, corrupt JSON) is reported so the caller can fall back to
// its snapshot.
func (s *Store) read(ctx context.Context, filename string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.cfg.Load().DataDirectory, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("jsonfile: reading %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("jsonfile: parsing %s: %w", filename, err)
	}
	return nil
}

// write replaces one collection file with a pretty-printed document,
// creating the data directory if the user deleted it meanwhile.
func (s *Store) write(ctx context.Context, filename string, collection any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := s.cfg.Load().DataDirectory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encoding %s: %w", filename, err)
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: writing %s: %w", filename, err)
	}
	return nil
}
