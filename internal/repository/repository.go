// Package repository defines the storage-gateway interface the services
// persist through. Two implementations exist: jsonfile (the default, one
// pretty-printed JSON document per collection in the configured data
// directory) and sqlite (an embedded database backend).
//
// Every write replaces the entire collection — there are no partial or
// append writes, and no locking against other processes. That matches the
// single-writer model the app is designed for.
package repository

import (
	"context"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
)

// Store reads and writes whole collections.
//
// Reads are fail-soft for a missing collection (an empty slice, no error) but
// report corruption and I/O failures as errors so the service layer can fall
// back to its last-known-good snapshot instead of presenting an empty set.
type Store interface {
	ReadRecords(ctx context.Context) ([]model.Record, error)
	WriteRecords(ctx context.Context, records []model.Record) error
	ReadCommunities(ctx context.Context) ([]model.Community, error)
	WriteCommunities(ctx context.Context, communities []model.Community) error
}
