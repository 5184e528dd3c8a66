package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
	"github.com/darshana-perera-97/desktop-crud-exe/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// Verifies that *DB implements repository.Store; a missing method fails the
// build here instead of at a distant call site.
var _ repository.Store = (*DB)(nil)

func (db *DB) ReadRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT doc FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying records: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("sqlite: scanning record: %w", err)
		}
		var r model.Record
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("sqlite: decoding record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating records: %w", err)
	}
	return records, nil
}

// WriteRecords replaces the whole collection inside one transaction, so a
// reader never observes a half-replaced set.
func (db *DB) WriteRecords(ctx context.Context, records []model.Record) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("sqlite: clearing records: %w", err)
	}

	for i, r := range records {
		doc, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("sqlite: encoding record %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (position, id, nic, doc) VALUES (?, ?, ?, ?)`,
			i, r.ID, r.NIC, doc,
		); err != nil {
			return fmt.Errorf("sqlite: inserting record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing records: %w", err)
	}
	return nil
}

func (db *DB) ReadCommunities(ctx context.Context) ([]model.Community, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT doc FROM communities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying communities: %w", err)
	}
	defer rows.Close()

	communities := []model.Community{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("sqlite: scanning community: %w", err)
		}
		var c model.Community
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("sqlite: decoding community: %w", err)
		}
		communities = append(communities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating communities: %w", err)
	}
	return communities, nil
}

func (db *DB) WriteCommunities(ctx context.Context, communities []model.Community) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM communities`); err != nil {
		return fmt.Errorf("sqlite: clearing communities: %w", err)
	}

	for i, c := range communities {
		doc, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("sqlite: encoding community %s: %w", c.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO communities (position, id, doc) VALUES (?, ?, ?)`,
			i, c.ID, doc,
		); err != nil {
			return fmt.Errorf("sqlite: inserting community %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing communities: %w", err)
	}
	return nil
}
