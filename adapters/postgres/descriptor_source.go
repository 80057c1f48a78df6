// Package postgres supplies descriptor records from a Postgres-hosted
// catalogue, for deployments that manage score metadata in a database
// instead of files on disk.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielxmed/nobra-calculator/internal/errors"
	"github.com/danielxmed/nobra-calculator/ports"
)

// descriptorSource implements ports.DescriptorSource over a
// score_descriptors table holding one JSONB document per scorer.
type descriptorSource struct {
	db *sqlx.DB
}

// NewDescriptorSource creates a database-backed descriptor source.
func NewDescriptorSource(db *sqlx.DB) ports.DescriptorSource {
	return &descriptorSource{db: db}
}

// EnsureSchema creates the descriptor table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS score_descriptors (
		id TEXT PRIMARY KEY,
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create score_descriptors table: %w", err)
	}
	return nil
}

// Enumerate loads every descriptor document, ordered by id.
func (s *descriptorSource) Enumerate(ctx context.Context) ([]ports.RawDescriptor, error) {
	query := `SELECT document FROM score_descriptors ORDER BY id`

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.SourceUnavailable("cannot query score_descriptors", err)
	}
	defer rows.Close()

	var records []ports.RawDescriptor
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan descriptor document: %w", err)
		}
		var record map[string]interface{}
		if err := json.Unmarshal(document, &record); err != nil {
			return nil, fmt.Errorf("descriptor document is not valid JSON: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.SourceUnavailable("descriptor enumeration interrupted", err)
	}

	return records, nil
}
