// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/extract-engine/pkg/types"
)

// Boolean set algebra over feature labels, joined on the document. A
// feature is the label given to one batch extraction run, so these
// operations answer questions like "which documents have both a fever
// measurement and a positive case count".

// And returns the measurements for the given features restricted to
// documents carrying all of them. Requires at least two features.
func (s *Store) And(ctx context.Context, features ...string) ([]types.StoredMeasurement, error) {
	if len(features) < 2 {
		return nil, fmt.Errorf("and requires at least two features, got %d", len(features))
	}

	placeholders, args := featureArgs(features)
	query := `SELECT ` + selectColumns + `
		FROM measurements m
		WHERE m.feature IN (` + placeholders + `)
		AND m.doc_id IN (
			SELECT doc_id FROM measurements
			WHERE feature IN (` + placeholders + `)
			GROUP BY doc_id
			HAVING COUNT(DISTINCT feature) >= ?
		)
		ORDER BY m.doc_id, m.feature, m.start`

	args = append(args, args...)
	args = append(args, len(features))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("and query: %w", err)
	}
	defer rows.Close()
	return scanMeasurements(rows)
}

// Or returns the measurements for documents carrying any of the given
// features.
func (s *Store) Or(ctx context.Context, features ...string) ([]types.StoredMeasurement, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("or requires at least one feature")
	}

	placeholders, args := featureArgs(features)
	query := `SELECT ` + selectColumns + `
		FROM measurements m
		WHERE m.feature IN (` + placeholders + `)
		ORDER BY m.doc_id, m.feature, m.start`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("or query: %w", err)
	}
	defer rows.Close()
	return scanMeasurements(rows)
}

// ANotB returns the measurements for feature a restricted to documents
// that carry a but not b.
func (s *Store) ANotB(ctx context.Context, a, b string) ([]types.StoredMeasurement, error) {
	query := `SELECT ` + selectColumns + `
		FROM measurements m
		WHERE m.feature = ?
		AND m.doc_id NOT IN (
			SELECT DISTINCT doc_id FROM measurements WHERE feature = ?
		)
		ORDER BY m.doc_id, m.start`

	rows, err := s.db.QueryContext(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("a-not-b query: %w", err)
	}
	defer rows.Close()
	return scanMeasurements(rows)
}

// NotA returns the IDs of ingested documents carrying no measurement
// with the given feature.
func (s *Store) NotA(ctx context.Context, feature string) ([]string, error) {
	query := `SELECT id FROM docs
		WHERE id NOT IN (
			SELECT DISTINCT doc_id FROM measurements WHERE feature = ?
		)
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, feature)
	if err != nil {
		return nil, fmt.Errorf("not-a query: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning doc id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating doc ids: %w", err)
	}
	return ids, nil
}

func featureArgs(features []string) (string, []any) {
	args := make([]any, len(features))
	for i, f := range features {
		args[i] = f
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(features)), ","), args
}
