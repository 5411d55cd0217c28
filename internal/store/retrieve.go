// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/extract-engine/pkg/types"
)

// QueryOptions filters stored measurements. Zero-value fields do not
// constrain the query. MaxResults 0 uses the store default; -1 removes
// the limit.
type QueryOptions struct {
	DocID      string
	Feature    string
	Term       string
	Text       string // FTS5 match over matched text and terms
	Condition  string
	MinX       *float64
	MaxX       *float64
	MaxResults int
}

const selectColumns = `m.doc_id, m.feature, m.term, m.text, m.start, m.end, m.condition, m.x, m.y, m.min_value, m.max_value`

// Retrieve returns stored measurements matching the options, ordered by
// document then position.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.StoredMeasurement, error) {
	var sb strings.Builder
	var args []any

	if opts.Text != "" {
		sb.WriteString(`SELECT ` + selectColumns + `
			FROM measurements_fts
			JOIN measurements m ON m.rowid = measurements_fts.rowid
			WHERE measurements_fts MATCH ?`)
		args = append(args, opts.Text)
	} else {
		sb.WriteString(`SELECT ` + selectColumns + `
			FROM measurements m
			WHERE 1=1`)
	}

	if opts.DocID != "" {
		sb.WriteString(` AND m.doc_id = ?`)
		args = append(args, opts.DocID)
	}
	if opts.Feature != "" {
		sb.WriteString(` AND m.feature = ?`)
		args = append(args, opts.Feature)
	}
	if opts.Term != "" {
		sb.WriteString(` AND m.term = ?`)
		args = append(args, opts.Term)
	}
	if opts.Condition != "" {
		sb.WriteString(` AND m.condition = ?`)
		args = append(args, opts.Condition)
	}
	if opts.MinX != nil {
		sb.WriteString(` AND m.x >= ?`)
		args = append(args, *opts.MinX)
	}
	if opts.MaxX != nil {
		sb.WriteString(` AND m.x <= ?`)
		args = append(args, *opts.MaxX)
	}

	sb.WriteString(` ORDER BY m.doc_id, m.start`)

	limit := opts.MaxResults
	if limit == 0 {
		limit = s.maxResults
	}
	if limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	return scanMeasurements(rows)
}

func scanMeasurements(rows *sql.Rows) ([]types.StoredMeasurement, error) {
	var out []types.StoredMeasurement
	for rows.Next() {
		var m types.StoredMeasurement
		var condition sql.NullString
		var x, y, minV, maxV sql.NullFloat64

		err := rows.Scan(&m.DocID, &m.Feature, &m.MatchingTerm, &m.Text,
			&m.Start, &m.End, &condition, &x, &y, &minV, &maxV)
		if err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}

		if condition.Valid {
			m.Condition = types.Condition(condition.String)
		}
		m.X = floatPtr(x)
		m.Y = floatPtr(y)
		m.MinValue = floatPtr(minV)
		m.MaxValue = floatPtr(maxV)

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurements: %w", err)
	}
	return out, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
