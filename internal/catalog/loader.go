// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	// DuckDB driver registers itself as "duckdb"
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/planadvisor/internal/logging"
	"github.com/tomtom215/planadvisor/internal/metrics"
)

// ErrCatalog is returned when a catalog file cannot be read or lacks required columns.
var ErrCatalog = errors.New("catalog")

// Loader reads plan CSV files through an in-memory DuckDB database.
// It is only needed at startup; Close it once the catalogs are built.
type Loader struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// NewLoader opens an in-memory DuckDB connection.
// Extension autoloading is disabled so startup never reaches the network.
func NewLoader() (*Loader, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	// read_csv_auto keeps file order only on a single reader
	conn.SetMaxOpenConns(1)

	return &Loader{
		conn:   conn,
		logger: logging.Component("catalog"),
	}, nil
}

// Close releases the DuckDB connection.
func (l *Loader) Close() error {
	return l.conn.Close()
}

// table is a CSV file as generic DuckDB values.
type table struct {
	columns []string
	rows    [][]any
}

func (t *table) require(cols ...string) error {
	have := make(map[string]bool, len(t.columns))
	for _, c := range t.columns {
		have[c] = true
	}
	var missing []string
	for _, c := range cols {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns %s", ErrCatalog, strings.Join(missing, ", "))
	}
	return nil
}

// fields maps a raw row to column name -> value, with NaN cells as nil.
func (t *table) fields(row []any) map[string]any {
	out := make(map[string]any, len(t.columns))
	for i, c := range t.columns {
		v := row[i]
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			v = nil
		}
		out[c] = v
	}
	return out
}

// readCSV loads a CSV file with header detection and type inference.
func (l *Loader) readCSV(ctx context.Context, path string) (*table, error) {
	// DuckDB table functions take the file name as a literal
	query := fmt.Sprintf("SELECT * FROM read_csv_auto('%s', header = true)", strings.ReplaceAll(path, "'", "''"))

	rows, err := l.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCatalog, path, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns %s: %w", ErrCatalog, path, err)
	}

	t := &table{columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrCatalog, path, err)
		}
		t.rows = append(t.rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %w", ErrCatalog, path, err)
	}
	return t, nil
}

// LoadMobile reads the mobile plan catalog.
func (l *Loader) LoadMobile(ctx context.Context, path string) (*Mobile, error) {
	start := time.Now()
	m, err := l.loadMobile(ctx, path)
	rows := 0
	if m != nil {
		rows = m.Len()
	}
	metrics.RecordCatalogLoad("mobile", rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("path", path).
		Int("plans", rows).
		Strs("classes", m.Classes()).
		Dur("duration", time.Since(start)).
		Msg("Mobile catalog loaded")
	return m, nil
}

func (l *Loader) loadMobile(ctx context.Context, path string) (*Mobile, error) {
	t, err := l.readCSV(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := t.require(ColPrice, ColValidityDays, ColDataPerDay, ColPlanClass, ColPricePerGB); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	plans := make([]MobilePlan, 0, len(t.rows))
	for _, row := range t.rows {
		f := t.fields(row)
		plans = append(plans, MobilePlan{
			Price:        toFloat(f[ColPrice]),
			ValidityDays: toFloat(f[ColValidityDays]),
			DataPerDay:   toFloat(f[ColDataPerDay]),
			PlanClass:    toString(f[ColPlanClass]),
			PricePerGB:   toFloat(f[ColPricePerGB]),
			Fields:       f,
		})
	}
	return NewMobile(t.columns, plans), nil
}

// LoadBroadband reads the broadband plan catalog.
func (l *Loader) LoadBroadband(ctx context.Context, path string) (*Broadband, error) {
	start := time.Now()
	b, err := l.loadBroadband(ctx, path)
	rows := 0
	if b != nil {
		rows = b.Len()
	}
	metrics.RecordCatalogLoad("broadband", rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("path", path).
		Int("plans", rows).
		Int("regions", len(b.Regions())).
		Dur("duration", time.Since(start)).
		Msg("Broadband catalog loaded")
	return b, nil
}

func (l *Loader) loadBroadband(ctx context.Context, path string) (*Broadband, error) {
	t, err := l.readCSV(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := t.require(ColBroadbandPrice, ColBroadbandValidity, ColBroadbandSpeed, ColBroadbandRegion); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	plans := make([]BroadbandPlan, 0, len(t.rows))
	for _, row := range t.rows {
		f := t.fields(row)
		plans = append(plans, BroadbandPlan{
			Price:        toFloat(f[ColBroadbandPrice]),
			ValidityDays: toFloat(f[ColBroadbandValidity]),
			SpeedMbps:    toFloat(f[ColBroadbandSpeed]),
			Region:       toString(f[ColBroadbandRegion]),
			Fields:       f,
		})
	}
	return NewBroadband(t.columns, plans), nil
}

// toFloat converts a DuckDB scalar to float64. Unconvertible values yield NaN.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int16:
		return float64(n)
	case int8:
		return float64(n)
	case int:
		return float64(n)
	case uint64:
		return float64(n)
	case uint32:
		return float64(n)
	case uint16:
		return float64(n)
	case uint8:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case interface{ Float64() float64 }: // duckdb.Decimal
		return n.Float64()
	default:
		return math.NaN()
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
