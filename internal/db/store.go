package db

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/overlap-data/zonal.report/internal/zonal"
)

// RunMeta describes the computation a stored result came from.
type RunMeta struct {
	GeometryWKBHex string
	ValueRaster    string
	WeightRaster   string
	Stats          []string
	MaxCells       int
}

// RecordStats stores a statistics matrix under a fresh run id and
// returns the id. NaN sentinels are stored as SQL NULL.
func (db *DB) RecordStats(meta RunMeta, res *zonal.StatsResult) (string, error) {
	runID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if err := insertRun(tx, runID, meta, res.Advisories); err != nil {
		return "", err
	}
	for layer, row := range res.Rows {
		for i, col := range res.Columns {
			if _, err := tx.Exec(
				`INSERT INTO zonal_stat (run_id, layer_row, col_idx, stat, value) VALUES (?, ?, ?, ?, ?)`,
				runID, layer, i, col, nullable(row[i]),
			); err != nil {
				return "", fmt.Errorf("storing stat %s for row %d: %w", col, layer, err)
			}
		}
	}
	return runID, tx.Commit()
}

// RecordExtract stores an extraction table under a fresh run id and
// returns the id.
func (db *DB) RecordExtract(meta RunMeta, table *zonal.ExtractTable) (string, error) {
	runID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if err := insertRun(tx, runID, meta, nil); err != nil {
		return "", err
	}
	for rowIdx, row := range table.Rows {
		for i, col := range table.Columns {
			if _, err := tx.Exec(
				`INSERT INTO zonal_cell (run_id, row_idx, col_idx, column_name, value) VALUES (?, ?, ?, ?, ?)`,
				runID, rowIdx, i, col, nullable(row[i]),
			); err != nil {
				return "", fmt.Errorf("storing cell row %d column %s: %w", rowIdx, col, err)
			}
		}
	}
	return runID, tx.Commit()
}

// StatValue fetches one stored statistic by name, returning NaN for SQL
// NULL. When a request repeated the statistic, the first occurrence
// wins.
func (db *DB) StatValue(runID string, layerRow int, stat string) (float64, error) {
	var v sql.NullFloat64
	err := db.QueryRow(
		`SELECT value FROM zonal_stat WHERE run_id = ? AND layer_row = ? AND stat = ? ORDER BY col_idx LIMIT 1`,
		runID, layerRow, stat,
	).Scan(&v)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return math.NaN(), nil
	}
	return v.Float64, nil
}

// CellCount returns the number of stored extraction rows for a run.
func (db *DB) CellCount(runID string) (int, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(DISTINCT row_idx) FROM zonal_cell WHERE run_id = ?`, runID,
	).Scan(&n)
	return n, err
}

func insertRun(tx *sql.Tx, runID string, meta RunMeta, advisories []string) error {
	if _, err := tx.Exec(
		`INSERT INTO zonal_run (run_id, geometry_wkb_hex, value_raster, weight_raster, stats, max_cells, advisories)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, meta.GeometryWKBHex, meta.ValueRaster, meta.WeightRaster,
		strings.Join(meta.Stats, ","), meta.MaxCells, strings.Join(advisories, "; "),
	); err != nil {
		return fmt.Errorf("registering run: %w", err)
	}
	return nil
}

func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
