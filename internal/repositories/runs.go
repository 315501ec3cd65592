package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/shared"
)

// RunRepository persists run ledger entries.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run record with a generated id and sequence.
func (r *RunRepository) Create(record *models.RunRecord) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if record.ID == "" {
		record.ID = shared.GenerateID()
	}
	record.Sequence = sequence

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO runs (id, sequence, kind, attempted, succeeded, failed, playlist_id, export_path, ok, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID,
		record.Sequence,
		string(record.Kind),
		record.Attempted,
		record.Succeeded,
		record.Failed,
		record.PlaylistID,
		record.ExportPath,
		record.Ok,
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves a run record by id.
func (r *RunRepository) Get(id string) (*models.RunRecord, error) {
	query := `
		SELECT id, sequence, kind, attempted, succeeded, failed, playlist_id, export_path, ok, started_at, finished_at
		FROM runs
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// List retrieves run records, most recent first, optionally filtered by kind.
func (r *RunRepository) List(kind models.RunKind, limit int) ([]*models.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, sequence, kind, attempted, succeeded, failed, playlist_id, export_path, ok, started_at, finished_at
		FROM runs
	`
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY sequence DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []*models.RunRecord
	for rows.Next() {
		record, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *RunRepository) scanOne(row *sql.Row) (*models.RunRecord, error) {
	record, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	return record, err
}

func (r *RunRepository) scanRow(s scanner) (*models.RunRecord, error) {
	var record models.RunRecord
	var kind string

	err := s.Scan(
		&record.ID,
		&record.Sequence,
		&kind,
		&record.Attempted,
		&record.Succeeded,
		&record.Failed,
		&record.PlaylistID,
		&record.ExportPath,
		&record.Ok,
		&record.StartedAt,
		&record.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Kind = models.RunKind(kind)
	return &record, nil
}
