package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wilding96/baby-tracker/internal/models"
)

var ErrLogNotFound = errors.New("log not found")

type LogRepository struct {
	db *pgxpool.Pool
}

func NewLogRepository(db *pgxpool.Pool) *LogRepository {
	return &LogRepository{db: db}
}

// Create persists a validated log record
func (r *LogRepository) Create(ctx context.Context, rec *models.LogRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	details, err := json.Marshal(rec.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO logs (id, baby_id, type, start_time, end_time, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	return r.db.QueryRow(ctx, query,
		rec.ID, rec.BabyID, rec.Type, rec.StartTime, rec.EndTime, details,
	).Scan(&rec.CreatedAt)
}

// GetByID retrieves a single log record
func (r *LogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LogRecord, error) {
	query := `
		SELECT id, baby_id, type, start_time, end_time, details, created_at
		FROM logs
		WHERE id = $1
	`

	rec, err := scanLog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	return rec, nil
}

// ListSince returns a baby's logs with start_time at or after the bound,
// newest first
func (r *LogRepository) ListSince(ctx context.Context, babyID uuid.UUID, since time.Time) ([]models.LogRecord, error) {
	query := `
		SELECT id, baby_id, type, start_time, end_time, details, created_at
		FROM logs
		WHERE baby_id = $1 AND start_time >= $2
		ORDER BY start_time DESC
	`

	rows, err := r.db.Query(ctx, query, babyID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.LogRecord{}
	for rows.Next() {
		rec, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *rec)
	}

	return logs, rows.Err()
}

// LastFeeding returns the most recent feeding record, or nil when the baby
// has none. The nil result is the dashboard's "no record" sentinel.
func (r *LogRepository) LastFeeding(ctx context.Context, babyID uuid.UUID) (*models.LogRecord, error) {
	query := `
		SELECT id, baby_id, type, start_time, end_time, details, created_at
		FROM logs
		WHERE baby_id = $1 AND type = $2
		ORDER BY start_time DESC
		LIMIT 1
	`

	rec, err := scanLog(r.db.QueryRow(ctx, query, babyID, models.LogTypeFeeding))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rec, nil
}

// UpdateStartTime rewrites a record's start_time together with any details
// the caller recomputed from the new boundary
func (r *LogRepository) UpdateStartTime(ctx context.Context, id uuid.UUID, startTime time.Time, details *models.LogDetails) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}

	query := `UPDATE logs SET start_time = $1, details = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, startTime, payload, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrLogNotFound
	}

	return nil
}

// Delete removes a log record permanently
func (r *LogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM logs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrLogNotFound
	}

	return nil
}

func scanLog(row pgx.Row) (*models.LogRecord, error) {
	var rec models.LogRecord
	var details []byte

	err := row.Scan(
		&rec.ID,
		&rec.BabyID,
		&rec.Type,
		&rec.StartTime,
		&rec.EndTime,
		&details,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			return nil, err
		}
	}

	return &rec, nil
}
