package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Sample is one stored water-level reading. Rows are never updated.
type Sample struct {
	ID                int64     `json:"id"`
	ReadingCM         float64   `json:"reading_cm"`
	ReportedFeet      float64   `json:"reported_feet"`
	ReportedThreshold string    `json:"reported_threshold"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewSample carries the caller-supplied values of a reading. The id and
// creation time are assigned by the store.
type NewSample struct {
	ReadingCM         float64
	ReportedFeet      float64
	ReportedThreshold string
}

const insertSampleSQL = `
    INSERT INTO water_level_samples (reading_cm, reported_feet, reported_threshold)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
`

// InsertSample appends a sample and returns it with its assigned id and timestamp.
func (s *Store) InsertSample(ctx context.Context, in NewSample) (Sample, error) {
	out := Sample{
		ReadingCM:         in.ReadingCM,
		ReportedFeet:      in.ReportedFeet,
		ReportedThreshold: in.ReportedThreshold,
	}
	row := s.pool.QueryRow(ctx, insertSampleSQL, in.ReadingCM, in.ReportedFeet, in.ReportedThreshold)
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return Sample{}, fmt.Errorf("insert sample: %w", err)
	}
	out.CreatedAt = out.CreatedAt.UTC()
	return out, nil
}

const latestSampleSQL = `
    SELECT id, reading_cm, reported_feet, reported_threshold, created_at
    FROM water_level_samples
    ORDER BY id DESC
    LIMIT 1
`

// LatestSample returns the sample with the highest id, or nil when the table is empty.
func (s *Store) LatestSample(ctx context.Context) (*Sample, error) {
	var sm Sample
	err := s.pool.QueryRow(ctx, latestSampleSQL).Scan(
		&sm.ID,
		&sm.ReadingCM,
		&sm.ReportedFeet,
		&sm.ReportedThreshold,
		&sm.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest sample: %w", err)
	}
	sm.CreatedAt = sm.CreatedAt.UTC()
	return &sm, nil
}

const samplesBetweenSQL = `
    SELECT id, reading_cm, reported_feet, reported_threshold, created_at
    FROM water_level_samples
    WHERE created_at >= $1 AND created_at <= $2
    ORDER BY created_at, id
`

// SamplesBetween returns every sample with from <= created_at <= to, oldest first.
func (s *Store) SamplesBetween(ctx context.Context, from, to time.Time) ([]Sample, error) {
	rows, err := s.pool.Query(ctx, samplesBetweenSQL, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("samples between: %w", err)
	}
	defer rows.Close()

	samples := make([]Sample, 0)
	for rows.Next() {
		var sm Sample
		if err := rows.Scan(
			&sm.ID,
			&sm.ReadingCM,
			&sm.ReportedFeet,
			&sm.ReportedThreshold,
			&sm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		sm.CreatedAt = sm.CreatedAt.UTC()
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}

const deleteSamplesBeforeSQL = `
    DELETE FROM water_level_samples
    WHERE id IN (
        SELECT id FROM water_level_samples
        WHERE created_at < $1
        ORDER BY id
        LIMIT $2
    )
`

// DeleteSamplesBefore removes at most limit samples created before cutoff and
// reports how many rows went away.
func (s *Store) DeleteSamplesBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteSamplesBeforeSQL, cutoff.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("delete samples: %w", err)
	}
	return tag.RowsAffected(), nil
}
