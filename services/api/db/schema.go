package db

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS water_level_samples (
        id                 BIGSERIAL PRIMARY KEY,
        reading_cm         DOUBLE PRECISION NOT NULL CHECK (reading_cm >= 0),
        reported_feet      DOUBLE PRECISION NOT NULL,
        reported_threshold TEXT NOT NULL DEFAULT 'normal',
        created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS water_level_samples_created_at_idx
        ON water_level_samples (created_at)`,
}

// EnsureSchema creates the samples table and its index when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
