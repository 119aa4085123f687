package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tailscan/internal/utilization/models"
	"tailscan/pkg/platform/sentinel"
)

// PostgresCache persists entries in flight_cache, one row per tail number.
type PostgresCache struct {
	db *sql.DB
}

func NewPostgresCache(db *sql.DB) *PostgresCache {
	return &PostgresCache{db: db}
}

func (c *PostgresCache) Get(ctx context.Context, tail string) (*models.CacheEntry, error) {
	query := `
		SELECT tail_number, total_hours_12m, last_tracked, feed, data_source, raw_json, expires_at, last_updated
		FROM flight_cache
		WHERE tail_number = $1
	`
	var entry models.CacheEntry
	var feed, source string
	var raw []byte
	err := c.db.QueryRowContext(ctx, query, tail).Scan(
		&entry.TailNumber,
		&entry.TotalHours12M,
		&entry.LastTracked,
		&feed,
		&source,
		&raw,
		&entry.ExpiresAt,
		&entry.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("utilization entry %s: %w", tail, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find utilization entry: %w", err)
	}
	if err := json.Unmarshal(raw, &entry.Raw); err != nil {
		return nil, fmt.Errorf("decode raw flights: %w", err)
	}
	entry.Feed = models.TrackingFeed(feed)
	entry.Source = models.DataSource(source)
	entry.LastTracked = entry.LastTracked.UTC()
	entry.ExpiresAt = entry.ExpiresAt.UTC()
	entry.LastUpdated = entry.LastUpdated.UTC()
	return &entry, nil
}

// Upsert writes entry, replacing any previous row for the same aircraft.
func (c *PostgresCache) Upsert(ctx context.Context, entry *models.CacheEntry) error {
	raw, err := json.Marshal(entry.Raw)
	if err != nil {
		return fmt.Errorf("encode raw flights: %w", err)
	}
	query := `
		INSERT INTO flight_cache (
			tail_number, total_hours_12m, last_tracked, feed, data_source, raw_json, expires_at, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tail_number) DO UPDATE SET
			total_hours_12m = EXCLUDED.total_hours_12m,
			last_tracked = EXCLUDED.last_tracked,
			feed = EXCLUDED.feed,
			data_source = EXCLUDED.data_source,
			raw_json = EXCLUDED.raw_json,
			expires_at = EXCLUDED.expires_at,
			last_updated = EXCLUDED.last_updated
	`
	_, err = c.db.ExecContext(ctx, query,
		entry.TailNumber,
		entry.TotalHours12M,
		entry.LastTracked,
		string(entry.Feed),
		string(entry.Source),
		raw,
		entry.ExpiresAt,
		entry.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert utilization entry: %w", err)
	}
	return nil
}
