package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tailscan/internal/registry/metrics"
	"tailscan/internal/registry/models"
	"tailscan/internal/tailnumber"
	"tailscan/pkg/platform/sentinel"
)

// PostgresStore persists registry records in the aircraft_registry table.
type PostgresStore struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgresStore constructs a PostgreSQL-backed registry store.
func NewPostgresStore(db *sql.DB, metrics *metrics.Metrics) *PostgresStore {
	return &PostgresStore{db: db, metrics: metrics}
}

const selectRegistry = `SELECT n_number, manufacturer, model, serial_number, year_mfr,
	owner_name, city, region, country, updated_at FROM aircraft_registry`

func (s *PostgresStore) FindByKey(ctx context.Context, key string) (*models.RegistryRecord, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveLookupLatency(time.Since(start)) }()

	row := s.db.QueryRowContext(ctx, selectRegistry+` WHERE n_number = $1`, key)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registry record: %w", err)
	}
	return record, nil
}

// UpsertDiscovered inserts a record or, on conflict, refreshes only the
// owner and location fields.
func (s *PostgresStore) UpsertDiscovered(ctx context.Context, record *models.RegistryRecord) error {
	if record == nil {
		return fmt.Errorf("registry record is required")
	}
	query := `
		INSERT INTO aircraft_registry (n_number, manufacturer, model, serial_number, year_mfr,
			owner_name, city, region, country, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (n_number) DO UPDATE SET
			owner_name = EXCLUDED.owner_name,
			city = EXCLUDED.city,
			region = EXCLUDED.region,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		record.NNumber,
		record.Manufacturer,
		record.Model,
		record.SerialNumber,
		nullableYear(record.YearManufactured),
		record.OwnerName,
		record.City,
		record.Region,
		string(record.Country),
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert registry record: %w", err)
	}
	return nil
}

// Suggest prefix-matches display marks. US rows are stored without "N", so
// an "N"-prefixed query is matched against the stripped key.
func (s *PostgresStore) Suggest(ctx context.Context, prefix string, limit int) ([]models.Suggestion, error) {
	pattern, country := suggestPattern(prefix)
	query := `SELECT n_number, owner_name, manufacturer FROM aircraft_registry
		WHERE n_number LIKE $1 AND ($2 = '' OR country = $2)
		ORDER BY n_number LIMIT $3`
	rows, err := s.db.QueryContext(ctx, query, pattern, country, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest registry records: %w", err)
	}
	defer rows.Close()

	var out []models.Suggestion
	for rows.Next() {
		var key, owner, mfr string
		if err := rows.Scan(&key, &owner, &mfr); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		out = append(out, models.Suggestion{
			TailNumber:   displayMark(models.RegistryRecord{NNumber: key}),
			OwnerName:    owner,
			Manufacturer: mfr,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}
	return out, nil
}

func suggestPattern(prefix string) (string, string) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	switch {
	case strings.HasPrefix(prefix, "C-"):
		return escaped + "%", string(tailnumber.CountryCA)
	case strings.HasPrefix(prefix, "N"):
		return strings.TrimPrefix(escaped, "N") + "%", string(tailnumber.CountryUS)
	default:
		return escaped + "%", ""
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.RegistryRecord, error) {
	var (
		r       models.RegistryRecord
		year    sql.NullInt64
		city    sql.NullString
		region  sql.NullString
		country string
	)
	if err := row.Scan(&r.NNumber, &r.Manufacturer, &r.Model, &r.SerialNumber, &year,
		&r.OwnerName, &city, &region, &country, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.YearManufactured = int(year.Int64)
	r.City = city.String
	r.Region = region.String
	r.Country = tailnumber.Country(country)
	return &r, nil
}

func nullableYear(year int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(year), Valid: year > 0}
}
