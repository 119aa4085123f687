package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tailscan/internal/forensics/models"
)

// PostgresStore reads the mirrored forensic tables. A mark may be filed with
// or without its "N" so every query matches against a key set.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAccidents(ctx context.Context, keys []string) ([]models.AccidentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, n_number, event_date, event_type, severity, narrative, deduction
		FROM forensic_ntsb WHERE n_number = ANY($1) ORDER BY event_date DESC, event_id`,
		pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("list accidents: %w", err)
	}
	defer rows.Close()

	out := []models.AccidentRecord{}
	for rows.Next() {
		var (
			r         models.AccidentRecord
			narrative sql.NullString
			deduction sql.NullInt64
		)
		if err := rows.Scan(&r.EventID, &r.TailNum, &r.EventDate, &r.EventType, &r.Severity, &narrative, &deduction); err != nil {
			return nil, fmt.Errorf("scan accident: %w", err)
		}
		r.Narrative = narrative.String
		if deduction.Valid {
			d := int(deduction.Int64)
			r.Deduction = &d
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accidents: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListOccurrences(ctx context.Context, keys []string) ([]models.OccurrenceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cadors_number, n_number, occurrence_date, occurrence_type, summary
		FROM forensic_cadors WHERE n_number = ANY($1) ORDER BY occurrence_date DESC, cadors_number`,
		pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("list occurrences: %w", err)
	}
	defer rows.Close()

	out := []models.OccurrenceRecord{}
	for rows.Next() {
		var (
			r       models.OccurrenceRecord
			summary sql.NullString
		)
		if err := rows.Scan(&r.CadorsNumber, &r.TailNum, &r.OccurrenceDate, &r.OccurrenceType, &summary); err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		r.Summary = summary.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occurrences: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListDefects(ctx context.Context, keys []string) ([]models.DefectRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT control_number, n_number, report_date, part_name, description
		FROM forensic_sdr WHERE n_number = ANY($1) ORDER BY report_date DESC, control_number`,
		pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("list defects: %w", err)
	}
	defer rows.Close()

	out := []models.DefectRecord{}
	for rows.Next() {
		var (
			r           models.DefectRecord
			description sql.NullString
		)
		if err := rows.Scan(&r.ControlNumber, &r.TailNum, &r.ReportDate, &r.PartName, &description); err != nil {
			return nil, fmt.Errorf("scan defect: %w", err)
		}
		r.Description = description.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate defects: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) HasActiveLien(ctx context.Context, keys []string) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM aircraft_liens WHERE n_number = ANY($1) AND released_at IS NULL)`,
		pq.Array(keys)).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("check liens: %w", err)
	}
	return active, nil
}
