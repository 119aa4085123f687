package postgres

import (
	"context"
	"database/sql"
	"fmt"

	audit "tailscan/pkg/platform/audit"

	"github.com/google/uuid"
)

// Store implements audit.Store over the audit_events table.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an event. Duplicate IDs are ignored so redelivery is safe.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	query := `
		INSERT INTO audit_events (
			id, category, action, occurred_at, tail_number, scan_id, request_id,
			outcome, reason, payment_status, plan, client_ip, client
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		string(category),
		event.Action,
		event.Timestamp,
		event.TailNumber,
		event.ScanID,
		event.RequestID,
		event.Outcome,
		event.Reason,
		event.PaymentStatus,
		event.Plan,
		event.ClientIP,
		event.Client,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByTail returns events for one aircraft, oldest first.
func (s *Store) ListByTail(ctx context.Context, tail string) ([]audit.Event, error) {
	query := `
		SELECT id, category, action, occurred_at, tail_number, scan_id, request_id,
			outcome, reason, payment_status, plan, client_ip, client
		FROM audit_events
		WHERE tail_number = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, tail)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var e audit.Event
		var category string
		if err := rows.Scan(
			&e.ID, &category, &e.Action, &e.Timestamp, &e.TailNumber, &e.ScanID, &e.RequestID,
			&e.Outcome, &e.Reason, &e.PaymentStatus, &e.Plan, &e.ClientIP, &e.Client,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		e.Timestamp = e.Timestamp.UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
