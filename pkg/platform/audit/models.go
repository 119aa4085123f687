package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can route and retain them differently.
type EventCategory string

const (
	// CategoryScan covers report generation outcomes.
	CategoryScan EventCategory = "scan"

	// CategoryAccess covers payment-gated data access: who was served which
	// tier of data, and who was refused.
	CategoryAccess EventCategory = "access"

	// CategoryOperations covers everything else.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         string        `json:"id"`
	Category   EventCategory `json:"category"`
	Action     string        `json:"action"`
	Timestamp  time.Time     `json:"timestamp"`
	TailNumber string        `json:"tail_number"`
	ScanID     string        `json:"scan_id,omitempty"`
	RequestID  string        `json:"request_id,omitempty"`
	// Outcome is the risk tier for scans and the access status for
	// utilization requests.
	Outcome       string `json:"outcome,omitempty"`
	Reason        string `json:"reason,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	Plan          string `json:"plan,omitempty"`
	ClientIP      string `json:"client_ip,omitempty"`
	Client        string `json:"client,omitempty"`
}

type AuditEvent string

const (
	// Scan events
	EventScanCompleted AuditEvent = "scan_completed"
	EventScanNotFound  AuditEvent = "scan_not_found"

	// Utilization events
	EventUtilizationServed AuditEvent = "utilization_served"
	EventUtilizationLocked AuditEvent = "utilization_locked"
	EventUtilizationDenied AuditEvent = "utilization_denied"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventScanCompleted:     CategoryScan,
	EventScanNotFound:      CategoryScan,
	EventUtilizationServed: CategoryAccess,
	EventUtilizationLocked: CategoryAccess,
	EventUtilizationDenied: CategoryAccess,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store is any sink an event can be appended to.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what domain services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
