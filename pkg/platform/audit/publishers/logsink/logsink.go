// Package logsink writes audit events to a structured logger.
package logsink

import (
	"context"
	"log/slog"

	audit "tailscan/pkg/platform/audit"
)

type Sink struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit",
		"id", event.ID,
		"category", event.Category,
		"action", event.Action,
		"tail_number", event.TailNumber,
		"scan_id", event.ScanID,
		"request_id", event.RequestID,
		"outcome", event.Outcome,
		"reason", event.Reason,
		"payment_status", event.PaymentStatus,
		"plan", event.Plan,
		"client_ip", event.ClientIP,
		"client", event.Client,
	)
	return nil
}
