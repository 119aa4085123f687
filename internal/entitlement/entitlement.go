// Package entitlement carries a caller's payment status and plan tier in a
// signed token and exposes it to handlers through the request context.
package entitlement

import (
	"context"
	"strings"
)

// PaymentStatus is whether the caller has paid for the report.
type PaymentStatus string

const (
	StatusUnpaid PaymentStatus = "unpaid"
	StatusPaid   PaymentStatus = "paid"
)

// Plan is the purchased tier. Basic sees the forensic summary, full also
// sees utilization.
type Plan string

const (
	PlanNone  Plan = "none"
	PlanBasic Plan = "basic"
	PlanFull  Plan = "full"
)

// ParsePlan maps a plan identifier to a tier. Unrecognised identifiers get
// the lowest paid tier.
func ParsePlan(raw string) Plan {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case s == "FULL" || s == "PRO" || strings.HasPrefix(s, "PRO_") || strings.HasPrefix(s, "FULL_"):
		return PlanFull
	case s == "NONE":
		return PlanNone
	default:
		return PlanBasic
	}
}

// ParsePaymentStatus accepts "paid" case-insensitively; anything else is unpaid.
func ParsePaymentStatus(raw string) PaymentStatus {
	if strings.EqualFold(strings.TrimSpace(raw), string(StatusPaid)) {
		return StatusPaid
	}
	return StatusUnpaid
}

// Entitlement is what the caller may see. TailNumber scopes a paid
// entitlement to one aircraft; empty means any aircraft.
type Entitlement struct {
	PaymentStatus PaymentStatus `json:"payment_status"`
	Plan          Plan          `json:"plan"`
	TailNumber    string        `json:"tail_number,omitempty"`
}

// Anonymous is the entitlement of a caller without a token.
var Anonymous = Entitlement{PaymentStatus: StatusUnpaid, Plan: PlanNone}

func (e Entitlement) Paid() bool { return e.PaymentStatus == StatusPaid }

// For narrows e to tail. A token bought for another aircraft is unpaid here.
func (e Entitlement) For(tail string) Entitlement {
	if e.TailNumber != "" && e.TailNumber != tail {
		return Anonymous
	}
	if !e.Paid() {
		return Entitlement{PaymentStatus: StatusUnpaid, Plan: PlanNone, TailNumber: e.TailNumber}
	}
	return e
}

type contextKeyEntitlement struct{}

// WithEntitlement stores e in ctx.
func WithEntitlement(ctx context.Context, e Entitlement) context.Context {
	return context.WithValue(ctx, contextKeyEntitlement{}, e)
}

// FromContext returns the caller's entitlement, or Anonymous.
func FromContext(ctx context.Context) Entitlement {
	e, ok := ctx.Value(contextKeyEntitlement{}).(Entitlement)
	if !ok {
		return Anonymous
	}
	return e
}
