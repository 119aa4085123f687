// Package sentinel holds the infrastructure errors stores and remote clients
// return, optionally wrapped. Services translate them into domain errors.
package sentinel

import "errors"

var (
	// ErrNotFound: no row in the store, or the remote source has no record.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable: the remote source is unreachable or its circuit is open.
	ErrUnavailable = errors.New("unavailable")
)
