package audit

import "errors"

var (
	// ErrInvalidIdentifier rejects malformed address-shaped input before any
	// evidence collection begins.
	ErrInvalidIdentifier = errors.New("invalid project identifier")

	// ErrInsufficientEvidence is returned when both evidence sources failed
	// and no score can be computed. Fatal to the single audit, never retried
	// here.
	ErrInsufficientEvidence = errors.New("insufficient evidence")

	// ErrInsightUnavailable marks a failed AI insight call. Recovered
	// locally: it lowers confidence but never fails the audit.
	ErrInsightUnavailable = errors.New("insight unavailable")
)
