// Package model defines the core workload types — Core, Component, Task,
// Job — and the invariants spec.md §3 places on them.
package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds from spec.md §7. Wrap with fmt.Errorf("...: %w", ...)
// and test with errors.Is.
var (
	// ErrMalformedInput covers unknown scheduler tags encountered while
	// building domain values. Missing columns and unparsable numbers are
	// reported by tableio.InputError, which does not wrap this sentinel.
	ErrMalformedInput = errors.New("malformed input")

	// ErrConstraintViolated covers Q>P, duplicate RM priorities, missing
	// RM priority, and dangling cross-references.
	ErrConstraintViolated = errors.New("constraint violated")

	// ErrConfigOutOfRange covers speed_factor<=0, period<=0, wcet>period.
	ErrConfigOutOfRange = errors.New("configuration out of range")
)

// wrap annotates msg onto one of the sentinel kinds above.
func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
