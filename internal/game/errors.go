// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

package game

import "fmt"

// Kind is the error taxonomy described in spec §7: a fixed set of kinds the
// HTTP boundary maps to status codes, not concrete Go error types.
type Kind string

const (
	KindBadAction Kind = "BadAction"
	KindConflict  Kind = "Conflict"
	KindSeatError Kind = "SeatError"
	KindFinished  Kind = "Finished"
	KindNotFound  Kind = "NotFound"
)

// Error is the one error type the coordinator ever returns. Engine-level
// failures bubble up and are converted to this taxonomy at the coordinator
// boundary; the HTTP layer never needs to type-switch on anything else.
type Error struct {
	Kind    Kind
	Message string
	Hints   map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newErrorWithHints(kind Kind, hints map[string]any, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Hints: hints}
}

// NewBoundaryError lets the HTTP layer report shape-validation failures
// (malformed JSON, non-integer query parameters) using the same taxonomy
// the coordinator returns, without exposing the unexported constructors.
func NewBoundaryError(kind Kind, format string, args ...any) *Error {
	return newError(kind, format, args...)
}
