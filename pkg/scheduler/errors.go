package scheduler

import "errors"

// Kind classifies every non-success outcome of a scheduling run. Callers
// branch on the kind to phrase the user-facing message; nothing here is a
// transient failure, so nothing is ever retried.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors this package did not produce.
	KindUnknown Kind = iota
	// KindInvalidConstraints marks malformed input such as a non-positive
	// duration or a range whose start is after its end.
	KindInvalidConstraints
	// KindInvalidInterval marks a busy interval with start >= end.
	KindInvalidInterval
	// KindNoAvailability means the participants share no free time at all
	// in the requested range.
	KindNoAvailability
	// KindNoSlotsAfterConstraints means common free time exists but no
	// candidate satisfies the duration, deadline and lead-time constraints.
	KindNoSlotsAfterConstraints
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConstraints:
		return "invalid constraints"
	case KindInvalidInterval:
		return "invalid interval"
	case KindNoAvailability:
		return "no common availability in range"
	case KindNoSlotsAfterConstraints:
		return "no slots satisfy constraints"
	default:
		return "unknown scheduling error"
	}
}

// Error is a classified scheduling failure returned as a value, never
// panicked across component boundaries.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.msg
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// KindOf extracts the scheduling error kind from err, unwrapping as needed.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
