package threadpriority

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by every scheduling operation on
// platforms that are neither Linux nor Windows.
var ErrUnsupportedPlatform = errors.New("thread scheduling is not supported on this platform")

// PriorityError reports a priority/policy combination that is rejected
// before any syscall is made.
type PriorityError struct {
	Reason string
}

func (e *PriorityError) Error() string {
	return fmt.Sprintf("invalid thread priority: %s", e.Reason)
}

// NotInRangeError reports a well-formed priority value that falls outside
// the allowed native range. Low and High are normalized so Low <= High,
// even for domains such as niceness where the minimum priority is the
// numerically largest value.
type NotInRangeError struct {
	Value int
	Low   int
	High  int
}

func newNotInRangeError(value, a, b int) *NotInRangeError {
	if a > b {
		a, b = b, a
	}
	return &NotInRangeError{Value: value, Low: a, High: b}
}

func (e *NotInRangeError) Error() string {
	return fmt.Sprintf("priority value %d is not in the allowed range [%d; %d]", e.Value, e.Low, e.High)
}

// OSError carries the native error code returned by the scheduling syscall.
type OSError struct {
	Code int
	Err  error
}

func (e *OSError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("os error %d: %s", e.Code, e.Err.Error())
	}
	return fmt.Sprintf("os error %d", e.Code)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

// DecodeError reports a value read back from the OS that does not match any
// known policy or priority constant. It should not occur on supported
// platforms and usually signals a platform/library version skew.
type DecodeError struct {
	What  string
	Value int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unrecognized native %s value %d", e.What, e.Value)
}
