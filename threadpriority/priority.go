// Package threadpriority reads and sets the scheduling priority and policy
// of operating-system threads. Linux is covered through the sched syscall
// family (including SCHED_DEADLINE), Windows through its thread-priority
// APIs; other platforms compile but report ErrUnsupportedPlatform.
package threadpriority

import (
	"fmt"
	"time"
)

type priorityKind int

const (
	kindMin priorityKind = iota
	kindCrossPlatform
	kindMax
	kindOs
	kindDeadline
)

// DeadlineFlags are passed through opaquely to the Linux deadline
// scheduler. Values match the kernel's SCHED_FLAG_* constants.
type DeadlineFlags uint64

const (
	// DeadlineFlagResetOnFork reverts children to normal scheduling on fork.
	DeadlineFlagResetOnFork DeadlineFlags = 0x01
	// DeadlineFlagReclaim allows the thread to reclaim unused bandwidth.
	DeadlineFlagReclaim DeadlineFlags = 0x02
	// DeadlineFlagOverrunSignal delivers SIGXCPU when the runtime is overrun.
	DeadlineFlagOverrunSignal DeadlineFlags = 0x04
)

// DeadlineParams hold the three durations of Linux deadline scheduling.
// The kernel enforces Runtime <= Deadline <= Period; a violation surfaces
// as an OSError from the set call, not as a local validation failure.
type DeadlineParams struct {
	Runtime  time.Duration
	Deadline time.Duration
	Period   time.Duration
	Flags    DeadlineFlags
}

// ThreadPriority is the portable priority value. Exactly one of the five
// variants is held: minimum, maximum, a cross-platform percentage, an
// opaque OS-specific value, or Linux deadline parameters.
type ThreadPriority struct {
	kind     priorityKind
	value    int
	deadline DeadlineParams
}

// MinPriority is the lowest priority representable under whatever policy is
// active when it is applied.
func MinPriority() ThreadPriority {
	return ThreadPriority{kind: kindMin}
}

// MaxPriority is the highest priority representable under whatever policy
// is active when it is applied. Use with caution: under realtime policies
// it can starve the rest of the system.
func MaxPriority() ThreadPriority {
	return ThreadPriority{kind: kindMax}
}

// NewCrossPlatformPriority is the only way to obtain a cross-platform
// priority; v is percentage-like and must lie in [0; 100).
func NewCrossPlatformPriority(v int) (ThreadPriority, error) {
	if v < 0 || v >= 100 {
		return ThreadPriority{}, &PriorityError{Reason: "the value is out of range [0; 99]"}
	}
	return ThreadPriority{kind: kindCrossPlatform, value: v}, nil
}

// OsPriority wraps an already-platform-specific value (a POSIX
// sched_priority or niceness, or a Windows priority constant). It bypasses
// the portable mapping; membership is only checked against the native
// domain when the value is applied or read back.
func OsPriority(v int) ThreadPriority {
	return ThreadPriority{kind: kindOs, value: v}
}

// NewDeadlinePriority builds a Linux deadline priority from the given
// parameters. Deadline scheduling has no scalar priority at all, so the
// result is incompatible with every policy except the deadline policy.
func NewDeadlinePriority(params DeadlineParams) (ThreadPriority, error) {
	if params.Runtime < 0 || params.Deadline < 0 || params.Period < 0 {
		return ThreadPriority{}, &PriorityError{Reason: "deadline durations must not be negative"}
	}
	return ThreadPriority{kind: kindDeadline, deadline: params}, nil
}

func (p ThreadPriority) IsMin() bool           { return p.kind == kindMin }
func (p ThreadPriority) IsMax() bool           { return p.kind == kindMax }
func (p ThreadPriority) IsCrossPlatform() bool { return p.kind == kindCrossPlatform }
func (p ThreadPriority) IsOs() bool            { return p.kind == kindOs }
func (p ThreadPriority) IsDeadline() bool      { return p.kind == kindDeadline }

// CrossPlatformValue returns the percentage value when p is a
// cross-platform priority.
func (p ThreadPriority) CrossPlatformValue() (int, bool) {
	return p.value, p.kind == kindCrossPlatform
}

// OsValue returns the opaque native value when p is an OS priority.
func (p ThreadPriority) OsValue() (int, bool) {
	return p.value, p.kind == kindOs
}

// Deadline returns the deadline parameters when p is a deadline priority.
func (p ThreadPriority) Deadline() (DeadlineParams, bool) {
	return p.deadline, p.kind == kindDeadline
}

func (p ThreadPriority) Equal(other ThreadPriority) bool {
	return p.kind == other.kind && p.value == other.value && p.deadline == other.deadline
}

// Less defines an ordering for display and sorting only:
// Min < CrossPlatform(n1) < CrossPlatform(n2) < Max for n1 < n2. Comparing
// across variants says nothing about how the OS schedules them.
func (p ThreadPriority) Less(other ThreadPriority) bool {
	rank := func(k priorityKind) int {
		switch k {
		case kindMin:
			return 0
		case kindCrossPlatform:
			return 1
		case kindMax:
			return 2
		case kindOs:
			return 3
		default:
			return 4
		}
	}
	if rank(p.kind) != rank(other.kind) {
		return rank(p.kind) < rank(other.kind)
	}
	return p.value < other.value
}

func (p ThreadPriority) String() string {
	switch p.kind {
	case kindMin:
		return "min"
	case kindMax:
		return "max"
	case kindCrossPlatform:
		return fmt.Sprintf("cross-platform(%d)", p.value)
	case kindOs:
		return fmt.Sprintf("os(%d)", p.value)
	default:
		return fmt.Sprintf("deadline(runtime=%s, deadline=%s, period=%s)",
			p.deadline.Runtime, p.deadline.Deadline, p.deadline.Period)
	}
}
