package threadpriority

// Niceness bounds for the POSIX normal policies. Niceness is inverted:
// the numerically largest value is the lowest priority, so the minimum end
// of the priority range is 19 and the maximum end is -20.
const (
	NicenessMin = 19
	NicenessMax = -20
)

// Nominal sched_priority bounds for SCHED_FIFO and SCHED_RR. The live
// bounds are queried from the OS before anything is applied.
const (
	realtimePriorityMin = 1
	realtimePriorityMax = 99
)

// ScheduleParams mirror the native scheduling parameters of a thread under
// a non-deadline policy: sched_priority for the realtime policies, the nice
// value for the normal ones.
type ScheduleParams struct {
	Priority int
	Niceness int
}

// roundedDiv divides a by b rounding half away from zero. Operands must be
// non-negative; that is all the niceness rescale needs.
func roundedDiv(a, b int) int {
	return (a + b/2) / b
}

// The cross-platform range [0; 100) maps linearly onto niceness [19; -20]:
//
//	nice = 19 - round(39p/100)        p = round((19-nice)*100/39)
//
// Rounding half-up on both legs makes the pair exact: converting any
// niceness to a cross-platform value and back yields the same niceness.
// The decode leg clamps to 99 because nice -20 would otherwise invert to
// 100, one past the cross-platform domain.
func nicenessFromCrossPlatform(p int) int {
	return NicenessMin - roundedDiv(p*(NicenessMin-NicenessMax), 100)
}

func crossPlatformFromNiceness(nice int) int {
	p := roundedDiv((NicenessMin-nice)*100, NicenessMin-NicenessMax)
	if p > 99 {
		p = 99
	}
	if p < 0 {
		p = 0
	}
	return p
}

// validateRange checks inclusive containment after normalizing the bounds,
// so it works for niceness where the minimum is the larger integer.
func validateRange(value, a, b int) error {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if value < lo || value > hi {
		return newNotInRangeError(value, a, b)
	}
	return nil
}

// priorityToPosix converts a portable priority to the native POSIX value
// for the given policy. hasNiceness reports whether the platform supports
// per-thread niceness for the normal policies; without it only the
// conventional native value 0 is representable there.
func priorityToPosix(p ThreadPriority, policy ThreadSchedulePolicy, hasNiceness bool) (int, error) {
	if policy == PolicyDeadline {
		// Deadline scheduling has no sched_priority concept. The opaque OS
		// value is the trust-the-caller escape hatch and passes through.
		if v, ok := p.OsValue(); ok {
			return v, nil
		}
		return 0, &PriorityError{Reason: "the deadline policy has no scalar priority; set deadline attributes instead"}
	}

	switch {
	case p.IsMin():
		if policy.IsRealtime() {
			return realtimePriorityMin, nil
		}
		if hasNiceness {
			return NicenessMin, nil
		}
		return 0, nil

	case p.IsMax():
		if policy.IsRealtime() {
			return realtimePriorityMax, nil
		}
		if hasNiceness {
			return NicenessMax, nil
		}
		return 0, nil

	case p.IsCrossPlatform():
		v, _ := p.CrossPlatformValue()
		if policy.IsRealtime() {
			if err := validateRange(v, realtimePriorityMin, realtimePriorityMax); err != nil {
				return 0, err
			}
			return v, nil
		}
		if hasNiceness {
			nice := nicenessFromCrossPlatform(v)
			if err := validateRange(nice, NicenessMin, NicenessMax); err != nil {
				return 0, err
			}
			return nice, nil
		}
		if v != 0 {
			return 0, &PriorityError{Reason: "the value can only be 0 for the normal scheduling policies on this platform"}
		}
		return 0, nil

	case p.IsOs():
		v, _ := p.OsValue()
		if policy.IsRealtime() {
			if err := validateRange(v, realtimePriorityMin, realtimePriorityMax); err != nil {
				return 0, err
			}
			return v, nil
		}
		if hasNiceness {
			if err := validateRange(v, NicenessMin, NicenessMax); err != nil {
				return 0, err
			}
			return v, nil
		}
		if err := validateRange(v, 0, 0); err != nil {
			return 0, err
		}
		return v, nil

	default: // deadline priority under a non-deadline policy
		return 0, &PriorityError{Reason: "a deadline priority requires the deadline policy"}
	}
}

// priorityFromPosix reconstructs a portable priority from native scheduling
// parameters. It is total: a native value outside the cross-platform domain
// comes back as an opaque OS priority. The policy is needed to know which
// native domain the value lives in and to invert the niceness rescale.
func priorityFromPosix(params ScheduleParams, policy ThreadSchedulePolicy, hasNiceness bool) ThreadPriority {
	if policy.IsRealtime() {
		if p, err := NewCrossPlatformPriority(params.Priority); err == nil {
			return p
		}
		return OsPriority(params.Priority)
	}
	if hasNiceness {
		p, _ := NewCrossPlatformPriority(crossPlatformFromNiceness(params.Niceness))
		return p
	}
	if p, err := NewCrossPlatformPriority(params.Priority); err == nil {
		return p
	}
	return OsPriority(params.Priority)
}
