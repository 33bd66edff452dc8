//go:build linux

package threadpriority

import (
	"time"

	"golang.org/x/sys/unix"
)

// Scheduling policy constants, as exposed by sched_getscheduler(2).
const (
	schedNormal   = 0
	schedFifo     = 1
	schedRR       = 2
	schedBatch    = 3
	schedIdle     = 5
	schedDeadline = 6
)

// Linux has per-thread niceness: the nice value of a thread under a normal
// policy is its own, not the process's.
const platformHasThreadNiceness = true

// CurrentThreadID returns the calling thread's kernel thread id.
func CurrentThreadID() ThreadID {
	return ThreadID{handle: uintptr(unix.Gettid())}
}

func policyToPosix(policy ThreadSchedulePolicy) (uint32, error) {
	switch policy {
	case PolicyNormal:
		return schedNormal, nil
	case PolicyBatch:
		return schedBatch, nil
	case PolicyIdle:
		return schedIdle, nil
	case PolicyFifo:
		return schedFifo, nil
	case PolicyRoundRobin:
		return schedRR, nil
	case PolicyDeadline:
		return schedDeadline, nil
	default:
		return 0, &PriorityError{Reason: "unknown scheduling policy"}
	}
}

func policyFromPosix(native uint32) (ThreadSchedulePolicy, error) {
	switch native {
	case schedNormal:
		return PolicyNormal, nil
	case schedBatch:
		return PolicyBatch, nil
	case schedIdle:
		return PolicyIdle, nil
	case schedFifo:
		return PolicyFifo, nil
	case schedRR:
		return PolicyRoundRobin, nil
	case schedDeadline:
		return PolicyDeadline, nil
	default:
		return PolicyNormal, &DecodeError{What: "scheduling policy", Value: int64(native)}
	}
}

// PosixPriorityMin returns the smallest native priority value valid under
// the policy: the OS-queried sched_priority minimum for the realtime
// policies, the lowest-priority niceness for the normal ones.
func PosixPriorityMin(policy ThreadSchedulePolicy) (int, error) {
	return queriedPriorityBound(policy, unix.SYS_SCHED_GET_PRIORITY_MIN, NicenessMin)
}

// PosixPriorityMax is the counterpart of PosixPriorityMin. For the normal
// policies the returned niceness is numerically smaller than the minimum;
// range checks normalize for that.
func PosixPriorityMax(policy ThreadSchedulePolicy) (int, error) {
	return queriedPriorityBound(policy, unix.SYS_SCHED_GET_PRIORITY_MAX, NicenessMax)
}

func queriedPriorityBound(policy ThreadSchedulePolicy, trap uintptr, niceBound int) (int, error) {
	if policy == PolicyDeadline {
		return 0, &PriorityError{Reason: "the deadline policy has no scalar priority"}
	}
	if !policy.IsRealtime() {
		return niceBound, nil
	}
	native, err := policyToPosix(policy)
	if err != nil {
		return 0, err
	}
	r, _, errno := unix.Syscall(trap, uintptr(native), 0, 0)
	if errno != 0 {
		return 0, &OSError{Code: int(errno), Err: errno}
	}
	return int(int64(r)), nil
}

// PriorityToPosix converts a portable priority to its native value under
// the policy, validating against the OS-reported range for the realtime
// policies and the fixed niceness bounds for the normal ones.
func PriorityToPosix(p ThreadPriority, policy ThreadSchedulePolicy) (int, error) {
	native, err := priorityToPosix(p, policy, platformHasThreadNiceness)
	if err != nil {
		return 0, err
	}
	if policy == PolicyFifo || policy == PolicyRoundRobin {
		min, err := PosixPriorityMin(policy)
		if err != nil {
			return 0, err
		}
		max, err := PosixPriorityMax(policy)
		if err != nil {
			return 0, err
		}
		if err := validateRange(native, min, max); err != nil {
			return 0, err
		}
	}
	return native, nil
}

// PriorityFromPosix reconstructs a portable priority from native
// scheduling parameters read under the given policy.
func PriorityFromPosix(params ScheduleParams, policy ThreadSchedulePolicy) ThreadPriority {
	return priorityFromPosix(params, policy, platformHasThreadNiceness)
}

// SetThreadScheduling applies priority to the thread under the policy in a
// single sched_setattr call. Deadline priorities are routed to the
// attribute path; realtime priorities may require privileges.
func SetThreadScheduling(id ThreadID, p ThreadPriority, policy ThreadSchedulePolicy) error {
	if policy == PolicyDeadline {
		params, ok := p.Deadline()
		if !ok {
			return &PriorityError{Reason: "the deadline policy needs a deadline priority"}
		}
		return SetThreadDeadline(id, params)
	}
	if p.IsDeadline() {
		return &PriorityError{Reason: "a deadline priority requires the deadline policy"}
	}

	native, err := PriorityToPosix(p, policy)
	if err != nil {
		return err
	}
	nativePolicy, err := policyToPosix(policy)
	if err != nil {
		return err
	}

	attr := unix.SchedAttr{
		Size:   unix.SizeofSchedAttr,
		Policy: nativePolicy,
	}
	if policy.IsRealtime() {
		attr.Priority = uint32(native)
	} else {
		attr.Nice = int32(native)
	}
	if err := unix.SchedSetAttr(tid(id), &attr, 0); err != nil {
		return osError(err)
	}
	return nil
}

// SetThreadPriority applies priority under the normal scheduling policy.
func SetThreadPriority(id ThreadID, p ThreadPriority) error {
	return SetThreadScheduling(id, p, PolicyNormal)
}

// GetThreadPriority reads the thread's native scheduling attributes and
// reconstructs the portable priority. A deadline-scheduled thread comes
// back as a deadline priority carrying the three durations.
func GetThreadPriority(id ThreadID) (ThreadPriority, error) {
	attr, policy, err := readSchedAttr(id)
	if err != nil {
		return ThreadPriority{}, err
	}
	if policy == PolicyDeadline {
		return deadlinePriorityFromAttr(attr)
	}
	params := ScheduleParams{Priority: int(attr.Priority), Niceness: int(attr.Nice)}
	return PriorityFromPosix(params, policy), nil
}

// ThreadSchedulePolicyParams reads the thread's policy together with its
// native scheduling parameters.
func ThreadSchedulePolicyParams(id ThreadID) (ThreadSchedulePolicy, ScheduleParams, error) {
	attr, policy, err := readSchedAttr(id)
	if err != nil {
		return PolicyNormal, ScheduleParams{}, err
	}
	return policy, ScheduleParams{Priority: int(attr.Priority), Niceness: int(attr.Nice)}, nil
}

// SetThreadDeadline submits deadline attributes for the thread. The kernel
// enforces runtime <= deadline <= period; violations surface as an OSError.
func SetThreadDeadline(id ThreadID, params DeadlineParams) error {
	if params.Runtime < 0 || params.Deadline < 0 || params.Period < 0 {
		return &PriorityError{Reason: "deadline durations must not be negative"}
	}
	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   schedDeadline,
		Flags:    uint64(params.Flags),
		Runtime:  uint64(params.Runtime),
		Deadline: uint64(params.Deadline),
		Period:   uint64(params.Period),
	}
	if err := unix.SchedSetAttr(tid(id), &attr, 0); err != nil {
		return osError(err)
	}
	return nil
}

// ThreadDeadlineParams reads back the deadline attributes of a
// deadline-scheduled thread.
func ThreadDeadlineParams(id ThreadID) (DeadlineParams, error) {
	attr, policy, err := readSchedAttr(id)
	if err != nil {
		return DeadlineParams{}, err
	}
	if policy != PolicyDeadline {
		return DeadlineParams{}, &PriorityError{Reason: "the thread is not deadline-scheduled"}
	}
	return DeadlineParams{
		Runtime:  time.Duration(attr.Runtime),
		Deadline: time.Duration(attr.Deadline),
		Period:   time.Duration(attr.Period),
		Flags:    DeadlineFlags(attr.Flags),
	}, nil
}

func deadlinePriorityFromAttr(attr *unix.SchedAttr) (ThreadPriority, error) {
	return NewDeadlinePriority(DeadlineParams{
		Runtime:  time.Duration(attr.Runtime),
		Deadline: time.Duration(attr.Deadline),
		Period:   time.Duration(attr.Period),
		Flags:    DeadlineFlags(attr.Flags),
	})
}

func readSchedAttr(id ThreadID) (*unix.SchedAttr, ThreadSchedulePolicy, error) {
	attr, err := unix.SchedGetAttr(tid(id), 0)
	if err != nil {
		return nil, PolicyNormal, osError(err)
	}
	policy, err := policyFromPosix(attr.Policy)
	if err != nil {
		return nil, PolicyNormal, err
	}
	return attr, policy, nil
}

func tid(id ThreadID) int {
	return int(id.handle)
}

func osError(err error) error {
	if errno, ok := err.(unix.Errno); ok {
		return &OSError{Code: int(errno), Err: errno}
	}
	return &OSError{Code: -1, Err: err}
}
