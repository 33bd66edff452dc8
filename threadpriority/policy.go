package threadpriority

import (
	bosherr "github.com/cloudfoundry/schedutils/errors"
)

// ThreadSchedulePolicy selects the scheduler discipline for a thread.
// The normal policies share the fair-share scheduler; the realtime policies
// preempt it. PolicyDeadline exists only on Linux.
type ThreadSchedulePolicy int

const (
	// PolicyNormal is the standard time-sharing policy (SCHED_OTHER).
	PolicyNormal ThreadSchedulePolicy = iota
	// PolicyBatch is for non-interactive batch-style workloads.
	PolicyBatch
	// PolicyIdle is for very low priority background jobs.
	PolicyIdle
	// PolicyFifo is first-in, first-out realtime scheduling.
	PolicyFifo
	// PolicyRoundRobin is realtime scheduling with time slicing.
	PolicyRoundRobin
	// PolicyDeadline is Linux deadline scheduling.
	PolicyDeadline
)

// IsRealtime reports whether the policy belongs to the realtime class.
func (p ThreadSchedulePolicy) IsRealtime() bool {
	return p == PolicyFifo || p == PolicyRoundRobin || p == PolicyDeadline
}

func (p ThreadSchedulePolicy) String() string {
	switch p {
	case PolicyNormal:
		return "normal"
	case PolicyBatch:
		return "batch"
	case PolicyIdle:
		return "idle"
	case PolicyFifo:
		return "fifo"
	case PolicyRoundRobin:
		return "round-robin"
	case PolicyDeadline:
		return "deadline"
	}
	return "unknown"
}

// ParsePolicy maps a policy name to its ThreadSchedulePolicy. "other" and
// "rr" are accepted as aliases for normal and round-robin.
func ParsePolicy(name string) (ThreadSchedulePolicy, error) {
	switch name {
	case "normal", "other":
		return PolicyNormal, nil
	case "batch":
		return PolicyBatch, nil
	case "idle":
		return PolicyIdle, nil
	case "fifo":
		return PolicyFifo, nil
	case "round-robin", "rr":
		return PolicyRoundRobin, nil
	case "deadline":
		return PolicyDeadline, nil
	default:
		return PolicyNormal, bosherr.Errorf("Unknown scheduling policy '%s', expected one of [normal, batch, idle, fifo, round-robin, deadline]", name)
	}
}
