//go:build !linux && !windows

package threadpriority

// Thread-level scheduling control needs either the Linux sched syscalls or
// the Windows thread APIs; everywhere else the operations compile but
// report ErrUnsupportedPlatform so callers can degrade gracefully.

func CurrentThreadID() ThreadID {
	return ThreadID{}
}

func GetThreadPriority(_ ThreadID) (ThreadPriority, error) {
	return ThreadPriority{}, ErrUnsupportedPlatform
}

func SetThreadPriority(_ ThreadID, _ ThreadPriority) error {
	return ErrUnsupportedPlatform
}

func SetThreadScheduling(_ ThreadID, _ ThreadPriority, _ ThreadSchedulePolicy) error {
	return ErrUnsupportedPlatform
}
