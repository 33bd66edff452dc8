package threadpriority

import "fmt"

// ThreadID identifies a native OS thread: a kernel thread id on Linux, a
// thread HANDLE on Windows. It may or may not be related to any Go-level
// goroutine identity and stays meaningful only while the underlying OS
// thread is alive. Pin the goroutine with runtime.LockOSThread if the id of
// the calling thread must remain stable.
type ThreadID struct {
	handle uintptr
}

// NewThreadID wraps an externally obtained native thread id, e.g. a Linux
// tid read from /proc. The value is platform-specific and unvalidated.
func NewThreadID(native uint64) ThreadID {
	return ThreadID{handle: uintptr(native)}
}

// Valid reports whether the id holds a usable native value.
func (id ThreadID) Valid() bool {
	return id.handle != 0
}

func (id ThreadID) String() string {
	return fmt.Sprintf("%d", uint64(id.handle))
}

// Thread is an immutable snapshot of a native thread's scheduling at the
// moment it was read. It is never updated in place; query again for fresh
// values.
type Thread struct {
	Priority ThreadPriority
	ID       ThreadID
}

// CurrentThread snapshots the calling thread.
func CurrentThread() (Thread, error) {
	id := CurrentThreadID()
	priority, err := GetThreadPriority(id)
	if err != nil {
		return Thread{}, err
	}
	return Thread{Priority: priority, ID: id}, nil
}

// SetCurrentThreadPriority applies priority to the calling thread under the
// normal scheduling policy.
func SetCurrentThreadPriority(p ThreadPriority) error {
	return SetThreadPriority(CurrentThreadID(), p)
}

// GetCurrentThreadPriority reads the calling thread's priority.
func GetCurrentThreadPriority() (ThreadPriority, error) {
	return GetThreadPriority(CurrentThreadID())
}
