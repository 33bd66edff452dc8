//go:build windows

package threadpriority

import (
	"golang.org/x/sys/windows"
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadPriority       = kernel32.NewProc("SetThreadPriority")
	procGetThreadPriority       = kernel32.NewProc("GetThreadPriority")
	procSetThreadPriorityBoost  = kernel32.NewProc("SetThreadPriorityBoost")
	procSetThreadIdealProcessor = kernel32.NewProc("SetThreadIdealProcessor")
)

// SetThreadIdealProcessor's failure sentinel, (DWORD)-1.
const idealProcessorErrorReturn = 0xffffffff

// CurrentThreadID returns the calling thread's pseudo handle. It is only
// meaningful when used from the thread itself, which is exactly the scope
// of the operations here.
func CurrentThreadID() ThreadID {
	return ThreadID{handle: uintptr(windows.CurrentThread())}
}

// SetThreadPriority converts the portable priority to its Windows level
// and applies it.
func SetThreadPriority(id ThreadID, p ThreadPriority) error {
	native, err := winPriorityFromThreadPriority(p)
	if err != nil {
		return err
	}
	return SetWinThreadPriority(id, native)
}

// SetWinThreadPriority applies a native Windows priority constant directly.
func SetWinThreadPriority(id ThreadID, p WinThreadPriority) error {
	r1, _, callErr := procSetThreadPriority.Call(id.handle, uintptr(uint32(int32(p))))
	if r1 == 0 {
		return windowsOSError(callErr)
	}
	return nil
}

// GetThreadPriority reads the thread's priority. The result is an OS
// priority wrapping one of the nine recognized constants; anything else
// read back from the system is a DecodeError.
func GetThreadPriority(id ThreadID) (ThreadPriority, error) {
	r1, _, callErr := procGetThreadPriority.Call(id.handle)
	v := int32(r1)
	if v == winPriorityErrorReturn {
		return ThreadPriority{}, windowsOSError(callErr)
	}
	native, err := winPriorityFromNative(v)
	if err != nil {
		return ThreadPriority{}, err
	}
	return OsPriority(int(native)), nil
}

// SetThreadScheduling exists for parity with the POSIX side. Windows has
// no scheduling-policy axis, so only the normal policies are accepted and
// the priority is applied absolutely.
func SetThreadScheduling(id ThreadID, p ThreadPriority, policy ThreadSchedulePolicy) error {
	if policy.IsRealtime() {
		return &PriorityError{Reason: "scheduling policies are not supported on Windows"}
	}
	return SetThreadPriority(id, p)
}

// SetThreadPriorityBoost disables or re-enables the system's temporary
// priority boosting for the thread.
func SetThreadPriorityBoost(id ThreadID, disabled bool) error {
	var flag uintptr
	if disabled {
		flag = 1
	}
	r1, _, callErr := procSetThreadPriorityBoost.Call(id.handle, flag)
	if r1 == 0 {
		return windowsOSError(callErr)
	}
	return nil
}

// SetCurrentThreadPriorityBoost is SetThreadPriorityBoost for the calling
// thread.
func SetCurrentThreadPriorityBoost(disabled bool) error {
	return SetThreadPriorityBoost(CurrentThreadID(), disabled)
}

// SetThreadIdealProcessor hints the scheduler to prefer the given
// zero-based logical processor for the thread and returns the previous
// assignment. It is a preference, not an affinity mask.
func SetThreadIdealProcessor(id ThreadID, processor int) (previous int, err error) {
	if processor < 0 {
		return 0, &PriorityError{Reason: "processor index must be zero-based and non-negative"}
	}
	r1, _, callErr := procSetThreadIdealProcessor.Call(id.handle, uintptr(processor))
	if uint32(r1) == idealProcessorErrorReturn {
		return 0, windowsOSError(callErr)
	}
	return int(uint32(r1)), nil
}

// SetCurrentThreadIdealProcessor is SetThreadIdealProcessor for the
// calling thread.
func SetCurrentThreadIdealProcessor(processor int) (int, error) {
	return SetThreadIdealProcessor(CurrentThreadID(), processor)
}

func windowsOSError(callErr error) error {
	if errno, ok := callErr.(windows.Errno); ok {
		return &OSError{Code: int(errno), Err: errno}
	}
	return &OSError{Code: -1, Err: callErr}
}
