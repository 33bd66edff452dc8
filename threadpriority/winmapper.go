package threadpriority

// WinThreadPriority is the native Windows thread priority constant set, as
// taken and returned by SetThreadPriority/GetThreadPriority. The constants
// are part of the stable Win32 ABI and are defined here so the value
// mapping can be exercised on any platform.
type WinThreadPriority int32

const (
	WinPriorityIdle         WinThreadPriority = -15
	WinPriorityLowest       WinThreadPriority = -2
	WinPriorityBelowNormal  WinThreadPriority = -1
	WinPriorityNormal       WinThreadPriority = 0
	WinPriorityAboveNormal  WinThreadPriority = 1
	WinPriorityHighest      WinThreadPriority = 2
	WinPriorityTimeCritical WinThreadPriority = 15

	// Background-mode pseudo priorities. Valid only when applied to the
	// current thread; they switch resource scheduling into and out of
	// background processing mode rather than picking a priority level.
	WinPriorityBackgroundModeBegin WinThreadPriority = 0x00010000
	WinPriorityBackgroundModeEnd   WinThreadPriority = 0x00020000
)

// winPriorityErrorReturn is GetThreadPriority's failure sentinel
// (THREAD_PRIORITY_ERROR_RETURN).
const winPriorityErrorReturn = 0x7fffffff

// winPriorityFromThreadPriority converts a portable priority to the native
// Windows constant. There is no scheduling-policy axis on Windows, so the
// conversion is absolute. Cross-platform values are bucketed over fixed
// breakpoints; the gap values 20, 40, 60 and 80 have no level assigned and
// are rejected.
func winPriorityFromThreadPriority(p ThreadPriority) (WinThreadPriority, error) {
	switch {
	case p.IsMin():
		return WinPriorityLowest, nil

	case p.IsMax():
		return WinPriorityHighest, nil

	case p.IsCrossPlatform():
		v, _ := p.CrossPlatformValue()
		switch {
		case v == 0:
			return WinPriorityIdle, nil
		case v >= 1 && v <= 19:
			return WinPriorityLowest, nil
		case v >= 21 && v <= 39:
			return WinPriorityBelowNormal, nil
		case v >= 41 && v <= 59:
			return WinPriorityNormal, nil
		case v >= 61 && v <= 79:
			return WinPriorityAboveNormal, nil
		case v >= 81 && v <= 98:
			return WinPriorityHighest, nil
		case v == 99:
			return WinPriorityTimeCritical, nil
		default:
			return 0, &PriorityError{Reason: "the value has no Windows priority level assigned"}
		}

	case p.IsOs():
		v, _ := p.OsValue()
		if !isKnownWinPriority(WinThreadPriority(v)) {
			return 0, &PriorityError{Reason: "the value does not match any Windows thread priority constant"}
		}
		return WinThreadPriority(v), nil

	default: // deadline
		return 0, &PriorityError{Reason: "deadline scheduling is not available on Windows"}
	}
}

// winPriorityFromNative decodes a value read back from the OS. Anything
// outside the nine recognized constants is a DecodeError.
func winPriorityFromNative(v int32) (WinThreadPriority, error) {
	if !isKnownWinPriority(WinThreadPriority(v)) {
		return 0, &DecodeError{What: "thread priority", Value: int64(v)}
	}
	return WinThreadPriority(v), nil
}

func isKnownWinPriority(p WinThreadPriority) bool {
	switch p {
	case WinPriorityIdle, WinPriorityLowest, WinPriorityBelowNormal,
		WinPriorityNormal, WinPriorityAboveNormal, WinPriorityHighest,
		WinPriorityTimeCritical, WinPriorityBackgroundModeBegin,
		WinPriorityBackgroundModeEnd:
		return true
	}
	return false
}
