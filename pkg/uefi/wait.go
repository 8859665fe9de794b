package uefi

import (
	"runtime"
)

// WaitSignaled blocks until event is signaled, polling CheckEvent while
// yielding to other goroutines. This differs from BS().WaitForEvent, which
// is a hard-block; the CPU is entirely stalled.
//
// Misuse statuses (closed handle, EVT_NOTIFY_SIGNAL event) are returned
// instead of being polled on forever.
func WaitSignaled(event EFI_EVENT) error {
	for {
		status := BS().CheckEvent(event)
		switch status {
		case EFI_SUCCESS:
			return nil
		case EFI_NOT_READY:
			runtime.Gosched()
		default:
			return StatusError(status)
		}
	}
}
