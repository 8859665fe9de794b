// Package eventlib is a convenience layer over the UEFI Boot Services
// event, timer and task priority services. It forwards to an event service
// table (live firmware or the eventsim double) and translates EFI statuses
// into Go errors; the firmware owns the event queue, the timer tick and
// notification dispatch.
package eventlib

import (
	"sync/atomic"

	"github.com/costinm/efi-events/pkg/uefi"
)

// Notify is an event notification function. The firmware runs it at the
// task priority level the event was created with, with the context passed
// at creation.
type Notify func(event uefi.EFI_EVENT, context any)

// Table is the event service surface of EFI_BOOT_SERVICES. It has no
// dependencies on the live firmware binding so it can be implemented by a
// test double.
type Table interface {
	CreateEvent(typ uint32, notifyTpl uefi.EFI_TPL, notify Notify, context any) (uefi.EFI_EVENT, uefi.EFI_STATUS)
	CreateEventEx(typ uint32, notifyTpl uefi.EFI_TPL, notify Notify, context any, group *uefi.EFI_GUID) (uefi.EFI_EVENT, uefi.EFI_STATUS)
	SetTimer(event uefi.EFI_EVENT, kind uefi.EFI_TIMER_DELAY, triggerTime uint64) uefi.EFI_STATUS
	SignalEvent(event uefi.EFI_EVENT) uefi.EFI_STATUS
	WaitForEvent(events []uefi.EFI_EVENT) (int, uefi.EFI_STATUS)
	CheckEvent(event uefi.EFI_EVENT) uefi.EFI_STATUS
	CloseEvent(event uefi.EFI_EVENT) uefi.EFI_STATUS
}

// Phase reports whether the system is past the boot-to-runtime transition.
// Boot services, and with them every operation in this package, are gone
// once ExitBootServices has completed.
type Phase interface {
	AtRuntime() bool
}

// PhaseFlag is a Phase for live use: the application flips it from its
// exit-boot-services path.
type PhaseFlag struct {
	atRuntime atomic.Bool
}

func (p *PhaseFlag) AtRuntime() bool {
	return p.atRuntime.Load()
}

// SetAtRuntime marks the boot-to-runtime transition. It cannot be undone.
func (p *PhaseFlag) SetAtRuntime() {
	p.atRuntime.Store(true)
}
