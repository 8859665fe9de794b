package eventlib

import (
	"errors"

	"github.com/costinm/efi-events/pkg/uefi"
)

// ErrAtRuntime is returned by every operation once the Phase reports the
// system past the boot-to-runtime transition.
var ErrAtRuntime = errors.New("boot services are not available at runtime")

// Lib forwards event operations to a service table. The zero value is not
// usable; construct with New.
type Lib struct {
	bs    Table
	phase Phase
}

// New returns a Lib calling into bs. phase gates every operation; a nil
// phase means the system never leaves the boot phase, which is only
// appropriate for tables that outlive ExitBootServices themselves.
func New(bs Table, phase Phase) *Lib {
	return &Lib{bs: bs, phase: phase}
}

func (l *Lib) guard() error {
	if l.phase != nil && l.phase.AtRuntime() {
		return ErrAtRuntime
	}
	return nil
}

// CreateEvent creates an event of the given type. Events of type
// EVT_NOTIFY_WAIT or EVT_NOTIFY_SIGNAL require a notify function, which
// will later run at notifyTpl.
func (l *Lib) CreateEvent(typ uint32, notifyTpl uefi.EFI_TPL, notify Notify, context any) (uefi.EFI_EVENT, error) {
	if err := l.guard(); err != nil {
		return 0, err
	}
	if typ&(uefi.EVT_NOTIFY_SIGNAL|uefi.EVT_NOTIFY_WAIT) != 0 && notify == nil {
		return 0, uefi.ErrInvalidParameter
	}

	event, status := l.bs.CreateEvent(typ, notifyTpl, notify, context)

	if status != uefi.EFI_SUCCESS {
		return 0, uefi.StatusError(status)
	}
	return event, nil
}

// CreateEventEx creates an event in the given group. A nil group behaves
// exactly as CreateEvent.
func (l *Lib) CreateEventEx(typ uint32, notifyTpl uefi.EFI_TPL, notify Notify, context any, group *uefi.EFI_GUID) (uefi.EFI_EVENT, error) {
	if err := l.guard(); err != nil {
		return 0, err
	}
	if typ&(uefi.EVT_NOTIFY_SIGNAL|uefi.EVT_NOTIFY_WAIT) != 0 && notify == nil {
		return 0, uefi.ErrInvalidParameter
	}

	event, status := l.bs.CreateEventEx(typ, notifyTpl, notify, context, group)

	if status != uefi.EFI_SUCCESS {
		return 0, uefi.StatusError(status)
	}
	return event, nil
}

// SetTimer arms (TimerPeriodic, TimerRelative) or disarms (TimerCancel)
// the timer of a timer event. triggerTime counts 100ns units; 0 means the
// next tick for TimerRelative and every tick for TimerPeriodic.
func (l *Lib) SetTimer(event uefi.EFI_EVENT, kind uefi.EFI_TIMER_DELAY, triggerTime uint64) error {
	if err := l.guard(); err != nil {
		return err
	}
	if event == 0 || kind > uefi.TimerRelative {
		return uefi.ErrInvalidParameter
	}

	if status := l.bs.SetTimer(event, kind, triggerTime); status != uefi.EFI_SUCCESS {
		return uefi.StatusError(status)
	}
	return nil
}

// SignalEvent places the event in the signaled state, queueing its
// notification if it has one. Signaling a member of an event group signals
// the whole group.
func (l *Lib) SignalEvent(event uefi.EFI_EVENT) error {
	if err := l.guard(); err != nil {
		return err
	}
	if event == 0 {
		return uefi.ErrInvalidParameter
	}

	if status := l.bs.SignalEvent(event); status != uefi.EFI_SUCCESS {
		return uefi.StatusError(status)
	}
	return nil
}

// WaitForEvent blocks until one of the events is signaled and returns the
// lowest signaled index, consuming that signal. Only valid at
// TPL_APPLICATION and not valid for EVT_NOTIFY_SIGNAL events; on such
// misuse the returned index identifies the offending event.
//
// There is no timeout parameter; to bound the wait include an armed timer
// event in the set.
func (l *Lib) WaitForEvent(events ...uefi.EFI_EVENT) (int, error) {
	if err := l.guard(); err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, uefi.ErrInvalidParameter
	}

	index, status := l.bs.WaitForEvent(events)

	if status != uefi.EFI_SUCCESS {
		return index, uefi.StatusError(status)
	}
	return index, nil
}

// CheckEvent polls the event without blocking. A not-ready event is an
// expected outcome, reported as (false, nil), not an error. For
// EVT_NOTIFY_WAIT events the poll queues the notification function.
func (l *Lib) CheckEvent(event uefi.EFI_EVENT) (bool, error) {
	if err := l.guard(); err != nil {
		return false, err
	}
	if event == 0 {
		return false, uefi.ErrInvalidParameter
	}

	switch status := l.bs.CheckEvent(event); status {
	case uefi.EFI_SUCCESS:
		return true, nil
	case uefi.EFI_NOT_READY:
		return false, nil
	default:
		return false, uefi.StatusError(status)
	}
}

// CloseEvent releases the firmware side of the event, canceling any armed
// timer. The handle is invalid afterwards; no further operation on it is
// defined.
func (l *Lib) CloseEvent(event uefi.EFI_EVENT) error {
	if err := l.guard(); err != nil {
		return err
	}
	if event == 0 {
		return uefi.ErrInvalidParameter
	}

	if status := l.bs.CloseEvent(event); status != uefi.EFI_SUCCESS {
		return uefi.StatusError(status)
	}
	return nil
}
