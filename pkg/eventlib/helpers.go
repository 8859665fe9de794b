package eventlib

import (
	"errors"
	"fmt"

	"github.com/costinm/efi-events/pkg/uefi"
)

// CreateTimerEvent creates a timer event and immediately arms it. With a
// notify function the event is EVT_TIMER|EVT_NOTIFY_SIGNAL and notifyTpl
// must be TPL_CALLBACK or TPL_NOTIFY; without one it is a plain EVT_TIMER
// to be polled or waited on and notifyTpl is ignored.
//
// If arming fails the event is closed again and the arm error is returned,
// joined with the close error if that fails too.
func (l *Lib) CreateTimerEvent(notify Notify, context any, triggerTime uint64, periodic bool, notifyTpl uefi.EFI_TPL) (uefi.EFI_EVENT, error) {
	typ := uefi.EVT_TIMER

	if notify != nil {
		if notifyTpl != uefi.TPL_CALLBACK && notifyTpl != uefi.TPL_NOTIFY {
			return 0, uefi.ErrInvalidParameter
		}
		typ |= uefi.EVT_NOTIFY_SIGNAL
	}

	event, err := l.CreateEvent(typ, notifyTpl, notify, context)
	if err != nil {
		return 0, err
	}

	kind := uefi.TimerRelative
	if periodic {
		kind = uefi.TimerPeriodic
	}

	if err := l.SetTimer(event, kind, triggerTime); err != nil {
		if cerr := l.CloseEvent(event); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return 0, fmt.Errorf("arming timer: %w", err)
	}

	return event, nil
}

// CreateNotifyEvent is CreateTimerEvent pinned to TPL_NOTIFY.
func (l *Lib) CreateNotifyEvent(notify Notify, context any, triggerTime uint64, periodic bool) (uefi.EFI_EVENT, error) {
	return l.CreateTimerEvent(notify, context, triggerTime, periodic, uefi.TPL_NOTIFY)
}

// CancelTimer disarms the timer of a timer event, regardless of its
// current trigger time. The event itself stays valid.
func (l *Lib) CancelTimer(event uefi.EFI_EVENT) error {
	return l.SetTimer(event, uefi.TimerCancel, 0)
}

// CancelAndCloseEvent disarms a timer event and closes it. The event is
// left open when the cancel fails, so the caller can still retry or close.
func (l *Lib) CancelAndCloseEvent(event uefi.EFI_EVENT) error {
	if err := l.CancelTimer(event); err != nil {
		return err
	}
	return l.CloseEvent(event)
}

// CreateSignalEvent creates an EVT_NOTIFY_SIGNAL event at TPL_NOTIFY,
// optionally bound to an event group.
func (l *Lib) CreateSignalEvent(notify Notify, context any, group *uefi.EFI_GUID) (uefi.EFI_EVENT, error) {
	return l.CreateEventEx(uefi.EVT_NOTIFY_SIGNAL, uefi.TPL_NOTIFY, notify, context, group)
}

// CreateExitBootServicesEvent creates a signal event fired when the
// firmware broadcasts ExitBootServices.
func (l *Lib) CreateExitBootServicesEvent(notify Notify, context any) (uefi.EFI_EVENT, error) {
	return l.CreateSignalEvent(notify, context, &uefi.EFI_EVENT_GROUP_EXIT_BOOT_SERVICES)
}

// CreateVirtualAddressChangeEvent creates a signal event fired on
// SetVirtualAddressMap.
func (l *Lib) CreateVirtualAddressChangeEvent(notify Notify, context any) (uefi.EFI_EVENT, error) {
	return l.CreateSignalEvent(notify, context, &uefi.EFI_EVENT_GROUP_VIRTUAL_ADDRESS_CHANGE)
}

// CreateMemoryMapChangeEvent creates a signal event fired when the memory
// map changes.
func (l *Lib) CreateMemoryMapChangeEvent(notify Notify, context any) (uefi.EFI_EVENT, error) {
	return l.CreateSignalEvent(notify, context, &uefi.EFI_EVENT_GROUP_MEMORY_MAP_CHANGE)
}

// CreateReadyToBootEvent creates a signal event fired right before the
// boot manager hands off to a boot option.
func (l *Lib) CreateReadyToBootEvent(notify Notify, context any) (uefi.EFI_EVENT, error) {
	return l.CreateSignalEvent(notify, context, &uefi.EFI_EVENT_GROUP_READY_TO_BOOT)
}

// CreateDxeDispatchGuidEvent creates a signal event fired after every pass
// of the DXE dispatcher.
func (l *Lib) CreateDxeDispatchGuidEvent(notify Notify, context any) (uefi.EFI_EVENT, error) {
	return l.CreateSignalEvent(notify, context, &uefi.EFI_EVENT_GROUP_DXE_DISPATCH)
}

// CreateEndOfDxeEvent creates a signal event fired at the end of the DXE
// phase.
func (l *Lib) CreateEndOfDxeEvent(notify Notify, context any) (uefi.EFI_EVENT, error) {
	return l.CreateSignalEvent(notify, context, &uefi.EFI_EVENT_GROUP_END_OF_DXE)
}
