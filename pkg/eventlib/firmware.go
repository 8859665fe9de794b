package eventlib

import (
	"github.com/costinm/efi-events/pkg/uefi"
)

// FirmwareTable is a Table backed by the live EFI_BOOT_SERVICES table, as
// bound by uefi.Init.
//
// Go notification functions cannot cross the firmware ABI, so creates that
// carry one report EFI_UNSUPPORTED; against live firmware callers poll
// with CheckEvent/WaitForEvent (or uefi.WaitSignaled) instead.
type FirmwareTable struct {
	bs *uefi.EFI_BOOT_SERVICES
}

// NewFirmware returns a Lib over the live boot services table.
func NewFirmware(bs *uefi.EFI_BOOT_SERVICES, phase Phase) *Lib {
	return New(&FirmwareTable{bs: bs}, phase)
}

func (t *FirmwareTable) CreateEvent(typ uint32, notifyTpl uefi.EFI_TPL, notify Notify, context any) (uefi.EFI_EVENT, uefi.EFI_STATUS) {
	if notify != nil {
		return 0, uefi.EFI_UNSUPPORTED
	}

	var event uefi.EFI_EVENT
	status := t.bs.CreateEvent(typ, notifyTpl, 0, 0, &event)
	return event, status
}

func (t *FirmwareTable) CreateEventEx(typ uint32, notifyTpl uefi.EFI_TPL, notify Notify, context any, group *uefi.EFI_GUID) (uefi.EFI_EVENT, uefi.EFI_STATUS) {
	if notify != nil {
		return 0, uefi.EFI_UNSUPPORTED
	}

	var event uefi.EFI_EVENT
	status := t.bs.CreateEventEx(typ, notifyTpl, 0, 0, group, &event)
	return event, status
}

func (t *FirmwareTable) SetTimer(event uefi.EFI_EVENT, kind uefi.EFI_TIMER_DELAY, triggerTime uint64) uefi.EFI_STATUS {
	return t.bs.SetTimer(event, kind, triggerTime)
}

func (t *FirmwareTable) SignalEvent(event uefi.EFI_EVENT) uefi.EFI_STATUS {
	return t.bs.SignalEvent(event)
}

func (t *FirmwareTable) WaitForEvent(events []uefi.EFI_EVENT) (int, uefi.EFI_STATUS) {
	if len(events) == 0 {
		return 0, uefi.EFI_INVALID_PARAMETER
	}

	var index uefi.UINTN
	status := t.bs.WaitForEvent(uefi.UINTN(len(events)), &events[0], &index)
	return int(index), status
}

func (t *FirmwareTable) CheckEvent(event uefi.EFI_EVENT) uefi.EFI_STATUS {
	return t.bs.CheckEvent(event)
}

func (t *FirmwareTable) CloseEvent(event uefi.EFI_EVENT) uefi.EFI_STATUS {
	return t.bs.CloseEvent(event)
}
