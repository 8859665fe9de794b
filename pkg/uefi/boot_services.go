package uefi

import (
	"unsafe"
)

// EFI_BOOT_SERVICES – §4.4 UEFI 2.10. Field order mirrors the firmware
// table; services this package does not wrap stay as unexported pointers.
type EFI_BOOT_SERVICES struct {
	Hdr EFI_TABLE_HEADER

	raiseTPL   uintptr
	restoreTPL uintptr

	allocatePages uintptr
	freePages     uintptr
	getMemoryMap  uintptr
	allocatePool  uintptr
	freePool      uintptr

	createEvent  uintptr
	setTimer     uintptr
	waitForEvent uintptr
	signalEvent  uintptr
	closeEvent   uintptr
	checkEvent   uintptr

	installProtocolInterface   uintptr
	reinstallProtocolInterface uintptr
	uninstallProtocolInterface uintptr
	handleProtocol             uintptr
	reserved                   uintptr
	registerProtocolNotify     uintptr
	locateHandle               uintptr
	locateDevicePath           uintptr
	installConfigurationTable  uintptr

	loadImage        uintptr
	startImage       uintptr
	exit             uintptr
	unloadImage      uintptr
	exitBootServices uintptr

	getNextMonotonicCount uintptr
	stall                 uintptr
	setWatchdogTimer      uintptr

	connectController    uintptr
	disconnectController uintptr

	openProtocol            uintptr
	closeProtocol           uintptr
	openProtocolInformation uintptr

	protocolsPerHandle uintptr
	locateHandleBuffer uintptr
	locateProtocol     uintptr

	installMultipleProtocolInterfaces   uintptr
	uninstallMultipleProtocolInterfaces uintptr

	calculateCrc32 uintptr
	copyMem        uintptr
	setMem         uintptr

	createEventEx uintptr
}

// RaiseTPL
// Raises a task's priority level and returns its previous level.
// @param  NewTpl  The new task priority level.
// @retval         Previous task priority level.
func (p *EFI_BOOT_SERVICES) RaiseTPL(NewTpl EFI_TPL) EFI_TPL {
	return EFI_TPL(UefiCall1(p.raiseTPL, uintptr(NewTpl)))
}

// RestoreTPL
// Restores a task's priority level to its previous value.
// @param  OldTpl  The previous task priority level to restore.
func (p *EFI_BOOT_SERVICES) RestoreTPL(OldTpl EFI_TPL) {
	UefiCall1(p.restoreTPL, uintptr(OldTpl))
}

// CreateEvent
// Creates an event.
// @param  Type           The type of event to create and its mode and attributes.
// @param  NotifyTpl      The task priority level of event notifications, if needed.
// @param  NotifyFunction Native pointer to the event's notification function, if any.
// @param  NotifyContext  Native pointer to the notification function's context.
// @param  Event          Receives the new event.
// @retval EFI_SUCCESS           The event structure was created.
// @retval EFI_INVALID_PARAMETER One or more parameters are invalid.
// @retval EFI_OUT_OF_RESOURCES  The event could not be allocated.
func (p *EFI_BOOT_SERVICES) CreateEvent(Type uint32, NotifyTpl EFI_TPL, NotifyFunction uintptr, NotifyContext uintptr, Event *EFI_EVENT) EFI_STATUS {
	return UefiCall5(p.createEvent,
		uintptr(Type),
		uintptr(NotifyTpl),
		NotifyFunction,
		NotifyContext,
		uintptr(unsafe.Pointer(Event)))
}

// CreateEventEx
// Creates an event in a group. A nil EventGroup behaves as CreateEvent.
// @retval EFI_SUCCESS           The event structure was created.
// @retval EFI_INVALID_PARAMETER One or more parameters are invalid.
// @retval EFI_OUT_OF_RESOURCES  The event could not be allocated.
func (p *EFI_BOOT_SERVICES) CreateEventEx(Type uint32, NotifyTpl EFI_TPL, NotifyFunction uintptr, NotifyContext uintptr, EventGroup *EFI_GUID, Event *EFI_EVENT) EFI_STATUS {
	return UefiCall6(p.createEventEx,
		uintptr(Type),
		uintptr(NotifyTpl),
		NotifyFunction,
		NotifyContext,
		uintptr(unsafe.Pointer(EventGroup)),
		uintptr(unsafe.Pointer(Event)))
}

// SetTimer
// Sets the type of timer and the trigger time for a timer event.
// TriggerTime is in 100ns units; 0 means next tick (TimerRelative) or
// every tick (TimerPeriodic).
// @retval EFI_SUCCESS           The timer was armed or disarmed.
// @retval EFI_INVALID_PARAMETER Event or Type is not valid.
func (p *EFI_BOOT_SERVICES) SetTimer(Event EFI_EVENT, Type EFI_TIMER_DELAY, TriggerTime uint64) EFI_STATUS {
	return UefiCall3(p.setTimer, uintptr(Event), uintptr(Type), uintptr(TriggerTime))
}

// WaitForEvent
// Stops execution until one of the events is signaled. Only valid at
// TPL_APPLICATION. This is a hard block; the CPU is entirely stalled.
// See WaitSignaled for a variant that yields to other goroutines.
// @retval EFI_SUCCESS           The event indicated by Index was signaled.
// @retval EFI_INVALID_PARAMETER NumberOfEvents is 0, or the event at Index
// ..............................is of type EVT_NOTIFY_SIGNAL.
// @retval EFI_UNSUPPORTED       The current TPL is not TPL_APPLICATION.
func (p *EFI_BOOT_SERVICES) WaitForEvent(NumberOfEvents UINTN, Event *EFI_EVENT, Index *UINTN) EFI_STATUS {
	return UefiCall3(p.waitForEvent,
		uintptr(NumberOfEvents),
		uintptr(unsafe.Pointer(Event)),
		uintptr(unsafe.Pointer(Index)))
}

// SignalEvent
// Places the event in the signaled state. If the event belongs to a group
// the whole group is signaled.
// @retval EFI_SUCCESS  The event was signaled.
func (p *EFI_BOOT_SERVICES) SignalEvent(Event EFI_EVENT) EFI_STATUS {
	return UefiCall1(p.signalEvent, uintptr(Event))
}

// CloseEvent
// Closes and frees an event; any armed timer is canceled first.
// @retval EFI_SUCCESS  The event was closed.
func (p *EFI_BOOT_SERVICES) CloseEvent(Event EFI_EVENT) EFI_STATUS {
	return UefiCall1(p.closeEvent, uintptr(Event))
}

// CheckEvent
// Checks whether an event is in the signaled state.
// @retval EFI_SUCCESS           The event is in the signaled state.
// @retval EFI_NOT_READY         The event is not in the signaled state.
// @retval EFI_INVALID_PARAMETER Event is of type EVT_NOTIFY_SIGNAL.
func (p *EFI_BOOT_SERVICES) CheckEvent(Event EFI_EVENT) EFI_STATUS {
	return UefiCall1(p.checkEvent, uintptr(Event))
}

// SetWatchdogTimer
// Sets the system watchdog timer; 0 disables it.
func (p *EFI_BOOT_SERVICES) SetWatchdogTimer(Timeout UINTN) EFI_STATUS {
	return UefiCall4(p.setWatchdogTimer, uintptr(Timeout), 0, 0, 0)
}
