// Event, Timer, and Task Priority Services – §7.1 UEFI 2.10
package uefi

// Event type bit-fields – §7.1 EFI_BOOT_SERVICES.CreateEvent()
const (
	EVT_TIMER                         uint32 = 0x80000000
	EVT_RUNTIME                       uint32 = 0x40000000
	EVT_NOTIFY_WAIT                   uint32 = 0x00000100
	EVT_NOTIFY_SIGNAL                 uint32 = 0x00000200
	EVT_SIGNAL_EXIT_BOOT_SERVICES     uint32 = 0x00000201
	EVT_SIGNAL_VIRTUAL_ADDRESS_CHANGE uint32 = 0x60000202
)

// Task priority levels – §7.1 Table 7-3. Only these four may be used by
// applications and drivers; the gap values are reserved for firmware use.
const (
	TPL_APPLICATION EFI_TPL = 4
	TPL_CALLBACK    EFI_TPL = 8
	TPL_NOTIFY      EFI_TPL = 16
	TPL_HIGH_LEVEL  EFI_TPL = 31
)

// EFI_TIMER_DELAY – §7.1 EFI_BOOT_SERVICES.SetTimer()
type EFI_TIMER_DELAY uint32

const (
	TimerCancel EFI_TIMER_DELAY = iota
	TimerPeriodic
	TimerRelative
)

// Timer trigger times are counted in 100ns units. A trigger time of 0
// means the next timer tick for TimerRelative and every tick for
// TimerPeriodic.
const TriggerPerMillisecond = 10_000
