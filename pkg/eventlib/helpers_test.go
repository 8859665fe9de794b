package eventlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costinm/efi-events/pkg/eventlib"
	"github.com/costinm/efi-events/pkg/uefi"
)

func TestCreateTimerEvent_RelativeOneShot(t *testing.T) {
	lib, sim := newLib(t)

	ev, err := lib.CreateTimerEvent(nil, nil, 200, false, uefi.TPL_APPLICATION)
	require.NoError(t, err)

	sim.AdvanceTime(199)
	signaled, err := lib.CheckEvent(ev)
	require.NoError(t, err)
	assert.False(t, signaled)

	sim.AdvanceTime(1)
	signaled, err = lib.CheckEvent(ev)
	require.NoError(t, err)
	assert.True(t, signaled)

	// one-shot: no re-arm
	sim.AdvanceTime(1_000)
	signaled, err = lib.CheckEvent(ev)
	require.NoError(t, err)
	assert.False(t, signaled)
}

func TestCreateTimerEvent_PeriodicNotify(t *testing.T) {
	lib, sim := newLib(t)

	fired := 0
	_, err := lib.CreateTimerEvent(func(uefi.EFI_EVENT, any) { fired++ }, nil, 100, true, uefi.TPL_CALLBACK)
	require.NoError(t, err)

	sim.AdvanceTime(350)
	assert.Equal(t, 3, fired)
}

func TestCreateTimerEvent_NotifyTPLValidated(t *testing.T) {
	lib, _ := newLib(t)

	notify := func(uefi.EFI_EVENT, any) {}

	for _, tpl := range []uefi.EFI_TPL{uefi.TPL_APPLICATION, uefi.TPL_HIGH_LEVEL} {
		ev, err := lib.CreateTimerEvent(notify, nil, 100, false, tpl)
		assert.ErrorIs(t, err, uefi.ErrInvalidParameter)
		assert.Zero(t, ev)
	}
}

func TestCreateTimerEvent_RollbackOnArmFailure(t *testing.T) {
	lib, sim := newLib(t)

	sim.FailNext("SetTimer", uefi.EFI_DEVICE_ERROR)

	ev, err := lib.CreateTimerEvent(nil, nil, 100, false, uefi.TPL_APPLICATION)
	assert.ErrorIs(t, err, uefi.ErrDeviceError)
	assert.Zero(t, ev)
	// the half-created event was closed again
	assert.Zero(t, sim.Len())
}

func TestCreateNotifyEvent_PinnedToNotifyTPL(t *testing.T) {
	lib, sim := newLib(t)

	var during uefi.EFI_TPL
	_, err := lib.CreateNotifyEvent(func(uefi.EFI_EVENT, any) { during = sim.TPL() }, nil, 100, false)
	require.NoError(t, err)

	sim.AdvanceTime(100)
	assert.Equal(t, uefi.TPL_NOTIFY, during)
}

func TestCancelTimer_StopsPeriodic(t *testing.T) {
	lib, sim := newLib(t)

	fired := 0
	ev, err := lib.CreateTimerEvent(func(uefi.EFI_EVENT, any) { fired++ }, nil, 100, true, uefi.TPL_CALLBACK)
	require.NoError(t, err)

	sim.AdvanceTime(100)
	require.NoError(t, lib.CancelTimer(ev))
	sim.AdvanceTime(1_000)

	assert.Equal(t, 1, fired)
}

func TestCancelAndCloseEvent(t *testing.T) {
	lib, sim := newLib(t)

	ev, err := lib.CreateTimerEvent(nil, nil, 100, true, uefi.TPL_APPLICATION)
	require.NoError(t, err)

	require.NoError(t, lib.CancelAndCloseEvent(ev))
	assert.Zero(t, sim.Len())
	assert.ErrorIs(t, lib.SignalEvent(ev), uefi.ErrInvalidParameter)
}

func TestCancelAndCloseEvent_KeepsEventOnCancelFailure(t *testing.T) {
	lib, sim := newLib(t)

	ev, err := lib.CreateTimerEvent(nil, nil, 100, true, uefi.TPL_APPLICATION)
	require.NoError(t, err)

	sim.FailNext("SetTimer", uefi.EFI_DEVICE_ERROR)

	assert.ErrorIs(t, lib.CancelAndCloseEvent(ev), uefi.ErrDeviceError)
	assert.Equal(t, 1, sim.Len())
	require.NoError(t, lib.CloseEvent(ev))
}

func TestCreateSignalEvent_Ungrouped(t *testing.T) {
	lib, _ := newLib(t)

	fired := false
	ev, err := lib.CreateSignalEvent(func(uefi.EFI_EVENT, any) { fired = true }, nil, nil)
	require.NoError(t, err)

	require.NoError(t, lib.SignalEvent(ev))
	assert.True(t, fired)
}

func TestGroupHelpers_SupplyExactGroup(t *testing.T) {
	groups := []uefi.EFI_GUID{
		uefi.EFI_EVENT_GROUP_EXIT_BOOT_SERVICES,
		uefi.EFI_EVENT_GROUP_VIRTUAL_ADDRESS_CHANGE,
		uefi.EFI_EVENT_GROUP_MEMORY_MAP_CHANGE,
		uefi.EFI_EVENT_GROUP_READY_TO_BOOT,
		uefi.EFI_EVENT_GROUP_DXE_DISPATCH,
		uefi.EFI_EVENT_GROUP_END_OF_DXE,
	}

	tests := []struct {
		name   string
		create func(l *eventlib.Lib, notify eventlib.Notify) (uefi.EFI_EVENT, error)
		group  uefi.EFI_GUID
	}{
		{"ExitBootServices", func(l *eventlib.Lib, n eventlib.Notify) (uefi.EFI_EVENT, error) {
			return l.CreateExitBootServicesEvent(n, nil)
		}, uefi.EFI_EVENT_GROUP_EXIT_BOOT_SERVICES},
		{"VirtualAddressChange", func(l *eventlib.Lib, n eventlib.Notify) (uefi.EFI_EVENT, error) {
			return l.CreateVirtualAddressChangeEvent(n, nil)
		}, uefi.EFI_EVENT_GROUP_VIRTUAL_ADDRESS_CHANGE},
		{"MemoryMapChange", func(l *eventlib.Lib, n eventlib.Notify) (uefi.EFI_EVENT, error) {
			return l.CreateMemoryMapChangeEvent(n, nil)
		}, uefi.EFI_EVENT_GROUP_MEMORY_MAP_CHANGE},
		{"ReadyToBoot", func(l *eventlib.Lib, n eventlib.Notify) (uefi.EFI_EVENT, error) {
			return l.CreateReadyToBootEvent(n, nil)
		}, uefi.EFI_EVENT_GROUP_READY_TO_BOOT},
		{"DxeDispatchGuid", func(l *eventlib.Lib, n eventlib.Notify) (uefi.EFI_EVENT, error) {
			return l.CreateDxeDispatchGuidEvent(n, nil)
		}, uefi.EFI_EVENT_GROUP_DXE_DISPATCH},
		{"EndOfDxe", func(l *eventlib.Lib, n eventlib.Notify) (uefi.EFI_EVENT, error) {
			return l.CreateEndOfDxeEvent(n, nil)
		}, uefi.EFI_EVENT_GROUP_END_OF_DXE},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lib, sim := newLib(t)

			fired := 0
			_, err := tc.create(lib, func(uefi.EFI_EVENT, any) { fired++ })
			require.NoError(t, err)

			// only its own group fires the event
			for _, g := range groups {
				if g != tc.group {
					sim.SignalGroup(g)
				}
			}
			assert.Zero(t, fired)

			sim.SignalGroup(tc.group)
			assert.Equal(t, 1, fired)
		})
	}
}

func TestCreateEventEx_NilGroupBehavesAsCreateEvent(t *testing.T) {
	lib, sim := newLib(t)

	fired := false
	_, err := lib.CreateEventEx(uefi.EVT_NOTIFY_SIGNAL, uefi.TPL_NOTIFY,
		func(uefi.EFI_EVENT, any) { fired = true }, nil, nil)
	require.NoError(t, err)

	for _, g := range []uefi.EFI_GUID{
		uefi.EFI_EVENT_GROUP_EXIT_BOOT_SERVICES,
		uefi.EFI_EVENT_GROUP_READY_TO_BOOT,
	} {
		sim.SignalGroup(g)
	}
	assert.False(t, fired)
}

func TestExitBootServicesEvent_FiredOnTransition(t *testing.T) {
	lib, sim := newLib(t)

	fired := false
	_, err := lib.CreateExitBootServicesEvent(func(uefi.EFI_EVENT, any) { fired = true }, nil)
	require.NoError(t, err)

	sim.ExitBootServices()

	assert.True(t, fired)
	assert.True(t, sim.AtRuntime())
}

func TestFirmwareTable_NotifyUnsupported(t *testing.T) {
	// Go callbacks cannot cross the firmware ABI; the live table must say
	// so instead of passing garbage to the firmware.
	lib := eventlib.NewFirmware(nil, nil)

	_, err := lib.CreateEvent(uefi.EVT_NOTIFY_SIGNAL, uefi.TPL_NOTIFY,
		func(uefi.EFI_EVENT, any) {}, nil)
	assert.ErrorIs(t, err, uefi.ErrUnsupported)

	_, err = lib.CreateEventEx(uefi.EVT_NOTIFY_SIGNAL, uefi.TPL_NOTIFY,
		func(uefi.EFI_EVENT, any) {}, nil, &uefi.EFI_EVENT_GROUP_READY_TO_BOOT)
	assert.ErrorIs(t, err, uefi.ErrUnsupported)
}
