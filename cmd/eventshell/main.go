package main

import (
	"fmt"
	"log"
	"runtime"
	"strconv"

	_ "github.com/usbarmory/go-boot/cmd"
	"github.com/usbarmory/go-boot/shell"
	gb "github.com/usbarmory/go-boot/uefi"
	"github.com/usbarmory/go-boot/uefi/x64"

	"github.com/costinm/efi-events/pkg/eventlib"
	"github.com/costinm/efi-events/pkg/uefi"
)

// Interactive demo for the event services facade against live firmware:
// arm boot services timers, wait on them, poll them. Boot with OVMF or on
// any UEFI x64 machine.
func main() {
	initGoBoot()
}

var phase = &eventlib.PhaseFlag{}

var events *eventlib.Lib

func initEvents() *eventlib.Lib {
	if events == nil {
		ah, sh := x64.UEFI.Handles()
		uefi.Init(uintptr(ah), uintptr(sh))
		events = eventlib.NewFirmware(uefi.BS(), phase)
	}
	return events
}

// tick arms a periodic timer through the facade and blocks on
// WaitForEvent for each expiry.
func tick(ms uint64, count int) (string, error) {
	lib := initEvents()

	ev, err := lib.CreateTimerEvent(nil, nil, ms*uefi.TriggerPerMillisecond, true, uefi.TPL_APPLICATION)
	if err != nil {
		return "", fmt.Errorf("could not arm periodic timer, %v", err)
	}

	for i := 1; i <= count; i++ {
		if _, err = lib.WaitForEvent(ev); err != nil {
			lib.CancelAndCloseEvent(ev)
			return "", fmt.Errorf("wait failed, %v", err)
		}
		fmt.Printf("tick %d/%d (%dms)\n", i, count, ms)
	}

	return "", lib.CancelAndCloseEvent(ev)
}

// stall arms a relative one-shot timer and polls it with CheckEvent,
// yielding to other goroutines while not ready.
func stall(ms uint64) (string, error) {
	lib := initEvents()

	ev, err := lib.CreateTimerEvent(nil, nil, ms*uefi.TriggerPerMillisecond, false, uefi.TPL_APPLICATION)
	if err != nil {
		return "", fmt.Errorf("could not arm timer, %v", err)
	}
	defer lib.CloseEvent(ev)

	if err := uefi.WaitSignaled(ev); err != nil {
		return "", err
	}

	return fmt.Sprintf("stalled %dms", ms), nil
}

func initGoBoot() {
	banner := fmt.Sprintf("efi-events • %s/%s (%s) • UEFI x64",
		runtime.GOOS, runtime.GOARCH, runtime.Version())

	iface := &shell.Interface{
		Banner:  banner,
		Console: x64.UEFI.Console,
	}
	shell.Add(shell.Cmd{
		Name:   "tick",
		Args:   2,
		Syntax: "[period_ms] [count]",
		Help:   "wait on a periodic boot services timer. Defaults to 1000ms, 5 ticks",
		Fn: func(c *shell.Interface, arg []string) (res string, err error) {
			ms := uint64(1000)
			count := 5
			if len(arg) > 0 {
				if ms, err = strconv.ParseUint(arg[0], 10, 64); err != nil {
					return "", err
				}
			}
			if len(arg) > 1 {
				if count, err = strconv.Atoi(arg[1]); err != nil {
					return "", err
				}
			}

			return tick(ms, count)
		},
	})
	shell.Add(shell.Cmd{
		Name:   "stall",
		Args:   1,
		Syntax: "[ms]",
		Help:   "poll a relative one-shot boot services timer. Defaults to 1000ms",
		Fn: func(c *shell.Interface, arg []string) (res string, err error) {
			ms := uint64(1000)
			if len(arg) > 0 {
				if ms, err = strconv.ParseUint(arg[0], 10, 64); err != nil {
					return "", err
				}
			}

			return stall(ms)
		},
	})

	// disable UEFI watchdog
	x64.UEFI.Boot.SetWatchdogTimer(0)

	iface.ReadWriter = x64.UEFI.Console
	iface.Start(false)

	log.Print("exit")

	if err := x64.UEFI.Boot.Exit(0); err != nil {
		log.Printf("halting due to exit error, %v", err)
		x64.UEFI.Runtime.ResetSystem(gb.EfiResetShutdown)
	}
}
