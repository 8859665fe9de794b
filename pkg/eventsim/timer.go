package eventsim

import (
	"github.com/costinm/efi-events/pkg/uefi"
)

// A trigger time of zero is the next/every tick; the double's tick is one
// 100ns unit.
func tickOrMore(trigger uint64) uint64 {
	if trigger == 0 {
		return 1
	}
	return trigger
}

func (s *Sim) SetTimer(ev uefi.EFI_EVENT, kind uefi.EFI_TIMER_DELAY, triggerTime uint64) uefi.EFI_STATUS {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.takeFailure("SetTimer"); ok {
		return status
	}

	e, ok := s.events[ev]
	if !ok || e.typ&uefi.EVT_TIMER == 0 {
		return uefi.EFI_INVALID_PARAMETER
	}

	switch kind {
	case uefi.TimerCancel:
		e.armed = false
	case uefi.TimerPeriodic:
		e.armed = true
		e.periodic = true
		e.period = tickOrMore(triggerTime)
		e.due = s.now + e.period
	case uefi.TimerRelative:
		e.armed = true
		e.periodic = false
		e.due = s.now + tickOrMore(triggerTime)
	default:
		return uefi.EFI_INVALID_PARAMETER
	}

	return uefi.EFI_SUCCESS
}

// Now returns the virtual clock, in 100ns units.
func (s *Sim) Now() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AdvanceTime moves the virtual clock forward by ticks 100ns units,
// firing due timers in deadline order. Periodic timers re-arm, relative
// timers disarm after firing.
func (s *Sim) AdvanceTime(ticks uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked(s.now + ticks)
}

func (s *Sim) advanceLocked(target uint64) {
	for {
		var next *event
		for _, id := range s.sortedIDs() {
			e := s.events[id]
			if !e.armed || e.due > target {
				continue
			}
			if next == nil || e.due < next.due {
				next = e
			}
		}
		if next == nil {
			break
		}

		s.now = next.due
		if next.periodic {
			next.due += next.period
		} else {
			next.armed = false
		}

		s.signalLocked(next)
		s.dispatchLocked()
	}

	if s.now < target {
		s.now = target
	}
}

// nextDeadline reports the earliest armed timer deadline.
func (s *Sim) nextDeadline() (uint64, bool) {
	var due uint64
	found := false
	for _, e := range s.events {
		if e.armed && (!found || e.due < due) {
			due = e.due
			found = true
		}
	}
	return due, found
}
