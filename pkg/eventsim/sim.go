// Package eventsim is a deterministic, in-memory implementation of the
// boot services event table for host-side testing. It models the parts of
// the firmware the event services touch: the event registry, the task
// priority levels with their pending-notification queue, event groups, the
// timer tick and the boot-to-runtime transition.
//
// Time is virtual; nothing fires until AdvanceTime moves the clock.
package eventsim

import (
	"fmt"
	"slices"
	"sync"

	"github.com/costinm/efi-events/pkg/eventlib"
	"github.com/costinm/efi-events/pkg/uefi"
)

type event struct {
	id      uefi.EFI_EVENT
	typ     uint32
	tpl     uefi.EFI_TPL
	notify  eventlib.Notify
	context any
	group   *uefi.EFI_GUID

	signaled bool
	queued   bool

	armed    bool
	periodic bool
	due      uint64
	period   uint64
}

// Sim implements eventlib.Table and eventlib.Phase.
type Sim struct {
	mu     sync.Mutex
	nextID uefi.EFI_EVENT
	events map[uefi.EFI_EVENT]*event

	tpl     uefi.EFI_TPL
	pending []*event // queued notifications, in arrival order

	now       uint64
	atRuntime bool

	failNext map[string]uefi.EFI_STATUS
}

var (
	_ eventlib.Table = (*Sim)(nil)
	_ eventlib.Phase = (*Sim)(nil)
)

// New returns an empty simulated firmware at TPL_APPLICATION with the
// clock at zero.
func New() *Sim {
	return &Sim{
		nextID:   0x1000,
		events:   make(map[uefi.EFI_EVENT]*event),
		tpl:      uefi.TPL_APPLICATION,
		failNext: make(map[string]uefi.EFI_STATUS),
	}
}

// FailNext forces the next call of the named service ("CreateEvent",
// "SetTimer", ...) to fail with status, for exercising failure paths.
func (s *Sim) FailNext(service string, status uefi.EFI_STATUS) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[service] = status
}

func (s *Sim) takeFailure(service string) (uefi.EFI_STATUS, bool) {
	if status, ok := s.failNext[service]; ok {
		delete(s.failNext, service)
		return status, true
	}
	return uefi.EFI_SUCCESS, false
}

const typeMask = uefi.EVT_TIMER | uefi.EVT_RUNTIME | uefi.EVT_NOTIFY_WAIT | uefi.EVT_NOTIFY_SIGNAL

func validType(typ uint32) bool {
	switch typ {
	case uefi.EVT_SIGNAL_EXIT_BOOT_SERVICES, uefi.EVT_SIGNAL_VIRTUAL_ADDRESS_CHANGE:
		// pre-UEFI 2.0 composite types
		return true
	}
	if typ&^typeMask != 0 {
		return false
	}
	// wait and signal notification are mutually exclusive
	return typ&uefi.EVT_NOTIFY_WAIT == 0 || typ&uefi.EVT_NOTIFY_SIGNAL == 0
}

// legacyGroup maps the pre-UEFI 2.0 composite event types to the group
// they are broadcast through.
func legacyGroup(typ uint32) *uefi.EFI_GUID {
	switch typ {
	case uefi.EVT_SIGNAL_EXIT_BOOT_SERVICES:
		return &uefi.EFI_EVENT_GROUP_EXIT_BOOT_SERVICES
	case uefi.EVT_SIGNAL_VIRTUAL_ADDRESS_CHANGE:
		return &uefi.EFI_EVENT_GROUP_VIRTUAL_ADDRESS_CHANGE
	}
	return nil
}

func (s *Sim) CreateEvent(typ uint32, notifyTpl uefi.EFI_TPL, notify eventlib.Notify, context any) (uefi.EFI_EVENT, uefi.EFI_STATUS) {
	return s.CreateEventEx(typ, notifyTpl, notify, context, nil)
}

func (s *Sim) CreateEventEx(typ uint32, notifyTpl uefi.EFI_TPL, notify eventlib.Notify, context any, group *uefi.EFI_GUID) (uefi.EFI_EVENT, uefi.EFI_STATUS) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.takeFailure("CreateEvent"); ok {
		return 0, status
	}
	if !validType(typ) {
		return 0, uefi.EFI_INVALID_PARAMETER
	}
	if typ&(uefi.EVT_NOTIFY_WAIT|uefi.EVT_NOTIFY_SIGNAL) != 0 {
		if notify == nil {
			return 0, uefi.EFI_INVALID_PARAMETER
		}
		if notifyTpl <= uefi.TPL_APPLICATION || notifyTpl > uefi.TPL_HIGH_LEVEL {
			return 0, uefi.EFI_INVALID_PARAMETER
		}
	}

	e := &event{
		id:      s.nextID,
		typ:     typ,
		tpl:     notifyTpl,
		notify:  notify,
		context: context,
	}
	if group == nil {
		group = legacyGroup(typ)
	}
	if group != nil {
		g := *group
		e.group = &g
	}
	s.nextID++
	s.events[e.id] = e

	return e.id, uefi.EFI_SUCCESS
}

func (s *Sim) SignalEvent(ev uefi.EFI_EVENT) uefi.EFI_STATUS {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[ev]
	if !ok {
		return uefi.EFI_INVALID_PARAMETER
	}

	s.signalLocked(e)
	s.dispatchLocked()

	return uefi.EFI_SUCCESS
}

// signalLocked signals e; if e belongs to a group, every member of the
// group is signaled with it.
func (s *Sim) signalLocked(e *event) {
	if e.group == nil {
		s.signalOne(e)
		return
	}
	for _, id := range s.sortedIDs() {
		m := s.events[id]
		if m.group != nil && *m.group == *e.group {
			s.signalOne(m)
		}
	}
}

func (s *Sim) signalOne(e *event) {
	e.signaled = true
	if e.typ&uefi.EVT_NOTIFY_SIGNAL != 0 {
		s.queueNotify(e)
	}
}

func (s *Sim) queueNotify(e *event) {
	if e.queued || e.notify == nil {
		return
	}
	e.queued = true
	s.pending = append(s.pending, e)
}

// dispatchLocked runs queued notifications whose notify TPL is above the
// current TPL, highest level first, FIFO within a level. The current TPL
// is raised to the notify TPL for the duration of each callback, and the
// lock is dropped so callbacks may call back into the table.
func (s *Sim) dispatchLocked() {
	for {
		e := s.popRunnable()
		if e == nil {
			return
		}
		e.queued = false
		e.signaled = false

		prev := s.tpl
		s.tpl = e.tpl

		s.mu.Unlock()
		e.notify(e.id, e.context)
		s.mu.Lock()

		s.tpl = prev
	}
}

func (s *Sim) popRunnable() *event {
	best := -1
	for i, e := range s.pending {
		if e.tpl <= s.tpl {
			continue
		}
		if best == -1 || e.tpl > s.pending[best].tpl {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	e := s.pending[best]
	s.pending = append(s.pending[:best:best], s.pending[best+1:]...)
	return e
}

func (s *Sim) CheckEvent(ev uefi.EFI_EVENT) uefi.EFI_STATUS {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[ev]
	if !ok || e.typ&uefi.EVT_NOTIFY_SIGNAL != 0 {
		return uefi.EFI_INVALID_PARAMETER
	}

	s.pollLocked(e)

	if e.signaled {
		e.signaled = false
		return uefi.EFI_SUCCESS
	}
	return uefi.EFI_NOT_READY
}

// pollLocked queues the notification function of an unsignaled
// EVT_NOTIFY_WAIT event, as CheckEvent and WaitForEvent do.
func (s *Sim) pollLocked(e *event) {
	if !e.signaled && e.typ&uefi.EVT_NOTIFY_WAIT != 0 {
		s.queueNotify(e)
		s.dispatchLocked()
	}
}

// waitAdvanceLimit bounds how many timer deadlines a single WaitForEvent
// may burn through before the double declares the wait stuck. A real
// firmware would hang instead.
const waitAdvanceLimit = 10_000

func (s *Sim) WaitForEvent(events []uefi.EFI_EVENT) (int, uefi.EFI_STATUS) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tpl != uefi.TPL_APPLICATION {
		return 0, uefi.EFI_UNSUPPORTED
	}
	if len(events) == 0 {
		return 0, uefi.EFI_INVALID_PARAMETER
	}
	for i, ev := range events {
		e, ok := s.events[ev]
		if !ok || e.typ&uefi.EVT_NOTIFY_SIGNAL != 0 {
			return i, uefi.EFI_INVALID_PARAMETER
		}
	}

	for advances := 0; ; advances++ {
		for i, ev := range events {
			e, ok := s.events[ev]
			if !ok {
				// closed by a notification while we waited
				return i, uefi.EFI_INVALID_PARAMETER
			}
			s.pollLocked(e)
			if e.signaled {
				e.signaled = false
				return i, uefi.EFI_SUCCESS
			}
		}

		if advances == waitAdvanceLimit {
			return 0, uefi.EFI_TIMEOUT
		}
		due, ok := s.nextDeadline()
		if !ok {
			// nothing armed, nothing signaled: the wait can never
			// complete. Fail instead of hanging the test.
			return 0, uefi.EFI_TIMEOUT
		}
		s.advanceLocked(due)
	}
}

func (s *Sim) CloseEvent(ev uefi.EFI_EVENT) uefi.EFI_STATUS {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[ev]
	if !ok {
		return uefi.EFI_INVALID_PARAMETER
	}

	delete(s.events, ev)
	for i, p := range s.pending {
		if p == e {
			s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
			break
		}
	}

	return uefi.EFI_SUCCESS
}

// RaiseTPL raises the task priority level and returns the previous one.
// Lowering the TPL this way is a caller bug; the double panics where real
// firmware behavior is undefined.
func (s *Sim) RaiseTPL(tpl uefi.EFI_TPL) uefi.EFI_TPL {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tpl < s.tpl {
		panic(fmt.Sprintf("eventsim: RaiseTPL from %d to lower level %d", s.tpl, tpl))
	}
	prev := s.tpl
	s.tpl = tpl
	return prev
}

// RestoreTPL restores the task priority level, running any notifications
// that became dispatchable.
func (s *Sim) RestoreTPL(tpl uefi.EFI_TPL) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tpl = tpl
	s.dispatchLocked()
}

// TPL returns the current task priority level.
func (s *Sim) TPL() uefi.EFI_TPL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tpl
}

// SignalGroup signals every event registered against the group, as the
// firmware does on a system milestone.
func (s *Sim) SignalGroup(group uefi.EFI_GUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.sortedIDs() {
		e := s.events[id]
		if e.group != nil && *e.group == group {
			s.signalOne(e)
		}
	}
	s.dispatchLocked()
}

// ExitBootServices broadcasts the exit-boot-services group and moves the
// system past the boot-to-runtime transition.
func (s *Sim) ExitBootServices() {
	s.SignalGroup(uefi.EFI_EVENT_GROUP_EXIT_BOOT_SERVICES)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.atRuntime = true
}

// AtRuntime implements eventlib.Phase.
func (s *Sim) AtRuntime() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.atRuntime
}

// Len returns the number of live events.
func (s *Sim) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// sortedIDs returns the live handles in creation order, keeping group
// broadcast and timer expiry deterministic.
func (s *Sim) sortedIDs() []uefi.EFI_EVENT {
	ids := make([]uefi.EFI_EVENT, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
