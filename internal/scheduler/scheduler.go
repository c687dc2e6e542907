// Package scheduler drives submissions to the tax-compute back-end: it
// debounces field edits behind a quiet period, enforces a minimum
// visible loading duration, and discards stale responses using a
// monotonically increasing request sequence.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/payrollhq/taxplanner/internal/api"
	"github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/domain"
)

// State of the scheduler's submission machine.
type State int

const (
	Idle State = iota
	Scheduled
	InFlight
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "Scheduled"
	case InFlight:
		return "InFlight"
	default:
		return "Idle"
	}
}

// EventKind discriminates scheduler events.
type EventKind int

const (
	// EventScheduled fires when a quiet-period timer is armed or re-armed.
	EventScheduled EventKind = iota
	// EventStarted fires when a request goes on the wire.
	EventStarted
	// EventSettled carries a fresh TaxResult.
	EventSettled
	// EventFailed carries a user-facing error message; any previously
	// settled result remains valid.
	EventFailed
)

// Event is delivered on the scheduler's event channel, in order, from a
// single goroutine per request.
type Event struct {
	Kind    EventKind
	Seq     int64
	Result  *domain.TaxResult
	Message string
}

// Computer issues the actual computation request. *api.Client satisfies
// it; tests substitute fakes.
type Computer interface {
	ComputeTax(ctx context.Context, payload calculation.ComputeRequest) (*domain.TaxResult, error)
}

// Options tunes the scheduler's timing.
type Options struct {
	// QuietPeriod is the debounce window after the last qualifying edit.
	QuietPeriod time.Duration
	// MinVisible is the floor on how long a submission appears to take,
	// so the loading indicator does not flash.
	MinVisible time.Duration
}

// DefaultOptions mirrors the form's historical timing: a one second
// debounce and a one second loading floor.
func DefaultOptions() Options {
	return Options{QuietPeriod: time.Second, MinVisible: time.Second}
}

// Scheduler is safe for concurrent use. Events are emitted on a buffered
// channel; if the consumer falls behind the oldest pending event is
// dropped rather than blocking a request goroutine.
type Scheduler struct {
	computer Computer
	opts     Options
	log      *zap.Logger

	mu        sync.Mutex
	timer     *time.Timer
	pending   calculation.ComputeRequest
	auto      bool
	seq       int64 // last sequence handed to a request
	delivered int64 // highest sequence whose outcome was delivered
	inFlight  int

	// Latest edit made while a request was in flight. It re-arms the
	// quiet-period timer at settlement so the edit is never lost.
	dirty        bool
	dirtyPayload calculation.ComputeRequest

	events chan Event
}

// New creates a scheduler. Auto-calculate starts enabled; the form
// disarms it on clear.
func New(computer Computer, opts Options, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = DefaultOptions().QuietPeriod
	}
	return &Scheduler{
		computer: computer,
		opts:     opts,
		log:      logger,
		auto:     true,
		events:   make(chan Event, 16),
	}
}

// Events is the stream the UI consumes.
func (s *Scheduler) Events() <-chan Event { return s.events }

// AutoCalculate reports whether edits currently arm the debounce timer.
func (s *Scheduler) AutoCalculate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auto
}

// SetAutoCalculate arms or disarms automatic recalculation.
func (s *Scheduler) SetAutoCalculate(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auto = on
}

// State reports the current machine state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		return InFlight
	}
	if s.timer != nil {
		return Scheduled
	}
	return Idle
}

// NoteChange records a field edit. When auto-calculate is on and the
// payload carries positive earnings, the quiet-period timer is started,
// or restarted if one is already pending, holding the payload snapshot
// of this latest edit. An edit arriving while a request is in flight is
// held and schedules itself once auto-calculate re-arms at settlement.
func (s *Scheduler) NoteChange(ctx context.Context, payload calculation.ComputeRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payload.IncomeDetails.TotalEarnings <= 0 {
		return
	}
	if s.inFlight > 0 {
		s.dirty = true
		s.dirtyPayload = payload
		return
	}
	if !s.auto {
		return
	}

	s.pending = payload
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.QuietPeriod, func() { s.fire(ctx) })
	s.emit(Event{Kind: EventScheduled})
}

// SubmitNow bypasses the debounce for an explicit "calculate" action.
func (s *Scheduler) SubmitNow(ctx context.Context, payload calculation.ComputeRequest) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// An explicit submission supersedes any edit held during a flight.
	s.dirty = false
	s.pending = payload
	s.mu.Unlock()
	s.fire(ctx)
}

// Clear cancels any pending timer, disarms auto-calculate, and marks
// every outstanding request stale so a late response cannot repopulate
// a cleared form.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.auto = false
	s.dirty = false
	s.delivered = s.seq
}

// fire moves one snapshot through Scheduled -> InFlight -> settlement.
func (s *Scheduler) fire(ctx context.Context) {
	s.mu.Lock()
	s.timer = nil
	// Auto-calculate stays off for the duration of the request; each new
	// edit during flight will only schedule once it is re-armed below.
	s.auto = false
	s.seq++
	seq := s.seq
	payload := s.pending
	s.inFlight++
	s.mu.Unlock()

	s.emit(Event{Kind: EventStarted, Seq: seq})
	started := time.Now()

	result, err := s.computer.ComputeTax(ctx, payload)

	if remaining := s.opts.MinVisible - time.Since(started); remaining > 0 {
		select {
		case <-time.After(remaining):
		case <-ctx.Done():
		}
	}

	s.mu.Lock()
	s.inFlight--
	s.auto = true
	stale := seq <= s.delivered
	if !stale {
		s.delivered = seq
	}
	// An edit held during the flight schedules now that auto-calculate
	// is back on.
	if s.dirty && s.inFlight == 0 {
		s.dirty = false
		s.pending = s.dirtyPayload
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(s.opts.QuietPeriod, func() { s.fire(ctx) })
		s.emit(Event{Kind: EventScheduled})
	}
	s.mu.Unlock()

	if stale {
		s.log.Debug("dropping stale compute response", zap.Int64("seq", seq))
		return
	}

	if err != nil {
		s.log.Warn("tax computation failed", zap.Int64("seq", seq), zap.Error(err))
		s.emit(Event{Kind: EventFailed, Seq: seq, Message: api.UserMessage(err)})
		return
	}
	s.emit(Event{Kind: EventSettled, Seq: seq, Result: result})
}

// emit delivers without ever blocking a request goroutine.
func (s *Scheduler) emit(ev Event) {
	for {
		select {
		case s.events <- ev:
			return
		default:
			select {
			case <-s.events:
				s.log.Debug("event buffer full, dropped oldest")
			default:
			}
		}
	}
}
