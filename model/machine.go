package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/turing/interp"
	"github.com/timewinder-dev/turing/vm"
)

const DefaultStepInterval = time.Second

var (
	ErrNoProgram = errors.New("no program provided")
	ErrHalted    = errors.New("machine has halted; reset it before reuse")
)

// A Machine drives a Tape and a StateManager through the five-phase cycle
// and publishes one Event per phase.
//
// All phase advances are serialized on an internal lock. Events are queued
// while it is held and handed to observers once it is released, one at a
// time and in order, so an observer may call any method. Events produced
// while a delivery is in flight, by an observer or by another goroutine,
// queue behind it, and clock ticks are skipped until the queue drains.
type Machine struct {
	ID string

	tape     *interp.Tape
	states   *interp.StateManager
	interval time.Duration
	log      zerolog.Logger

	mu         sync.Mutex
	phase      Phase
	lastResult interp.ExecutionResult
	halted     bool
	steps      int
	clock      *clock

	pending    []Event
	delivering bool

	paused    atomic.Bool
	observers broadcaster
}

// NewMachine takes ownership of tape and states. A non-positive interval
// selects DefaultStepInterval.
func NewMachine(tape *interp.Tape, states *interp.StateManager, interval time.Duration) *Machine {
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	id := uuid.NewString()
	return &Machine{
		ID:       id,
		tape:     tape,
		states:   states,
		interval: interval,
		log:      log.With().Str("machine", id).Logger(),
	}
}

// LoadProgram appends every state to the state manager, in order.
func (m *Machine) LoadProgram(states []*vm.State) error {
	if len(states) == 0 {
		return ErrNoProgram
	}
	for i, s := range states {
		if s == nil {
			return fmt.Errorf("state %d is nil", i)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range states {
		m.states.AddState(s)
	}
	m.log.Debug().Int("states", len(states)).Msg("program loaded")
	return nil
}

// LoadWord puts text on the tape, one symbol per character, and emits the
// initial TapeMove frame.
func (m *Machine) LoadWord(text string) {
	m.mu.Lock()
	m.tape.SetWord(vm.Word(text))
	m.log.Debug().Str("word", text).Msg("word loaded")
	m.emit(m.tapeEvent(TapeMove, LabelLoad))
	m.unlockAndDeliver()
}

// Subscribe registers o for every event emitted from now on.
func (m *Machine) Subscribe(o Observer) *Subscription {
	return m.observers.add(o)
}

// Run starts the clock. Each tick advances one phase unless the machine is
// paused. A clock that is already running is replaced; the phase counter is
// kept. Run on a halted machine does nothing.
func (m *Machine) Run(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.halted {
		m.log.Warn().Msg("run called on a halted machine")
		return
	}
	m.stopClock()
	m.clock = startClock(ctx, m.interval, m.tick, m.clockStopped)
	m.log.Debug().Dur("interval", m.interval).Str("phase", m.phase.String()).Msg("clock started")
}

func (m *Machine) Pause() {
	m.paused.Store(true)
}

func (m *Machine) Unpause() {
	m.paused.Store(false)
}

func (m *Machine) Paused() bool {
	return m.paused.Load()
}

// Step forces a phase advance regardless of the pause flag. The silent
// finish-check phase is never left as the only thing a step did: a step
// starting on it or landing on it runs one more phase.
func (m *Machine) Step() {
	m.mu.Lock()
	if m.halted {
		m.mu.Unlock()
		m.log.Debug().Msg("step called on a halted machine")
		return
	}
	if m.phase == PhaseFinishCheck {
		m.advance()
	}
	if !m.halted {
		m.advance()
	}
	if !m.halted && m.phase == PhaseFinishCheck {
		m.advance()
	}
	m.unlockAndDeliver()
}

// Reset stops the clock, empties the tape, drops the program and rewinds
// the phase counter.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopClock()
	m.tape.Reset()
	m.states.Reset()
	m.phase = PhaseRead
	m.lastResult = interp.ExecutionResult{}
	m.halted = false
	m.steps = 0
	m.paused.Store(false)
	m.log.Debug().Msg("machine reset")
}

func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Machine) Halted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.halted
}

// Running reports whether a clock is attached.
func (m *Machine) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clock != nil
}

// Steps returns the number of completed macro-steps.
func (m *Machine) Steps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps
}

func (m *Machine) Tape() interp.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tape.Snapshot()
}

func (m *Machine) StateIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states.Index()
}

func (m *Machine) tick(c *clock) {
	m.mu.Lock()
	if m.clock != c || m.halted || m.delivering || m.paused.Load() {
		m.mu.Unlock()
		return
	}
	m.advance()
	m.unlockAndDeliver()
}

// clockStopped detaches c once its goroutine has exited, so a clock whose
// context ended no longer counts as running.
func (m *Machine) clockStopped(c *clock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clock == c {
		m.clock = nil
		m.log.Debug().Msg("clock context ended")
	}
}

func (m *Machine) stopClock() {
	if m.clock != nil {
		m.clock.stop()
		m.clock = nil
	}
}

// emit queues e for delivery. Callers hold m.mu.
func (m *Machine) emit(e Event) {
	m.pending = append(m.pending, e)
}

// unlockAndDeliver releases m.mu and hands queued events to observers. If
// another call is already delivering, the events are left for it.
func (m *Machine) unlockAndDeliver() {
	if m.delivering {
		m.mu.Unlock()
		return
	}
	m.delivering = true
	for len(m.pending) > 0 {
		e := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()
		m.observers.emit(e)
		m.mu.Lock()
	}
	m.pending = nil
	m.delivering = false
	m.mu.Unlock()
}
