package model

import "fmt"

// Phase is one of the five sub-steps of a macro-step.
type Phase int

const (
	PhaseRead Phase = iota
	PhaseExecute
	PhaseWrite
	PhaseMove
	PhaseFinishCheck
	numPhases
)

func (p Phase) next() Phase {
	return (p + 1) % numPhases
}

func (p Phase) String() string {
	switch p {
	case PhaseRead:
		return "Read"
	case PhaseExecute:
		return "Execute"
	case PhaseWrite:
		return "Write"
	case PhaseMove:
		return "Move"
	case PhaseFinishCheck:
		return "FinishCheck"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// advance runs the current phase and moves the counter on. Callers hold m.mu
// and hand the queued event to observers with unlockAndDeliver.
func (m *Machine) advance() {
	p := m.phase
	m.phase = p.next()
	m.log.Trace().Str("phase", p.String()).Int("cursor", m.tape.Cursor()).Msg("advance")

	switch p {
	case PhaseRead:
		m.emit(symbolRead(LabelRead, m.tape.Current()))
	case PhaseExecute:
		res, err := m.states.Execute(m.tape.Current())
		if err != nil {
			m.fail(err)
			return
		}
		m.lastResult = res
		m.emit(symbolRead(LabelExecute, res.Symbol))
	case PhaseWrite:
		m.tape.WriteSymbol(m.lastResult.Symbol)
		m.emit(m.tapeEvent(SymbolWrite, LabelWrite))
	case PhaseMove:
		m.tape.Move(m.lastResult.Direction)
		m.steps++
		m.emit(m.tapeEvent(TapeMove, LabelMove))
	case PhaseFinishCheck:
		if m.lastResult.Finished {
			m.log.Debug().Int("steps", m.steps).Msg("machine finished")
			m.halt()
			m.emit(Event{Kind: Finished, Label: LabelFinished})
		}
	}
}

func (m *Machine) tapeEvent(kind EventKind, label string) Event {
	return Event{
		Kind:       kind,
		Label:      label,
		State:      m.states.CurrentState(),
		StateIndex: m.states.Index(),
		Tape:       m.tape.Snapshot(),
	}
}

func (m *Machine) fail(err error) {
	m.log.Debug().Err(err).Int("steps", m.steps).Msg("machine stopped on error")
	m.halt()
	m.emit(errorEvent(err))
}

func (m *Machine) halt() {
	m.halted = true
	m.stopClock()
}
