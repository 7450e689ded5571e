package model

import (
	"fmt"

	"github.com/timewinder-dev/turing/interp"
	"github.com/timewinder-dev/turing/vm"
)

type EventKind int

const (
	SymbolRead EventKind = iota
	SymbolWrite
	TapeMove
	Finished
	Error
)

func (k EventKind) String() string {
	switch k {
	case SymbolRead:
		return "SYMBOL_READ"
	case SymbolWrite:
		return "SYMBOL_WRITE"
	case TapeMove:
		return "TAPE_MOVE"
	case Finished:
		return "FINISHED"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Terminal reports whether no event can follow this one without a Reset.
func (k EventKind) Terminal() bool {
	return k == Finished || k == Error
}

// Labels name the step that produced an event. The two SymbolRead events
// of a macro-step are told apart by theirs.
const (
	LabelLoad     = "load"
	LabelRead     = "read"
	LabelExecute  = "execute"
	LabelWrite    = "write"
	LabelMove     = "move"
	LabelFinished = "finished"
	LabelError    = "error"
)

// Event is a one-shot notification about a single phase of execution.
// Which fields are set depends on Kind:
//
//	SymbolRead   Symbol
//	SymbolWrite  State, StateIndex, Tape
//	TapeMove     State, StateIndex, Tape
//	Finished     -
//	Error        Message, Err
//
// Label is always set.
type Event struct {
	Kind       EventKind
	Label      string
	Symbol     vm.Symbol
	State      *vm.State
	StateIndex int
	Tape       interp.Snapshot
	Message    string
	Err        error
}

func (e Event) String() string {
	switch e.Kind {
	case SymbolRead:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Symbol)
	case SymbolWrite, TapeMove:
		return fmt.Sprintf("%s(state=%d, tape=%q, cursor=%d)", e.Kind, e.StateIndex, e.Tape.String(), e.Tape.Cursor)
	case Error:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

func symbolRead(label string, s vm.Symbol) Event {
	return Event{Kind: SymbolRead, Label: label, Symbol: s}
}

func errorEvent(err error) Event {
	return Event{Kind: Error, Label: LabelError, Message: err.Error(), Err: err}
}
