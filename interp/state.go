package interp

import (
	"fmt"

	"github.com/timewinder-dev/turing/vm"
)

// ExecutionResult is the outcome of one transition lookup. Finished reports
// whether the successor state halts, one step ahead of actually halting.
type ExecutionResult struct {
	Symbol    vm.Symbol
	Direction vm.Direction
	Finished  bool
}

type NoInstructionFoundError struct {
	Symbol vm.Symbol
}

func (e *NoInstructionFoundError) Error() string {
	return fmt.Sprintf("No instruction found for symbol %s", e.Symbol)
}

type NoStateFoundError struct {
	Index int
}

func (e *NoStateFoundError) Error() string {
	return fmt.Sprintf("No state found for index %d", e.Index)
}

// StateManager holds the loaded program and the active state index.
type StateManager struct {
	program vm.Program
	index   int
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

func (sm *StateManager) AddState(s *vm.State) {
	sm.program = append(sm.program, s)
}

func (sm *StateManager) Program() vm.Program {
	return sm.program
}

func (sm *StateManager) Index() int {
	return sm.index
}

// CurrentState returns the active state, or nil when the index is out of
// bounds.
func (sm *StateManager) CurrentState() *vm.State {
	if sm.index < 0 || sm.index >= len(sm.program) {
		return nil
	}
	return sm.program[sm.index]
}

// Execute looks up the transition for sym in the active state and moves to
// its successor. On a missing instruction the index is untouched; on a
// successor out of bounds the index is left at the invalid value until
// Reset.
func (sm *StateManager) Execute(sym vm.Symbol) (ExecutionResult, error) {
	current := sm.CurrentState()
	if current == nil {
		return ExecutionResult{}, &NoStateFoundError{Index: sm.index}
	}
	inst, ok := current.Lookup(sym)
	if !ok {
		return ExecutionResult{}, &NoInstructionFoundError{Symbol: sym}
	}
	sm.index = inst.Successor
	next := sm.CurrentState()
	if next == nil {
		return ExecutionResult{}, &NoStateFoundError{Index: sm.index}
	}
	return ExecutionResult{
		Symbol:    inst.Postcondition,
		Direction: inst.Direction,
		Finished:  next.IsHalting(),
	}, nil
}

// Reset drops the program as well as the index.
func (sm *StateManager) Reset() {
	sm.program = nil
	sm.index = 0
}
