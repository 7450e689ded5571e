package vm

import (
	"fmt"
	"io"
)

// An Instruction reads as: when the current symbol equals Precondition,
// write Postcondition, move the head in Direction and make Successor the
// active state.
type Instruction struct {
	Precondition  Symbol
	Postcondition Symbol
	Direction     Direction
	Successor     int
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s -> %s, %s, %d", i.Precondition, i.Postcondition, i.Direction, i.Successor)
}

// State is an ordered list of instructions. A State without instructions
// is a halting state.
type State struct {
	Instructions []Instruction
}

func NewState(instructions ...Instruction) *State {
	return &State{Instructions: instructions}
}

func (s *State) IsHalting() bool {
	return len(s.Instructions) == 0
}

// Lookup returns the first instruction whose precondition matches sym.
// Later instructions with the same precondition are unreachable.
func (s *State) Lookup(sym Symbol) (Instruction, bool) {
	for _, inst := range s.Instructions {
		if inst.Precondition == sym {
			return inst, true
		}
	}
	return Instruction{}, false
}

// Program is the index-addressed list of states; index 0 is the initial state.
type Program []*State

func (p Program) DebugPrint(w io.Writer) {
	for i, s := range p {
		if s.IsHalting() {
			fmt.Fprintf(w, "*** State %d (halt)\n", i)
			continue
		}
		fmt.Fprintf(w, "*** State %d:\n", i)
		for j, inst := range s.Instructions {
			fmt.Fprintf(w, "  %03d: %s\n", j, inst)
		}
	}
}
