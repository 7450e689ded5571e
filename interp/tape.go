package interp

import (
	"slices"

	"github.com/timewinder-dev/turing/vm"
)

// Tape is an unbounded sequence of symbols with a cursor. Moving past
// either end grows the word by one blank cell.
type Tape struct {
	word   []vm.Symbol
	cursor int
}

// NewTape returns a tape holding a single blank cell.
func NewTape() *Tape {
	return &Tape{word: []vm.Symbol{vm.Blank}}
}

// SetWord replaces the working sequence and rewinds the cursor.
func (t *Tape) SetWord(word []vm.Symbol) {
	t.word = slices.Clone(word)
	t.cursor = 0
}

func (t *Tape) Word() []vm.Symbol {
	return slices.Clone(t.word)
}

func (t *Tape) Cursor() int {
	return t.cursor
}

func (t *Tape) Len() int {
	return len(t.word)
}

// Current returns the symbol under the cursor. An empty word reads as blank.
func (t *Tape) Current() vm.Symbol {
	if t.cursor >= len(t.word) {
		return vm.Blank
	}
	return t.word[t.cursor]
}

func (t *Tape) WriteSymbol(s vm.Symbol) {
	t.materialize()
	t.word[t.cursor] = s
}

func (t *Tape) Move(d vm.Direction) {
	t.materialize()
	switch d {
	case vm.Left:
		t.cursor--
		if t.cursor < 0 {
			t.word = slices.Insert(t.word, 0, vm.Blank)
			t.cursor = 0
		}
	case vm.Right:
		t.cursor++
		if t.cursor >= len(t.word) {
			t.word = append(t.word, vm.Blank)
		}
	}
}

// Reset empties the word. Unlike NewTape it does not seed a blank cell;
// the first access materializes one.
func (t *Tape) Reset() {
	t.word = nil
	t.cursor = 0
}

// materialize backs an empty word with the blank cell the cursor sits on.
func (t *Tape) materialize() {
	if len(t.word) == 0 {
		t.word = []vm.Symbol{vm.Blank}
		t.cursor = 0
	}
}

func (t *Tape) Snapshot() Snapshot {
	return Snapshot{Word: slices.Clone(t.word), Cursor: t.cursor}
}

// Snapshot is an immutable copy of a tape.
type Snapshot struct {
	Word   []vm.Symbol
	Cursor int
}

func (s Snapshot) Len() int {
	return len(s.Word)
}

func (s Snapshot) String() string {
	return vm.Text(s.Word)
}

// Trimmed returns the text without blank cells at either end.
func (s Snapshot) Trimmed() string {
	lo, hi := 0, len(s.Word)
	for lo < hi && s.Word[lo] == vm.Blank {
		lo++
	}
	for hi > lo && s.Word[hi-1] == vm.Blank {
		hi--
	}
	return vm.Text(s.Word[lo:hi])
}
