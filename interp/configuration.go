package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/shamaton/msgpack/v2"
	"github.com/timewinder-dev/turing/vm"
)

// Configuration is the complete instantaneous description of a machine
// between macro-steps. Blank cells away from the cursor are trimmed, so two
// configurations that differ only in how far the tape has grown compare
// equal.
type Configuration struct {
	State  int
	Cursor int
	Word   string
}

func NewConfiguration(state int, s Snapshot) *Configuration {
	word := s.Word
	lo := 0
	for lo < s.Cursor && word[lo] == vm.Blank {
		lo++
	}
	hi := len(word)
	for hi > s.Cursor+1 && word[hi-1] == vm.Blank {
		hi--
	}
	return &Configuration{
		State:  state,
		Cursor: s.Cursor - lo,
		Word:   vm.Text(word[lo:hi]),
	}
}

func (c *Configuration) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, c)
}

func (c *Configuration) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, c)
}

// PrettyPrint renders the word with the cursor cell bracketed.
func (c *Configuration) PrettyPrint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State %d: ", c.State)
	i := 0
	for _, r := range c.Word {
		if i == c.Cursor {
			fmt.Fprintf(&b, "[%c]", r)
		} else {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}
