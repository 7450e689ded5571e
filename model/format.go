package model

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/timewinder-dev/turing/cas"
	"github.com/timewinder-dev/turing/interp"
)

const rule = "================================================================================"

// FormatTape renders the tape with the cursor cell bracketed.
func FormatTape(s interp.Snapshot) string {
	var b strings.Builder
	for i, sym := range s.Word {
		if i == s.Cursor {
			b.WriteString(color.Yellow.Sprintf("[%s]", sym))
		} else {
			b.WriteString(sym.String())
		}
	}
	if s.Cursor >= len(s.Word) {
		b.WriteString(color.Yellow.Sprint("[_]"))
	}
	return b.String()
}

// FormatEvent formats a single event as one line
func FormatEvent(e Event) string {
	switch e.Kind {
	case SymbolRead:
		return fmt.Sprintf("%s %s %s", color.Cyan.Sprintf("%-12s", e.Kind), color.Gray.Sprintf("%-7s", e.Label), e.Symbol)
	case SymbolWrite, TapeMove:
		return fmt.Sprintf("%s %s state %d  %s", color.Cyan.Sprintf("%-12s", e.Kind), color.Gray.Sprintf("%-7s", e.Label), e.StateIndex, FormatTape(e.Tape))
	case Finished:
		return color.Green.Sprint(e.Kind.String())
	case Error:
		return fmt.Sprintf("%s %s", color.Red.Sprintf("%-12s", e.Kind), color.Red.Sprint(e.Message))
	default:
		return e.String()
	}
}

// FormatResult formats the outcome and statistics of a run
func FormatResult(r *Result) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprint("=== Run statistics ==="))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Outcome: "))
	switch r.Outcome {
	case OutcomeFinished:
		b.WriteString(color.Green.Sprintf("%s\n", r.Outcome))
	case OutcomeError:
		b.WriteString(color.Red.Sprintf("%s\n", r.Outcome))
	default:
		b.WriteString(color.Yellow.Sprintf("%s\n", r.Outcome))
	}
	b.WriteString(color.Bold.Sprint("Macro-steps: "))
	b.WriteString(fmt.Sprintf("%d\n", r.Steps))
	b.WriteString(color.Bold.Sprint("Events: "))
	b.WriteString(fmt.Sprintf("%d\n", r.Events))
	b.WriteString(color.Bold.Sprint("Tape: "))
	b.WriteString(FormatTape(r.Tape))
	b.WriteString("\n")
	if r.Err != nil {
		b.WriteString(color.Bold.Sprint("Error: "))
		b.WriteString(color.Red.Sprintf("%s\n", r.Err))
	}
	return b.String()
}

// FormatLoop formats a detected loop, pulling the repeated configuration
// back out of the CAS when it is available
func FormatLoop(l Loop, store cas.CAS) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint(rule))
	b.WriteString("\n")
	b.WriteString(color.Yellow.Sprint("LOOP DETECTED"))
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint(rule))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("First seen:  "))
	b.WriteString(fmt.Sprintf("step %d\n", l.First))
	b.WriteString(color.Bold.Sprint("Repeated at: "))
	b.WriteString(fmt.Sprintf("step %d\n", l.Repeat))
	b.WriteString(color.Bold.Sprint("Hash:        "))
	b.WriteString(fmt.Sprintf("0x%x\n", uint64(l.Hash)))
	if store != nil {
		cfg, err := cas.Retrieve[interp.Configuration](store, l.Hash)
		if err != nil {
			b.WriteString("  (configuration unavailable)\n")
		} else {
			b.WriteString(color.Bold.Sprint("Config:      "))
			b.WriteString(cfg.PrettyPrint())
			b.WriteString("\n")
		}
	}
	b.WriteString(color.Gray.Sprint(rule))
	b.WriteString("\n")
	return b.String()
}

// FormatExpectation formats an unmet expectation from a machine description
func FormatExpectation(err error) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint(rule))
	b.WriteString("\n")
	b.WriteString(color.Red.Sprint("EXPECTATION FAILED"))
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint(rule))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Message: "))
	b.WriteString(color.Red.Sprintf("%s\n", err))
	b.WriteString(color.Gray.Sprint(rule))
	b.WriteString("\n")
	return b.String()
}
