package model

import (
	"fmt"
	"io"
)

// Reporter handles event output while a machine runs
type Reporter interface {
	Printf(format string, args ...interface{})
}

// SilentReporter does not output anything
type SilentReporter struct{}

func (r *SilentReporter) Printf(format string, args ...interface{}) {}

// ColorReporter outputs colorized events to a writer (typically stderr)
type ColorReporter struct {
	Writer io.Writer
}

func (r *ColorReporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.Writer, format, args...)
}

// PrintEvents returns an observer that writes every event to r, one per line.
func PrintEvents(r Reporter) Observer {
	return func(e Event) {
		r.Printf("%s\n", FormatEvent(e))
	}
}
