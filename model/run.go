package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/timewinder-dev/turing/cas"
	"github.com/timewinder-dev/turing/interp"
)

type Outcome int

const (
	OutcomeFinished Outcome = iota
	OutcomeError
	OutcomeLoop
	OutcomeStepLimit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeError:
		return "error"
	case OutcomeLoop:
		return "loop"
	case OutcomeStepLimit:
		return "limit"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{OutcomeFinished, OutcomeError, OutcomeLoop, OutcomeStepLimit} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

type RunOptions struct {
	// MaxSteps stops the run after this many macro-steps (0 means no limit)
	MaxSteps int
	// DetectLoops stops the run when a configuration repeats
	DetectLoops bool
	// CAS holds configuration fingerprints; a MemoryCAS is used when nil
	CAS cas.CAS
}

type Result struct {
	Outcome Outcome
	Steps   int
	Events  int
	Tape    interp.Snapshot
	Err     error
	Loop    *Loop
}

// RunToEnd runs m on its clock until it finishes, errors, loops or hits
// the step limit. Transition errors are reported in the Result, not as
// the returned error. Loop and step-limit runs are reset afterwards to
// stop the clock; the Result keeps the tape as it was.
func RunToEnd(ctx context.Context, m *Machine, opts RunOptions) (*Result, error) {
	if m.Halted() {
		return nil, ErrHalted
	}

	var mu sync.Mutex
	res := &Result{}
	done := make(chan Outcome, 1)
	signal := func(o Outcome) {
		select {
		case done <- o:
		default:
		}
	}

	var detector *LoopDetector
	if opts.DetectLoops {
		detector = NewLoopDetector(opts.CAS, func(l Loop) {
			m.Pause()
			mu.Lock()
			res.Loop = &l
			mu.Unlock()
			signal(OutcomeLoop)
		})
	}

	sub := m.Subscribe(func(e Event) {
		mu.Lock()
		res.Events++
		if e.Kind == TapeMove {
			res.Steps++
		}
		if e.Kind == Error {
			res.Err = e.Err
		}
		steps := res.Steps
		mu.Unlock()

		if detector != nil {
			detector.Observe(e)
		}
		switch {
		case e.Kind == Finished:
			signal(OutcomeFinished)
		case e.Kind == Error:
			signal(OutcomeError)
		case opts.MaxSteps > 0 && e.Kind == TapeMove && steps >= opts.MaxSteps:
			m.Pause()
			signal(OutcomeStepLimit)
		}
	})
	defer sub.Unsubscribe()

	m.Unpause()
	m.Run(ctx)

	var outcome Outcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		m.Reset()
		return nil, ctx.Err()
	}

	tape := m.Tape()
	if outcome == OutcomeLoop || outcome == OutcomeStepLimit {
		m.Reset()
	}

	mu.Lock()
	defer mu.Unlock()
	res.Outcome = outcome
	res.Tape = tape
	return res, nil
}
