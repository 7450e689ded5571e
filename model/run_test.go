package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/turing/cas"
	"github.com/timewinder-dev/turing/interp"
	"github.com/timewinder-dev/turing/vm"
)

func walkStates() []*vm.State {
	return []*vm.State{vm.NewState(inst(vm.Blank, vm.Blank, vm.Right, 0))}
}

func TestRunToEndFinished(t *testing.T) {
	m := newTestMachine(t, flipStates(), "ab", time.Millisecond)
	res, err := RunToEnd(context.Background(), m, RunOptions{DetectLoops: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinished, res.Outcome)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, len(flipEvents), res.Events)
	assert.Equal(t, "ba__", res.Tape.String())
	assert.Nil(t, res.Loop)
	assert.NoError(t, res.Err)

	_, err = RunToEnd(context.Background(), m, RunOptions{})
	assert.ErrorIs(t, err, ErrHalted)
}

func TestRunToEndError(t *testing.T) {
	m := newTestMachine(t, flipStates(), "c", time.Millisecond)
	res, err := RunToEnd(context.Background(), m, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeError, res.Outcome)
	var nie *interp.NoInstructionFoundError
	require.True(t, errors.As(res.Err, &nie))
	assert.Equal(t, vm.Symbol('c'), nie.Symbol)
}

func TestRunToEndLoop(t *testing.T) {
	store := cas.NewLRUCache(cas.NewMemoryCAS(), 10)
	m := newTestMachine(t, walkStates(), "", time.Millisecond)
	res, err := RunToEnd(context.Background(), m, RunOptions{DetectLoops: true, CAS: store})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoop, res.Outcome)
	require.NotNil(t, res.Loop)
	assert.Equal(t, 0, res.Loop.First)
	assert.Equal(t, 1, res.Loop.Repeat)
	assert.Contains(t, FormatLoop(*res.Loop, store), "State 0: [_]")
	assert.False(t, m.Running())
}

func TestRunToEndStepLimit(t *testing.T) {
	m := newTestMachine(t, walkStates(), "", time.Millisecond)
	res, err := RunToEnd(context.Background(), m, RunOptions{MaxSteps: 5})
	require.NoError(t, err)
	assert.Equal(t, OutcomeStepLimit, res.Outcome)
	assert.Equal(t, 5, res.Steps)
	assert.Equal(t, 6, res.Tape.Len())
	assert.False(t, m.Running())
}

func TestRunToEndContext(t *testing.T) {
	m := newTestMachine(t, walkStates(), "", time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := RunToEnd(ctx, m, RunOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, m.Running())
}

func TestRunToEndUnpauses(t *testing.T) {
	m := newTestMachine(t, flipStates(), "ab", time.Millisecond)
	m.Pause()
	res, err := RunToEnd(context.Background(), m, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinished, res.Outcome)
}

func TestParseOutcome(t *testing.T) {
	for _, o := range []Outcome{OutcomeFinished, OutcomeError, OutcomeLoop, OutcomeStepLimit} {
		got, err := ParseOutcome(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOutcome("halted")
	assert.Error(t, err)
}
