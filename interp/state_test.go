package interp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/turing/vm"
)

func flipProgram() vm.Program {
	return vm.Program{
		vm.NewState(
			vm.Instruction{Precondition: 'a', Postcondition: 'b', Direction: vm.Right, Successor: 0},
			vm.Instruction{Precondition: 'b', Postcondition: 'a', Direction: vm.Right, Successor: 0},
			vm.Instruction{Precondition: vm.Blank, Postcondition: vm.Blank, Direction: vm.Right, Successor: 1},
		),
		vm.NewState(),
	}
}

func loaded(p vm.Program) *StateManager {
	sm := NewStateManager()
	for _, s := range p {
		sm.AddState(s)
	}
	return sm
}

func TestExecute(t *testing.T) {
	p := flipProgram()
	sm := loaded(p)

	res, err := sm.Execute('a')
	require.NoError(t, err)
	assert.Equal(t, ExecutionResult{Symbol: 'b', Direction: vm.Right, Finished: false}, res)
	assert.Same(t, p[0], sm.CurrentState())

	res, err = sm.Execute(vm.Blank)
	require.NoError(t, err)
	assert.True(t, res.Finished, "finished reflects the successor state")
	assert.Equal(t, 1, sm.Index())
	assert.Same(t, p[1], sm.CurrentState())
}

func TestFinishedLooksAtSuccessor(t *testing.T) {
	p := vm.Program{
		vm.NewState(vm.Instruction{Precondition: 'a', Postcondition: 'a', Direction: vm.Right, Successor: 1}),
		vm.NewState(vm.Instruction{Precondition: 'a', Postcondition: 'a', Direction: vm.Right, Successor: 2}),
		vm.NewState(),
	}
	sm := loaded(p)
	res, err := sm.Execute('a')
	require.NoError(t, err)
	assert.False(t, res.Finished)
	res, err = sm.Execute('a')
	require.NoError(t, err)
	assert.True(t, res.Finished)
}

func TestExecuteNoInstruction(t *testing.T) {
	sm := loaded(flipProgram())
	_, err := sm.Execute('c')
	var nie *NoInstructionFoundError
	require.True(t, errors.As(err, &nie))
	assert.Equal(t, vm.Symbol('c'), nie.Symbol)
	assert.Equal(t, "No instruction found for symbol c", err.Error())
	assert.Equal(t, 0, sm.Index(), "index is unchanged")
}

func TestExecuteNoState(t *testing.T) {
	p := vm.Program{
		vm.NewState(vm.Instruction{Precondition: 'b', Postcondition: 'a', Direction: vm.Right, Successor: 2}),
		vm.NewState(),
	}
	sm := loaded(p)
	_, err := sm.Execute('b')
	var nse *NoStateFoundError
	require.True(t, errors.As(err, &nse))
	assert.Equal(t, 2, nse.Index)
	assert.Equal(t, "No state found for index 2", err.Error())
	assert.Equal(t, 2, sm.Index(), "index is left invalid")
	assert.Nil(t, sm.CurrentState())

	_, err = sm.Execute('b')
	require.True(t, errors.As(err, &nse))
}

func TestExecuteWithoutProgram(t *testing.T) {
	sm := NewStateManager()
	_, err := sm.Execute('a')
	var nse *NoStateFoundError
	require.True(t, errors.As(err, &nse))
	assert.Equal(t, 0, nse.Index)
}

func TestStateManagerReset(t *testing.T) {
	sm := loaded(flipProgram())
	_, err := sm.Execute(vm.Blank)
	require.NoError(t, err)
	sm.Reset()
	assert.Equal(t, 0, sm.Index())
	assert.Empty(t, sm.Program())
	assert.Nil(t, sm.CurrentState())
}

func TestConfigurationNormalizes(t *testing.T) {
	a := NewConfiguration(0, Snapshot{Word: vm.Word("__ab__"), Cursor: 2})
	b := NewConfiguration(0, Snapshot{Word: vm.Word("ab_"), Cursor: 0})
	assert.Equal(t, a, b)
	assert.Equal(t, "ab", a.Word)

	c := NewConfiguration(1, Snapshot{Word: vm.Word("____"), Cursor: 3})
	assert.Equal(t, &Configuration{State: 1, Cursor: 0, Word: "_"}, c)

	empty := NewConfiguration(0, Snapshot{})
	assert.Equal(t, "", empty.Word)
}

func TestConfigurationSerde(t *testing.T) {
	c := NewConfiguration(3, Snapshot{Word: vm.Word("a_b"), Cursor: 1})
	var buf bytes.Buffer
	require.NoError(t, c.Serialize(&buf))
	var out Configuration
	require.NoError(t, out.Deserialize(&buf))
	assert.Equal(t, *c, out)
	assert.Equal(t, "State 3: a[_]b", out.PrettyPrint())
}
