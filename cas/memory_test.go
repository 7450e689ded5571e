package cas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/turing/interp"
	"github.com/timewinder-dev/turing/vm"
)

func config(state int, word string, cursor int) *interp.Configuration {
	return interp.NewConfiguration(state, interp.Snapshot{Word: vm.Word(word), Cursor: cursor})
}

func TestMemoryCAS_PutRetrieve(t *testing.T) {
	m := NewMemoryCAS()
	c := config(1, "ab", 1)

	h, err := m.Put(c)
	require.NoError(t, err)
	assert.True(t, m.Has(h))
	assert.Equal(t, 1, m.Len())

	sum, err := Sum(c)
	require.NoError(t, err)
	assert.Equal(t, h, sum)

	got, err := Retrieve[interp.Configuration](m, h)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestMemoryCAS_SameContentSameHash(t *testing.T) {
	m := NewMemoryCAS()
	h1, err := m.Put(config(0, "__ab", 2))
	require.NoError(t, err)
	h2, err := m.Put(config(0, "ab__", 0))
	require.NoError(t, err)
	h3, err := m.Put(config(1, "ab", 0))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Equal(t, 2, m.Len())
}

func TestMemoryCAS_Missing(t *testing.T) {
	m := NewMemoryCAS()
	assert.False(t, m.Has(42))
	_, err := Retrieve[interp.Configuration](m, 42)
	require.Error(t, err)
}

func TestMemoryCAS_Depths(t *testing.T) {
	m := NewMemoryCAS()
	m.RecordDepth(7, 5)
	m.RecordDepth(7, 2)
	assert.Equal(t, []int{2, 5}, m.GetDepths(7))
	assert.Empty(t, m.GetDepths(8))

	d := m.GetDepths(7)
	d[0] = 100
	assert.Equal(t, []int{2, 5}, m.GetDepths(7))
}
