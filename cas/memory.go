package cas

import (
	"sort"
	"sync"
)

type MemoryCAS struct {
	mu     sync.RWMutex
	data   map[Hash][]byte
	depths map[Hash][]int // Macro-steps at which each hash was seen
}

func NewMemoryCAS() *MemoryCAS {
	return &MemoryCAS{
		data:   make(map[Hash][]byte),
		depths: make(map[Hash][]int),
	}
}

func (m *MemoryCAS) getValue(h Hash) (bool, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[h]
	if !ok {
		return false, nil, nil
	}
	return true, v, nil
}

func (m *MemoryCAS) Has(hash Hash) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[hash]
	return ok
}

func (m *MemoryCAS) Put(item Hashable) (Hash, error) {
	data, h, err := encode(item)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[h] = data
	return h, nil
}

// Len returns the number of distinct entries stored.
func (m *MemoryCAS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// RecordDepth records that hash was seen at the given macro-step
func (m *MemoryCAS) RecordDepth(hash Hash, depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depths[hash] = append(m.depths[hash], depth)
	sort.Ints(m.depths[hash])
}

// GetDepths returns all macro-steps at which hash was seen
func (m *MemoryCAS) GetDepths(hash Hash) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	depths := m.depths[hash]
	result := make([]int, len(depths))
	copy(result, depths)
	return result
}
