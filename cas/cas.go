package cas

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgryski/go-farm"
)

// CAS is a content-addressed store of serialized machine configurations.
type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool

	// Step tracking for loop detection
	RecordDepth(hash Hash, depth int)
	GetDepths(hash Hash) []int
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type directStore interface {
	getValue(h Hash) (bool, []byte, error)
}

type Hash uint64

func encode(item Hashable) ([]byte, Hash, error) {
	var buf bytes.Buffer
	if err := item.Serialize(&buf); err != nil {
		return nil, 0, err
	}
	data := buf.Bytes()
	return data, Hash(farm.Hash64(data)), nil
}

// Sum returns the hash item would be stored under, without storing it.
func Sum(item Hashable) (Hash, error) {
	_, h, err := encode(item)
	return h, err
}

// Retrieve deserializes the entry stored under hash into a new T.
func Retrieve[T any, PT interface {
	*T
	Hashable
}](c CAS, hash Hash) (PT, error) {
	v, ok := c.(directStore)
	if !ok {
		return nil, fmt.Errorf("CAS %T does not support direct retrieval", c)
	}
	has, data, err := v.getValue(hash)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("hash not found in CAS: 0x%x", uint64(hash))
	}
	out := PT(new(T))
	if err := out.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("deserializing 0x%x: %w", uint64(hash), err)
	}
	return out, nil
}
