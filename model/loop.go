package model

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/turing/cas"
	"github.com/timewinder-dev/turing/interp"
)

// Loop describes a configuration seen twice. A deterministic machine that
// repeats a configuration never halts.
type Loop struct {
	Hash   cas.Hash
	First  int
	Repeat int
}

// LoopDetector fingerprints the configuration after every TapeMove and
// reports the first repeat. Observation number 0 is the first TapeMove it
// receives, which is the LoadWord frame when it subscribed early enough.
type LoopDetector struct {
	CAS    cas.CAS
	OnLoop func(Loop)

	mu    sync.Mutex
	seen  int
	found *Loop
	err   error
}

func NewLoopDetector(store cas.CAS, onLoop func(Loop)) *LoopDetector {
	if store == nil {
		store = cas.NewMemoryCAS()
	}
	return &LoopDetector{CAS: store, OnLoop: onLoop}
}

func (d *LoopDetector) Observe(e Event) {
	if e.Kind != TapeMove {
		return
	}
	d.mu.Lock()
	if d.found != nil || d.err != nil {
		d.mu.Unlock()
		return
	}
	step := d.seen
	d.seen++
	cfg := interp.NewConfiguration(e.StateIndex, e.Tape)
	h, err := cas.Sum(cfg)
	if err == nil && !d.CAS.Has(h) {
		_, err = d.CAS.Put(cfg)
	}
	if err != nil {
		log.Warn().Err(err).Msg("loop detector could not store configuration")
		d.err = err
		d.mu.Unlock()
		return
	}
	prior := d.CAS.GetDepths(h)
	d.CAS.RecordDepth(h, step)
	if len(prior) == 0 {
		d.mu.Unlock()
		return
	}
	loop := Loop{Hash: h, First: prior[0], Repeat: step}
	d.found = &loop
	d.mu.Unlock()

	log.Debug().Uint64("hash", uint64(h)).Int("first", loop.First).Int("repeat", loop.Repeat).Msg("configuration repeated")
	if d.OnLoop != nil {
		d.OnLoop(loop)
	}
}

// Found returns the detected loop, if any.
func (d *LoopDetector) Found() (Loop, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.found == nil {
		return Loop{}, false
	}
	return *d.found, true
}

// Err returns the storage error that disabled the detector, if any.
func (d *LoopDetector) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
