// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fetim

import (
	"sync"

	"github.com/nrao-gbo/femc/internal/physic"
)

// Fake is an in-memory Driver for SIMULATION_MODE and for tests.
type Fake struct {
	mu          sync.Mutex
	compressor  bool
	n2Fill      bool
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) ReadExtTemperature(sensor int) (physic.Temperature, error) {
	return physic.FromKelvin(295), nil
}

func (f *Fake) InterlockTripped() (bool, error) { return false, nil }

func (f *Fake) CompressorEnabled() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.compressor, nil
}

func (f *Fake) SetCompressorEnable(enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compressor = enable
	return nil
}

func (f *Fake) CompressorFault() (bool, error) { return false, nil }

func (f *Fake) ReadHe2Pressure() (physic.Pressure, error) {
	return physic.FromTorrs(760), nil
}

func (f *Fake) DewarN2FillActive() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n2Fill, nil
}

func (f *Fake) SetDewarN2Fill(enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n2Fill = enable
	return nil
}

var _ Driver = (*Fake)(nil)
