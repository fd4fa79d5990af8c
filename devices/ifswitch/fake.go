// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ifswitch

import (
	"sync"

	"github.com/nrao-gbo/femc/internal/physic"
)

// Fake is an in-memory Driver for SIMULATION_MODE and for tests.
type Fake struct {
	mu          sync.Mutex
	band        int
	attenuation [4]uint8
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) SetBandSelect(band int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.band = band
	return nil
}

func (f *Fake) SetAttenuation(channel int, tenthsOfDB uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attenuation[channel] = tenthsOfDB
	return nil
}

func (f *Fake) ReadAttenuation(channel int) (uint8, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attenuation[channel], nil
}

func (f *Fake) ReadChannelPower(channel int) (physic.Power, error) {
	return physic.MilliWatt, nil
}

var _ Driver = (*Fake)(nil)
