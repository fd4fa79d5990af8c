// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lo

import (
	"sync"

	"github.com/nrao-gbo/femc/internal/physic"
)

// Fake is an in-memory Driver for SIMULATION_MODE and for tests: every
// write is remembered and played back on read, with no bus I/O.
type Fake struct {
	mu      sync.Mutex
	yto     uint16
	drainV  [2]physic.ElectricPotential
	gateV   [2]physic.ElectricPotential
	drainI  [2]physic.ElectricCurrent
}

// NewFake returns a Fake Driver with drain current fixed at a plausible
// nominal value, since nothing in the simulated front end drives it.
func NewFake() *Fake {
	f := &Fake{}
	f.drainI[0] = physic.FromAmps(0.025)
	f.drainI[1] = physic.FromAmps(0.025)
	return f
}

func (f *Fake) SetYTOCoarseTune(value uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.yto = value
	return nil
}

func (f *Fake) ReadYTOCoarseTune() (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.yto, nil
}

func (f *Fake) SetPADrainVoltage(pol int, v physic.ElectricPotential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drainV[pol] = v
	return nil
}

func (f *Fake) ReadPADrainVoltage(pol int) (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drainV[pol], nil
}

func (f *Fake) ReadPADrainCurrent(pol int) (physic.ElectricCurrent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drainI[pol], nil
}

func (f *Fake) SetPAGateVoltage(pol int, v physic.ElectricPotential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gateV[pol] = v
	return nil
}

func (f *Fake) ReadPAGateVoltage(pol int) (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gateV[pol], nil
}

var _ Driver = (*Fake)(nil)
