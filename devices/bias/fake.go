// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bias

import (
	"sync"

	"github.com/nrao-gbo/femc/internal/physic"
)

// Fake is an in-memory Driver for SIMULATION_MODE and for tests.
type Fake struct {
	mu        sync.Mutex
	sisV      physic.ElectricPotential
	sisOpen   bool
	magnetI   physic.ElectricCurrent
	lnaEnable bool
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) SetSISVoltage(v physic.ElectricPotential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sisV = v
	return nil
}

func (f *Fake) ReadSISVoltage() (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sisV, nil
}

func (f *Fake) ReadSISCurrent() (physic.ElectricCurrent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return physic.FromAmps(f.sisV.Volts() * 0.01), nil
}

func (f *Fake) SetSISOpenLoop(open bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sisOpen = open
	return nil
}

func (f *Fake) SetSISMagnetCurrent(c physic.ElectricCurrent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.magnetI = c
	return nil
}

func (f *Fake) ReadSISMagnetVoltage() (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return physic.FromVolts(f.magnetI.Amps() * 10), nil
}

func (f *Fake) SetLNAEnable(enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lnaEnable = enable
	return nil
}

func (f *Fake) ReadLNADrainVoltage(stage int) (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.lnaEnable {
		return 0, nil
	}
	return physic.FromVolts(0.9), nil
}

func (f *Fake) ReadLNADrainCurrent(stage int) (physic.ElectricCurrent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.lnaEnable {
		return 0, nil
	}
	return physic.FromAmps(0.008), nil
}

func (f *Fake) ReadLNAGateVoltage(stage int) (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.lnaEnable {
		return 0, nil
	}
	return physic.FromVolts(-0.3), nil
}

var _ Driver = (*Fake)(nil)
