// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lpr

import (
	"sync"
	"time"

	"github.com/nrao-gbo/femc/internal/physic"
)

// Fake is an in-memory Driver for SIMULATION_MODE and for tests. Busy
// reports true until settleTime has elapsed since the last SetPort,
// modeling the switch's real settle delay without an actual timer
// goroutine.
type Fake struct {
	mu        sync.Mutex
	shutter   bool
	settledAt time.Time
}

func NewFake() *Fake { return &Fake{settledAt: timeZero} }

var timeZero time.Time

func (f *Fake) SetPort(port int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settledAt = now().Add(settleTime)
	return nil
}

func (f *Fake) SetShutter(enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutter = enabled
	return nil
}

func (f *Fake) Busy() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return now().Before(f.settledAt), nil
}

func (f *Fake) SwitchState() (bool, error) { return false, nil }

func (f *Fake) ReadEDFAPhotoDiodeCurrent() (physic.ElectricCurrent, error) {
	return physic.FromAmps(0.0012), nil
}

func (f *Fake) ReadEDFALaserDriveCurrent() (physic.ElectricCurrent, error) {
	return physic.FromAmps(0.085), nil
}

func (f *Fake) ReadEDFALaserTemperature() (physic.Temperature, error) {
	return physic.FromKelvin(298.15), nil
}

func (f *Fake) SetEDFAModulationInput(v physic.ElectricPotential) error { return nil }

// now is a var so tests can fake the clock without depending on a real
// timer to exercise the Busy-during-settle window.
var now = time.Now

var _ Driver = (*Fake)(nil)
