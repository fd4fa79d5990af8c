// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cartridgetemp

import (
	"sync"

	"github.com/nrao-gbo/femc/internal/physic"
)

// Fake is an in-memory Driver for SIMULATION_MODE and for tests.
type Fake struct {
	mu     sync.Mutex
	temp   [SensorsNumber]physic.Temperature
	offset [SensorsNumber]physic.Temperature
}

// NewFake returns a Fake Driver with every sensor at a plausible
// 4K-stage nominal temperature and a zero calibration offset.
func NewFake() *Fake {
	f := &Fake{}
	for i := range f.temp {
		f.temp[i] = physic.FromKelvin(4.2)
	}
	return f
}

// SetTemperature overrides sensor's simulated reading, for tests that
// need a specific temperature to appear at a registry leaf.
func (f *Fake) SetTemperature(sensor int, t physic.Temperature) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.temp[sensor] = t
}

func (f *Fake) ReadTemperature(sensor int) (physic.Temperature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.temp[sensor] + f.offset[sensor], nil
}

func (f *Fake) ReadOffset(sensor int) (physic.Temperature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offset[sensor], nil
}

func (f *Fake) SetOffset(sensor int, offset physic.Temperature) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset[sensor] = offset
	return nil
}

var _ Driver = (*Fake)(nil)
