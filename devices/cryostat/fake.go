// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cryostat

import (
	"errors"
	"sync"

	"github.com/nrao-gbo/femc/internal/physic"
)

// ErrSimulatedTimeout is returned by Fake's ReadResistance for a sensor
// InjectTimeout has been set on, modeling a hung synchronous-serial
// transaction (spec §8 scenario: "the cryostat monitor loop must
// continue polling the other sensors and latch a per-sensor error
// rather than blocking the whole loop").
var ErrSimulatedTimeout = errors.New("cryostat: simulated bus timeout")

// Fake is an in-memory Driver for SIMULATION_MODE and for tests.
type Fake struct {
	mu             sync.Mutex
	resistance     [TVOSensorsNumber + PRTSensorsNumber]physic.ElectricResistance
	pressure       [2]physic.Pressure
	supplyVoltage  [SupplyVoltagesNumber]physic.ElectricPotential
	valve          GateValveState
	timeoutSensors map[int]bool
}

// NewFake returns a Fake Driver with plausible nominal readings: TVO
// sensors near their 4K/12K operating resistance, PRT sensors at 60 ohms
// (about 43K on the PRT_A curve), both vacuum gauges reading high
// vacuum, and the gate valve closed.
func NewFake() *Fake {
	f := &Fake{valve: GateValveClose, timeoutSensors: map[int]bool{}}
	for i := 0; i < TVOSensorsNumber; i++ {
		f.resistance[i] = physic.FromOhms(1850)
	}
	for i := TVOSensorsNumber; i < TVOSensorsNumber+PRTSensorsNumber; i++ {
		f.resistance[i] = physic.FromOhms(60)
	}
	f.pressure[0] = physic.FromTorrs(1e-6)
	f.pressure[1] = physic.FromTorrs(1e-6)
	for i := range f.supplyVoltage {
		f.supplyVoltage[i] = physic.FromVolts(15)
	}
	return f
}

// SetResistance overrides sensor's simulated reading, for tests that
// need a specific temperature to appear at a registry leaf.
func (f *Fake) SetResistance(sensor int, r physic.ElectricResistance) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resistance[sensor] = r
}

// InjectTimeout makes the next ReadResistance call for sensor fail with
// ErrSimulatedTimeout exactly once, then clears itself.
func (f *Fake) InjectTimeout(sensor int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeoutSensors[sensor] = true
}

func (f *Fake) ReadResistance(sensor int) (physic.ElectricResistance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timeoutSensors[sensor] {
		delete(f.timeoutSensors, sensor)
		return 0, ErrSimulatedTimeout
	}
	return f.resistance[sensor], nil
}

func (f *Fake) ReadPressure(gauge int) (physic.Pressure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pressure[gauge], nil
}

func (f *Fake) ReadSupplyVoltage(rail int) (physic.ElectricPotential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supplyVoltage[rail], nil
}

func (f *Fake) GateValveState() (GateValveState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valve, nil
}

func (f *Fake) SetGateValveState(open bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if open {
		f.valve = GateValveOpen
	} else {
		f.valve = GateValveClose
	}
	return nil
}

var _ Driver = (*Fake)(nil)
