// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"errors"
	"testing"

	"github.com/nrao-gbo/femc/internal/physic"
)

func TestPALimitsTableAddRejectsOutOfRangeTuning(t *testing.T) {
	var table PALimitsTable
	if status := table.Add(0, 4096, physic.FromVolts(1)); status != ConErrorRng {
		t.Fatalf("status = %v, want ConErrorRng", status)
	}
}

func TestPALimitsTableAddRejectsOutOfRangeVoltage(t *testing.T) {
	var table PALimitsTable
	if status := table.Add(0, 100, physic.FromVolts(3)); status != ConErrorRng {
		t.Fatalf("status = %v, want ConErrorRng", status)
	}
	if status := table.Add(0, 100, physic.FromVolts(-0.1)); status != ConErrorRng {
		t.Fatalf("status = %v, want ConErrorRng", status)
	}
}

func TestPALimitsTableAddBothPolarizations(t *testing.T) {
	var table PALimitsTable
	table.Add(PolBoth, 1000, physic.FromVolts(1.5))
	for _, pol := range []int{0, 1} {
		limit, ok := table.MaxDrainVoltage(pol, 1000)
		if !ok || limit != physic.FromVolts(1.5) {
			t.Fatalf("pol %d: got (%v, %v)", pol, limit, ok)
		}
	}
}

func TestPALimitsTableMaxDrainVoltageInterpolates(t *testing.T) {
	var table PALimitsTable
	table.Add(0, 1000, physic.FromVolts(1.0))
	table.Add(0, 2000, physic.FromVolts(2.0))
	limit, ok := table.MaxDrainVoltage(0, 1500)
	if !ok || limit != physic.FromVolts(1.5) {
		t.Fatalf("got (%v, %v), want (1.5V, true)", limit, ok)
	}
}

func TestPALimitsTableMaxDrainVoltageEmptyIsNoLimit(t *testing.T) {
	var table PALimitsTable
	if _, ok := table.MaxDrainVoltage(0, 500); ok {
		t.Fatal("empty table should report no limit")
	}
}

func TestPALimitsTableClear(t *testing.T) {
	var table PALimitsTable
	table.Add(0, 1000, physic.FromVolts(1))
	table.Clear()
	if _, ok := table.MaxDrainVoltage(0, 1000); ok {
		t.Fatal("Clear should empty the table")
	}
}

// fakePA is a minimal PADrainController for exercising LimitSafeYTOTuning
// without a full lo.Driver.
type fakePA struct {
	drain      [2]physic.ElectricPotential
	readErr    error
	writeErr   error
	writeCalls int
}

func (p *fakePA) ReadPADrainVoltage(pol int) (physic.ElectricPotential, error) {
	return p.drain[pol], p.readErr
}

func (p *fakePA) SetPADrainVoltage(pol int, v physic.ElectricPotential) error {
	p.writeCalls++
	if p.writeErr != nil {
		return p.writeErr
	}
	p.drain[pol] = v
	return nil
}

func TestLimitSafeYTOTuningClampsAndAdvises(t *testing.T) {
	var table PALimitsTable
	table.Add(PolBoth, 1000, physic.FromVolts(1.0))
	pa := &fakePA{drain: [2]physic.ElectricPotential{physic.FromVolts(1.5), physic.FromVolts(0.5)}}

	status := LimitSafeYTOTuning(&table, pa, 1000)
	if status != HardwBlkdErr {
		t.Fatalf("status = %v, want HardwBlkdErr", status)
	}
	if pa.drain[0] != physic.FromVolts(1.0) {
		t.Fatalf("pol0 drain not clamped: %v", pa.drain[0])
	}
	if pa.drain[1] != physic.FromVolts(0.5) {
		t.Fatalf("pol1 drain should be untouched: %v", pa.drain[1])
	}
}

func TestLimitSafeYTOTuningNoClampNeeded(t *testing.T) {
	var table PALimitsTable
	table.Add(PolBoth, 1000, physic.FromVolts(2.0))
	pa := &fakePA{drain: [2]physic.ElectricPotential{physic.FromVolts(0.5), physic.FromVolts(0.5)}}

	if status := LimitSafeYTOTuning(&table, pa, 1000); status != NoError {
		t.Fatalf("status = %v, want NoError", status)
	}
	if pa.writeCalls != 0 {
		t.Fatalf("no clamp should mean no write, got %d writes", pa.writeCalls)
	}
}

func TestLimitSafeYTOTuningReadErrorRefusesRetune(t *testing.T) {
	var table PALimitsTable
	table.Add(PolBoth, 1000, physic.FromVolts(1.0))
	pa := &fakePA{readErr: errors.New("bus timeout")}

	if status := LimitSafeYTOTuning(&table, pa, 1000); status != ErrorStatus {
		t.Fatalf("status = %v, want ErrorStatus", status)
	}
}

func TestLimitSafeYTOTuningClampWriteErrorRefusesRetune(t *testing.T) {
	var table PALimitsTable
	table.Add(PolBoth, 1000, physic.FromVolts(1.0))
	pa := &fakePA{
		drain:    [2]physic.ElectricPotential{physic.FromVolts(1.5), physic.FromVolts(1.5)},
		writeErr: errors.New("bus timeout"),
	}

	if status := LimitSafeYTOTuning(&table, pa, 1000); status != ErrorStatus {
		t.Fatalf("status = %v, want ErrorStatus", status)
	}
}

func TestPATemperatureOKAllCold(t *testing.T) {
	cryo := &Cryostat{}
	for i := 0; i < 9; i++ {
		cryo.setCachedTemp(i, physic.FromKelvin(4), false)
	}
	if !PATemperatureOK(cryo) {
		t.Fatal("all sensors cold: PA should be allowed")
	}
}

func TestPATemperatureOKOneSensorHot(t *testing.T) {
	cryo := &Cryostat{}
	for i := 0; i < 9; i++ {
		cryo.setCachedTemp(i, physic.FromKelvin(4), false)
	}
	cryo.setCachedTemp(3, physic.FromKelvin(35), false)
	if PATemperatureOK(cryo) {
		t.Fatal("one sensor above 30K should block PA")
	}
}

func TestPATemperatureOKLatchedErrorBlocks(t *testing.T) {
	cryo := &Cryostat{}
	for i := 0; i < 9; i++ {
		cryo.setCachedTemp(i, physic.FromKelvin(4), false)
	}
	cryo.setCachedTemp(5, 0, true)
	if PATemperatureOK(cryo) {
		t.Fatal("a latched sensor error should block PA, not be treated as cold")
	}
}
