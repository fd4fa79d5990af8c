// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"sort"
	"sync"

	"github.com/nrao-gbo/femc/devices/cryostat"
	"github.com/nrao-gbo/femc/internal/physic"
)

// PALimitEntry is one row of a cartridge's PA-limits table: above
// ytoTuning, the polarization's drain voltage may not exceed
// maxDrainVoltage (spec §4.7, yto.c's limitSafeYtoTuning).
type PALimitEntry struct {
	Pol            int // 0 or 1; a "both polarizations" entry is stored once per pol at load time
	YTOTuning      uint16
	MaxDrainVoltage physic.ElectricPotential
}

// PolBoth is the special PA-limits-entry Pol value meaning "applies to
// both polarizations", per the special control's (pol in {0,1,2})
// encoding.
const PolBoth = 2

// PALimitsTable holds one cartridge's ordered PA-limits entries, split
// by polarization for fast lookup.
type PALimitsTable struct {
	mu   sync.RWMutex
	byPol [2][]PALimitEntry
}

// Clear empties the table (the "clear PA-limits table" special
// control).
func (t *PALimitsTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byPol[0] = nil
	t.byPol[1] = nil
}

// Add inserts entry in sorted order by YTOTuning, duplicating it across
// both polarizations' lists when pol == PolBoth.
func (t *PALimitsTable) Add(pol int, ytoTuning uint16, maxDrainVoltage physic.ElectricPotential) Status {
	if ytoTuning > 4095 {
		return ConErrorRng
	}
	if maxDrainVoltage < 0 || maxDrainVoltage > physic.FromVolts(2.5) {
		return ConErrorRng
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	pols := []int{pol}
	if pol == PolBoth {
		pols = []int{0, 1}
	}
	for _, p := range pols {
		t.byPol[p] = append(t.byPol[p], PALimitEntry{Pol: p, YTOTuning: ytoTuning, MaxDrainVoltage: maxDrainVoltage})
		sort.Slice(t.byPol[p], func(i, j int) bool { return t.byPol[p][i].YTOTuning < t.byPol[p][j].YTOTuning })
	}
	return NoError
}

// MaxDrainVoltage interpolates the allowed drain voltage at a target
// YTO tuning for polarization pol: it takes the largest entry with
// YTOTuning <= target and the smallest with YTOTuning >= target and
// linearly interpolates between them. ok is false if the table has no
// entries for pol, meaning no limit applies.
func (t *PALimitsTable) MaxDrainVoltage(pol int, target uint16) (limit physic.ElectricPotential, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries := t.byPol[pol]
	if len(entries) == 0 {
		return 0, false
	}
	var lower, upper *PALimitEntry
	for i := range entries {
		e := &entries[i]
		if e.YTOTuning <= target && (lower == nil || e.YTOTuning > lower.YTOTuning) {
			lower = e
		}
		if e.YTOTuning >= target && (upper == nil || e.YTOTuning < upper.YTOTuning) {
			upper = e
		}
	}
	switch {
	case lower == nil:
		return upper.MaxDrainVoltage, true
	case upper == nil:
		return lower.MaxDrainVoltage, true
	case lower.YTOTuning == upper.YTOTuning:
		return lower.MaxDrainVoltage, true
	default:
		span := float64(upper.YTOTuning - lower.YTOTuning)
		frac := float64(target-lower.YTOTuning) / span
		delta := upper.MaxDrainVoltage - lower.MaxDrainVoltage
		return lower.MaxDrainVoltage + physic.ElectricPotential(float64(delta)*frac), true
	}
}

// paTemperatureLimitKelvin is the 4K/12K-stage threshold above which PA
// writes are refused (spec §4.7).
const paTemperatureLimitKelvin = 30.0

// PATemperatureOK reports whether every 4K/12K-stage cryostat sensor
// (the TVO sensors; the PRT sensors instrument warmer stages) currently
// reads at or below the 30 K interlock threshold. A sensor latched in
// error is treated as a violation: with no trustworthy reading, the PA
// write is refused rather than risking a cold amplifier overheating
// undetected.
func PATemperatureOK(cryo *Cryostat) bool {
	for i := 0; i < cryostat.TVOSensorsNumber; i++ {
		t, errLatched := cryo.cachedTemp(i)
		if errLatched || t.ToKelvin() > paTemperatureLimitKelvin {
			return false
		}
	}
	return true
}

// PADrainController is the narrow capability the interlock needs from
// the LO PA driver: read and clamp a polarization's drain voltage
// setpoint, without depending on the full lo.Driver interface.
type PADrainController interface {
	ReadPADrainVoltage(pol int) (physic.ElectricPotential, error)
	SetPADrainVoltage(pol int, v physic.ElectricPotential) error
}

// LimitSafeYTOTuning is the Go rendition of yto.c's limitSafeYtoTuning:
// for each polarization, if the current drain-voltage setpoint exceeds
// the table's interpolated limit at the new tuning, clamp it down
// first. Returns HardwBlkdErr if any clamp was applied (the retune may
// still proceed), ErrorStatus if a clamp write itself failed (the
// retune must be refused), or NoError.
func LimitSafeYTOTuning(table *PALimitsTable, pa PADrainController, newTuning uint16) Status {
	blocked := false
	for pol := 0; pol < 2; pol++ {
		limit, ok := table.MaxDrainVoltage(pol, newTuning)
		if !ok {
			continue
		}
		current, err := pa.ReadPADrainVoltage(pol)
		if err != nil {
			return ErrorStatus
		}
		if current > limit {
			if err := pa.SetPADrainVoltage(pol, limit); err != nil {
				return ErrorStatus
			}
			blocked = true
		}
	}
	if blocked {
		return HardwBlkdErr
	}
	return NoError
}
