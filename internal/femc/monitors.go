// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"time"

	"github.com/nrao-gbo/femc/devices/cartridgetemp"
	"github.com/nrao-gbo/femc/devices/cryostat"
	"github.com/nrao-gbo/femc/internal/physic"
)

// The original firmware services the cryostat, cartridges, and FETIM
// from one cooperative loop that steps between incoming CAN messages,
// cycling ASYNC_CRYOSTAT -> ASYNC_CARTRIDGE -> ASYNC_FETIM (async.h).
// Go has no "idle between messages" to hook; StartMonitors runs the same
// three sweeps as independent goroutines on their own tickers instead
// (spec §4.5, §9).
const (
	cryostatMonitorPeriod  = 2 * time.Second
	cartridgeMonitorPeriod = 5 * time.Second
	fetimMonitorPeriod     = 5 * time.Second
)

// StartMonitors launches the background monitor goroutines and returns
// immediately. It must be called at most once per Frontend; StopMonitors
// ends all three loops and waits for them to exit.
func (fe *Frontend) StartMonitors() {
	fe.monitorWG.Add(3)
	go fe.runCryostatMonitor()
	go fe.runCartridgeMonitor()
	go fe.runFETIMMonitor()
}

// StopMonitors signals every monitor goroutine to exit and blocks until
// they have. Safe to call more than once, and before StartMonitors.
func (fe *Frontend) StopMonitors() {
	fe.stopMonitorsOnce.Do(func() { close(fe.stopMonitors) })
	fe.monitorWG.Wait()
}

// runCryostatMonitor sweeps all 13 temperature sensors once per period,
// converting each raw resistance to a temperature with the TVO or PRT
// polynomial and storing it in the Cryostat's cache, which is what
// cryostatTempLeaf's Monitor reads: the dispatch path never blocks on
// the cryostat bus directly, only on this cache (spec §4.3, §4.5).
//
// This mirrors ASYNC_CRYOSTAT's per-sensor step/poly-step/next-sensor
// progression from the original loop, just run to completion each tick
// instead of one step per idle slice.
func (fe *Frontend) runCryostatMonitor() {
	defer fe.monitorWG.Done()
	ticker := time.NewTicker(cryostatMonitorPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-fe.stopMonitors:
			return
		case <-ticker.C:
			fe.sweepCryostat()
		}
	}
}

func (fe *Frontend) sweepCryostat() {
	cryo := fe.Cryostat
	for sensor := 0; sensor < cryostat.TVOSensorsNumber+cryostat.PRTSensorsNumber; sensor++ {
		r, err := cryo.Driver.ReadResistance(sensor)
		if err != nil {
			fe.errorLog.Store(ModCryostatTemp, ErrHardwareTimeout)
			cryo.setCachedTemp(sensor, 0, true)
			continue
		}
		var t physic.Temperature
		if sensor < cryostat.TVOSensorsNumber {
			t = cryostat.EvalTVO(r, cryo.coeff(sensor))
		} else {
			t = cryostat.EvalPRT(r)
		}
		cryo.setCachedTemp(sensor, t, false)
	}
	for gauge := 0; gauge < 2; gauge++ {
		p, err := cryo.Driver.ReadPressure(gauge)
		if err != nil {
			fe.errorLog.Store(ModVacuum, ErrHardwareTimeout)
			cryo.setCachedPressure(gauge, 0, true)
			continue
		}
		cryo.setCachedPressure(gauge, p, false)
	}
	for rail := 0; rail < cryostat.SupplyVoltagesNumber; rail++ {
		v, err := cryo.Driver.ReadSupplyVoltage(rail)
		if err != nil {
			fe.errorLog.Store(ModCryostatTemp, ErrHardwareTimeout)
			cryo.setCachedSupplyVoltage(rail, 0, true)
			continue
		}
		cryo.setCachedSupplyVoltage(rail, v, false)
	}
}

// runCartridgeMonitor polls each powered cartridge's PA drain current and
// its six cartridge-temperature sensors once per period, caching both:
// the PA drain current is BIAS/LO health telemetry (spec §4.5), a drain
// current stuck at zero or pegged high while the drain voltage is
// nonzero indicating a blown PA or an open bias line, the same kind of
// fault ASYNC_CARTRIDGE watches for; the temperature sweep is
// cartridgeTemp.h's six-sensor poll. Faults are only logged here; the
// spec's interlocks (PA temperature, standby2) are enforced at write
// time in routerbuild.go, not here.
func (fe *Frontend) runCartridgeMonitor() {
	defer fe.monitorWG.Done()
	ticker := time.NewTicker(cartridgeMonitorPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-fe.stopMonitors:
			return
		case <-ticker.C:
			fe.sweepCartridges()
		}
	}
}

func (fe *Frontend) sweepCartridges() {
	for _, c := range fe.Cartridges {
		if !c.Available() {
			continue
		}
		for pol := 0; pol < 2; pol++ {
			i, err := c.LO.Driver.ReadPADrainCurrent(pol)
			if err != nil {
				fe.errorLog.Store(ModPA, ErrHardwareTimeout)
				c.LO.setCachedDrainCurrent(pol, 0, true)
				continue
			}
			c.LO.setCachedDrainCurrent(pol, i, false)
		}
		for sensor := 0; sensor < cartridgetemp.SensorsNumber; sensor++ {
			t, err := c.Temp.Driver.ReadTemperature(sensor)
			if err != nil {
				fe.errorLog.Store(ModCartridgeTemp, ErrHardwareTimeout)
				c.Temp.setCachedTemp(sensor, 0, true)
				continue
			}
			c.Temp.setCachedTemp(sensor, t, false)
		}
	}
}

// runFETIMMonitor polls the thermal interlock and compressor fault lines
// once per period, logging a fault the moment it appears rather than
// waiting for the next monitor-RCA poll from the control computer,
// mirroring ASYNC_FETIM.
func (fe *Frontend) runFETIMMonitor() {
	defer fe.monitorWG.Done()
	ticker := time.NewTicker(fetimMonitorPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-fe.stopMonitors:
			return
		case <-ticker.C:
			fe.sweepFETIM()
		}
	}
}

func (fe *Frontend) sweepFETIM() {
	if tripped, err := fe.FETIM.Driver.InterlockTripped(); err != nil {
		fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
	} else if tripped {
		fe.errorLog.Store(ModFETIM, ErrHardwareBlocked)
	}
	if fault, err := fe.FETIM.Driver.CompressorFault(); err != nil {
		fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
	} else if fault {
		fe.errorLog.Store(ModFETIM, ErrHardwareBlocked)
	}
}
