// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"io"
	"sync"

	"github.com/nrao-gbo/femc/devices/bias"
	"github.com/nrao-gbo/femc/devices/cartridgetemp"
	"github.com/nrao-gbo/femc/devices/cryostat"
	"github.com/nrao-gbo/femc/devices/fetim"
	"github.com/nrao-gbo/femc/devices/ifswitch"
	"github.com/nrao-gbo/femc/devices/lo"
	"github.com/nrao-gbo/femc/devices/lpr"
	"github.com/nrao-gbo/femc/devices/powerdist"
	"github.com/nrao-gbo/femc/internal/physic"
	"github.com/sirupsen/logrus"
)

// CartridgesNumber is the number of cartridge slots the front end
// addresses (spec §2, §3).
const CartridgesNumber = 10

// Cartridge owns one band's LO and BIAS assemblies, its own PA-limits
// table, and the availability/standby2 flags the power distribution
// system sets (spec §3).
type Cartridge struct {
	mu          sync.RWMutex
	available   bool
	standby2    bool
	LO          *LOAssembly
	Bias        *BiasAssembly
	Temp        *CartridgeTempAssembly
	PALimits    PALimitsTable
}

func (c *Cartridge) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

func (c *Cartridge) SetAvailable(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = v
}

func (c *Cartridge) Standby2() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.standby2
}

func (c *Cartridge) SetStandby2(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.standby2 = v
}

// LOAssembly owns one cartridge's local oscillator: YTO, PA channels,
// and the reference ESN identifying which band's PA-limits apply
// (spec §3, §4.2).
type LOAssembly struct {
	Driver lo.Driver
	ESN    string

	YTOShadow     Shadow[uint16]
	PADrainShadow [2]Shadow[float32]
	PAGateShadow  [2]Shadow[float32]

	mu                sync.RWMutex
	ytoCoarseTune     uint16
	lastDrainCurrent  [2]physic.ElectricCurrent
	lastDrainCurrentErr [2]bool
}

func (l *LOAssembly) cachedYTO() uint16 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ytoCoarseTune
}

func (l *LOAssembly) setCachedYTO(v uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ytoCoarseTune = v
}

// setCachedDrainCurrent/cachedDrainCurrent back paDrainCurrentLeaf with
// the same sweep-cache pattern Cryostat uses: runCartridgeMonitor polls
// the PA drain current as a housekeeping fault check (spec §4.5's
// "BIAS/LO health telemetry"), and the dispatch path only ever reads
// the cache it fills.
func (l *LOAssembly) setCachedDrainCurrent(pol int, c physic.ElectricCurrent, err bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastDrainCurrent[pol] = c
	l.lastDrainCurrentErr[pol] = err
}

func (l *LOAssembly) cachedDrainCurrent(pol int) (physic.ElectricCurrent, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastDrainCurrent[pol], l.lastDrainCurrentErr[pol]
}

// BiasAssembly owns one cartridge's SIS mixer (voltage, current,
// open-loop mode), SIS magnet, and three-stage LNA bias telemetry. The
// real front end repeats this 4x per cartridge (2 polarizations x 2
// sidebands); internal/femc's dispatch tree wires one sideband's worth
// per cartridge rather than enumerating all four.
type BiasAssembly struct {
	Driver bias.Driver

	SISVoltageShadow  Shadow[float32]
	SISOpenLoopShadow Shadow[bool]
	MagnetShadow      Shadow[float32]
	LNAEnableShadow   Shadow[bool]
}

// CartridgeTempAssembly owns one cartridge's six temperature sensors (3
// per polarization) and their calibration offsets (spec §3, §4.5,
// cartridgeTemp.h). Like Cryostat, the monitor-path reads only the
// cache runCartridgeMonitor fills; it never blocks on the bus.
type CartridgeTempAssembly struct {
	Driver cartridgetemp.Driver

	mu          sync.RWMutex
	lastTemp    [cartridgetemp.SensorsNumber]physic.Temperature
	lastTempErr [cartridgetemp.SensorsNumber]bool

	OffsetShadow [cartridgetemp.SensorsNumber]Shadow[float32]
}

func (t *CartridgeTempAssembly) setCachedTemp(sensor int, temp physic.Temperature, err bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastTemp[sensor] = temp
	t.lastTempErr[sensor] = err
}

func (t *CartridgeTempAssembly) cachedTemp(sensor int) (physic.Temperature, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastTemp[sensor], t.lastTempErr[sensor]
}

// Cryostat owns the dewar's 13 temperature sensors, vacuum controller,
// and gate valve (spec §3, §4.3).
type Cryostat struct {
	Driver cryostat.Driver

	mu          sync.RWMutex
	tvoCoeffs   [cryostat.TVOSensorsNumber]cryostat.TVOCoeff
	lastTemp    [cryostat.TVOSensorsNumber + cryostat.PRTSensorsNumber]physic.Temperature
	lastTempErr [cryostat.TVOSensorsNumber + cryostat.PRTSensorsNumber]bool

	lastPressure    [2]physic.Pressure
	lastPressureErr [2]bool

	lastSupplyVoltage    [cryostat.SupplyVoltagesNumber]physic.ElectricPotential
	lastSupplyVoltageErr [cryostat.SupplyVoltagesNumber]bool

	GateValveShadow Shadow[bool]
}

func (c *Cryostat) setCachedTemp(sensor int, t physic.Temperature, err bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTemp[sensor] = t
	c.lastTempErr[sensor] = err
}

func (c *Cryostat) cachedTemp(sensor int) (physic.Temperature, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastTemp[sensor], c.lastTempErr[sensor]
}

func (c *Cryostat) setCachedPressure(gauge int, p physic.Pressure, err bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastPressure[gauge] = p
	c.lastPressureErr[gauge] = err
}

func (c *Cryostat) cachedPressure(gauge int) (physic.Pressure, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastPressure[gauge], c.lastPressureErr[gauge]
}

func (c *Cryostat) setCachedSupplyVoltage(rail int, v physic.ElectricPotential, err bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSupplyVoltage[rail] = v
	c.lastSupplyVoltageErr[rail] = err
}

func (c *Cryostat) cachedSupplyVoltage(rail int) (physic.ElectricPotential, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSupplyVoltage[rail], c.lastSupplyVoltageErr[rail]
}

func (c *Cryostat) coeff(sensor int) cryostat.TVOCoeff {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tvoCoeffs[sensor]
}

func (c *Cryostat) setCoeff(sensor int, coeff cryostat.TVOCoeff) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tvoCoeffs[sensor] = coeff
}

// LPRAssembly owns the local photonic reference's optical switch and
// EDFA (spec §3, §4.6).
type LPRAssembly struct {
	Driver lpr.Driver

	PortShadow          Shadow[uint8]
	ShutterShadow       Shadow[bool]
	EDFAModulationShadow Shadow[float32]
}

// FETIMAssembly owns the front-end thermal interlock module (spec §3,
// §4.6).
type FETIMAssembly struct {
	Driver fetim.Driver

	CompressorShadow Shadow[bool]
	N2FillShadow     Shadow[bool]
}

// IFSwitchAssembly owns the IF switch (spec §3, §4.6).
type IFSwitchAssembly struct {
	Driver ifswitch.Driver

	BandShadow       Shadow[uint8]
	AttenuationShadow [4]Shadow[uint8]
}

// PowerDistribution owns the per-cartridge power enable and standby2
// relays (spec §3, §4.6).
type PowerDistribution struct {
	Driver powerdist.Driver

	EnableShadow   [CartridgesNumber]Shadow[bool]
	Standby2Shadow [CartridgesNumber]Shadow[bool]
}

// Frontend is the whole front end: the registry tree, the root dispatch
// table, the operating mode, and the ambient services (logging, error
// log, maintenance). It is the receiver every Dispatcher and ControlFunc
// in this package is ultimately called against (spec §3).
type Frontend struct {
	mu          sync.RWMutex
	mode        Mode
	maintenance MaintenanceService
	log         *logrus.Logger
	errorLog    ErrorLog

	root *Router

	Cartridges [CartridgesNumber]*Cartridge
	PowerDist  *PowerDistribution
	IFSwitch   *IFSwitchAssembly
	Cryostat   *Cryostat
	LPR        *LPRAssembly
	FETIM      *FETIMAssembly

	ipAddress string
	version   [3]byte

	stopMonitors     chan struct{}
	stopMonitorsOnce sync.Once
	monitorWG        sync.WaitGroup

	// closers holds the register-window mappings acquired in
	// wireHardwareDrivers, released in Shutdown. Empty in SimulationMode.
	closers []io.Closer
}

// Log returns the Frontend's logger, for callers (the transport server,
// cmd/femcd) that need to log alongside it rather than through it.
func (fe *Frontend) Log() *logrus.Logger {
	return fe.log
}

// PoweredCartridges reports how many cartridges currently have their
// power-distribution enable bit set, an input to the "powered +
// standby2 <= 10" invariant (spec §4.6).
func (fe *Frontend) PoweredCartridges() int {
	n := 0
	for _, c := range fe.Cartridges {
		if c.Available() {
			n++
		}
	}
	return n
}

// Standby2Cartridges reports how many cartridges are currently in
// standby2.
func (fe *Frontend) Standby2Cartridges() int {
	n := 0
	for _, c := range fe.Cartridges {
		if c.Standby2() {
			n++
		}
	}
	return n
}
