// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cryostat

import (
	"fmt"

	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/nrao-gbo/femc/internal/physic"
)

// GateValveState mirrors GATE_VALVE.state in gateValve.h: the valve is
// monitored through two limit switches rather than commanded open-loop.
type GateValveState byte

const (
	GateValveOpen GateValveState = iota
	GateValveClose
	GateValveUnknown
	GateValveOverCurrent
	GateValveError
)

func (s GateValveState) String() string {
	switch s {
	case GateValveOpen:
		return "OPEN"
	case GateValveClose:
		return "CLOSE"
	case GateValveOverCurrent:
		return "OVER_CURRENT"
	case GateValveError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SupplyVoltagesNumber is the cryostat's own regulated-supply rail
// count, monitored alongside the dewar sensors (spec §3, §4.5: "4
// supply-voltage sensors").
const SupplyVoltagesNumber = 4

// Driver is the set of typed operations the cryostat leaf handlers call.
type Driver interface {
	// ReadResistance returns the raw resistance reading for temperature
	// sensor index sensor (0..12: 9 TVO then 4 PRT).
	ReadResistance(sensor int) (physic.ElectricResistance, error)
	// ReadPressure returns one of the vacuum controller's two gauges
	// (0 = cryostat front vacuum, 1 = cryostat back vacuum).
	ReadPressure(gauge int) (physic.Pressure, error)
	// ReadSupplyVoltage returns one of the cryostat module's own
	// regulated-supply rails (0..3).
	ReadSupplyVoltage(rail int) (physic.ElectricPotential, error)
	// GateValveState reports the valve's limit-switch state.
	GateValveState() (GateValveState, error)
	// SetGateValveState commands the valve open or closed.
	SetGateValveState(open bool) error
}

const (
	cmdReadResistance   uint32 = 0x30
	cmdReadPressure     uint32 = 0x31
	cmdGateValveState   uint32 = 0x32
	cmdSetGateValve     uint32 = 0x33
	cmdReadSupplyVoltage uint32 = 0x34
)

// HardwareDriver talks to the cryostat's synchronous-serial port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) ReadResistance(sensor int) (physic.ElectricResistance, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdReadResistance | uint32(sensor)<<8, DataLength: 20})
	return physic.FromOhms(float64(lsw) / 100), err
}

func (d *HardwareDriver) ReadPressure(gauge int) (physic.Pressure, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdReadPressure | uint32(gauge)<<8, DataLength: 16})
	return physic.FromTorrs(float64(lsw) / 1e6), err
}

func (d *HardwareDriver) ReadSupplyVoltage(rail int) (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdReadSupplyVoltage | uint32(rail)<<8, DataLength: 16})
	return physic.FromVolts(float64(lsw) / 10000), err
}

func (d *HardwareDriver) GateValveState() (GateValveState, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGateValveState, DataLength: 8})
	return GateValveState(lsw), err
}

func (d *HardwareDriver) SetGateValveState(open bool) error {
	v := uint32(0)
	if open {
		v = 1
	}
	return d.Bus.Write(ssc.Frame{Command: cmdSetGateValve, DataLength: 8, DataLSW: v})
}

var _ Driver = (*HardwareDriver)(nil)
var _ fmt.Stringer = GateValveUnknown
