// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bias drives one sideband's SIS mixer, SIS magnet, and LNA bias
// points, per spec §3, §4.2. The full front end repeats this vertical
// slice across 2 polarizations x 2 sidebands x 10 cartridges; this
// package implements the slice once, and internal/femc's registry wires
// one slice per cartridge, so only one sideband of each cartridge is
// reachable.
package bias

import "github.com/nrao-gbo/femc/devices/ssc"
import "github.com/nrao-gbo/femc/internal/physic"

// Driver is the set of typed operations one sideband's bias leaf
// handlers call. stage selects among the LNA's amplifier stages
// (0..2).
type Driver interface {
	SetSISVoltage(v physic.ElectricPotential) error
	ReadSISVoltage() (physic.ElectricPotential, error)
	ReadSISCurrent() (physic.ElectricCurrent, error)
	SetSISOpenLoop(open bool) error

	SetSISMagnetCurrent(c physic.ElectricCurrent) error
	ReadSISMagnetVoltage() (physic.ElectricPotential, error)

	SetLNAEnable(enable bool) error
	ReadLNADrainVoltage(stage int) (physic.ElectricPotential, error)
	ReadLNADrainCurrent(stage int) (physic.ElectricCurrent, error)
	ReadLNAGateVoltage(stage int) (physic.ElectricPotential, error)
}

const (
	cmdSetSISV       uint32 = 0x50
	cmdGetSISV       uint32 = 0x51
	cmdGetSISI       uint32 = 0x52
	cmdSetSISOpenLp  uint32 = 0x53
	cmdSetMagnetI    uint32 = 0x54
	cmdGetMagnetV    uint32 = 0x55
	cmdSetLNAEnable  uint32 = 0x56
	cmdGetLNADrainV  uint32 = 0x57
	cmdGetLNADrainI  uint32 = 0x58
	cmdGetLNAGateV   uint32 = 0x59
)

// HardwareDriver talks to one sideband's bias synchronous-serial port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) SetSISVoltage(v physic.ElectricPotential) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetSISV, DataLength: 16, DataLSW: uint32(v.Volts() * 10000)})
}

func (d *HardwareDriver) ReadSISVoltage() (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetSISV, DataLength: 16})
	return physic.FromVolts(float64(lsw) / 10000), err
}

func (d *HardwareDriver) ReadSISCurrent() (physic.ElectricCurrent, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetSISI, DataLength: 16})
	return physic.FromAmps(float64(lsw) / 1e6), err
}

func (d *HardwareDriver) SetSISOpenLoop(open bool) error {
	v := uint32(0)
	if open {
		v = 1
	}
	return d.Bus.Write(ssc.Frame{Command: cmdSetSISOpenLp, DataLength: 1, DataLSW: v})
}

func (d *HardwareDriver) SetSISMagnetCurrent(c physic.ElectricCurrent) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetMagnetI, DataLength: 16, DataLSW: uint32(c.Amps() * 1e4)})
}

func (d *HardwareDriver) ReadSISMagnetVoltage() (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetMagnetV, DataLength: 16})
	return physic.FromVolts(float64(lsw) / 10000), err
}

func (d *HardwareDriver) SetLNAEnable(enable bool) error {
	v := uint32(0)
	if enable {
		v = 1
	}
	return d.Bus.Write(ssc.Frame{Command: cmdSetLNAEnable, DataLength: 1, DataLSW: v})
}

func (d *HardwareDriver) ReadLNADrainVoltage(stage int) (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetLNADrainV | uint32(stage)<<8, DataLength: 16})
	return physic.FromVolts(float64(lsw) / 10000), err
}

func (d *HardwareDriver) ReadLNADrainCurrent(stage int) (physic.ElectricCurrent, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetLNADrainI | uint32(stage)<<8, DataLength: 16})
	return physic.FromAmps(float64(lsw) / 1e6), err
}

func (d *HardwareDriver) ReadLNAGateVoltage(stage int) (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetLNAGateV | uint32(stage)<<8, DataLength: 16})
	return physic.FromVolts(float64(lsw) / 10000), err
}

var _ Driver = (*HardwareDriver)(nil)
