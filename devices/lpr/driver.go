// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lpr drives the local photonic reference's optical switch and
// EDFA, per spec §3, §4.6 and opticalSwitch.h.
package lpr

import (
	"time"

	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/nrao-gbo/femc/internal/physic"
)

// PortsNumber is the optical switch's port count.
const PortsNumber = 10

// Driver is the set of typed operations the LPR leaf handlers call.
// SetPort is asynchronous on real hardware: Busy reports whether the
// switch is still settling on the most recently commanded port.
type Driver interface {
	SetPort(port int) error
	SetShutter(enabled bool) error
	Busy() (bool, error)
	SwitchState() (bool, error) // true == error state, per opticalSwitch.h

	ReadEDFAPhotoDiodeCurrent() (physic.ElectricCurrent, error)
	ReadEDFALaserDriveCurrent() (physic.ElectricCurrent, error)
	ReadEDFALaserTemperature() (physic.Temperature, error)
	SetEDFAModulationInput(v physic.ElectricPotential) error
}

const (
	cmdSetPort       uint32 = 0x60
	cmdSetShutter    uint32 = 0x61
	cmdGetBusy       uint32 = 0x62
	cmdGetSwitchErr  uint32 = 0x63
	cmdGetEDFAPhotoI uint32 = 0x64
	cmdGetEDFALaserI uint32 = 0x65
	cmdGetEDFALaserT uint32 = 0x66
	cmdSetEDFAMod    uint32 = 0x67
)

// settleTime is the nominal time the optical switch's stepper motor
// needs to settle on a newly commanded port; monitors polling Busy
// during this window see true.
const settleTime = 5 * time.Second

// HardwareDriver talks to the LPR's synchronous-serial port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) SetPort(port int) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetPort, DataLength: 8, DataLSW: uint32(port)})
}

func (d *HardwareDriver) SetShutter(enabled bool) error {
	v := uint32(0)
	if enabled {
		v = 1
	}
	return d.Bus.Write(ssc.Frame{Command: cmdSetShutter, DataLength: 1, DataLSW: v})
}

func (d *HardwareDriver) Busy() (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetBusy, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) SwitchState() (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetSwitchErr, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) ReadEDFAPhotoDiodeCurrent() (physic.ElectricCurrent, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetEDFAPhotoI, DataLength: 16})
	return physic.FromAmps(float64(lsw) / 1e6), err
}

func (d *HardwareDriver) ReadEDFALaserDriveCurrent() (physic.ElectricCurrent, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetEDFALaserI, DataLength: 16})
	return physic.FromAmps(float64(lsw) / 1e4), err
}

func (d *HardwareDriver) ReadEDFALaserTemperature() (physic.Temperature, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetEDFALaserT, DataLength: 16})
	return physic.FromKelvin(273.15 + float64(lsw)/100), err
}

func (d *HardwareDriver) SetEDFAModulationInput(v physic.ElectricPotential) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetEDFAMod, DataLength: 16, DataLSW: uint32(v.Volts() * 10000)})
}

var _ Driver = (*HardwareDriver)(nil)
