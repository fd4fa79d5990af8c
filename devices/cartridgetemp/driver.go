// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cartridgetemp drives one cartridge's six temperature sensors
// (3 per polarization), per spec §3, §4.5 and cartridgeTemp.h. Each
// sensor reports a temperature and carries a per-sensor calibration
// offset, applied against the standard TVO/PRT curve shared by every
// cartridge.
package cartridgetemp

import (
	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/nrao-gbo/femc/internal/physic"
)

// SensorsNumber is the cartridge-temperature sensor count: 2
// polarizations x 3 sensors, matching CARTRIDGE_TEMP_SENSORS_NUMBER.
const SensorsNumber = 6

// Index returns the sensor index for polarization pol (0 or 1) and
// sensorNumber (0..2), matching cartridgeTemp.h's pol*3+sensorNumber
// mapping.
func Index(pol, sensorNumber int) int { return pol*3 + sensorNumber }

// Driver is the set of typed operations the cartridge-temperature leaf
// handlers call. sensor is an Index() result, 0..5.
type Driver interface {
	// ReadTemperature returns sensor's current temperature, already
	// corrected by its calibration offset.
	ReadTemperature(sensor int) (physic.Temperature, error)
	// ReadOffset returns sensor's calibration offset.
	ReadOffset(sensor int) (physic.Temperature, error)
	// SetOffset commands sensor's calibration offset.
	SetOffset(sensor int, offset physic.Temperature) error
}

const (
	cmdReadTemp   uint32 = 0x80
	cmdReadOffset uint32 = 0x81
	cmdSetOffset  uint32 = 0x82
)

// HardwareDriver talks to the cartridge's synchronous-serial port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) ReadTemperature(sensor int) (physic.Temperature, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdReadTemp | uint32(sensor)<<8, DataLength: 16})
	return physic.FromKelvin(float64(lsw) / 100), err
}

func (d *HardwareDriver) ReadOffset(sensor int) (physic.Temperature, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdReadOffset | uint32(sensor)<<8, DataLength: 16})
	return physic.FromKelvin(float64(lsw) / 100), err
}

func (d *HardwareDriver) SetOffset(sensor int, offset physic.Temperature) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetOffset | uint32(sensor)<<8, DataLength: 16, DataLSW: uint32(offset.ToKelvin() * 100)})
}

var _ Driver = (*HardwareDriver)(nil)
