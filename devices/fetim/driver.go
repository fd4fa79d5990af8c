// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fetim drives the front-end thermal interlock module: its
// compressor, dewar (N2 fill / He2 pressure), and thermal interlock
// sensor set, per spec §3, §4.6 and fetim.h.
package fetim

import (
	"github.com/nrao-gbo/femc/devices/onewiretemp"
	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/nrao-gbo/femc/internal/physic"
)

// ExtSensorsNumber is the interlock's external temperature sensor
// count.
const ExtSensorsNumber = 4

// Driver is the set of typed operations the FETIM leaf handlers call.
type Driver interface {
	ReadExtTemperature(sensor int) (physic.Temperature, error)
	InterlockTripped() (bool, error)

	CompressorEnabled() (bool, error)
	SetCompressorEnable(enable bool) error
	CompressorFault() (bool, error)

	ReadHe2Pressure() (physic.Pressure, error)
	DewarN2FillActive() (bool, error)
	SetDewarN2Fill(enable bool) error
}

const (
	cmdGetInterlock   uint32 = 0x71
	cmdGetCompEnable  uint32 = 0x72
	cmdSetCompEnable  uint32 = 0x73
	cmdGetCompFault   uint32 = 0x74
	cmdGetHe2Pressure uint32 = 0x75
	cmdGetN2Fill      uint32 = 0x76
	cmdSetN2Fill      uint32 = 0x77
)

// HardwareDriver talks to the FETIM's synchronous-serial port for the
// compressor, interlock, and dewar, and to ExtTemps (one-wire probes)
// for the external temperature sensors.
type HardwareDriver struct {
	Bus      *ssc.Bus
	ExtTemps [ExtSensorsNumber]*onewiretemp.Dev
}

func NewHardwareDriver(bus *ssc.Bus, extTemps [ExtSensorsNumber]*onewiretemp.Dev) *HardwareDriver {
	return &HardwareDriver{Bus: bus, ExtTemps: extTemps}
}

func (d *HardwareDriver) ReadExtTemperature(sensor int) (physic.Temperature, error) {
	probe := d.ExtTemps[sensor]
	if err := probe.Convert(); err != nil {
		return 0, err
	}
	return probe.Read()
}

func (d *HardwareDriver) InterlockTripped() (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetInterlock, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) CompressorEnabled() (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetCompEnable, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) SetCompressorEnable(enable bool) error {
	v := uint32(0)
	if enable {
		v = 1
	}
	return d.Bus.Write(ssc.Frame{Command: cmdSetCompEnable, DataLength: 1, DataLSW: v})
}

func (d *HardwareDriver) CompressorFault() (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetCompFault, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) ReadHe2Pressure() (physic.Pressure, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetHe2Pressure, DataLength: 16})
	return physic.FromTorrs(float64(lsw) / 1000), err
}

func (d *HardwareDriver) DewarN2FillActive() (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetN2Fill, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) SetDewarN2Fill(enable bool) error {
	v := uint32(0)
	if enable {
		v = 1
	}
	return d.Bus.Write(ssc.Frame{Command: cmdSetN2Fill, DataLength: 1, DataLSW: v})
}

var _ Driver = (*HardwareDriver)(nil)
