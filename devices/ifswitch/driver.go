// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ifswitch drives the IF switch, which routes one of 10
// cartridges' IF output onto the downstream IF processor and applies a
// per-channel attenuator setting, per spec §3, §4.6 and ifSwitch.c.
package ifswitch

import (
	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/nrao-gbo/femc/internal/physic"
)

// BandsNumber is the number of cartridge bands the switch can route.
const BandsNumber = 10

// Driver is the set of typed operations the IF switch leaf handlers
// call. channel selects among the switch's 4 IF channel assemblies.
type Driver interface {
	SetBandSelect(band int) error
	SetAttenuation(channel int, tenthsOfDB uint8) error
	ReadAttenuation(channel int) (uint8, error)
	ReadChannelPower(channel int) (physic.Power, error)
}

const (
	cmdSetBand        uint32 = 0x80
	cmdSetAttenuation uint32 = 0x81
	cmdGetAttenuation uint32 = 0x82
	cmdGetChannelPwr  uint32 = 0x83
)

// HardwareDriver talks to the IF switch's synchronous-serial port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) SetBandSelect(band int) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetBand, DataLength: 8, DataLSW: uint32(band)})
}

func (d *HardwareDriver) SetAttenuation(channel int, tenthsOfDB uint8) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetAttenuation | uint32(channel)<<8, DataLength: 8, DataLSW: uint32(tenthsOfDB)})
}

func (d *HardwareDriver) ReadAttenuation(channel int) (uint8, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetAttenuation | uint32(channel)<<8, DataLength: 8})
	return uint8(lsw), err
}

func (d *HardwareDriver) ReadChannelPower(channel int) (physic.Power, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetChannelPwr | uint32(channel)<<8, DataLength: 16})
	return physic.Power(int64(lsw) * int64(physic.MicroWatt) / 10), err
}

var _ Driver = (*HardwareDriver)(nil)
