// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package powerdist drives the power distribution system's per-cartridge
// enable and standby2 relays, per spec §3, §4.6. The invariant that at
// most 10 cartridges total may be powered and/or in standby2 is enforced
// by the caller (internal/femc's power-distribution leaf handlers in
// routerbuild.go), not here: this
// package only issues individual relay commands.
package powerdist

import "github.com/nrao-gbo/femc/devices/ssc"

// Driver is the set of typed operations the power distribution leaf
// handlers call, one bit per cartridge (0..9).
type Driver interface {
	SetCartridgeEnable(cart int, enable bool) error
	CartridgeEnabled(cart int) (bool, error)
	SetStandby2(cart int, standby2 bool) error
	Standby2(cart int) (bool, error)
}

const (
	cmdSetEnable    uint32 = 0x40
	cmdGetEnable    uint32 = 0x41
	cmdSetStandby2  uint32 = 0x42
	cmdGetStandby2  uint32 = 0x43
)

// HardwareDriver talks to the power distribution synchronous-serial
// port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) SetCartridgeEnable(cart int, enable bool) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetEnable | uint32(cart)<<8, DataLength: 1, DataLSW: boolWord(enable)})
}

func (d *HardwareDriver) CartridgeEnabled(cart int) (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetEnable | uint32(cart)<<8, DataLength: 1})
	return lsw != 0, err
}

func (d *HardwareDriver) SetStandby2(cart int, standby2 bool) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetStandby2 | uint32(cart)<<8, DataLength: 1, DataLSW: boolWord(standby2)})
}

func (d *HardwareDriver) Standby2(cart int) (bool, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetStandby2 | uint32(cart)<<8, DataLength: 1})
	return lsw != 0, err
}

func boolWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

var _ Driver = (*HardwareDriver)(nil)
