// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lo drives one cartridge's local oscillator: the YIG-tuned
// oscillator coarse-tune word and the two power-amplifier channels, per
// spec §3, §4.2. It has no photomixer or AMC multiplier-chain operations.
//
// It follows the driver shape devices/bmxx80 and devices/apa102 use in
// the pack: a narrow Driver interface with a real periph.io/x/periph-style
// bus-backed implementation and an in-memory Fake for SIMULATION_MODE and
// for tests (spec §9 "the driver trait has two implementations").
package lo

import (
	"fmt"

	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/nrao-gbo/femc/internal/physic"
)

// Driver is the set of typed operations the LO leaf handlers call.
// Results are NO_ERROR (nil), a bus/device ERROR, or HARDW_BLKD_ERR
// (software-side refusal), matching spec §4.2.
type Driver interface {
	SetYTOCoarseTune(value uint16) error
	ReadYTOCoarseTune() (uint16, error)

	SetPADrainVoltage(pol int, v physic.ElectricPotential) error
	ReadPADrainVoltage(pol int) (physic.ElectricPotential, error)
	ReadPADrainCurrent(pol int) (physic.ElectricCurrent, error)
	SetPAGateVoltage(pol int, v physic.ElectricPotential) error
	ReadPAGateVoltage(pol int) (physic.ElectricPotential, error)
}

// Command words for the LO synchronous-serial port. Values are internal
// to this rewrite (the original ISA command encodings are not part of the
// distilled spec); only their distinctness matters.
const (
	cmdSetYTO        uint32 = 0x10
	cmdGetYTO        uint32 = 0x11
	cmdSetPADrainV   uint32 = 0x20
	cmdGetPADrainV   uint32 = 0x21
	cmdGetPADrainI   uint32 = 0x22
	cmdSetPAGateV    uint32 = 0x23
	cmdGetPAGateV    uint32 = 0x24
)

// HardwareDriver talks to a real LO synchronous-serial port.
type HardwareDriver struct {
	Bus *ssc.Bus
}

// NewHardwareDriver returns a Driver backed by bus.
func NewHardwareDriver(bus *ssc.Bus) *HardwareDriver {
	return &HardwareDriver{Bus: bus}
}

func (d *HardwareDriver) SetYTOCoarseTune(value uint16) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetYTO, DataLength: 12, DataLSW: uint32(value)})
}

func (d *HardwareDriver) ReadYTOCoarseTune() (uint16, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetYTO, DataLength: 12})
	return uint16(lsw), err
}

func (d *HardwareDriver) SetPADrainVoltage(pol int, v physic.ElectricPotential) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetPADrainV | polTag(pol), DataLength: 16, DataLSW: voltageWord(v)})
}

func (d *HardwareDriver) ReadPADrainVoltage(pol int) (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetPADrainV | polTag(pol), DataLength: 16})
	return wordVoltage(lsw), err
}

func (d *HardwareDriver) ReadPADrainCurrent(pol int) (physic.ElectricCurrent, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetPADrainI | polTag(pol), DataLength: 16})
	return physic.FromAmps(float64(lsw) / 10000), err
}

func (d *HardwareDriver) SetPAGateVoltage(pol int, v physic.ElectricPotential) error {
	return d.Bus.Write(ssc.Frame{Command: cmdSetPAGateV | polTag(pol), DataLength: 16, DataLSW: voltageWord(v)})
}

func (d *HardwareDriver) ReadPAGateVoltage(pol int) (physic.ElectricPotential, error) {
	_, lsw, err := d.Bus.Read(ssc.Frame{Command: cmdGetPAGateV | polTag(pol), DataLength: 16})
	return wordVoltage(lsw), err
}

func polTag(pol int) uint32 { return uint32(pol) << 8 }

// voltageWord/wordVoltage convert to/from a fixed-point register word at
// 0.1mV resolution, the same scale-then-truncate convention the cryostat
// thermometry package uses for resistance.
func voltageWord(v physic.ElectricPotential) uint32 {
	return uint32(v.Volts() * 10000)
}

func wordVoltage(w uint32) physic.ElectricPotential {
	return physic.FromVolts(float64(w) / 10000)
}

var _ Driver = (*HardwareDriver)(nil)
var _ fmt.Stringer = polLabel(0)

type polLabel int

func (p polLabel) String() string { return fmt.Sprintf("pol%d", int(p)) }
