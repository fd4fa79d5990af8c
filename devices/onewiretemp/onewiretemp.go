// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package onewiretemp interfaces to Dallas Semi / Maxim DS18B20-family
// 1-wire temperature sensors, adapted from
// periph.io/x/periph/devices/ds18b20 for the FETIM external temperature
// probes, the only points in the front-end
// that sit on the shared one-wire bus instead of a synchronous-serial
// controller port (spec §3, §4.2).
package onewiretemp

import (
	"errors"
	"time"

	"github.com/nrao-gbo/femc/conn/onewire"
	"github.com/nrao-gbo/femc/internal/physic"
)

// Dev is a single DS18B20-family probe addressed on a shared one-wire bus.
type Dev struct {
	d          onewire.Dev
	resolution int
}

// New returns a Dev bound to addr on bus o. resolutionBits must be 9..12;
// 12 gives 0.0625°C steps and a 750ms conversion time.
func New(o onewire.Bus, addr onewire.Address, resolutionBits int) (*Dev, error) {
	if resolutionBits < 9 || resolutionBits > 12 {
		return nil, errors.New("onewiretemp: resolutionBits must be in 9..12")
	}
	return &Dev{d: onewire.Dev{Bus: o, Addr: addr}, resolution: resolutionBits}, nil
}

// Convert triggers a temperature conversion and blocks until it completes.
func (d *Dev) Convert() error {
	if err := d.d.TxPower([]byte{0x44}, nil); err != nil {
		return err
	}
	time.Sleep(conversionDelay(d.resolution))
	return nil
}

// Read returns the last converted temperature. Call Convert first.
func (d *Dev) Read() (physic.Temperature, error) {
	scratch := make([]byte, 9)
	if err := d.d.Tx([]byte{0xbe}, scratch); err != nil {
		return 0, err
	}
	if onewire.CalcCRC(scratch[:8]) != scratch[8] {
		return 0, errors.New("onewiretemp: scratchpad CRC mismatch")
	}
	raw := int16(scratch[0]) | int16(scratch[1])<<8
	// raw is in units of 1/16 degree Celsius.
	celsius := float64(raw) / 16
	return physic.FromKelvin(celsius + 273.15), nil
}

// ConvertAll triggers a conversion on every device on the bus at once,
// holding a strong pull-up for the worst-case conversion time.
func ConvertAll(o onewire.Bus, maxResolutionBits int) error {
	if maxResolutionBits < 9 || maxResolutionBits > 12 {
		return errors.New("onewiretemp: invalid maxResolutionBits")
	}
	if err := o.Tx([]byte{0xcc, 0x44}, nil, onewire.StrongPullup); err != nil {
		return err
	}
	time.Sleep(conversionDelay(maxResolutionBits))
	return nil
}

func conversionDelay(resolutionBits int) time.Duration {
	switch resolutionBits {
	case 9:
		return 94 * time.Millisecond
	case 10:
		return 188 * time.Millisecond
	case 11:
		return 375 * time.Millisecond
	default:
		return 750 * time.Millisecond
	}
}
