// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package onewire defines a Dallas Semiconductor / Maxim Integrated 1-wire
// bus, adapted from periph.io/x/periph/conn/onewire for the FETIM external
// temperature probes, the points in the front-end that share a bus master
// instead of a synchronous serial controller port.
package onewire

import "strconv"

// Bus defines the function a concrete driver for a 1-wire bus must implement.
type Bus interface {
	String() string
	// Tx performs a bus transaction, sending and receiving bytes, and
	// ending by pulling the bus high either weakly or strongly depending
	// on the value of power.
	Tx(w, r []byte, power Pullup) error
	// Search performs a "search" cycle on the 1-wire bus and returns the
	// addresses of all devices on the bus, or only those in alarm state
	// if alarmOnly is true.
	Search(alarmOnly bool) ([]Address, error)
}

// BusSearcher is implemented by a Bus that can perform the low level
// triplet operation used by Search. Buses that don't implement it must
// supply their own Search.
type BusSearcher interface {
	Bus
	SearchTriplet(direction byte) (TripletResult, error)
}

// TripletResult is returned by BusSearcher.SearchTriplet.
type TripletResult struct {
	GotZero bool // at least one device answered with bit 0
	GotOne  bool // at least one device answered with bit 1
	Taken   byte // the direction (0 or 1) the search took
}

// Address represents a 1-wire device address in little-endian format: the
// family code is the lowest byte, the CRC the highest.
type Address uint64

// Pullup encodes the type of pull-up used at the end of a bus transaction.
type Pullup bool

const (
	WeakPullup   Pullup = false
	StrongPullup Pullup = true
)

func (p Pullup) String() string {
	if p {
		return "Strong"
	}
	return "Weak"
}

// BusCloser is a 1-wire bus that can be closed.
type BusCloser interface {
	Close() error
	Bus
}

// NoDevicesError indicates no presence pulse was detected.
type NoDevicesError interface {
	NoDevices() bool
}

type noDevicesError string

func (e noDevicesError) Error() string   { return string(e) }
func (e noDevicesError) NoDevices() bool { return true }

// ErrNoDevices reports that no device answered with a presence pulse.
// Search does not produce it; it passes on whatever error the bus's Tx
// returns.
var ErrNoDevices error = noDevicesError("onewire: no devices present")

// ShortedBusError indicates Q is shorted to ground.
type ShortedBusError interface {
	IsShorted() bool
}

type shortedBusError string

func (e shortedBusError) Error() string   { return string(e) }
func (e shortedBusError) IsShorted() bool { return true }

// BusError indicates a generic bus-level failure, e.g. a CRC mismatch.
type BusError interface {
	BusError() bool
}

type busError string

func (e busError) Error() string  { return string(e) }
func (e busError) BusError() bool { return true }

// Dev is a device on a 1-wire bus.
type Dev struct {
	Bus  Bus
	Addr Address
}

func (d *Dev) String() string {
	s := "<nil>"
	if d.Bus != nil {
		s = d.Bus.String()
	}
	a := strconv.FormatUint(uint64(d.Addr), 16)
	for len(a) < 16 {
		a = "0" + a
	}
	return s + "(0x" + a + ")"
}

// Tx performs a "match ROM" then transmits/receives, ending with a weak
// pull-up.
func (d *Dev) Tx(w, r []byte) error {
	return d.tx(w, r, WeakPullup)
}

// TxPower is like Tx but ends with a strong pull-up, needed to power a
// temperature conversion or an EEPROM write.
func (d *Dev) TxPower(w, r []byte) error {
	return d.tx(w, r, StrongPullup)
}

func (d *Dev) tx(w, r []byte, pull Pullup) error {
	ww := make([]byte, 9, len(w)+9)
	ww[0] = 0x55 // Match ROM
	putUint64(ww[1:], d.Addr)
	ww = append(ww, w...)
	return d.Bus.Tx(ww, r, pull)
}

func putUint64(b []byte, v Address) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

var (
	_ NoDevicesError  = noDevicesError("")
	_ ShortedBusError = shortedBusError("")
	_ BusError        = busError("")
)
