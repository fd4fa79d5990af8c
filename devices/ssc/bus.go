// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssc implements the synchronous-serial-controller bus transport
// that every hardware device family (LO, BIAS, IF switch, cryostat
// specials, power distribution, LPR, FETIM) is attached to, one port per
// family, per spec §4.2 and §6.
//
// It is grounded on two pack sources: the register-transaction shape of
// periph.io/x/periph/conn/mmr (write address/length, write or read data)
// and the mutual-exclusion and busy-poll protocol of
// original_source/src/serialMux.c's writeMux/readMux.
package ssc

import (
	"fmt"
	"sync"
	"time"

	"github.com/nrao-gbo/femc/conn/mmio"
)

// Register offsets within a port's register window, matching the
// {DATAWR, DATARD0, DATARD1, LENGTH, COMMAND, STATUS} layout of spec §6.
const (
	regDataWr = iota
	regDataRd0
	regDataRd1
	regLength
	regCommand
	regStatus
	regsPerPort = regStatus + 1
)

// Command words written to the STATUS register to initiate a transaction.
const (
	cmdWriteSSC uint32 = 0x1
	cmdReadSSC  uint32 = 0x2
	statusBusy  uint32 = 0x4 // bit 2
)

// MaxFrameBits is the hardware limit on a single frame's data length.
const MaxFrameBits = 40

// Frame is a single synchronous-serial transaction: a command word, a
// data length in bits (<=MaxFrameBits), and up to 40 bits of data split
// across a most-significant and least-significant 32-bit word, matching
// FRAME_DATA_MSW/FRAME_DATA_LSW in the original driver.
type Frame struct {
	Command    uint32
	DataLength uint8
	DataMSW    uint32
	DataLSW    uint32
}

// ErrFrameTooLong is returned when a Frame's DataLength exceeds the
// hardware limit.
var ErrFrameTooLong = fmt.Errorf("ssc: frame data length exceeds %d bits", MaxFrameBits)

// ErrTimeout is returned when the busy bit never clears within Bus.Timeout.
var ErrTimeout = fmt.Errorf("ssc: bus busy-poll deadline exceeded")

// Bus is one synchronous-serial controller port. All entry points acquire
// mu and release it on every exit path, including error, satisfying the
// "mutual exclusion per bus" invariant of spec §1 and §5. No Bus method
// calls another Bus's methods while holding its own lock, so a caller that
// accidentally interleaves ports never deadlocks.
type Bus struct {
	mu      sync.Mutex
	view    *mmio.View
	base    int // index into view of this port's first register
	Timeout time.Duration
}

// NewBus returns a Bus bound to the port-th register window of view.
// Timeout defaults to 10ms, well above the few hundred microseconds a
// real SSC transaction takes and well below anything a human or a
// request-processing loop would notice.
func NewBus(view *mmio.View, port int) *Bus {
	return &Bus{view: view, base: port * regsPerPort, Timeout: 10 * time.Millisecond}
}

// Write transmits f to the device attached to this port.
func (b *Bus) Write(f Frame) error {
	if f.DataLength > MaxFrameBits {
		return ErrFrameTooLong
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view.SetReg32(b.base+regDataWr, f.DataLSW)
	b.view.SetReg32(b.base+regLength, uint32(f.DataLength))
	b.view.SetReg32(b.base+regCommand, f.Command)
	b.view.SetReg32(b.base+regStatus, cmdWriteSSC)

	return b.waitDone()
}

// Read issues a read-length transaction and returns the two data words
// the device returned.
func (b *Bus) Read(f Frame) (msw, lsw uint32, err error) {
	if f.DataLength > MaxFrameBits {
		return 0, 0, ErrFrameTooLong
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view.SetReg32(b.base+regLength, uint32(f.DataLength))
	b.view.SetReg32(b.base+regCommand, f.Command)
	b.view.SetReg32(b.base+regStatus, cmdReadSSC)

	if err := b.waitDone(); err != nil {
		return 0, 0, err
	}

	msw = b.view.Reg32(b.base+regDataRd1) & 0xFF
	lsw = b.view.Reg32(b.base + regDataRd0)
	return msw, lsw, nil
}

// waitDone spins on the busy bit until it clears or Timeout elapses. Must
// be called with mu held.
func (b *Bus) waitDone() error {
	deadline := time.Now().Add(b.Timeout)
	for b.view.Reg32(b.base+regStatus)&statusBusy != 0 {
		if time.Now().After(deadline) {
			return ErrTimeout
		}
	}
	return nil
}
