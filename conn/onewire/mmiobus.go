// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

import (
	"fmt"
	"sync"
	"time"

	"github.com/nrao-gbo/femc/conn/mmio"
)

// Register offsets within an MMIOBus's window: a command word, the
// transfer's write and read byte counts (write count in bits 8-15, read
// count in bits 0-7), two 32-bit data words (enough for the
// longest one-wire transaction this front end issues, a 9-byte
// scratchpad read), a pull-up-mode flag, and a status word whose bit 0
// is "busy", bit 1 is "search triplet got-zero" and bit 2 is "search
// triplet got-one", mirroring the
// busy-poll shape devices/ssc.Bus uses for its own register protocol.
const (
	regCommand = iota
	regLength
	regData0
	regData1
	regPower
	regStatus
	regsPerMMIOBus = regStatus + 1
)

const (
	cmdTx            uint32 = 0x1
	cmdSearchTriplet uint32 = 0x2
	statusBusy       uint32 = 0x1
	statusGotZero    uint32 = 0x2
	statusGotOne     uint32 = 0x4
)

// ErrTimeout is returned when the busy bit never clears within Timeout.
var ErrTimeout = fmt.Errorf("onewire: mmio bus busy-poll deadline exceeded")

// MMIOBus is a one-wire master reachable through a memory-mapped
// register window, the hardware backing for the FETIM external
// temperature probes (spec §3, §4.2). It implements
// Bus and BusSearcher directly against registers rather than bit-banging
// a GPIO, since the front end's one-wire master is itself a small
// register-mapped peripheral, not a raw pin.
type MMIOBus struct {
	mu      sync.Mutex
	view    *mmio.View
	base    int
	Timeout time.Duration
}

// NewMMIOBus returns an MMIOBus bound to the port-th register window of
// view.
func NewMMIOBus(view *mmio.View, port int) *MMIOBus {
	return &MMIOBus{view: view, base: port * regsPerMMIOBus, Timeout: 10 * time.Millisecond}
}

func (b *MMIOBus) String() string { return fmt.Sprintf("mmio one-wire bus @%d", b.base) }

func (b *MMIOBus) Tx(w, r []byte, power Pullup) error {
	if len(w) > 8 || len(r) > 8 {
		return fmt.Errorf("onewire: mmio bus transfer limited to 8 bytes per direction")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var data0, data1 uint32
	for i, c := range w {
		if i < 4 {
			data0 |= uint32(c) << (8 * uint(i))
		} else {
			data1 |= uint32(c) << (8 * uint(i-4))
		}
	}
	b.view.SetReg32(b.base+regData0, data0)
	b.view.SetReg32(b.base+regData1, data1)
	b.view.SetReg32(b.base+regLength, uint32(len(w))<<8|uint32(len(r)))
	pw := uint32(0)
	if power == StrongPullup {
		pw = 1
	}
	b.view.SetReg32(b.base+regPower, pw)
	b.view.SetReg32(b.base+regCommand, cmdTx)
	if err := b.waitDone(); err != nil {
		return err
	}
	data0 = b.view.Reg32(b.base + regData0)
	data1 = b.view.Reg32(b.base + regData1)
	for i := range r {
		if i < 4 {
			r[i] = byte(data0 >> (8 * uint(i)))
		} else {
			r[i] = byte(data1 >> (8 * uint(i-4)))
		}
	}
	return nil
}

func (b *MMIOBus) Search(alarmOnly bool) ([]Address, error) {
	return Search(b, alarmOnly)
}

func (b *MMIOBus) SearchTriplet(direction byte) (TripletResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view.SetReg32(b.base+regData0, uint32(direction))
	b.view.SetReg32(b.base+regCommand, cmdSearchTriplet)
	if err := b.waitDone(); err != nil {
		return TripletResult{}, err
	}
	status := b.view.Reg32(b.base + regStatus)
	return TripletResult{
		GotZero: status&statusGotZero != 0,
		GotOne:  status&statusGotOne != 0,
		Taken:   byte(b.view.Reg32(b.base + regData0)),
	}, nil
}

func (b *MMIOBus) waitDone() error {
	deadline := time.Now().Add(b.Timeout)
	for b.view.Reg32(b.base+regStatus)&statusBusy != 0 {
		if time.Now().After(deadline) {
			return ErrTimeout
		}
	}
	return nil
}

var _ Bus = (*MMIOBus)(nil)
var _ BusSearcher = (*MMIOBus)(nil)
