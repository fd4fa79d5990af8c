// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssc

import (
	"testing"
	"time"

	"github.com/nrao-gbo/femc/conn/mmio"
)

func TestWriteReadRoundTrip(t *testing.T) {
	view := mmio.NewFake(4 * regsPerPort)
	b := NewBus(view, 1)

	if err := b.Write(Frame{Command: 0x5, DataLength: 16, DataLSW: 0x0fff}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := view.Reg32(b.base + regDataWr); got != 0x0fff {
		t.Fatalf("DATAWR = %#x, want 0xfff", got)
	}

	view.SetReg32(b.base+regDataRd0, 0x00ab)
	view.SetReg32(b.base+regDataRd1, 0xff34)
	msw, lsw, err := b.Read(Frame{Command: 0x6, DataLength: 16})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if msw != 0x34 || lsw != 0x00ab {
		t.Fatalf("Read() = (%#x, %#x), want (0x34, 0xab)", msw, lsw)
	}
}

func TestFrameTooLong(t *testing.T) {
	b := NewBus(mmio.NewFake(regsPerPort), 0)
	if err := b.Write(Frame{DataLength: MaxFrameBits + 1}); err != ErrFrameTooLong {
		t.Fatalf("Write() err = %v, want ErrFrameTooLong", err)
	}
	if _, _, err := b.Read(Frame{DataLength: MaxFrameBits + 1}); err != ErrFrameTooLong {
		t.Fatalf("Read() err = %v, want ErrFrameTooLong", err)
	}
}

func TestBusyTimeout(t *testing.T) {
	view := mmio.NewFake(regsPerPort)
	b := NewBus(view, 0)
	b.Timeout = time.Millisecond

	// Simulate a device that never finishes: the STATUS register keeps
	// reporting busy. Every register write in Write() sets STATUS last, so
	// write it again afterwards from this goroutine's perspective by
	// pre-seeding it is not enough since Write() overwrites it; instead
	// verify waitDone's own deadline handling directly.
	view.SetReg32(b.base+regStatus, statusBusy)
	if err := b.waitDone(); err != ErrTimeout {
		t.Fatalf("waitDone() = %v, want ErrTimeout", err)
	}
}
