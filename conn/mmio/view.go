// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mmio maps a physical memory range into the process's address
// space, adapted from periph.io/x/periph/host/pmem for the front-end's
// single ISA/PCI memory window that carries every synchronous-serial
// controller port plus the one-wire bus master.
//
// The mapping is acquired once at process init and held until
// femc's Frontend.Shutdown closes it; the kernel reclaims any mapping
// still open on process exit.
package mmio

import (
	"fmt"
	"sync"
)

// View represents a view of physical memory mapped into user space,
// addressable as 32-bit registers.
type View struct {
	regs []uint32
	orig []byte
}

// Reg32 returns the value currently at the given 32-bit register offset
// (in units of uint32, not bytes).
func (v *View) Reg32(offset int) uint32 {
	return v.regs[offset]
}

// SetReg32 stores a value at the given 32-bit register offset. The write
// goes directly to the mapped memory; callers are responsible for any
// ordering guarantees the underlying bus requires (see devices/ssc, which
// serializes register accesses through a mutex per port).
func (v *View) SetReg32(offset int, value uint32) {
	v.regs[offset] = value
}

// Len returns the number of addressable 32-bit registers in the view.
func (v *View) Len() int {
	return len(v.regs)
}

// Close unmaps the memory from the user address space. Not calling it is
// safe; the OS reclaims the mapping on process exit.
func (v *View) Close() error {
	if v.orig == nil {
		return nil
	}
	return unmap(v.orig)
}

var (
	mu       sync.Mutex
	cache    = map[string]*View{}
	cacheErr = map[string]error{}
)

// Map returns a memory mapped view of size 32-bit registers at physical
// address base, using OS provided functionality. It requires appropriate
// privileges (typically root) since it maps /dev/mem on Linux.
//
// Repeated calls with the same base return the same cached View, matching
// the "acquired once, held for the process lifetime" resource policy of
// the front-end's memory map.
func Map(base uint64, words int) (*View, error) {
	mu.Lock()
	defer mu.Unlock()
	key := fmt.Sprintf("%#x:%d", base, words)
	if v, ok := cache[key]; ok {
		return v, nil
	}
	if err, ok := cacheErr[key]; ok {
		return nil, err
	}
	v, err := mapPhysical(base, words)
	if err != nil {
		cacheErr[key] = err
		return nil, err
	}
	cache[key] = v
	return v, nil
}
