// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package mmio

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

func mapPhysical(base uint64, words int) (*View, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: opening /dev/mem: %w", err)
	}
	defer f.Close()

	size := words * 4
	offset := int(base & 0xfff)
	mapped, err := syscall.Mmap(
		int(f.Fd()),
		int64(base&^0xfff),
		(size+offset+0xfff)&^0xfff,
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmio: mapping at %#x: %w", base, err)
	}
	window := mapped[offset : offset+size]
	v := &View{
		orig: mapped,
		regs: unsafe.Slice((*uint32)(unsafe.Pointer(&window[0])), words),
	}
	return v, nil
}

func unmap(b []byte) error {
	if b == nil {
		return nil
	}
	return syscall.Munmap(b)
}
