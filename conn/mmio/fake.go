// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mmio

// NewFake returns a View backed by plain process memory instead of a
// physical mapping, for SIMULATION_MODE and for tests that must run
// without root and without real hardware (spec §4.8, §9 "Simulation
// mode").
func NewFake(words int) *View {
	return &View{regs: make([]uint32, words)}
}
