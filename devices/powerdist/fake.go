// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package powerdist

import "sync"

// Fake is an in-memory Driver for SIMULATION_MODE and for tests.
type Fake struct {
	mu       sync.Mutex
	enabled  [10]bool
	standby2 [10]bool
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) SetCartridgeEnable(cart int, enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled[cart] = enable
	return nil
}

func (f *Fake) CartridgeEnabled(cart int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled[cart], nil
}

func (f *Fake) SetStandby2(cart int, standby2 bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.standby2[cart] = standby2
	return nil
}

func (f *Fake) Standby2(cart int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.standby2[cart], nil
}

var _ Driver = (*Fake)(nil)
