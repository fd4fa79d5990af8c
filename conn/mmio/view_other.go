// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package mmio

import "errors"

func mapPhysical(base uint64, words int) (*View, error) {
	return nil, errors.New("mmio: /dev/mem is only supported on Linux")
}

func unmap(b []byte) error {
	return errors.New("mmio: /dev/mem is only supported on Linux")
}
