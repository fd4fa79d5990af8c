// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import "testing"

func TestShadowSaveLoadRaw(t *testing.T) {
	var s Shadow[uint16]
	s.SaveRaw([]byte{0x01, 0x02}, HardwBlkdErr)
	payload, status := s.LoadRaw()
	if string(payload) != "\x01\x02" || status != HardwBlkdErr {
		t.Fatalf("got (%x, %v)", payload, status)
	}
}

func TestShadowLoadRawCopies(t *testing.T) {
	var s Shadow[uint16]
	s.SaveRaw([]byte{0xAA}, NoError)
	p1, _ := s.LoadRaw()
	p1[0] = 0xFF
	p2, _ := s.LoadRaw()
	if p2[0] != 0xAA {
		t.Fatalf("LoadRaw leaked its internal buffer: second call saw %x", p2)
	}
}

func TestShadowValueIndependentOfRaw(t *testing.T) {
	var s Shadow[float32]
	s.SetValue(3.5)
	s.SaveRaw([]byte{0, 0, 0, 0}, ErrorStatus)
	if v := s.Value(); v != 3.5 {
		t.Fatalf("SaveRaw must not touch Value: got %v", v)
	}
}

func TestShadowSetStatusOverwritesOnlyStatus(t *testing.T) {
	var s Shadow[bool]
	s.SaveRaw([]byte{1}, NoError)
	s.SetStatus(HardwBlkdErr)
	payload, status := s.LoadRaw()
	if status != HardwBlkdErr || payload[0] != 1 {
		t.Fatalf("got (%x, %v)", payload, status)
	}
}
