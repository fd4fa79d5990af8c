// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

import (
	"errors"
	"fmt"
	"testing"
)

func TestSearch(t *testing.T) {
	p := playback{
		Devices: []Address{
			0x0000000000000000,
			0x0000000000000001,
			0x0010000000000000,
			0x0000100000000000,
			0xfc0000013199a928,
			0xf100000131856328,
		},
	}
	var buf [8]byte
	for i := range p.Devices {
		v := uint64(p.Devices[i])
		for j := 0; j < 8; j++ {
			buf[j] = byte(v >> (8 * uint(j)))
		}
		crc := CalcCRC(buf[:7])
		p.Devices[i] = (Address(crc) << 56) | (p.Devices[i] & 0x00ffffffffffffff)
	}

	addrs, err := p.Search(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != len(p.Devices) {
		t.Fatalf("expected %d devices, got %d", len(p.Devices), len(addrs))
	}
match:
	for _, want := range p.Devices {
		for _, got := range addrs {
			if want == got {
				continue match
			}
		}
		t.Errorf("expected to find %#x but didn't", want)
	}
}

func TestSearch_noDevices(t *testing.T) {
	p := playback{}
	if addrs, err := p.Search(true); len(addrs) != 0 || err == nil {
		t.Fatal("expected Tx() error with no devices primed")
	}
}

//

type playback struct {
	Devices   []Address
	inactive  []bool
	searchBit uint
}

func (p *playback) String() string { return "playback" }

func (p *playback) Tx(w, r []byte, pull Pullup) error {
	if len(w) == 0 {
		return errors.New("onewiretest: unexpected empty write")
	}
	if w[0] == 0xf0 || w[0] == 0xec {
		if len(p.Devices) == 0 {
			return errors.New("onewiretest: no devices")
		}
		p.searchBit = 0
		p.inactive = make([]bool, len(p.Devices))
	}
	return nil
}

func (p *playback) Search(alarmOnly bool) ([]Address, error) {
	return Search(p, alarmOnly)
}

func (p *playback) SearchTriplet(direction byte) (TripletResult, error) {
	tr := TripletResult{}
	if p.searchBit > 63 {
		return tr, fmt.Errorf("onewiretest: search performs more than 64 triplet operations")
	}
	if len(p.inactive) != len(p.Devices) {
		return tr, errors.New("onewiretest: Devices must be initialized before starting search")
	}
	for i := range p.Devices {
		if p.inactive[i] {
			continue
		}
		if (p.Devices[i]>>p.searchBit)&1 == 0 {
			tr.GotZero = true
		} else {
			tr.GotOne = true
		}
	}
	switch {
	case tr.GotZero && !tr.GotOne:
		tr.Taken = 0
	case !tr.GotZero && tr.GotOne:
		tr.Taken = 1
	default:
		tr.Taken = direction
	}
	for i := range p.Devices {
		if uint8((p.Devices[i]>>p.searchBit)&1) != tr.Taken {
			p.inactive[i] = true
		}
	}
	p.searchBit++
	return tr, nil
}
