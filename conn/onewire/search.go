// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package onewire

// Search performs the standard 1-wire binary search algorithm (Maxim
// application note 187) using a bus's SearchTriplet primitive, returning
// every responding device address (or only those with a pending alarm
// when alarmOnly is true).
func Search(b BusSearcher, alarmOnly bool) ([]Address, error) {
	cmd := byte(0xf0)
	if alarmOnly {
		cmd = 0xec
	}
	var addrs []Address
	lastDiscrepancy := -1
	var lastAddr Address
	for {
		if err := b.Tx([]byte{cmd}, nil, WeakPullup); err != nil {
			return addrs, err
		}

		var addr Address
		discrepancy := -1
		for bit := 0; bit < 64; bit++ {
			direction := byte(0)
			if bit < lastDiscrepancy {
				direction = byte((lastAddr >> uint(bit)) & 1)
			} else if bit == lastDiscrepancy {
				direction = 1
			}
			tr, err := b.SearchTriplet(direction)
			if err != nil {
				return addrs, err
			}
			if tr.GotZero && tr.GotOne && tr.Taken == 0 {
				discrepancy = bit
			}
			if tr.Taken != 0 {
				addr |= Address(1) << uint(bit)
			}
		}

		if !checkCRC(addr) {
			return addrs, busError("onewire: search: CRC mismatch")
		}
		addrs = append(addrs, addr)

		lastAddr = addr
		lastDiscrepancy = discrepancy
		if discrepancy == -1 {
			break
		}
	}
	return addrs, nil
}

func checkCRC(a Address) bool {
	var buf [8]byte
	v := uint64(a)
	for i := range buf {
		buf[i] = byte(v >> (8 * uint(i)))
	}
	return CalcCRC(buf[:7]) == buf[7]
}

// CalcCRC computes the Dallas/Maxim 1-wire CRC8 (polynomial x^8+x^5+x^4+1,
// reflected) over b.
func CalcCRC(b []byte) byte {
	var crc byte
	for _, v := range b {
		d := v
		for i := 0; i < 8; i++ {
			mix := (crc ^ d) & 1
			crc >>= 1
			if mix != 0 {
				crc ^= 0x8C
			}
			d >>= 1
		}
	}
	return crc
}
