// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"encoding/binary"
	"math"
)

// EncodeUint16 packs v as 2 bytes, big-endian / network order (spec §4.4,
// §6).
func EncodeUint16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

// DecodeUint16 unpacks a 2-byte big-endian unsigned integer. ok is false
// if b is shorter than 2 bytes.
func DecodeUint16(b []byte) (v uint16, ok bool) {
	if len(b) < 2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(b[:2]), true
}

// EncodeFloat32 packs v as 4 bytes, IEEE-754 single precision, MSB-first
// (spec §4.4: "floats use size-4 little-endian on the host and are
// byte-swapped on the wire"; this function performs that swap so the
// result is ready to place on the wire).
func EncodeFloat32(v float32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
	return b
}

// DecodeFloat32 unpacks a 4-byte big-endian (network order) IEEE-754
// single precision float. ok is false if b is shorter than 4 bytes.
func DecodeFloat32(b []byte) (v float32, ok bool) {
	if len(b) < 4 {
		return 0, false
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b[:4])), true
}

// EncodeBool packs a boolean flag as the single byte conventions used
// throughout the registry (0/1).
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool unpacks a single boolean byte. Any nonzero value is true.
func DecodeBool(b []byte) (v bool, ok bool) {
	if len(b) < 1 {
		return false, false
	}
	return b[0] != 0, true
}

// EncodeWireFrame appends a trailing status byte to a Reply's payload iff
// its length is less than 8, building the bytes a transport actually puts
// on the wire (spec §6). A NoReply Reply has no wire representation.
func EncodeWireFrame(r Reply) []byte {
	if r.NoReply {
		return nil
	}
	if len(r.Payload) < 8 {
		out := make([]byte, len(r.Payload)+1)
		copy(out, r.Payload)
		out[len(r.Payload)] = byte(r.Status)
		return out
	}
	return r.Payload
}
