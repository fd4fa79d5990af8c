// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"sync"
	"time"
)

// Shadow is the generic "last control message" record every writable
// point carries (spec §3, §9: "model as a generic record Shadow<T> with
// save(msg) and load() -> (T, Status) methods").
//
// It stores both the exact wire bytes (so a monitor on the control RCA
// replays them unchanged, spec §4.4) and a decoded value of type T (so
// monitor leaves of points with no driver read-back can return the
// setpoint without re-parsing the wire payload).
//
// The wire-level fields (raw/size/status/at) are set once per request by
// Leaf.Dispatch through SaveRaw/LoadRaw, which only need []byte and
// Status and so are exposed through the narrower RawShadow interface.
// The typed value is set separately by the device driver's ControlFunc,
// which knows T, before Leaf.Dispatch calls SaveRaw.
type Shadow[T any] struct {
	mu     sync.Mutex
	raw    [8]byte
	size   uint8
	value  T
	status Status
	at     time.Time
}

// SaveRaw records the wire payload of a control write and its outcome
// status. It leaves Value untouched; callers that care about the decoded
// value must call SetValue themselves before or after SaveRaw.
func (s *Shadow[T]) SaveRaw(payload []byte, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = [8]byte{}
	copy(s.raw[:], payload)
	s.size = uint8(len(payload))
	s.status = status
	s.at = time.Now()
}

// LoadRaw returns a copy of the stored wire payload and status.
func (s *Shadow[T]) LoadRaw() (payload []byte, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, s.size)
	copy(out, s.raw[:s.size])
	return out, s.status
}

// SetValue records a decoded setpoint. The ControlFuncs in routerbuild.go
// call it only after the driver write succeeded, so Value holds the last
// setpoint that was applied.
func (s *Shadow[T]) SetValue(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
}

// Value returns the most recently set decoded value.
func (s *Shadow[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// SetStatus overwrites only the status field of the most recent shadow,
// leaving the stored payload as it is. Leaf.Dispatch does not use it: it
// passes the final status to SaveRaw after the ControlFunc returns.
func (s *Shadow[T]) SetStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}
