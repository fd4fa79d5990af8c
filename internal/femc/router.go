// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

// Dispatcher is implemented by both Router (an internal node addressing a
// further submodule bitfield) and Leaf (a terminal point), giving the
// recursive "walk the address through the device tree" structure of spec
// §4.1 a uniform shape. This replaces the original firmware's
// function-pointer tables with a tagged interface table indexed by
// submodule number, per the redesign note in spec §9.
type Dispatcher interface {
	Dispatch(fe *Frontend, addr uint32, class Class, payload []byte) Reply
}

// Router indexes a submodule bitfield extracted from addr with
// (addr>>Shift)&Mask and forwards to the matching child Dispatcher. An
// index past the end of Handlers, or a nil entry, stores MODULE_RANGE
// and reports HARDW_RNG_ERR — the single match arm the redesign note asks
// for in place of an array overrun.
type Router struct {
	Shift    uint
	Mask     uint32
	Handlers []Dispatcher
	// Module identifies which subsystem owns this level, for error
	// logging when the index is out of range.
	Module ModuleID
}

func (r *Router) Dispatch(fe *Frontend, addr uint32, class Class, payload []byte) Reply {
	idx := int((addr >> r.Shift) & r.Mask)
	if idx >= len(r.Handlers) || r.Handlers[idx] == nil {
		fe.errorLog.Store(r.Module, ErrModuleRange)
		if class != ClassControlStandard || len(payload) == 0 {
			return Reply{Status: HardwRngErr}
		}
		return Reply{NoReply: true, Status: HardwRngErr}
	}
	return r.Handlers[idx].Dispatch(fe, addr, class, payload)
}

// MonitorFunc reads the current value of a point, from the registry
// cache or (when the point owns one) straight from a driver, and encodes
// it as a reply payload. status is ErrorStatus when the underlying driver
// call most recently failed. Leaves that read the registry cache then
// return the cached value; leaves that call a driver directly return a
// zero value (the gate valve returns UNKNOWN), not the last good reading.
type MonitorFunc func(fe *Frontend) (payload []byte, status Status)

// ControlFunc attempts to apply payload to hardware (and the registry)
// and returns the outcome status to store in the shadow.
type ControlFunc func(fe *Frontend, payload []byte) Status

// Leaf implements the four-case pattern of spec §4.1 over one field.
// A monitor-only point has Control == nil.
type Leaf struct {
	Module  ModuleID
	Monitor MonitorFunc
	Control ControlFunc
	Shadow  RawShadow
}

// RawShadow is implemented by *Shadow[T] for any T: Leaf only needs the
// wire-level Save/Load, never the typed Value, so it depends on this
// narrow interface instead of a concrete instantiation.
type RawShadow interface {
	SaveRaw(payload []byte, status Status)
	LoadRaw() (payload []byte, status Status)
}

func (l *Leaf) Dispatch(fe *Frontend, addr uint32, class Class, payload []byte) Reply {
	controlClass := class == ClassControlStandard
	switch {
	case len(payload) == 0 && !controlClass:
		// Monitor on a monitor RCA.
		p, status := l.Monitor(fe)
		return Reply{Payload: p, Status: status}

	case len(payload) > 0 && controlClass:
		// Control write.
		if l.Control == nil {
			fe.errorLog.Store(l.Module, ErrRCARange)
			return Reply{NoReply: true}
		}
		status := l.Control(fe, payload)
		l.Shadow.SaveRaw(payload, status)
		return Reply{NoReply: true, Status: status}

	case len(payload) == 0 && controlClass && l.Control != nil:
		// Monitor on the control RCA: replay the shadow untouched.
		p, status := l.Shadow.LoadRaw()
		return Reply{Payload: p, Status: status}

	default:
		// Payload sent to a monitor-only address.
		fe.errorLog.Store(l.Module, ErrRCARange)
		return Reply{NoReply: true}
	}
}

var _ Dispatcher = (*Router)(nil)
var _ Dispatcher = (*Leaf)(nil)
