// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestFrontend() *Frontend {
	return &Frontend{mode: OperationalMode, maintenance: noopMaintenanceService{}, log: logrus.New()}
}

func TestLeafDispatchMonitorOnMonitorRCA(t *testing.T) {
	fe := newTestFrontend()
	var shadow Shadow[uint16]
	l := &Leaf{
		Module:  ModYTO,
		Monitor: func(fe *Frontend) ([]byte, Status) { return EncodeUint16(42), NoError },
		Control: func(fe *Frontend, payload []byte) Status { return NoError },
		Shadow:  &shadow,
	}
	reply := l.Dispatch(fe, 0, ClassMonitorStandard, nil)
	if reply.NoReply {
		t.Fatal("monitor read should produce a reply")
	}
	v, _ := DecodeUint16(reply.Payload)
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestLeafDispatchControlWrite(t *testing.T) {
	fe := newTestFrontend()
	var shadow Shadow[uint16]
	var gotPayload []byte
	l := &Leaf{
		Module: ModYTO,
		Control: func(fe *Frontend, payload []byte) Status {
			gotPayload = payload
			return NoError
		},
		Shadow: &shadow,
	}
	reply := l.Dispatch(fe, 0, ClassControlStandard, []byte{0x00, 0x2A})
	if !reply.NoReply {
		t.Fatal("control write produces no wire reply")
	}
	if string(gotPayload) != "\x00\x2a" {
		t.Fatalf("Control saw %x", gotPayload)
	}
	payload, status := shadow.LoadRaw()
	if status != NoError || string(payload) != "\x00\x2a" {
		t.Fatalf("shadow not saved: (%x, %v)", payload, status)
	}
}

func TestLeafDispatchMonitorOnControlRCAReplaysShadow(t *testing.T) {
	fe := newTestFrontend()
	var shadow Shadow[uint16]
	shadow.SaveRaw([]byte{0x00, 0x2A}, HardwBlkdErr)
	l := &Leaf{
		Module:  ModYTO,
		Control: func(fe *Frontend, payload []byte) Status { return NoError },
		Shadow:  &shadow,
	}
	reply := l.Dispatch(fe, 0, ClassControlStandard, nil)
	if reply.NoReply {
		t.Fatal("monitor-on-control-RCA should produce a reply")
	}
	if reply.Status != HardwBlkdErr || string(reply.Payload) != "\x00\x2a" {
		t.Fatalf("got %+v", reply)
	}
}

func TestLeafDispatchPayloadOnMonitorOnlyAddressErrors(t *testing.T) {
	fe := newTestFrontend()
	l := &Leaf{Module: ModCryostatTemp, Monitor: func(fe *Frontend) ([]byte, Status) { return nil, NoError }}
	reply := l.Dispatch(fe, 0, ClassControlStandard, []byte{1})
	if !reply.NoReply {
		t.Fatal("payload on a monitor-only address must not produce wire traffic")
	}
	if fe.errorLog.Count() != 1 {
		t.Fatalf("expected one error log entry, got %d", fe.errorLog.Count())
	}
}

func TestLeafDispatchMonitorOnControlRCAWithoutControlErrors(t *testing.T) {
	fe := newTestFrontend()
	l := &Leaf{Module: ModCryostatTemp, Monitor: func(fe *Frontend) ([]byte, Status) { return nil, NoError }}
	reply := l.Dispatch(fe, 0, ClassControlStandard, nil)
	if !reply.NoReply {
		t.Fatal("a monitor-only leaf has no shadow to replay on its control RCA")
	}
}

func TestRouterDispatchOutOfRangeIndex(t *testing.T) {
	fe := newTestFrontend()
	r := &Router{Shift: 0, Mask: 0x3, Module: ModDispatch, Handlers: []Dispatcher{nil, nil}}
	reply := r.Dispatch(fe, 2, ClassMonitorStandard, nil)
	if reply.NoReply {
		t.Fatal("an out-of-range monitor read should still produce a reply")
	}
	if reply.Status != HardwRngErr {
		t.Fatalf("status = %v, want HardwRngErr", reply.Status)
	}
}

func TestRouterDispatchOutOfRangeControlWrite(t *testing.T) {
	fe := newTestFrontend()
	r := &Router{Shift: 0, Mask: 0x3, Module: ModDispatch, Handlers: []Dispatcher{nil}}
	reply := r.Dispatch(fe, 1, ClassControlStandard, []byte{1})
	if !reply.NoReply {
		t.Fatal("an out-of-range control write produces no wire reply")
	}
}
