// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import "testing"

func newTestFrontendWithCartridges() *Frontend {
	fe := newTestFrontend()
	for i := range fe.Cartridges {
		fe.Cartridges[i] = &Cartridge{LO: &LOAssembly{}, Bias: &BiasAssembly{}}
	}
	return fe
}

func TestDispatchSpecialVersionInfo(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	fe.version = [3]byte{1, 2, 3}
	reply := fe.dispatchSpecial(uint32(ClassSpecial)<<classShift|spVersionInfo, nil)
	if reply.NoReply || string(reply.Payload) != "\x01\x02\x03" {
		t.Fatalf("got %+v", reply)
	}
}

func TestDispatchSpecialErrorCountAndNextError(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	fe.errorLog.Store(ModYTO, ErrCommandVal)

	reply := fe.dispatchSpecial(uint32(ClassSpecial)<<classShift|spErrorCount, nil)
	if v, _ := DecodeUint16(reply.Payload); v != 1 {
		t.Fatalf("error count = %d, want 1", v)
	}

	reply = fe.dispatchSpecial(uint32(ClassSpecial)<<classShift|spNextError, nil)
	if len(reply.Payload) != 2 || ModuleID(reply.Payload[0]) != ModYTO || ErrorCode(reply.Payload[1]) != ErrCommandVal {
		t.Fatalf("got %x", reply.Payload)
	}

	reply = fe.dispatchSpecial(uint32(ClassSpecial)<<classShift|spNextError, nil)
	if v, _ := DecodeUint16(reply.Payload); v != noNextErrorSentinel {
		t.Fatalf("empty log next-error = %x, want sentinel", reply.Payload)
	}
}

func TestDispatchSpecialOperatingModeGetSet(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	fe.SetMode(OperationalMode)

	setAddr := uint32(ClassSpecial)<<classShift | spOperatingMode
	reply := fe.dispatchSpecial(setAddr, []byte{byte(TroubleshootingMode)})
	if !reply.NoReply || reply.Status != NoError {
		t.Fatalf("got %+v", reply)
	}
	if fe.GetMode() != TroubleshootingMode {
		t.Fatalf("mode = %v, want TROUBLESHOOTING", fe.GetMode())
	}

	reply = fe.dispatchSpecial(setAddr, nil)
	if v := Mode(reply.Payload[0]); v != TroubleshootingMode {
		t.Fatalf("got mode %v", v)
	}
}

func TestDispatchSpecialESNPerBand(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	fe.Cartridges[3].LO.ESN = "CART3-ESN"
	addr := uint32(ClassSpecial)<<classShift | uint32(3)<<bandShift | spESN
	reply := fe.dispatchSpecial(addr, nil)
	if string(reply.Payload) != "CART3-ESN" {
		t.Fatalf("got %q", reply.Payload)
	}
}

func TestDispatchSpecialPALimitsAddAndClear(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	payload := append([]byte{0}, EncodeUint16(1000)...)
	payload = append(payload, EncodeFloat32(1.5)...)

	addr := uint32(ClassSpecial)<<classShift | uint32(2)<<bandShift | spPALimitsAdd
	reply := fe.dispatchSpecial(addr, payload)
	if !reply.NoReply || reply.Status != NoError {
		t.Fatalf("got %+v", reply)
	}
	limit, ok := fe.Cartridges[2].PALimits.MaxDrainVoltage(0, 1000)
	if !ok || limit.Volts() != 1.5 {
		t.Fatalf("got (%v, %v)", limit, ok)
	}

	clearAddr := uint32(ClassSpecial)<<classShift | uint32(2)<<bandShift | spPALimitsClear
	fe.dispatchSpecial(clearAddr, []byte{1})
	if _, ok := fe.Cartridges[2].PALimits.MaxDrainVoltage(0, 1000); ok {
		t.Fatal("PA limits table should be empty after clear")
	}
}

func TestDispatchSpecialPALimitsAddRejectsBadPol(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	payload := append([]byte{7}, EncodeUint16(1000)...)
	payload = append(payload, EncodeFloat32(1.5)...)
	addr := uint32(ClassSpecial)<<classShift | uint32(0)<<bandShift | spPALimitsAdd
	reply := fe.dispatchSpecial(addr, payload)
	if reply.Status != ConErrorRng {
		t.Fatalf("status = %v, want ConErrorRng", reply.Status)
	}
}

func TestDispatchSpecialUnknownPointErrors(t *testing.T) {
	fe := newTestFrontendWithCartridges()
	reply := fe.dispatchSpecial(uint32(ClassSpecial)<<classShift|0x7F, nil)
	if !reply.NoReply {
		t.Fatal("unknown special point should not produce wire traffic")
	}
}
