// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"testing"

	"github.com/nrao-gbo/femc/internal/physic"
)

func newSimulatedFrontend(t *testing.T) *Frontend {
	t.Helper()
	fe, err := NewFrontend(SimulationMode, "127.0.0.1", [3]byte{1, 0, 0})
	if err != nil {
		t.Fatalf("NewFrontend: %v", err)
	}
	t.Cleanup(fe.StopMonitors)
	// The background cryostat sweep runs on its own ticker; tests that
	// need a settled cache call sweepCryostat directly instead of
	// sleeping for it.
	fe.sweepCryostat()
	return fe
}

func rcaLO(class Class, cart, sub int) uint32 {
	return uint32(class)<<classShift | uint32(cart)<<moduleShift | uint32(sub)
}

func rcaBias(class Class, cart, sub int) uint32 {
	return uint32(class)<<classShift | uint32(cart)<<moduleShift | 1<<11 | uint32(sub)
}

const (
	subYTO      = 0
	subPADrain0 = 1
	subPADrain1 = 2
	subPAGate0  = 3
	subPAGate1  = 4

	subSISVoltage = 0
	subMagnet     = 1
	subLNAEnable  = 2
)

func TestEndToEndYTORetuneClampsToLimitAndAdvises(t *testing.T) {
	fe := newSimulatedFrontend(t)
	const cart = 0

	// All TVO sensors read cold after the forced sweep (cryostat.Fake's
	// defaults), so the PA temperature interlock does not interfere here.
	fe.Cartridges[cart].PALimits.Add(PolBoth, 1000, physic.FromVolts(1.0))

	drainPayload := EncodeFloat32(1.5)
	reply := fe.Dispatch(Request{Address: rcaLO(ClassControlStandard, cart, subPADrain0), Payload: drainPayload})
	if !reply.NoReply || reply.Status != NoError {
		t.Fatalf("setting initial drain voltage: %+v", reply)
	}

	ytoPayload := EncodeUint16(1000)
	reply = fe.Dispatch(Request{Address: rcaLO(ClassControlStandard, cart, subYTO), Payload: ytoPayload})
	if !reply.NoReply || reply.Status != HardwBlkdErr {
		t.Fatalf("YTO retune reply: %+v, want HardwBlkdErr advisory", reply)
	}

	readBack := fe.Dispatch(Request{Address: rcaLO(ClassMonitorStandard, cart, subPADrain0)})
	v, _ := DecodeFloat32(readBack.Payload)
	if v != 1.0 {
		t.Fatalf("drain voltage after clamp = %v, want 1.0", v)
	}

	ytoReadBack := fe.Dispatch(Request{Address: rcaLO(ClassMonitorStandard, cart, subYTO)})
	tuning, _ := DecodeUint16(ytoReadBack.Payload)
	if tuning != 1000 {
		t.Fatalf("retune should still have proceeded: tuning = %d", tuning)
	}
}

func TestEndToEndPATemperatureInterlockBlocksEnable(t *testing.T) {
	fe := newSimulatedFrontend(t)
	const cart = 1

	fe.Cryostat.setCachedTemp(2, physic.FromKelvin(45), false)

	reply := fe.Dispatch(Request{Address: rcaLO(ClassControlStandard, cart, subPADrain0), Payload: EncodeFloat32(1.0)})
	if reply.Status != HardwBlkdErr {
		t.Fatalf("status = %v, want HardwBlkdErr", reply.Status)
	}

	readBack := fe.Dispatch(Request{Address: rcaLO(ClassMonitorStandard, cart, subPADrain0)})
	v, _ := DecodeFloat32(readBack.Payload)
	if v != 0 {
		t.Fatalf("blocked write must not reach the driver: drain = %v", v)
	}
}

func TestEndToEndPADisableAllowedDespiteHotSensor(t *testing.T) {
	fe := newSimulatedFrontend(t)
	const cart = 1
	fe.Cryostat.setCachedTemp(0, physic.FromKelvin(45), false)

	reply := fe.Dispatch(Request{Address: rcaLO(ClassControlStandard, cart, subPADrain0), Payload: EncodeFloat32(0)})
	if reply.Status != NoError {
		t.Fatalf("disabling the PA should always be allowed: %+v", reply)
	}
}

func TestEndToEndStandby2RefusesMagnetAndLNA(t *testing.T) {
	fe := newSimulatedFrontend(t)
	const cart = 2
	fe.Cartridges[cart].SetStandby2(true)

	for _, sub := range []int{subMagnet, subLNAEnable} {
		reply := fe.Dispatch(Request{Address: rcaBias(ClassControlStandard, cart, sub), Payload: EncodeFloat32(1)})
		if reply.Status != HardwBlkdErr {
			t.Fatalf("sub %d: status = %v, want HardwBlkdErr while in standby2", sub, reply.Status)
		}
	}

	// SIS voltage is not named among standby2's refusals and should
	// proceed normally.
	reply := fe.Dispatch(Request{Address: rcaBias(ClassControlStandard, cart, subSISVoltage), Payload: EncodeFloat32(0.002)})
	if reply.Status != NoError {
		t.Fatalf("SIS voltage write should be unaffected by standby2: %+v", reply)
	}
}

func TestEndToEndMaintenanceModeRefusesStandardTraffic(t *testing.T) {
	fe := newSimulatedFrontend(t)
	fe.SetMode(MaintenanceMode)

	reply := fe.Dispatch(Request{Address: rcaLO(ClassMonitorStandard, 0, subYTO)})
	if reply.Status != HardwBlkdErr {
		t.Fatalf("monitor in maintenance mode: status = %v, want HardwBlkdErr", reply.Status)
	}

	reply = fe.Dispatch(Request{Address: rcaLO(ClassControlStandard, 0, subYTO), Payload: EncodeUint16(10)})
	if !reply.NoReply || reply.Status != HardwBlkdErr {
		t.Fatalf("control in maintenance mode: %+v", reply)
	}

	// Special-class traffic is served regardless of mode.
	reply = fe.dispatchSpecial(spErrorCount, nil)
	if reply.NoReply {
		t.Fatal("special-class monitor should be served during maintenance mode")
	}
}

func TestEndToEndPowerBudgetRefusesWhenSlotsExhausted(t *testing.T) {
	fe := newSimulatedFrontend(t)
	for i := 0; i < CartridgesNumber-1; i++ {
		fe.Cartridges[i].SetAvailable(true)
	}
	fe.Cartridges[CartridgesNumber-1].SetStandby2(true)

	const powerDistModule = ModulePowerDistribution
	enableAddr := uint32(ClassControlStandard)<<classShift | uint32(powerDistModule)<<moduleShift | uint32(2*(CartridgesNumber-1))
	reply := fe.Dispatch(Request{Address: enableAddr, Payload: EncodeBool(true)})
	if reply.Status != HardwBlkdErr {
		t.Fatalf("status = %v, want HardwBlkdErr: power budget already exhausted", reply.Status)
	}
}
