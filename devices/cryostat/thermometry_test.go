// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cryostat

import (
	"math"
	"testing"

	"github.com/nrao-gbo/femc/internal/physic"
)

func TestEvalTVOZeroCoeffIsZeroKelvin(t *testing.T) {
	var coeff TVOCoeff
	got := EvalTVO(physic.FromOhms(1000), coeff)
	if got.ToKelvin() != 0 {
		t.Fatalf("zero coefficients should evaluate to 0K, got %v", got)
	}
}

func TestEvalTVOConstantTerm(t *testing.T) {
	coeff := TVOCoeff{4, 0, 0, 0, 0, 0, 0}
	got := EvalTVO(physic.FromOhms(12345), coeff)
	if math.Abs(got.ToKelvin()-4) > 1e-9 {
		t.Fatalf("constant-only polynomial should ignore resistance, got %v", got.ToKelvin())
	}
}

func TestEvalPRTSelectsCurveByResistance(t *testing.T) {
	low := EvalPRT(physic.FromOhms(60))
	high := EvalPRT(physic.FromOhms(500))
	if low.ToKelvin() == high.ToKelvin() {
		t.Fatalf("low and high resistance PRT readings should evaluate to different curves")
	}
}

func TestFakeGateValveRoundTrip(t *testing.T) {
	f := NewFake()
	if err := f.SetGateValveState(true); err != nil {
		t.Fatal(err)
	}
	s, err := f.GateValveState()
	if err != nil {
		t.Fatal(err)
	}
	if s != GateValveOpen {
		t.Fatalf("want GateValveOpen, got %v", s)
	}
}

func TestFakeInjectTimeoutFiresOnce(t *testing.T) {
	f := NewFake()
	f.InjectTimeout(2)
	if _, err := f.ReadResistance(2); err != ErrSimulatedTimeout {
		t.Fatalf("want ErrSimulatedTimeout, got %v", err)
	}
	if _, err := f.ReadResistance(2); err != nil {
		t.Fatalf("injected timeout should not recur, got %v", err)
	}
}
