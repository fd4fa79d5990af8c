// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cryostat evaluates the dewar's 13 temperature sensors (9 TVO +
// 4 PRT) and drives the vacuum controller and gate valve, per spec §3,
// §4.3.
//
// The TVO/PRT coefficients below are transcribed unchanged from
// cryostatTemp.h; the polynomial evaluation itself (resistance -> ratio
// -> Horner sum) follows the gain/scale/coefficient layout that header
// describes, since the evaluation routine's .c source was not part of
// the retrieved corpus.
package cryostat

import "github.com/nrao-gbo/femc/internal/physic"

// TVOSensorsNumber and PRTSensorsNumber partition the dewar's 13
// temperature sensors (spec §3: "9 TVO-style sensors on the 4K/12K
// stages, 4 PRT-style sensors on the 90K stage").
const (
	TVOSensorsNumber = 9
	PRTSensorsNumber = 4
	TVOCoeffsNumber  = 7
)

// TVO sensor gain factors, by hardware revision.
const (
	TVOGainRev0       = 454.545454
	TVOGainRev1       = 603.62173
	TVOResistorScale  = 1000.0
)

// TVOCoeff holds one sensor's interpolation polynomial, a flattened
// version of CRYOSTAT_TEMP.coeff in cryostatTemp.h (one coefficient set
// is per-sensor and per-unit, loaded at init time or via the
// add-coefficient special control).
type TVOCoeff [TVOCoeffsNumber]float64

// EvalTVO converts a TVO sensor's resistance reading into a temperature
// by evaluating the degree-6 polynomial x = r/TVOResistorScale,
// temp = sum(coeff[i] * x^i).
func EvalTVO(r physic.ElectricResistance, coeff TVOCoeff) physic.Temperature {
	x := r.Ohms() / TVOResistorScale
	return physic.FromKelvin(horner(coeff[:], x))
}

// PRT gain and the two interpolation curves: PRT_A for resistances below
// prtSplitOhms (~60K), PRT_B above.
const (
	PRTGain      = 124.71872
	prtSplitOhms = 124.0
	prtAScale    = 124.0
	prtBScale    = 1000.0
)

var prtA = [7]float64{0.513971, 276.222931, -1038.573479, 2460.959311, -3243.304766, 2211.327698, -607.247388}
var prtB = [7]float64{28.486734, 278.396620, -260.205006, 687.754698, -891.652830, 583.158140, -152.808821}

// EvalPRT converts a PRT sensor's resistance reading into a temperature,
// selecting the low-resistance (PRT_A) or high-resistance (PRT_B) curve
// at the 124ohm crossover cryostatTemp.h documents.
func EvalPRT(r physic.ElectricResistance) physic.Temperature {
	ohms := r.Ohms()
	if ohms < prtSplitOhms {
		return physic.FromKelvin(horner(prtA[:], ohms/prtAScale))
	}
	return physic.FromKelvin(horner(prtB[:], ohms/prtBScale))
}

func horner(coeff []float64, x float64) float64 {
	sum := 0.0
	pow := 1.0
	for _, c := range coeff {
		sum += c * pow
		pow *= x
	}
	return sum
}
