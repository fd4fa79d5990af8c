// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package physic defines a narrow set of typed physical quantities.
//
// It is a trimmed descendant of periph.io/x/periph/conn/physic, keeping only
// the quantities the front-end registry needs (voltage, current, resistance,
// temperature, pressure, power) and dropping the rest (angle, mass, luminous
// flux, ...). Every quantity is stored as an int64 scaled to a nano-unit of
// its base SI unit, exactly as the upstream package does, so the encoding at
// the wire boundary (§6 of the receiver control spec) is a simple integer or
// float32 conversion rather than a unit-aware one.
package physic

import "fmt"

// ElectricCurrent is stored as nano-amperes.
type ElectricCurrent int64

const (
	NanoAmpere  ElectricCurrent = 1
	MicroAmpere ElectricCurrent = 1000 * NanoAmpere
	MilliAmpere ElectricCurrent = 1000 * MicroAmpere
	Ampere      ElectricCurrent = 1000 * MilliAmpere
)

func (c ElectricCurrent) String() string {
	return fmt.Sprintf("%.6gA", float64(c)/float64(Ampere))
}

// Amps returns the value as a float64 in amperes.
func (c ElectricCurrent) Amps() float64 { return float64(c) / float64(Ampere) }

// ElectricPotential is stored as nano-volts.
type ElectricPotential int64

const (
	NanoVolt  ElectricPotential = 1
	MicroVolt ElectricPotential = 1000 * NanoVolt
	MilliVolt ElectricPotential = 1000 * MicroVolt
	Volt      ElectricPotential = 1000 * MilliVolt
)

func (v ElectricPotential) String() string {
	return fmt.Sprintf("%.6gV", float64(v)/float64(Volt))
}

// Volts returns the value as a float64 in volts.
func (v ElectricPotential) Volts() float64 { return float64(v) / float64(Volt) }

// FromVolts builds an ElectricPotential from a float64 in volts.
func FromVolts(v float64) ElectricPotential {
	return ElectricPotential(v * float64(Volt))
}

// FromAmps builds an ElectricCurrent from a float64 in amperes.
func FromAmps(a float64) ElectricCurrent {
	return ElectricCurrent(a * float64(Ampere))
}

// ElectricResistance is stored as nano-ohms.
type ElectricResistance int64

const (
	NanoOhm  ElectricResistance = 1
	MicroOhm ElectricResistance = 1000 * NanoOhm
	MilliOhm ElectricResistance = 1000 * MicroOhm
	Ohm      ElectricResistance = 1000 * MilliOhm
	KiloOhm  ElectricResistance = 1000 * Ohm
)

func (r ElectricResistance) String() string {
	return fmt.Sprintf("%.6gΩ", float64(r)/float64(Ohm))
}

// Ohms returns the value as a float64 in ohms.
func (r ElectricResistance) Ohms() float64 { return float64(r) / float64(Ohm) }

// FromOhms builds an ElectricResistance from a float64 in ohms.
func FromOhms(r float64) ElectricResistance {
	return ElectricResistance(r * float64(Ohm))
}

// Temperature is stored as nano-kelvin.
type Temperature int64

const (
	NanoKelvin  Temperature = 1
	MicroKelvin Temperature = 1000 * NanoKelvin
	MilliKelvin Temperature = 1000 * MicroKelvin
	Kelvin      Temperature = 1000 * MilliKelvin

	ZeroCelsius  Temperature = 273150 * MilliKelvin
	MilliCelsius Temperature = MilliKelvin
	Celsius      Temperature = Kelvin
)

func (t Temperature) String() string {
	return fmt.Sprintf("%.4g°C", float64(t-ZeroCelsius)/float64(Celsius))
}

// ToKelvin returns the value as a float64 in kelvin.
func (t Temperature) ToKelvin() float64 { return float64(t) / float64(Kelvin) }

// FromKelvin builds a Temperature from a float64 in kelvin.
func FromKelvin(k float64) Temperature {
	return Temperature(k * float64(Kelvin))
}

// Pressure is stored as nano-pascals.
type Pressure int64

const (
	NanoPascal  Pressure = 1
	MicroPascal Pressure = 1000 * NanoPascal
	MilliPascal Pressure = 1000 * MicroPascal
	Pascal      Pressure = 1000 * MilliPascal
	// Torr is a unit commonly used for vacuum gauges such as those on the
	// cryostat; 1 Torr = 133.322 Pa.
	Torr Pressure = 133322 * MilliPascal
)

func (p Pressure) String() string {
	return fmt.Sprintf("%.6g Torr", float64(p)/float64(Torr))
}

// Torrs returns the value as a float64 in Torr.
func (p Pressure) Torrs() float64 { return float64(p) / float64(Torr) }

// FromTorrs builds a Pressure from a float64 in Torr.
func FromTorrs(t float64) Pressure {
	return Pressure(t * float64(Torr))
}

// Power is stored as nano-watts.
type Power int64

const (
	NanoWatt  Power = 1
	MicroWatt Power = 1000 * NanoWatt
	MilliWatt Power = 1000 * MicroWatt
	Watt      Power = 1000 * MilliWatt
)

func (p Power) String() string {
	return fmt.Sprintf("%.6gW", float64(p)/float64(Watt))
}
