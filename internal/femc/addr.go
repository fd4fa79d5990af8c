// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

// Class is the top two bits of an RCA, selecting which classesHandler
// table entry applies (spec §4.1).
type Class byte

const (
	ClassMonitorStandard Class = 0
	ClassControlStandard Class = 1
	ClassSpecial         Class = 2
)

const (
	classShift  = 16
	classMask   = 0x3
	moduleShift = 12
	moduleMask  = 0xF
)

// ModulesNumber is the number of entries in the top-level module
// dispatch table: ten cartridges, power distribution, IF switch,
// cryostat, LPR, FETIM (spec §2, §3).
const ModulesNumber = 15

const (
	ModuleCartridge0 = iota
	ModuleCartridge1
	ModuleCartridge2
	ModuleCartridge3
	ModuleCartridge4
	ModuleCartridge5
	ModuleCartridge6
	ModuleCartridge7
	ModuleCartridge8
	ModuleCartridge9
	ModulePowerDistribution
	ModuleIFSwitch
	ModuleCryostat
	ModuleLPR
	ModuleFETIM
)

// classOf extracts the request class from a 20-bit RCA.
func classOf(addr uint32) Class {
	return Class((addr >> classShift) & classMask)
}

// moduleOf extracts the top-level module index from a 20-bit RCA.
func moduleOf(addr uint32) int {
	return int((addr >> moduleShift) & moduleMask)
}

// Request is a decoded bus message: a 20-bit RCA, and 0..8 bytes of
// payload (spec §4.1, §6).
type Request struct {
	Address uint32
	Payload []byte
}

// Reply is the decoded response to a Request: a data payload and a
// status, kept as separate fields so callers (and tests) never have to
// tear a trailing status byte back off. NoReply is true for control
// writes and for the "payload on a monitor-only address" error case,
// neither of which produce wire traffic (spec §4.1).
type Reply struct {
	Payload []byte
	Status  Status
	NoReply bool
}
