// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

// Status is the single trailing byte appended to a reply, or the value
// recorded in a last-control shadow, per spec §6.
type Status byte

const (
	NoError      Status = 0
	ErrorStatus  Status = 1
	HardwBlkdErr Status = 2
	HardwRngErr  Status = 3
	MonCanRng    Status = 4
	ConErrorRng  Status = 5
)

func (s Status) String() string {
	switch s {
	case NoError:
		return "NO_ERROR"
	case ErrorStatus:
		return "ERROR"
	case HardwBlkdErr:
		return "HARDW_BLKD_ERR"
	case HardwRngErr:
		return "HARDW_RNG_ERR"
	case MonCanRng:
		return "MON_CAN_RNG"
	case ConErrorRng:
		return "CON_ERROR_RNG"
	default:
		return "STATUS_UNKNOWN"
	}
}

// ErrorCode identifies the kind of failure recorded in the error log,
// per spec §7.
type ErrorCode byte

const (
	ErrModuleRange ErrorCode = iota
	ErrRCARange
	ErrCommandVal
	ErrMaintMode
	ErrHardwareTimeout
	ErrHardwareBlocked
	ErrModulePower
)

func (c ErrorCode) String() string {
	switch c {
	case ErrModuleRange:
		return "MODULE_RANGE"
	case ErrRCARange:
		return "RCA_RANGE"
	case ErrCommandVal:
		return "COMMAND_VAL"
	case ErrMaintMode:
		return "MAINT_MODE"
	case ErrHardwareTimeout:
		return "HARDWARE_TIMEOUT"
	case ErrHardwareBlocked:
		return "HARDWARE_BLOCKED"
	case ErrModulePower:
		return "MODULE_POWER"
	default:
		return "ERROR_CODE_UNKNOWN"
	}
}

// ModuleID names the subsystem an error log entry or driver failure
// belongs to. It is independent of the RCA module index: several RCA
// submodules can share one ModuleID (e.g. every cartridge's YTO).
type ModuleID byte

const (
	ModDispatch ModuleID = iota
	ModYTO
	ModPhotomixer
	ModAMC
	ModPA
	ModSIS
	ModSISMagnet
	ModLNA
	ModLNALED
	ModSISHeater
	ModCartridgeTemp
	ModCryostatTemp
	ModVacuum
	ModGateValve
	ModIFSwitch
	ModPowerDist
	ModLPROpticalSwitch
	ModLPREDFA
	ModFETIM
	ModSerialBus
	ModOneWireBus
)

func (m ModuleID) String() string {
	names := [...]string{
		"DISPATCH", "YTO", "PHOTOMIXER", "AMC", "PA", "SIS", "SIS_MAGNET",
		"LNA", "LNA_LED", "SIS_HEATER", "CARTRIDGE_TEMP", "CRYOSTAT_TEMP", "VACUUM",
		"GATE_VALVE", "IF_SWITCH", "POWER_DIST", "LPR_OPTICAL_SWITCH",
		"LPR_EDFA", "FETIM", "SERIAL_BUS", "ONE_WIRE_BUS",
	}
	if int(m) < len(names) {
		return names[m]
	}
	return "MODULE_UNKNOWN"
}
