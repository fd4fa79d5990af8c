// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import "encoding/binary"

// Special-class RCAs (spec §6) address a flat table of maintenance and
// identification points instead of the module/submodule hierarchy the
// monitor/control classes use. specialPointOf extracts the point
// selector from the low byte; bandOf extracts a cartridge index from
// the next nibble for the handful of points that are per-band (the ESN
// string and the PA-limits table special controls). Both fields are
// this rewrite's own layout — the corpus's miSpecialMsgs.h lists the
// special messages but not their bit-field encoding.
const (
	specialPointMask = 0xFF
	bandShift        = 8
	bandMask         = 0xF
)

func specialPointOf(addr uint32) uint32 { return addr & specialPointMask }
func bandOf(addr uint32) int            { return int((addr >> bandShift) & bandMask) }

const (
	spVersionInfo       = 0x00
	spErrorCount        = 0x01
	spNextError         = 0x02
	spOperatingMode     = 0x03
	spIPAddress         = 0x04
	spESN               = 0x05
	spPALimitsClear     = 0x06
	spPALimitsAdd       = 0x07
	spExitProgram       = 0x08
	spReboot            = 0x09
	spWriteNVMemory     = 0x0A
	spMonitorRCARange   = 0x0B
	spControlRCARange   = 0x0C
	spSpecialMonitorRCARange = 0x0D
	spSpecialControlRCARange = 0x0E
)

// noNextErrorSentinel is returned for spNextError when the error log is
// empty: a (module, code) pair can't naturally mean "no error", so this
// out-of-range 0xFFFF value is used instead, matching the "0xFFFF empty
// sentinel" convention spec §6 describes for the next-error point.
const noNextErrorSentinel = 0xFFFF

// dispatchSpecial handles the ClassSpecial half of the RCA space: front
// end identification, the error log, the operating mode, and the
// maintenance-only controls (spec §6). Unlike the standard classes, a
// special-class request is served regardless of operating mode — a
// control computer must be able to read the error log or flip the mode
// even while the front end is in MAINTENANCE_MODE.
func (fe *Frontend) dispatchSpecial(addr uint32, payload []byte) Reply {
	point := specialPointOf(addr)
	// The Class enum has one value for the whole special range (spec
	// §4.1), so — unlike the standard monitor/control classes, which get
	// a dedicated class bit each — a special point's direction is read
	// off payload presence alone, the same signal the four-case pattern
	// in router.go already folds in as its secondary condition.
	controlClass := len(payload) > 0

	switch point {
	case spVersionInfo:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		return Reply{Payload: append([]byte{}, fe.version[:]...), Status: NoError}

	case spErrorCount:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		return Reply{Payload: EncodeUint16(uint16(fe.errorLog.Count())), Status: NoError}

	case spNextError:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		entry, ok := fe.errorLog.Next()
		if !ok {
			return Reply{Payload: EncodeUint16(noNextErrorSentinel), Status: NoError}
		}
		return Reply{Payload: []byte{byte(entry.Module), byte(entry.Code)}, Status: NoError}

	case spOperatingMode:
		if controlClass {
			if len(payload) == 0 {
				return Reply{NoReply: true}
			}
			status := fe.SetMode(Mode(payload[0]))
			return Reply{NoReply: true, Status: status}
		}
		return Reply{Payload: []byte{byte(fe.GetMode())}, Status: NoError}

	case spIPAddress:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		return Reply{Payload: []byte(fe.ipAddress), Status: NoError}

	case spESN:
		return fe.specialESN(bandOf(addr), controlClass)

	case spPALimitsClear:
		return fe.specialPALimitsClear(bandOf(addr), controlClass)

	case spPALimitsAdd:
		return fe.specialPALimitsAdd(bandOf(addr), controlClass, payload)

	case spExitProgram, spReboot, spWriteNVMemory:
		return fe.specialMaintenanceAction(point, controlClass)

	case spMonitorRCARange:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		return Reply{Payload: encodeRCARange(0, (1<<classShift)-1), Status: NoError}

	case spControlRCARange:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		return Reply{Payload: encodeRCARange(1<<classShift, (2<<classShift)-1), Status: NoError}

	// spSpecialMonitorRCARange/spSpecialControlRCARange report the
	// special class's own address span (spec §6's third and fourth
	// range descriptors). Unlike the standard classes, ClassSpecial has
	// no dedicated monitor/control class bit — direction is read off
	// payload presence at every point in this one range — so both
	// descriptors report the same span.
	case spSpecialMonitorRCARange, spSpecialControlRCARange:
		if controlClass {
			return fe.specialRCAErr(ErrRCARange)
		}
		return Reply{Payload: encodeRCARange(uint32(ClassSpecial)<<classShift, (uint32(ClassSpecial)+1)<<classShift-1), Status: NoError}

	default:
		return fe.specialRCAErr(ErrRCARange)
	}
}

func (fe *Frontend) specialRCAErr(code ErrorCode) Reply {
	fe.errorLog.Store(ModDispatch, code)
	return Reply{NoReply: true}
}

func (fe *Frontend) specialESN(band int, controlClass bool) Reply {
	if controlClass || band < 0 || band >= CartridgesNumber {
		return fe.specialRCAErr(ErrRCARange)
	}
	return Reply{Payload: []byte(fe.Cartridges[band].LO.ESN), Status: NoError}
}

func (fe *Frontend) specialPALimitsClear(band int, controlClass bool) Reply {
	if !controlClass || band < 0 || band >= CartridgesNumber {
		return fe.specialRCAErr(ErrRCARange)
	}
	fe.Cartridges[band].PALimits.Clear()
	return Reply{NoReply: true}
}

// specialPALimitsAdd decodes a (pol, ytoTuning, maxDrainVoltage) triple
// in that exact order — 1 byte + 2 bytes big-endian + 4 bytes big-endian
// float — and loads it into the addressed cartridge's PA-limits table
// (spec §4.7, §6).
func (fe *Frontend) specialPALimitsAdd(band int, controlClass bool, payload []byte) Reply {
	if !controlClass || band < 0 || band >= CartridgesNumber {
		return fe.specialRCAErr(ErrRCARange)
	}
	if len(payload) < 7 {
		return fe.specialRCAErr(ErrCommandVal)
	}
	pol := int(payload[0])
	if pol < 0 || pol > PolBoth {
		fe.errorLog.Store(ModDispatch, ErrCommandVal)
		return Reply{NoReply: true, Status: ConErrorRng}
	}
	ytoTuning, _ := DecodeUint16(payload[1:3])
	maxVD, _ := DecodeFloat32(payload[3:7])
	status := fe.Cartridges[band].PALimits.Add(pol, ytoTuning, physicVolts(maxVD))
	if status != NoError {
		fe.errorLog.Store(ModDispatch, ErrCommandVal)
	}
	return Reply{NoReply: true, Status: status}
}

func (fe *Frontend) specialMaintenanceAction(point uint32, controlClass bool) Reply {
	if !controlClass {
		return fe.specialRCAErr(ErrRCARange)
	}
	switch point {
	case spExitProgram:
		fe.log.Warn("special control: exit program requested")
		fe.Shutdown(false)
	case spReboot:
		fe.log.Warn("special control: reboot requested")
		fe.Shutdown(true)
	case spWriteNVMemory:
		fe.log.Info("special control: write NV memory requested")
	}
	return Reply{NoReply: true}
}

func encodeRCARange(low, high uint32) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b[0:4], low)
	binary.BigEndian.PutUint32(b[4:8], high)
	return b
}
