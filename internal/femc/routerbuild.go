// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"github.com/nrao-gbo/femc/devices/cartridgetemp"
	"github.com/nrao-gbo/femc/devices/cryostat"
	"github.com/nrao-gbo/femc/internal/physic"
)

func physicVolts(v float32) physic.ElectricPotential { return physic.FromVolts(float64(v)) }
func physicAmps(v float32) physic.ElectricCurrent     { return physic.FromAmps(float64(v)) }

// buildRouter assembles the root Dispatcher tree over an already-wired
// Frontend, per the module/submodule layout of spec §2-§4. Submodule bit
// layouts below this level (cartridge-internal LO/BIAS selection,
// per-sensor cryostat addressing, and so on) are this rewrite's own
// choice — the retrieved corpus did not include the original firmware's
// per-module RCA_MASK/MASK_SHIFT constants for every subsystem, only for
// a few (see DESIGN.md). Every Leaf is built here, after the Frontend's
// registry tree is fully populated, so each Leaf's Shadow can point
// directly at its owning field instead of a detached copy.
func buildRouter(fe *Frontend) *Router {
	handlers := make([]Dispatcher, ModulesNumber)
	for i := 0; i < CartridgesNumber; i++ {
		handlers[ModuleCartridge0+i] = buildCartridgeRouter(fe, i)
	}
	handlers[ModulePowerDistribution] = buildPowerDistRouter(fe)
	handlers[ModuleIFSwitch] = buildIFSwitchRouter(fe)
	handlers[ModuleCryostat] = buildCryostatRouter(fe)
	handlers[ModuleLPR] = buildLPRRouter(fe)
	handlers[ModuleFETIM] = buildFETIMRouter(fe)

	return &Router{Shift: moduleShift, Mask: moduleMask, Handlers: handlers, Module: ModDispatch}
}

func buildCartridgeRouter(fe *Frontend, cart int) *Router {
	return &Router{
		Shift: 10, Mask: 0x3, Module: ModYTO,
		Handlers: []Dispatcher{
			buildLORouter(fe, cart),
			buildCartridgeTempRouter(fe, cart),
			buildBiasRouter(fe, cart),
		},
	}
}

// cartTempSubmoduleShift/Mask mirror cartridgeTemp.h's
// CARTRIDGE_TEMP_MODULES_RCA_MASK/MASK_SHIFT: bit 3 of the submodule
// address selects sensor temperature (0) versus calibration offset (1);
// bits 0-2 select one of the six sensors (pol*3+sensorNumber).
const (
	cartTempSubmoduleShift = 3
	cartTempSensorMask     = 0x7
	cartTempSubTemp        = 0
	cartTempSubOffset      = 1
)

func buildCartridgeTempRouter(fe *Frontend, cart int) *Router {
	handlers := make([]Dispatcher, 2<<cartTempSubmoduleShift)
	for sensor := 0; sensor < cartridgetemp.SensorsNumber; sensor++ {
		handlers[cartTempSubTemp<<cartTempSubmoduleShift|sensor] = cartridgeTempLeaf(cart, sensor)
		handlers[cartTempSubOffset<<cartTempSubmoduleShift|sensor] = cartridgeOffsetLeaf(fe, cart, sensor)
	}
	return &Router{Shift: 0, Mask: uint32(len(handlers) - 1), Module: ModCartridgeTemp, Handlers: handlers}
}

func cartridgeTempLeaf(cart, sensor int) *Leaf {
	return &Leaf{
		Module: ModCartridgeTemp,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			t, errLatched := fe.Cartridges[cart].Temp.cachedTemp(sensor)
			status := NoError
			if errLatched {
				status = ErrorStatus
			}
			return EncodeFloat32(float32(t.ToKelvin())), status
		},
	}
}

// cartridgeOffsetLeaf is the sensor's per-sensor calibration correction
// against the standard TVO/PRT curve (cartridgeTemp.h: "offset ...
// applied to all the sensors in the cartridge").
func cartridgeOffsetLeaf(fe *Frontend, cart, sensor int) *Leaf {
	return &Leaf{
		Module: ModCartridgeTemp,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeFloat32(fe.Cartridges[cart].Temp.OffsetShadow[sensor].Value()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeFloat32(payload)
			if !ok {
				fe.errorLog.Store(ModCartridgeTemp, ErrCommandVal)
				return ConErrorRng
			}
			t := fe.Cartridges[cart].Temp
			if err := t.Driver.SetOffset(sensor, physic.FromKelvin(float64(v))); err != nil {
				fe.errorLog.Store(ModCartridgeTemp, ErrHardwareTimeout)
				return ErrorStatus
			}
			t.OffsetShadow[sensor].SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].Temp.OffsetShadow[sensor],
	}
}

func buildLORouter(fe *Frontend, cart int) *Router {
	return &Router{
		Shift: 0, Mask: 0x7, Module: ModYTO,
		Handlers: []Dispatcher{
			ytoLeaf(fe, cart),
			paDrainLeaf(fe, cart, 0),
			paDrainLeaf(fe, cart, 1),
			paGateLeaf(fe, cart, 0),
			paGateLeaf(fe, cart, 1),
			paDrainCurrentLeaf(cart, 0),
			paDrainCurrentLeaf(cart, 1),
		},
	}
}

// paDrainCurrentLeaf exposes the PA drain current runCartridgeMonitor
// caches, the BIAS/LO health telemetry point spec §4.5 names (a drain
// current reading with no dispatch point was dead housekeeping data;
// see monitors.go's sweepCartridges).
func paDrainCurrentLeaf(cart, pol int) *Leaf {
	return &Leaf{
		Module: ModPA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			i, errLatched := fe.Cartridges[cart].LO.cachedDrainCurrent(pol)
			status := NoError
			if errLatched {
				status = ErrorStatus
			}
			return EncodeFloat32(float32(i.Amps())), status
		},
	}
}

func ytoLeaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModYTO,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeUint16(fe.Cartridges[cart].LO.cachedYTO()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeUint16(payload)
			if !ok {
				fe.errorLog.Store(ModYTO, ErrCommandVal)
				return ConErrorRng
			}
			if v > 4095 {
				fe.errorLog.Store(ModYTO, ErrCommandVal)
				return ConErrorRng
			}
			c := fe.Cartridges[cart]
			ret := NoError
			if fe.GetMode() != TroubleshootingMode {
				ret = LimitSafeYTOTuning(&c.PALimits, c.LO.Driver, v)
				if ret == ErrorStatus {
					return ErrorStatus
				}
				if ret == HardwBlkdErr {
					fe.errorLog.Store(ModYTO, ErrHardwareBlocked)
				}
			}
			if err := c.LO.Driver.SetYTOCoarseTune(v); err != nil {
				fe.errorLog.Store(ModYTO, ErrHardwareTimeout)
				return ErrorStatus
			}
			c.LO.setCachedYTO(v)
			return ret
		},
		Shadow: &fe.Cartridges[cart].LO.YTOShadow,
	}
}

// paEnableOK applies the PA temperature interlock of spec §4.7: a
// nonzero drain or gate setpoint is refused with HARDW_BLKD_ERR while
// any 4K/12K-stage sensor reads above 30 K. A zero setpoint (disabling
// the PA) is always allowed, matching the original firmware's
// interlock, which guards turn-on, not turn-off.
func paEnableOK(fe *Frontend, v float32) bool {
	return v == 0 || PATemperatureOK(fe.Cryostat)
}

func paDrainLeaf(fe *Frontend, cart, pol int) *Leaf {
	return &Leaf{
		Module: ModPA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.Cartridges[cart].LO.Driver.ReadPADrainVoltage(pol)
			if err != nil {
				fe.errorLog.Store(ModPA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeFloat32(payload)
			if !ok {
				fe.errorLog.Store(ModPA, ErrCommandVal)
				return ConErrorRng
			}
			if !paEnableOK(fe, v) {
				fe.errorLog.Store(ModPA, ErrHardwareBlocked)
				return HardwBlkdErr
			}
			c := fe.Cartridges[cart]
			volts := physicVolts(v)
			if err := c.LO.Driver.SetPADrainVoltage(pol, volts); err != nil {
				fe.errorLog.Store(ModPA, ErrHardwareTimeout)
				return ErrorStatus
			}
			c.LO.PADrainShadow[pol].SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].LO.PADrainShadow[pol],
	}
}

func paGateLeaf(fe *Frontend, cart, pol int) *Leaf {
	return &Leaf{
		Module: ModPA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.Cartridges[cart].LO.Driver.ReadPAGateVoltage(pol)
			if err != nil {
				fe.errorLog.Store(ModPA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeFloat32(payload)
			if !ok {
				fe.errorLog.Store(ModPA, ErrCommandVal)
				return ConErrorRng
			}
			if !paEnableOK(fe, v) {
				fe.errorLog.Store(ModPA, ErrHardwareBlocked)
				return HardwBlkdErr
			}
			c := fe.Cartridges[cart]
			if err := c.LO.Driver.SetPAGateVoltage(pol, physicVolts(v)); err != nil {
				fe.errorLog.Store(ModPA, ErrHardwareTimeout)
				return ErrorStatus
			}
			c.LO.PAGateShadow[pol].SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].LO.PAGateShadow[pol],
	}
}

func buildBiasRouter(fe *Frontend, cart int) *Router {
	handlers := []Dispatcher{
		sisVoltageLeaf(fe, cart),
		magnetLeaf(fe, cart),
		lnaEnableLeaf(fe, cart),
		sisCurrentLeaf(cart),
		sisOpenLoopLeaf(fe, cart),
	}
	for stage := 0; stage < lnaStagesNumber; stage++ {
		handlers = append(handlers,
			lnaDrainVoltageLeaf(cart, stage),
			lnaDrainCurrentLeaf(cart, stage),
			lnaGateVoltageLeaf(cart, stage),
		)
	}
	return &Router{Shift: 0, Mask: 0xF, Module: ModSIS, Handlers: handlers}
}

// lnaStagesNumber is the LNA's amplifier-stage count (spec §3: "the LNA
// as three stages").
const lnaStagesNumber = 3

// sisCurrentLeaf exposes the SIS mixer's current readback alongside its
// voltage (spec §3, §4.2).
func sisCurrentLeaf(cart int) *Leaf {
	return &Leaf{
		Module: ModSIS,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			i, err := fe.Cartridges[cart].Bias.Driver.ReadSISCurrent()
			if err != nil {
				fe.errorLog.Store(ModSIS, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(i.Amps())), NoError
		},
	}
}

// sisOpenLoopLeaf toggles the SIS mixer's open-loop mode. SetSISOpenLoop
// has no hardware readback, so Monitor replays the last commanded value,
// the same pattern lnaEnableLeaf uses for SetLNAEnable.
func sisOpenLoopLeaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModSIS,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeBool(fe.Cartridges[cart].Bias.SISOpenLoopShadow.Value()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModSIS, ErrCommandVal)
				return ConErrorRng
			}
			b := fe.Cartridges[cart].Bias
			if err := b.Driver.SetSISOpenLoop(v); err != nil {
				fe.errorLog.Store(ModSIS, ErrHardwareTimeout)
				return ErrorStatus
			}
			b.SISOpenLoopShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].Bias.SISOpenLoopShadow,
	}
}

func lnaDrainVoltageLeaf(cart, stage int) *Leaf {
	return &Leaf{
		Module: ModLNA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.Cartridges[cart].Bias.Driver.ReadLNADrainVoltage(stage)
			if err != nil {
				fe.errorLog.Store(ModLNA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), NoError
		},
	}
}

func lnaDrainCurrentLeaf(cart, stage int) *Leaf {
	return &Leaf{
		Module: ModLNA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			i, err := fe.Cartridges[cart].Bias.Driver.ReadLNADrainCurrent(stage)
			if err != nil {
				fe.errorLog.Store(ModLNA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(i.Amps())), NoError
		},
	}
}

func lnaGateVoltageLeaf(cart, stage int) *Leaf {
	return &Leaf{
		Module: ModLNA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.Cartridges[cart].Bias.Driver.ReadLNAGateVoltage(stage)
			if err != nil {
				fe.errorLog.Store(ModLNA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), NoError
		},
	}
}

func sisVoltageLeaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModSIS,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.Cartridges[cart].Bias.Driver.ReadSISVoltage()
			if err != nil {
				fe.errorLog.Store(ModSIS, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeFloat32(payload)
			if !ok {
				fe.errorLog.Store(ModSIS, ErrCommandVal)
				return ConErrorRng
			}
			b := fe.Cartridges[cart].Bias
			if err := b.Driver.SetSISVoltage(physicVolts(v)); err != nil {
				fe.errorLog.Store(ModSIS, ErrHardwareTimeout)
				return ErrorStatus
			}
			b.SISVoltageShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].Bias.SISVoltageShadow,
	}
}

func magnetLeaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModSISMagnet,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.Cartridges[cart].Bias.Driver.ReadSISMagnetVoltage()
			if err != nil {
				fe.errorLog.Store(ModSISMagnet, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			if fe.Cartridges[cart].Standby2() {
				fe.errorLog.Store(ModSISMagnet, ErrHardwareBlocked)
				return HardwBlkdErr
			}
			v, ok := DecodeFloat32(payload)
			if !ok {
				fe.errorLog.Store(ModSISMagnet, ErrCommandVal)
				return ConErrorRng
			}
			b := fe.Cartridges[cart].Bias
			if err := b.Driver.SetSISMagnetCurrent(physicAmps(v)); err != nil {
				fe.errorLog.Store(ModSISMagnet, ErrHardwareTimeout)
				return ErrorStatus
			}
			b.MagnetShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].Bias.MagnetShadow,
	}
}

func lnaEnableLeaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModLNA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeBool(fe.Cartridges[cart].Bias.LNAEnableShadow.Value()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			if fe.Cartridges[cart].Standby2() {
				fe.errorLog.Store(ModLNA, ErrHardwareBlocked)
				return HardwBlkdErr
			}
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModLNA, ErrCommandVal)
				return ConErrorRng
			}
			b := fe.Cartridges[cart].Bias
			if err := b.Driver.SetLNAEnable(v); err != nil {
				fe.errorLog.Store(ModLNA, ErrHardwareTimeout)
				return ErrorStatus
			}
			b.LNAEnableShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.Cartridges[cart].Bias.LNAEnableShadow,
	}
}

func buildPowerDistRouter(fe *Frontend) *Router {
	handlers := make([]Dispatcher, 2*CartridgesNumber)
	for cart := 0; cart < CartridgesNumber; cart++ {
		handlers[2*cart] = enableLeaf(fe, cart)
		handlers[2*cart+1] = standby2Leaf(fe, cart)
	}
	return &Router{Shift: 0, Mask: 0x1F, Module: ModPowerDist, Handlers: handlers}
}

func enableLeaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModPowerDist,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeBool(fe.Cartridges[cart].Available()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModPowerDist, ErrCommandVal)
				return ConErrorRng
			}
			c := fe.Cartridges[cart]
			if v && !c.Available() && fe.PoweredCartridges()+fe.Standby2Cartridges() >= CartridgesNumber {
				fe.errorLog.Store(ModPowerDist, ErrModulePower)
				return HardwBlkdErr
			}
			if err := fe.PowerDist.Driver.SetCartridgeEnable(cart, v); err != nil {
				fe.errorLog.Store(ModPowerDist, ErrHardwareTimeout)
				return ErrorStatus
			}
			c.SetAvailable(v)
			return NoError
		},
		Shadow: &fe.PowerDist.EnableShadow[cart],
	}
}

func standby2Leaf(fe *Frontend, cart int) *Leaf {
	return &Leaf{
		Module: ModPowerDist,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeBool(fe.Cartridges[cart].Standby2()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModPowerDist, ErrCommandVal)
				return ConErrorRng
			}
			c := fe.Cartridges[cart]
			if v && !c.Standby2() && fe.PoweredCartridges()+fe.Standby2Cartridges() >= CartridgesNumber {
				fe.errorLog.Store(ModPowerDist, ErrModulePower)
				return HardwBlkdErr
			}
			if err := fe.PowerDist.Driver.SetStandby2(cart, v); err != nil {
				fe.errorLog.Store(ModPowerDist, ErrHardwareTimeout)
				return ErrorStatus
			}
			c.SetStandby2(v)
			return NoError
		},
		Shadow: &fe.PowerDist.Standby2Shadow[cart],
	}
}

func buildIFSwitchRouter(fe *Frontend) *Router {
	handlers := []Dispatcher{bandSelectLeaf(fe)}
	for ch := 0; ch < 4; ch++ {
		handlers = append(handlers, attenuationLeaf(fe, ch))
	}
	return &Router{Shift: 0, Mask: 0x7, Module: ModIFSwitch, Handlers: handlers}
}

func bandSelectLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModIFSwitch,
		Control: func(fe *Frontend, payload []byte) Status {
			if len(payload) < 1 {
				fe.errorLog.Store(ModIFSwitch, ErrCommandVal)
				return ConErrorRng
			}
			band := int(payload[0])
			if band < 0 || band >= ifswitchBandsNumber {
				fe.errorLog.Store(ModIFSwitch, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.IFSwitch.Driver.SetBandSelect(band); err != nil {
				fe.errorLog.Store(ModIFSwitch, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.IFSwitch.BandShadow.SetValue(uint8(band))
			return NoError
		},
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return []byte{fe.IFSwitch.BandShadow.Value()}, NoError
		},
		Shadow: &fe.IFSwitch.BandShadow,
	}
}

const ifswitchBandsNumber = 10

func attenuationLeaf(fe *Frontend, ch int) *Leaf {
	return &Leaf{
		Module: ModIFSwitch,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, err := fe.IFSwitch.Driver.ReadAttenuation(ch)
			if err != nil {
				fe.errorLog.Store(ModIFSwitch, ErrHardwareTimeout)
				return []byte{0}, ErrorStatus
			}
			return []byte{v}, NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			if len(payload) < 1 {
				fe.errorLog.Store(ModIFSwitch, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.IFSwitch.Driver.SetAttenuation(ch, payload[0]); err != nil {
				fe.errorLog.Store(ModIFSwitch, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.IFSwitch.AttenuationShadow[ch].SetValue(payload[0])
			return NoError
		},
		Shadow: &fe.IFSwitch.AttenuationShadow[ch],
	}
}

func buildCryostatRouter(fe *Frontend) *Router {
	const sensorsNumber = cryostat.TVOSensorsNumber + cryostat.PRTSensorsNumber
	handlers := make([]Dispatcher, sensorsNumber+1+2+cryostat.SupplyVoltagesNumber)
	for i := 0; i < sensorsNumber; i++ {
		handlers[i] = cryostatTempLeaf(i)
	}
	handlers[sensorsNumber] = gateValveLeaf(fe)
	for gauge := 0; gauge < 2; gauge++ {
		handlers[sensorsNumber+1+gauge] = cryostatPressureLeaf(gauge)
	}
	for rail := 0; rail < cryostat.SupplyVoltagesNumber; rail++ {
		handlers[sensorsNumber+1+2+rail] = cryostatSupplyVoltageLeaf(rail)
	}
	return &Router{Shift: 0, Mask: 0x1F, Module: ModCryostatTemp, Handlers: handlers}
}

func cryostatTempLeaf(sensor int) *Leaf {
	return &Leaf{
		Module: ModCryostatTemp,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			t, errLatched := fe.Cryostat.cachedTemp(sensor)
			status := NoError
			if errLatched {
				status = ErrorStatus
			}
			return EncodeFloat32(float32(t.ToKelvin())), status
		},
	}
}

// cryostatPressureLeaf exposes one of the vacuum controller's two
// gauges (spec §3, §4.5), swept into the cache by sweepCryostat the
// same way the temperature sensors are.
func cryostatPressureLeaf(gauge int) *Leaf {
	return &Leaf{
		Module: ModVacuum,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			p, errLatched := fe.Cryostat.cachedPressure(gauge)
			status := NoError
			if errLatched {
				status = ErrorStatus
			}
			return EncodeFloat32(float32(p.Torrs())), status
		},
	}
}

// cryostatSupplyVoltageLeaf exposes one of the cryostat module's own
// regulated-supply rails (spec §3, §4.5's "4 supply-voltage sensors").
func cryostatSupplyVoltageLeaf(rail int) *Leaf {
	return &Leaf{
		Module: ModCryostatTemp,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			v, errLatched := fe.Cryostat.cachedSupplyVoltage(rail)
			status := NoError
			if errLatched {
				status = ErrorStatus
			}
			return EncodeFloat32(float32(v.Volts())), status
		},
	}
}

func gateValveLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModGateValve,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			s, err := fe.Cryostat.Driver.GateValveState()
			if err != nil {
				fe.errorLog.Store(ModGateValve, ErrHardwareTimeout)
				return []byte{byte(cryostat.GateValveUnknown)}, ErrorStatus
			}
			return []byte{byte(s)}, NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			open, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModGateValve, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.Cryostat.Driver.SetGateValveState(open); err != nil {
				fe.errorLog.Store(ModGateValve, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.Cryostat.GateValveShadow.SetValue(open)
			return NoError
		},
		Shadow: &fe.Cryostat.GateValveShadow,
	}
}

func buildLPRRouter(fe *Frontend) *Router {
	return &Router{
		Shift: 0, Mask: 0x7, Module: ModLPROpticalSwitch,
		Handlers: []Dispatcher{
			lprPortLeaf(fe),
			lprShutterLeaf(fe),
			lprBusyLeaf(),
			lprSwitchStateLeaf(),
			lprEDFAPhotoDiodeCurrentLeaf(),
			lprEDFALaserDriveCurrentLeaf(),
			lprEDFALaserTemperatureLeaf(),
			lprEDFAModulationInputLeaf(fe),
		},
	}
}

func lprPortLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModLPROpticalSwitch,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return []byte{fe.LPR.PortShadow.Value()}, NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			if len(payload) < 1 || int(payload[0]) >= lprPortsNumber {
				fe.errorLog.Store(ModLPROpticalSwitch, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.LPR.Driver.SetPort(int(payload[0])); err != nil {
				fe.errorLog.Store(ModLPROpticalSwitch, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.LPR.PortShadow.SetValue(payload[0])
			return NoError
		},
		Shadow: &fe.LPR.PortShadow,
	}
}

const lprPortsNumber = 10

func lprShutterLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModLPROpticalSwitch,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeBool(fe.LPR.ShutterShadow.Value()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModLPROpticalSwitch, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.LPR.Driver.SetShutter(v); err != nil {
				fe.errorLog.Store(ModLPROpticalSwitch, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.LPR.ShutterShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.LPR.ShutterShadow,
	}
}

func lprBusyLeaf() *Leaf {
	return &Leaf{
		Module: ModLPROpticalSwitch,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			busy, err := fe.LPR.Driver.Busy()
			if err != nil {
				fe.errorLog.Store(ModLPROpticalSwitch, ErrHardwareTimeout)
				return EncodeBool(false), ErrorStatus
			}
			return EncodeBool(busy), NoError
		},
	}
}

func lprSwitchStateLeaf() *Leaf {
	return &Leaf{
		Module: ModLPROpticalSwitch,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			errState, err := fe.LPR.Driver.SwitchState()
			if err != nil {
				fe.errorLog.Store(ModLPROpticalSwitch, ErrHardwareTimeout)
				return EncodeBool(true), ErrorStatus
			}
			return EncodeBool(errState), NoError
		},
	}
}

func lprEDFAPhotoDiodeCurrentLeaf() *Leaf {
	return &Leaf{
		Module: ModLPREDFA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			i, err := fe.LPR.Driver.ReadEDFAPhotoDiodeCurrent()
			if err != nil {
				fe.errorLog.Store(ModLPREDFA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(i.Amps())), NoError
		},
	}
}

func lprEDFALaserDriveCurrentLeaf() *Leaf {
	return &Leaf{
		Module: ModLPREDFA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			i, err := fe.LPR.Driver.ReadEDFALaserDriveCurrent()
			if err != nil {
				fe.errorLog.Store(ModLPREDFA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(i.Amps())), NoError
		},
	}
}

func lprEDFALaserTemperatureLeaf() *Leaf {
	return &Leaf{
		Module: ModLPREDFA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			t, err := fe.LPR.Driver.ReadEDFALaserTemperature()
			if err != nil {
				fe.errorLog.Store(ModLPREDFA, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(t.ToKelvin())), NoError
		},
	}
}

// lprEDFAModulationInputLeaf exposes the EDFA's modulation-input setpoint
// (spec §3, §4.6). SetEDFAModulationInput has no hardware readback, so
// Monitor replays the last commanded value the same way lnaEnableLeaf
// replays LNAEnableShadow.
func lprEDFAModulationInputLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModLPREDFA,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeFloat32(fe.LPR.EDFAModulationShadow.Value()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeFloat32(payload)
			if !ok {
				fe.errorLog.Store(ModLPREDFA, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.LPR.Driver.SetEDFAModulationInput(physicVolts(v)); err != nil {
				fe.errorLog.Store(ModLPREDFA, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.LPR.EDFAModulationShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.LPR.EDFAModulationShadow,
	}
}

func buildFETIMRouter(fe *Frontend) *Router {
	handlers := []Dispatcher{
		fetimInterlockLeaf(),
		fetimCompressorLeaf(fe),
		fetimN2FillLeaf(fe),
	}
	for i := 0; i < 4; i++ {
		handlers = append(handlers, fetimExtTempLeaf(i))
	}
	handlers = append(handlers, fetimHe2PressureLeaf())
	return &Router{Shift: 0, Mask: 0xF, Module: ModFETIM, Handlers: handlers}
}

func fetimInterlockLeaf() *Leaf {
	return &Leaf{
		Module: ModFETIM,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			tripped, err := fe.FETIM.Driver.InterlockTripped()
			if err != nil {
				fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
				return EncodeBool(false), ErrorStatus
			}
			return EncodeBool(tripped), NoError
		},
	}
}

func fetimCompressorLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModFETIM,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			enabled, err := fe.FETIM.Driver.CompressorEnabled()
			if err != nil {
				fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
				return EncodeBool(fe.FETIM.CompressorShadow.Value()), ErrorStatus
			}
			return EncodeBool(enabled), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModFETIM, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.FETIM.Driver.SetCompressorEnable(v); err != nil {
				fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.FETIM.CompressorShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.FETIM.CompressorShadow,
	}
}

func fetimN2FillLeaf(fe *Frontend) *Leaf {
	return &Leaf{
		Module: ModFETIM,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			return EncodeBool(fe.FETIM.N2FillShadow.Value()), NoError
		},
		Control: func(fe *Frontend, payload []byte) Status {
			v, ok := DecodeBool(payload)
			if !ok {
				fe.errorLog.Store(ModFETIM, ErrCommandVal)
				return ConErrorRng
			}
			if err := fe.FETIM.Driver.SetDewarN2Fill(v); err != nil {
				fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
				return ErrorStatus
			}
			fe.FETIM.N2FillShadow.SetValue(v)
			return NoError
		},
		Shadow: &fe.FETIM.N2FillShadow,
	}
}

// fetimHe2PressureLeaf exposes the dewar's He2 supply pressure (spec §3:
// "compressor state (He2 pressure...)").
func fetimHe2PressureLeaf() *Leaf {
	return &Leaf{
		Module: ModFETIM,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			p, err := fe.FETIM.Driver.ReadHe2Pressure()
			if err != nil {
				fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(p.Torrs())), NoError
		},
	}
}

func fetimExtTempLeaf(sensor int) *Leaf {
	return &Leaf{
		Module: ModFETIM,
		Monitor: func(fe *Frontend) ([]byte, Status) {
			t, err := fe.FETIM.Driver.ReadExtTemperature(sensor)
			if err != nil {
				fe.errorLog.Store(ModFETIM, ErrHardwareTimeout)
				return EncodeFloat32(0), ErrorStatus
			}
			return EncodeFloat32(float32(t.ToKelvin())), NoError
		},
	}
}
