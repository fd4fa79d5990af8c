// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"fmt"

	"github.com/nrao-gbo/femc/conn/mmio"
	"github.com/nrao-gbo/femc/conn/onewire"
	"github.com/nrao-gbo/femc/devices/bias"
	"github.com/nrao-gbo/femc/devices/cartridgetemp"
	"github.com/nrao-gbo/femc/devices/cryostat"
	"github.com/nrao-gbo/femc/devices/fetim"
	"github.com/nrao-gbo/femc/devices/ifswitch"
	"github.com/nrao-gbo/femc/devices/lo"
	"github.com/nrao-gbo/femc/devices/lpr"
	"github.com/nrao-gbo/femc/devices/onewiretemp"
	"github.com/nrao-gbo/femc/devices/powerdist"
	"github.com/nrao-gbo/femc/devices/ssc"
	"github.com/sirupsen/logrus"
)

// busPortsNumber is the synchronous-serial port count frontendInit maps:
// one per cartridge LO, one per cartridge BIAS, one per cartridge
// temperature sensor set, and one each for power distribution, IF
// switch, cryostat, LPR, and FETIM (spec §4.2, §6).
const busPortsNumber = 3*CartridgesNumber + 5

const (
	portLO0       = 0
	portBias0     = CartridgesNumber
	portCartTemp0 = 2 * CartridgesNumber
	portPowerDist = 3 * CartridgesNumber
	portIFSwitch  = portPowerDist + 1
	portCryostat  = portIFSwitch + 1
	portLPR       = portCryostat + 1
	portFETIM     = portLPR + 1

	onewirePortsNumber = 1
	onewirePortFETIM   = 0
)

// mmioBase is the physical base address of the front end's register
// window. It is a placeholder: the real front-end computer's FPGA
// register base is a deployment detail outside this rewrite's scope. It
// is mapped by NewFrontend in every mode except SIMULATION_MODE
// (MaintenanceMode included); SIMULATION_MODE, the mode every test in
// this module runs under, never touches it.
const mmioBase = 0x43c00000

// NewFrontend builds a complete front end in the requested mode: in
// SimulationMode every subsystem gets an in-memory Fake driver; in any
// other mode, every subsystem is bound to its real synchronous-serial
// (or, for the two one-wire points, MMIOBus) port, all sharing one
// memory-mapped register window acquired once here and held for the
// life of the process (spec §1, §5).
func NewFrontend(mode Mode, ipAddress string, version [3]byte) (*Frontend, error) {
	fe := &Frontend{
		mode:         mode,
		maintenance:  noopMaintenanceService{},
		log:          logrus.New(),
		ipAddress:    ipAddress,
		version:      version,
		stopMonitors: make(chan struct{}),
	}

	if mode == SimulationMode {
		wireFakeDrivers(fe)
	} else {
		if err := wireHardwareDrivers(fe); err != nil {
			return nil, err
		}
	}

	// A cartridge counts as powered exactly when its power-distribution
	// enable bit is set, so availability starts from the driver's report.
	for i := range fe.Cartridges {
		on, err := fe.PowerDist.Driver.CartridgeEnabled(i)
		fe.Cartridges[i].SetAvailable(err == nil && on)
	}

	fe.root = buildRouter(fe)
	fe.StartMonitors()
	return fe, nil
}

func wireFakeDrivers(fe *Frontend) {
	for i := range fe.Cartridges {
		fe.Cartridges[i] = &Cartridge{
			LO:   &LOAssembly{Driver: lo.NewFake()},
			Bias: &BiasAssembly{Driver: bias.NewFake()},
			Temp: &CartridgeTempAssembly{Driver: cartridgetemp.NewFake()},
		}
	}
	fe.PowerDist = &PowerDistribution{Driver: powerdist.NewFake()}
	fe.IFSwitch = &IFSwitchAssembly{Driver: ifswitch.NewFake()}
	fe.Cryostat = &Cryostat{Driver: cryostat.NewFake()}
	fe.LPR = &LPRAssembly{Driver: lpr.NewFake()}
	fe.FETIM = &FETIMAssembly{Driver: fetim.NewFake()}
}

func wireHardwareDrivers(fe *Frontend) error {
	view, err := mmio.Map(mmioBase, busPortsNumber*6)
	if err != nil {
		return fmt.Errorf("femc: mapping register window: %w", err)
	}
	owView, err := mmio.Map(mmioBase+uint64(busPortsNumber*6)*4, onewirePortsNumber*6)
	if err != nil {
		return fmt.Errorf("femc: mapping one-wire register window: %w", err)
	}
	fe.closers = append(fe.closers, view, owView)
	owBus := onewire.NewMMIOBus(owView, onewirePortFETIM)

	for i := range fe.Cartridges {
		fe.Cartridges[i] = &Cartridge{
			LO:   &LOAssembly{Driver: lo.NewHardwareDriver(ssc.NewBus(view, portLO0+i))},
			Bias: &BiasAssembly{Driver: bias.NewHardwareDriver(ssc.NewBus(view, portBias0+i))},
			Temp: &CartridgeTempAssembly{Driver: cartridgetemp.NewHardwareDriver(ssc.NewBus(view, portCartTemp0+i))},
		}
	}
	fe.PowerDist = &PowerDistribution{Driver: powerdist.NewHardwareDriver(ssc.NewBus(view, portPowerDist))}
	fe.IFSwitch = &IFSwitchAssembly{Driver: ifswitch.NewHardwareDriver(ssc.NewBus(view, portIFSwitch))}
	fe.Cryostat = &Cryostat{Driver: cryostat.NewHardwareDriver(ssc.NewBus(view, portCryostat))}
	fe.LPR = &LPRAssembly{Driver: lpr.NewHardwareDriver(ssc.NewBus(view, portLPR))}

	var extTemps [fetim.ExtSensorsNumber]*onewiretemp.Dev
	for i := range extTemps {
		dev, err := onewiretemp.New(owBus, onewire.Address(0x28<<56|uint64(i)), 12)
		if err != nil {
			return fmt.Errorf("femc: binding FETIM external temp probe %d: %w", i, err)
		}
		extTemps[i] = dev
	}
	fe.FETIM = &FETIMAssembly{Driver: fetim.NewHardwareDriver(ssc.NewBus(view, portFETIM), extTemps)}
	return nil
}
