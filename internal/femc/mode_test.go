// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import (
	"testing"

	"github.com/sirupsen/logrus"
)

type countingMaintenanceService struct {
	starts, stops int
}

func (m *countingMaintenanceService) Start() { m.starts++ }
func (m *countingMaintenanceService) Stop()  { m.stops++ }

func TestSetModeInvalidRejected(t *testing.T) {
	fe := &Frontend{mode: OperationalMode, maintenance: noopMaintenanceService{}, log: logrus.New()}
	status := fe.SetMode(Mode(99))
	if status != ConErrorRng {
		t.Fatalf("SetMode(invalid) = %v, want ConErrorRng", status)
	}
	if fe.GetMode() != OperationalMode {
		t.Fatalf("mode changed despite rejection: %v", fe.GetMode())
	}
}

func TestSetModeStartsAndStopsMaintenanceService(t *testing.T) {
	svc := &countingMaintenanceService{}
	fe := &Frontend{mode: OperationalMode, maintenance: svc, log: logrus.New()}

	fe.SetMode(MaintenanceMode)
	if svc.starts != 1 {
		t.Fatalf("entering maintenance mode: starts = %d, want 1", svc.starts)
	}
	fe.SetMode(MaintenanceMode)
	if svc.starts != 1 {
		t.Fatalf("re-entering maintenance mode should not start again: starts = %d", svc.starts)
	}
	fe.SetMode(OperationalMode)
	if svc.stops != 1 {
		t.Fatalf("leaving maintenance mode: stops = %d, want 1", svc.stops)
	}
}
