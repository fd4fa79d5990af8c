// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

// Shutdown switches the front end to MAINTENANCE_MODE (refusing further
// standard-class traffic), stops the background monitors, discards any
// unread error-log entries, and releases the register-window mappings
// acquired at startup (spec §4.8, §5). No per-subsystem stop routine is
// called, so driver outputs are left as they are.
//
// restart only affects logging, and Shutdown never exits the process.
// cmd/femcd calls it on its way out; when the exit-program or reboot
// special control calls it, the process keeps running in
// MAINTENANCE_MODE.
func (fe *Frontend) Shutdown(restart bool) {
	fe.SetMode(MaintenanceMode)
	fe.StopMonitors()

	for fe.errorLog.Count() > 0 {
		fe.errorLog.Next()
	}

	for _, c := range fe.closers {
		if err := c.Close(); err != nil {
			fe.log.WithError(err).Warn("closing register window")
		}
	}

	if restart {
		fe.log.Info("shutdown requested restart")
	} else {
		fe.log.Info("shutdown requested exit")
	}
}
