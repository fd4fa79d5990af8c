// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

// Dispatch routes one decoded request through the front end and returns
// its reply, as a pure function of (Frontend state, Request): no I/O
// happens here directly, all of it is delegated to the Router/Leaf tree
// or to the special-address table (spec §4.1, §6).
func (fe *Frontend) Dispatch(req Request) Reply {
	class := classOf(req.Address)

	if class == ClassSpecial {
		return fe.dispatchSpecial(req.Address, req.Payload)
	}

	if fe.GetMode() == MaintenanceMode {
		fe.errorLog.Store(ModDispatch, ErrMaintMode)
		if class == ClassControlStandard && len(req.Payload) > 0 {
			return Reply{NoReply: true, Status: HardwBlkdErr}
		}
		return Reply{Status: HardwBlkdErr}
	}

	return fe.root.Dispatch(fe, req.Address, class, req.Payload)
}
