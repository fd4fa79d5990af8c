// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import "testing"

func TestErrorLogStoreAndNext(t *testing.T) {
	var l ErrorLog
	l.Store(ModYTO, ErrCommandVal)
	l.Store(ModSIS, ErrHardwareTimeout)
	if n := l.Count(); n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}
	e, ok := l.Next()
	if !ok || e.Module != ModYTO || e.Code != ErrCommandVal {
		t.Fatalf("first Next() = %+v, %v", e, ok)
	}
	e, ok = l.Next()
	if !ok || e.Module != ModSIS || e.Code != ErrHardwareTimeout {
		t.Fatalf("second Next() = %+v, %v", e, ok)
	}
	if _, ok := l.Next(); ok {
		t.Fatal("Next() on empty log should report ok=false")
	}
}

func TestErrorLogWraparoundDropsOldest(t *testing.T) {
	var l ErrorLog
	for i := 0; i < errorLogCapacity+5; i++ {
		l.Store(ModDispatch, ErrorCode(i%256))
	}
	if n := l.Count(); n != errorLogCapacity {
		t.Fatalf("Count() = %d, want %d after wraparound", n, errorLogCapacity)
	}
	e, ok := l.Next()
	if !ok {
		t.Fatal("expected an entry")
	}
	// The oldest surviving entry is the 6th stored (indices 0..4 dropped).
	if want := ErrorCode(5 % 256); e.Code != want {
		t.Fatalf("oldest surviving entry code = %v, want %v", e.Code, want)
	}
}
