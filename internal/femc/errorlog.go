// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package femc

import "sync"

// errorLogCapacity bounds the error ring buffer (spec §4.6). The original
// firmware's ERROR_HISTORY_LENGTH isn't given a value in the distilled
// spec; 64 is about three times the number of distinct ModuleIDs, so a
// single monitoring sweep can't silently wrap the log before it's
// drained.
const errorLogCapacity = 64

// ErrorEntry is one (module, code) pair recorded in the ring.
type ErrorEntry struct {
	Module ModuleID
	Code   ErrorCode
}

// ErrorLog is a bounded ring buffer of ErrorEntry, overwriting the oldest
// entry on overflow, per spec §4.6.
type ErrorLog struct {
	mu      sync.Mutex
	entries [errorLogCapacity]ErrorEntry
	newest  int // next slot to write
	oldest  int // next slot to read
	full    bool
}

// Store appends an entry, dropping the oldest one if the log is full.
func (l *ErrorLog) Store(module ModuleID, code ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.newest] = ErrorEntry{Module: module, Code: code}
	l.newest = (l.newest + 1) % errorLogCapacity
	if l.full {
		l.oldest = l.newest
	} else if l.newest == l.oldest {
		l.full = true
	}
}

// Count returns the number of unread entries.
func (l *ErrorLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.countLocked()
}

func (l *ErrorLog) countLocked() int {
	if l.full {
		return errorLogCapacity
	}
	if l.newest >= l.oldest {
		return l.newest - l.oldest
	}
	return errorLogCapacity - (l.oldest - l.newest)
}

// Next pops and returns the oldest unread entry. ok is false when the log
// is empty.
func (l *ErrorLog) Next() (entry ErrorEntry, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.countLocked() == 0 {
		return ErrorEntry{}, false
	}
	entry = l.entries[l.oldest]
	l.oldest = (l.oldest + 1) % errorLogCapacity
	l.full = false
	return entry, true
}
