// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcd8544

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by errors.Is for every rejected register value.
	ErrOutOfRange = errors.New("pcd8544: value out of range")
	// ErrConfiguration is returned when the device cannot be constructed or
	// configured, for example when the D/C line is missing.
	ErrConfiguration = errors.New("pcd8544: invalid configuration")
)

// RangeError reports a register value outside of its domain. Nothing is sent
// to the controller when it is returned.
type RangeError struct {
	Param    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("pcd8544: %s %d out of range (%d..%d)", e.Param, e.Value, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrOutOfRange) succeed.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// TransportError wraps a failure of a pin or of the bus. The mirrored state
// reflects what the operation intended, not necessarily what the controller
// received; re-run Init to get back to a known state.
type TransportError struct {
	// Op is one of "dc", "cs", "rst" or "tx".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pcd8544: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func checkRange(param string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Param: param, Value: v, Min: lo, Max: hi}
	}
	return nil
}
