// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcd8544

import (
	"periph.io/x/conn/v3/gpio"
)

// line is an optional control line. Level changes on an absent line are
// no-ops.
type line struct {
	p gpio.PinOut
}

func optionalLine(p gpio.PinOut) line {
	if p == gpio.INVALID {
		return line{}
	}
	return line{p: p}
}

func (l line) present() bool {
	return l.p != nil
}

func (l line) out(level gpio.Level) error {
	if l.p == nil {
		return nil
	}
	return l.p.Out(level)
}

// errorHandler is a wrapper for error management. Once an operation failed,
// the following ones are skipped and the first error is kept.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) fail(op string, err error) {
	if err != nil && eh.err == nil {
		eh.err = &TransportError{Op: op, Err: err}
	}
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail("dc", eh.d.dc.Out(l))
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail("cs", eh.d.cs.out(l))
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.fail("rst", eh.d.rst.out(l))
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.fail("tx", eh.d.c.Tx(w, nil))
}

// deselect releases chip select even after a failure, so a broken transfer
// doesn't leave the controller listening.
func (eh *errorHandler) deselect() {
	eh.fail("cs", eh.d.cs.out(gpio.High))
}

// transfer sends w in a single chip select bracket with D/C held at dc.
func (eh *errorHandler) transfer(dc gpio.Level, w []byte) {
	if eh.err != nil {
		return
	}
	eh.csOut(gpio.Low)
	eh.dcOut(dc)
	eh.cTx(w)
	eh.deselect()
}

func (eh *errorHandler) sendCommand(cmd byte) {
	eh.transfer(gpio.Low, []byte{cmd})
}

func (eh *errorHandler) sendData(data []byte) {
	eh.transfer(gpio.High, data)
}

// functionSet writes the mirrored function register, selecting the extended
// instruction set when extended is true.
func (eh *errorHandler) functionSet(extended bool) {
	eh.sendCommand(eh.d.fn.encode(extended))
	if eh.err == nil {
		eh.d.extended = extended
	}
}

// ensureBasic leaves the extended instruction set if a previous bracket was
// interrupted.
func (eh *errorHandler) ensureBasic() {
	if eh.d.extended {
		eh.functionSet(false)
	}
}

// extendedWrite runs cmd inside an enter-extended / exit-extended bracket.
func (eh *errorHandler) extendedWrite(cmds ...byte) {
	eh.functionSet(true)
	for _, c := range cmds {
		eh.sendCommand(c)
	}
	eh.functionSet(false)
}
