// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spibus

import (
	"fmt"

	"periph.io/x/conn/v3"
	"tinygo.org/x/drivers"
)

// TinyGo is a conn.Conn on a TinyGo SPI bus, for example a machine.SPI
// configured for mode 0 at 4MHz or less.
type TinyGo struct {
	Bus  drivers.SPI
	Name string
}

func (t *TinyGo) String() string {
	if t.Name == "" {
		return "tinygo"
	}
	return t.Name
}

// Tx implements conn.Conn.
func (t *TinyGo) Tx(w, r []byte) error {
	if err := t.Bus.Tx(w, r); err != nil {
		return fmt.Errorf("spibus: %s: %w", t, err)
	}
	return nil
}

// Duplex implements conn.Conn.
func (t *TinyGo) Duplex() conn.Duplex {
	return conn.Full
}

var _ conn.Conn = &TinyGo{}
