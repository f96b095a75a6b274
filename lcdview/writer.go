// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdview

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
)

// partWriter writes an endless multipart/x-mixed-replace body.
//
// Every part is immediately followed by the boundary, so clients can show it
// without waiting for the next one. mime/multipart.Writer only emits the
// boundary when the next part starts.
type partWriter struct {
	w        io.Writer
	boundary string
	started  bool
	buf      bytes.Buffer
}

func newPartWriter(w io.Writer) (*partWriter, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}
	return &partWriter{w: w, boundary: hex.EncodeToString(b[:])}, nil
}

func (p *partWriter) contentType() string {
	return mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": p.boundary})
}

// write sends one part in a single Write call.
func (p *partWriter) write(contentType string, body []byte) error {
	p.buf.Reset()
	if !p.started {
		fmt.Fprintf(&p.buf, "--%s\r\n", p.boundary)
		p.started = true
	}
	fmt.Fprintf(&p.buf, "Content-Type: %s\r\nContent-Length: %d\r\n\r\n", contentType, len(body))
	p.buf.Write(body)
	fmt.Fprintf(&p.buf, "\r\n--%s\r\n", p.boundary)
	_, err := p.w.Write(p.buf.Bytes())
	return err
}
