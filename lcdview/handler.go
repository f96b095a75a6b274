// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdview

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"log"
	"net/http"
)

// encoderBuffer keeps the buffer of the last PNG encoding. Only used with
// Display.mu held.
type encoderBuffer struct {
	b *png.EncoderBuffer
}

func (e *encoderBuffer) Get() *png.EncoderBuffer  { return e.b }
func (e *encoderBuffer) Put(b *png.EncoderBuffer) { e.b = b }

// changedLocked drops the cached frames and wakes up every stream.
func (d *Display) changedLocked() {
	d.rendered = nil
	clear(d.encoded)
	close(d.changed)
	d.changed = make(chan struct{})
}

func (d *Display) encodeLocked(f Format) ([]byte, error) {
	var buf bytes.Buffer
	img := d.renderLocked()
	var err error
	switch f {
	case PNG:
		err = d.png.Encode(&buf, img)
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: d.opts.JPEGQuality})
	default:
		err = fmt.Errorf("lcdview: can't encode %s", f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodedFrame returns the current frame encoded as f, a channel closed on the next
// change and one closed on Halt. The returned slice is never modified.
func (d *Display) encodedFrame(f Format) ([]byte, <-chan struct{}, <-chan struct{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.encoded[f]
	if !ok {
		var err error
		if b, err = d.encodeLocked(f); err != nil {
			return nil, nil, nil, err
		}
		d.encoded[f] = b
	}
	return b, d.changed, d.halt, nil
}

// ServeHTTP streams the panel to GET requests. Every change sends a new frame
// until the client goes away or Halt is called.
//
// The "format" URL parameter ("png", "jpeg") overrides Options.Format.
func (d *Display) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	f := d.opts.Format
	if s := r.URL.Query().Get("format"); s != "" {
		var err error
		if f, err = ParseFormat(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	pw, err := newPartWriter(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", pw.contentType())
	w.Header().Set("Cache-Control", "no-store")
	rc := http.NewResponseController(w)
	for {
		b, changed, halt, err := d.encodedFrame(f)
		if err != nil {
			log.Printf("lcdview: %v", err)
			return
		}
		if err := pw.write(f.contentType(), b); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
		select {
		case <-changed:
		case <-halt:
			return
		case <-r.Context().Done():
			return
		}
	}
}
