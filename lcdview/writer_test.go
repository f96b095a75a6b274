// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdview

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestPartWriter(t *testing.T) {
	var buf bytes.Buffer
	pw, err := newPartWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(pw.boundary) != 64 {
		t.Fatalf("boundary %q", pw.boundary)
	}
	if err := pw.write("text/plain", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := pw.write("text/plain", []byte("two!")); err != nil {
		t.Fatal(err)
	}
	want := "--" + pw.boundary + "\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\none\r\n--" + pw.boundary + "\r\n" +
		"Content-Type: text/plain\r\nContent-Length: 4\r\n\r\ntwo!\r\n--" + pw.boundary + "\r\n"
	if got := buf.String(); got != want {
		t.Fatalf("%q != %q", got, want)
	}

	mediaType, params, err := mime.ParseMediaType(pw.contentType())
	if err != nil || mediaType != "multipart/x-mixed-replace" {
		t.Fatalf("ParseMediaType() = %q, %v", mediaType, err)
	}
	mr := multipart.NewReader(&buf, params["boundary"])
	for _, body := range []string{"one", "two!"} {
		part, err := mr.NextPart()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(part)
		if err != nil || string(b) != body {
			t.Fatalf("part %q, %v; want %q", b, err, body)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestPartWriter_error(t *testing.T) {
	pw, err := newPartWriter(failWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if err := pw.write("text/plain", nil); err != io.ErrClosedPipe {
		t.Fatalf("write() = %v", err)
	}
}
