// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package nokia5110 is a container for the PCD8544 LCD driver and its tools.
//
// The driver lives in package pcd8544; cmd/pcd8544 drives a real or an
// emulated panel from the command line.
package nokia5110
