// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

// FuzzParseBytes is a legacy go-fuzz entrypoint: build with
// github.com/dvyukov/go-fuzz-build against this function to fuzz the
// decoder with arbitrary byte buffers. It never panics on malformed
// input by design; a panic here is itself the bug under test.
func FuzzParseBytes(data []byte) int {
	p, err := New(data)
	if err != nil {
		return 0
	}
	names, err := p.TableNames()
	if err != nil {
		return 0
	}
	for _, name := range names {
		if _, err := p.ParseTable(name); err != nil {
			continue
		}
	}
	return 1
}
