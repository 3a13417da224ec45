// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"testing"

	"github.com/jetdecode/msjet/internal/jettest"
)

// FuzzParseAnyBuffer feeds arbitrary byte buffers through the full
// construction-and-decode path. Nothing here should ever panic: every
// malformed-input case is expected to surface as an error or a
// skipped row/table, never a crash.
func FuzzParseAnyBuffer(f *testing.F) {
	b := jettest.NewBuilder(4)
	f.Add(b.Build())
	f.Add([]byte{})
	f.Add(make([]byte, 0x1000))

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := New(data)
		if err != nil {
			return
		}
		names, err := p.TableNames()
		if err != nil {
			return
		}
		for _, name := range names {
			_, _ = p.ParseTable(name)
		}
	})
}
