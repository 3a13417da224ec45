// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "testing"

func TestReadFileHeaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, 0x800)
	buf[0], buf[1] = 0xFF, 0xFF
	if _, _, err := readFileHeader(buf); err != ErrMalformedBuffer {
		t.Fatalf("got %v, want ErrMalformedBuffer", err)
	}
}

func TestReadFileHeaderRejectsUnknownVersion(t *testing.T) {
	buf := make([]byte, 0x800)
	copy(buf[0:2], fileHeaderMagic[:])
	buf[fileHeaderVersionOffset] = 0xFF
	if _, _, err := readFileHeader(buf); err != ErrUnknownVersion {
		t.Fatalf("got %v, want ErrUnknownVersion", err)
	}
}

func TestReadFileHeaderDialects(t *testing.T) {
	cases := []struct {
		b    byte
		want Version
	}{
		{0, Version3},
		{1, Version4},
		{2, Version5},
		{3, Version2010},
	}
	for _, c := range cases {
		buf := make([]byte, 0x1000)
		copy(buf[0:2], fileHeaderMagic[:])
		buf[fileHeaderVersionOffset] = c.b
		version, pageSize, err := readFileHeader(buf)
		if err != nil {
			t.Fatal(err)
		}
		if version != c.want {
			t.Fatalf("got %v, want %v", version, c.want)
		}
		if pageSize != version.PageSize() {
			t.Fatalf("got page size %d, want %d", pageSize, version.PageSize())
		}
	}
}
