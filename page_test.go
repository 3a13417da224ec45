// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "testing"

func TestClassifyPagesRejectsNonMultiple(t *testing.T) {
	_, err := classifyPages(make([]byte, 10), 0x800)
	if err != ErrMalformedBuffer {
		t.Fatalf("got %v, want ErrMalformedBuffer", err)
	}
}

func TestClassifyPageKinds(t *testing.T) {
	data := make([]byte, 0x800)
	copy(data, pageMagicData[:])
	if got := classifyPage(data); got != PageData {
		t.Fatalf("got %v, want PageData", got)
	}

	copy(data, pageMagicTableDef[:])
	if got := classifyPage(data); got != PageTableDef {
		t.Fatalf("got %v, want PageTableDef", got)
	}

	copy(data, []byte{0xFF, 0xFF})
	if got := classifyPage(data); got != PageOther {
		t.Fatalf("got %v, want PageOther", got)
	}
}

func TestPageOwner(t *testing.T) {
	data := make([]byte, 0x800)
	data[4], data[5], data[6], data[7] = 0x07, 0, 0, 0
	owner, err := pageOwner(data)
	if err != nil {
		t.Fatal(err)
	}
	if owner != 7 {
		t.Fatalf("got %d, want 7", owner)
	}
}
