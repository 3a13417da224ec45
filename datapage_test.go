// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"testing"

	"github.com/jetdecode/msjet/internal/jettest"
)

func TestParseDataPageInlineDeletedOverflowMix(t *testing.T) {
	dp := jettest.NewDataPage(jettest.PageSizeJet4, 7)
	dp.AddRecord([]byte("first"))
	dp.AddDeleted()
	dp.AddOverflow(3, 2)
	dp.AddRecord([]byte("last"))

	slots, err := parseDataPage(page{data: dp.Build(), kind: PageData})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3 (deleted slot excluded)", len(slots))
	}
	if slots[0].overflow {
		t.Fatal("slot 0 should be inline")
	}
	if !slots[1].overflow || slots[1].overflowPtr != 3<<8|2 {
		t.Fatalf("slot 1 should be an overflow pointer to (3,2), got %+v", slots[1])
	}
	if slots[2].overflow {
		t.Fatal("slot 2 should be inline")
	}
}

func TestParseDataPageRejectsNonDataPage(t *testing.T) {
	buf := make([]byte, jettest.PageSizeJet4)
	if _, err := parseDataPage(page{data: buf, kind: PageTableDef}); err == nil {
		t.Fatal("expected an error for a non-data page")
	}
}

func TestParseDataPageEmpty(t *testing.T) {
	dp := jettest.NewDataPage(jettest.PageSizeJet4, 1)
	slots, err := parseDataPage(page{data: dp.Build(), kind: PageData})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Fatalf("got %d slots, want 0", len(slots))
	}
}
