// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"testing"

	"github.com/jetdecode/msjet/internal/jettest"
)

func TestResolveOverflowRoundTrip(t *testing.T) {
	dp := jettest.NewDataPage(jettest.PageSizeJet4, 5)
	dp.AddRecord([]byte("payload-one"))
	dp.AddRecord([]byte("second"))
	pages := []page{{kind: PageOther}, {data: dp.Build(), kind: PageData}}

	data, ok := resolveOverflow(pages, 1<<8|0)
	if !ok || string(data) != "payload-one" {
		t.Fatalf("got (%q, %v), want (payload-one, true)", data, ok)
	}
	data, ok = resolveOverflow(pages, 1<<8|1)
	if !ok || string(data) != "second" {
		t.Fatalf("got (%q, %v), want (second, true)", data, ok)
	}
}

func TestResolveOverflowRejectsDeletedSlot(t *testing.T) {
	dp := jettest.NewDataPage(jettest.PageSizeJet4, 5)
	dp.AddDeleted()
	pages := []page{{kind: PageOther}, {data: dp.Build(), kind: PageData}}

	if _, ok := resolveOverflow(pages, 1<<8|0); ok {
		t.Fatal("expected ok=false for a deleted slot")
	}
}

func TestResolveOverflowRejectsNonDataPage(t *testing.T) {
	pages := []page{{kind: PageTableDef, data: make([]byte, jettest.PageSizeJet4)}}
	if _, ok := resolveOverflow(pages, 0); ok {
		t.Fatal("expected ok=false for a non-data target page")
	}
}

func TestResolveOverflowRejectsOutOfRangePage(t *testing.T) {
	pages := []page{{kind: PageOther}}
	if _, ok := resolveOverflow(pages, 99<<8); ok {
		t.Fatal("expected ok=false for an out-of-range page number")
	}
}
