// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"testing"

	"github.com/jetdecode/msjet/internal/jettest"
)

func TestBuildCatalogMissingRequiredColumn(t *testing.T) {
	b := jettest.NewBuilder(4)
	// MSysObjects TDEF missing the required "Flags" column.
	cols := []jettest.Column{
		{Name: "Id", Type: 4, FixedLength: true, FixedOffset: 0, ColumnIndex: 0, ColumnID: 0},
		{Name: "Type", Type: 3, FixedLength: true, FixedOffset: 4, ColumnIndex: 1, ColumnID: 1},
		{Name: "Name", Type: 10, FixedLength: false, ColumnIndex: 2, ColumnID: 2},
	}
	tdef := jettest.BuildTDEF(b.PageSize(), cols, 0, 0)
	b.SetPage(jettest.CatalogPageIndex, tdef)

	pages, err := classifyPages(b.Build(), uint32(b.PageSize()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buildCatalog(pages, nil, Version4, func(string) {}); err == nil {
		t.Fatal("expected ErrCatalogMissing for a catalog missing a required column")
	}
}

func TestBuildCatalogSkipsRowsMissingFields(t *testing.T) {
	b := jettest.NewBuilder(4)
	cols := []jettest.Column{
		{Name: "Id", Type: 4, FixedLength: true, FixedOffset: 0, ColumnIndex: 0, ColumnID: 0},
		{Name: "Type", Type: 3, FixedLength: true, FixedOffset: 4, ColumnIndex: 1, ColumnID: 1},
		{Name: "Flags", Type: 4, FixedLength: true, FixedOffset: 6, ColumnIndex: 2, ColumnID: 2},
		{Name: "Name", Type: 10, FixedLength: false, ColumnIndex: 3, ColumnID: 3},
	}
	tdef := jettest.BuildTDEF(b.PageSize(), cols, 0, 1)
	b.SetPage(jettest.CatalogPageIndex, tdef)

	dp := jettest.NewDataPage(b.PageSize(), jettest.CatalogPageIndex)
	rec := jettest.NewRecord(4, 4)
	// Name left null: a required field is missing, so the row should
	// be skipped with a warning rather than failing the whole catalog.
	rec.SetFixed(0, 4, jettest.EncodeInt32(3))
	rec.SetFixed(4, 2, jettest.EncodeInt16(1))
	rec.SetFixed(6, 4, jettest.EncodeInt32(0))
	rec.AddVariable(nil)
	dp.AddRecord(rec.Build([]int{0, 1, 2}, []int{3}))

	b.AddPage(dp.Build())
	pages, err := classifyPages(b.Build(), uint32(b.PageSize()))
	if err != nil {
		t.Fatal(err)
	}
	byOwner := linkDataPages(pages)

	var warned []string
	entries, err := buildCatalog(pages, byOwner, Version4, func(s string) { warned = append(warned, s) })
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
	if len(warned) == 0 {
		t.Fatal("expected a warning for the skipped row")
	}
}
