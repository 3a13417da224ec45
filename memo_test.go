// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"testing"

	"github.com/jetdecode/msjet/internal/jettest"
)

func TestDecodeMemoInline(t *testing.T) {
	raw := jettest.EncodeMemoInline("hello", 4)
	got := decodeMemo(raw, nil, Version4, ColTypeMemo, func(string) {})
	if got != "hello" {
		t.Fatalf("got %v, want hello", got)
	}
}

func TestDecodeMemoLVALType1(t *testing.T) {
	dp := jettest.NewDataPage(jettest.PageSizeJet4, 0)
	dp.AddRecord(jettest.EncodeText("overflowed text", 4))
	pages := []page{{kind: PageOther}, {data: dp.Build(), kind: PageData}}

	raw := jettest.EncodeMemoLVAL(1, 0, len("overflowed text")*2)
	got := decodeMemo(raw, pages, Version4, ColTypeMemo, func(string) {})
	if got != "overflowed text" {
		t.Fatalf("got %v, want %q", got, "overflowed text")
	}
}

func TestDecodeMemoLVALUnresolvedFallsBack(t *testing.T) {
	pages := []page{{kind: PageOther}}
	raw := jettest.EncodeMemoLVAL(0, 0, 4)
	var warned string
	got := decodeMemo(raw, pages, Version4, ColTypeMemo, func(s string) { warned = s })
	if got == nil {
		t.Fatal("expected a fallback value, got nil")
	}
	if warned == "" {
		t.Fatal("expected a warning to be recorded")
	}
}

func TestDecodeMemoType2Unsupported(t *testing.T) {
	header := make([]byte, 12) // neither inline nor LVAL-type-1 flag set
	var warned string
	got := decodeMemo(header, nil, Version4, ColTypeMemo, func(s string) { warned = s })
	if warned == "" {
		t.Fatal("expected a warning about unsupported multi-page LVAL")
	}
	if got == nil {
		t.Fatal("expected a best-effort fallback value")
	}
}

func TestDecodeMemoShortBufferIsTreatedAsInline(t *testing.T) {
	got := decodeMemo([]byte("ab"), nil, Version3, ColTypeMemo, func(string) {})
	if got != "ab" {
		t.Fatalf("got %v, want ab", got)
	}
}
