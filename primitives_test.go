// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "testing"

func TestReadUint16OutsideBoundary(t *testing.T) {
	if _, err := readUint16([]byte{0x01}); err != ErrOutsideBoundary {
		t.Fatalf("got %v, want ErrOutsideBoundary", err)
	}
}

func TestReadPrimitivesRoundTrip(t *testing.T) {
	b := []byte{0x34, 0x12}
	v, err := readUint16(b)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1234 {
		t.Fatalf("got %#x, want 0x1234", v)
	}
}

func TestDecodeMoney(t *testing.T) {
	// -1.0000 in the 1/10000-scaled fixed-point representation is the
	// int64 -10000: low 32 bits 0xFFFFD8F0, high 32 bits -1.
	b := []byte{0xF0, 0xD8, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	v, err := decodeMoney(b)
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Fatalf("got %v, want -1", v)
	}
}

func TestDecodeGUIDNoByteSwap(t *testing.T) {
	raw := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06,
		0x07, 0x08,
		0x09, 0x0A,
		0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	}
	got, err := decodeGUID(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := "01020304-0506-0708-090a-0b0c0d0e0f10"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeTextJet3IsRawBytes(t *testing.T) {
	got, err := decodeText([]byte("hello"), Version3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestDecodeTextJet4UTF16LE(t *testing.T) {
	// "Hi" as UTF-16LE.
	raw := []byte{'H', 0, 'i', 0}
	got, err := decodeText(raw, Version4)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hi" {
		t.Fatalf("got %q, want %q", got, "Hi")
	}
}

func TestDecodeDateTime(t *testing.T) {
	tests := []struct {
		raw  float64
		want string
	}{
		{0.0, "1899-12-30T12:00:00.000Z"},
		{1.5, "1899-12-31T00:00:00.000Z"},
	}
	for _, tt := range tests {
		if got := decodeDateTime(tt.raw); got != tt.want {
			t.Errorf("decodeDateTime(%v) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDecodeValueUnsupportedType(t *testing.T) {
	if _, err := decodeValue(ColumnType(99), nil, Version4); err == nil {
		t.Fatal("expected an error for an unsupported column type")
	}
}
