// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

// Package msjet decodes Microsoft Jet / Access database files (.mdb,
// .accdb) supplied as an in-memory byte buffer, exposing the user
// tables they contain as typed row sequences.
//
// The package only reads: streaming, writing, SQL evaluation,
// indexes, forms and relationships are all out of scope. A Parser
// is constructed once from an immutable buffer and is safe to read
// from concurrently, but ParseTable mutates a per-call accumulator
// and must not be called concurrently on the same table from two
// goroutines sharing the same Parser.
package msjet

import "errors"

// Version identifies the on-disk Jet dialect. It governs page size,
// text-encoding defaults, variable-length metadata layout and the
// null-bitmap placement.
type Version int

// Supported dialects.
const (
	Version3    Version = 3
	Version4    Version = 4
	Version5    Version = 5
	Version2010 Version = 2010
)

func (v Version) String() string {
	switch v {
	case Version3:
		return "Jet 3"
	case Version4:
		return "Jet 4"
	case Version5:
		return "Jet 5"
	case Version2010:
		return "Jet 2010"
	default:
		return "unknown"
	}
}

// PageSize returns the page size in bytes for this dialect.
func (v Version) PageSize() uint32 {
	if v == Version3 {
		return PageSizeJet3
	}
	return PageSizeJet4
}

// Page sizes, in bytes.
const (
	PageSizeJet3 = 0x0800
	PageSizeJet4 = 0x1000
)

// Page magics: the first two bytes of every page.
var (
	pageMagicData     = [2]byte{0x01, 0x01}
	pageMagicTableDef = [2]byte{0x02, 0x01}
)

// PageKind classifies a page by its magic bytes.
type PageKind int

// Page kinds.
const (
	PageOther PageKind = iota
	PageData
	PageTableDef
)

func (k PageKind) String() string {
	switch k {
	case PageData:
		return "data"
	case PageTableDef:
		return "table-def"
	default:
		return "other"
	}
}

// CatalogPageIndex is the fixed page index of the MSysObjects TDEF.
const CatalogPageIndex = 2

// System-table Flags values that exclude a catalog entry from the
// user-visible table list. Jet stores Flags as a signed 32-bit
// integer, so both the unsigned bit pattern and its signed
// twos-complement form must be checked.
const (
	flagSystemTableHidden  int32 = -0x7FFFFFFF - 1 // 0x80000000 as signed
	flagSystemTableHidden2 int32 = 0x00000002
	flagSystemTableHidden3 int32 = -0x00000002
)

// Fatal construction/parseTable errors (spec.md §7 tiers 1 and 2).
var (
	// ErrMalformedBuffer is returned when the buffer length is not a
	// whole multiple of the dialect's page size, and by the file-header
	// check when the buffer is too short to hold the version byte or
	// does not start with the Jet signature.
	ErrMalformedBuffer = errors.New("msjet: buffer length is not a multiple of the page size")

	// ErrUnknownVersion is returned when the file-header version byte
	// does not map to a known Jet dialect.
	ErrUnknownVersion = errors.New("msjet: unknown Jet version byte")

	// ErrTableHeaderCorrupt is returned when a TDEF page chain cannot
	// be reconciled into exactly columnCount columns by either keying
	// strategy.
	ErrTableHeaderCorrupt = errors.New("msjet: table header corrupt")

	// ErrUnknownTable is returned by ParseTable for a name absent from
	// the catalog.
	ErrUnknownTable = errors.New("msjet: unknown table")

	// ErrEmptyTable is returned by ParseTable for a known table with
	// zero attached data pages.
	ErrEmptyTable = errors.New("msjet: table has no data pages")

	// ErrCatalogMissing is returned at construction when the
	// MSysObjects TDEF cannot be located or parsed.
	ErrCatalogMissing = errors.New("msjet: catalog (MSysObjects) missing or corrupt")

	// ErrNotDataPage is returned internally when a page expected to
	// be a data page carries a different magic.
	ErrNotDataPage = errors.New("msjet: expected a data page")
)

// Value is the dynamic type every decoded cell takes: one of int64,
// float64, string, bool, or nil.
type Value any

// EmptyString is the sentinel returned for a variable-length field
// whose start and end offsets coincide (spec.md §4.7 step 5).
const EmptyString = ""
