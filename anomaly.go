// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

// Warning message prefixes used across the decoder, so a caller can
// classify an entry from Parser.Warnings by prefix instead of parsing
// free-form text.
const (
	// WarnRecordSkipped marks a row dropped because its bytes failed
	// to decode, rather than failing the whole table.
	WarnRecordSkipped = "msjet: record skipped"

	// WarnDataPageUnparseable marks a data page whose record-offset
	// table could not be read; its rows are lost, not the table's.
	WarnDataPageUnparseable = "msjet: data page"

	// WarnOverflowUnresolved marks a dangling LVAL/overflow pointer.
	WarnOverflowUnresolved = "msjet: overflow record pointer did not resolve"

	// WarnMemoFallback marks a memo value that could not be decoded
	// through its declared LVAL path and fell back to raw bytes.
	WarnMemoFallback = "msjet: memo"

	// WarnCatalogRowSkipped marks an MSysObjects row missing a
	// required field.
	WarnCatalogRowSkipped = "msjet: catalog row"
)
