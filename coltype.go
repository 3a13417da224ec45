// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

// ColumnType is the on-disk Jet type code for a column.
type ColumnType byte

// Column type codes, as laid out on disk.
const (
	ColTypeBoolean      ColumnType = 1
	ColTypeInt8         ColumnType = 2
	ColTypeInt16        ColumnType = 3
	ColTypeInt32        ColumnType = 4
	ColTypeMoney        ColumnType = 5
	ColTypeFloat32      ColumnType = 6
	ColTypeFloat64      ColumnType = 7
	ColTypeDateTime     ColumnType = 8
	ColTypeBinary       ColumnType = 9
	ColTypeText         ColumnType = 10
	ColTypeOLE          ColumnType = 11
	ColTypeMemo         ColumnType = 12
	ColTypeGUID         ColumnType = 15
	ColTypeBit96Bytes17 ColumnType = 16
	ColTypeComplex      ColumnType = 18
)

func (t ColumnType) String() string {
	switch t {
	case ColTypeBoolean:
		return "Boolean"
	case ColTypeInt8:
		return "Int8"
	case ColTypeInt16:
		return "Int16"
	case ColTypeInt32:
		return "Int32"
	case ColTypeMoney:
		return "Money"
	case ColTypeFloat32:
		return "Float32"
	case ColTypeFloat64:
		return "Float64"
	case ColTypeDateTime:
		return "DateTime"
	case ColTypeBinary:
		return "Binary"
	case ColTypeText:
		return "Text"
	case ColTypeOLE:
		return "OLE"
	case ColTypeMemo:
		return "Memo"
	case ColTypeGUID:
		return "GUID"
	case ColTypeBit96Bytes17:
		return "Bit96Bytes17"
	case ColTypeComplex:
		return "Complex"
	default:
		return "Unknown"
	}
}

// IsLongValue reports whether a column of this type carries its
// payload through the LVAL/memo mechanism rather than inline bytes.
func (t ColumnType) IsLongValue() bool {
	return t == ColTypeMemo || t == ColTypeOLE
}

// FixedWidth returns the number of bytes a fixed-length column of this
// type occupies in the fixed region of a record, or 0 when the type
// has no fixed-region payload (Boolean is carried entirely by the null
// bitmap; variable-length types are never fixed-length on disk).
func (t ColumnType) FixedWidth() int {
	switch t {
	case ColTypeInt8:
		return 1
	case ColTypeInt16:
		return 2
	case ColTypeInt32, ColTypeFloat32, ColTypeComplex:
		return 4
	case ColTypeMoney, ColTypeFloat64, ColTypeDateTime:
		return 8
	case ColTypeGUID:
		return 16
	case ColTypeBit96Bytes17:
		return 17
	default:
		return 0
	}
}
