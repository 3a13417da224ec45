// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"errors"
	"fmt"
)

// Row is one decoded record, keyed by column name, together with the
// 1-based position it held among the table's live (non-deleted) rows.
type Row struct {
	RowNumber int
	Data      map[string]Value
}

var (
	errVariableMetadataMismatch = errors.New("msjet: variable-length field count does not match table definition")
	errVariableFieldRange       = errors.New("msjet: variable-length field offset out of range")
	errNullBitmapTooShort       = errors.New("msjet: record too short for its null bitmap")
)

// decodeRecord turns one carved record's raw bytes into a column-name
// keyed value map, per spec.md §4.7. Any returned error is recoverable
// at the row level: the caller logs a warning and drops the row rather
// than failing the whole table.
func decodeRecord(rec []byte, def *tableDef, version Version, pages []page, warn func(string)) (map[string]Value, error) {
	nullBytes := (def.columnCount + 7) / 8
	if len(rec) < nullBytes {
		return nil, errNullBitmapTooShort
	}
	nullBitmap := rec[len(rec)-nullBytes:]

	bitSet := func(columnID int) (bool, error) {
		if columnID < 0 || columnID >= nullBytes*8 {
			return false, fmt.Errorf("msjet: column id %d exceeds null bitmap width", columnID)
		}
		byteIdx := columnID / 8
		bitIdx := uint(columnID % 8)
		return nullBitmap[byteIdx]&(1<<bitIdx) != 0, nil
	}

	prefixLen := 1
	if version != Version3 {
		prefixLen = 2
	}
	if len(rec) < prefixLen+nullBytes {
		return nil, errNullBitmapTooShort
	}
	body := rec[prefixLen:]

	result := make(map[string]Value, def.columnCount)

	// Fixed-length pass.
	for _, col := range def.columns {
		if !col.fixedLength {
			continue
		}
		present, err := bitSet(col.columnID)
		if err != nil {
			return nil, err
		}

		if col.colType == ColTypeBoolean {
			// Booleans carry no payload bytes: the bit is the value
			// itself. A non-nullable Boolean is never null, so a clear
			// bit means false. A nullable Boolean has no second bit to
			// carry "stored false" separately from "never set", so a
			// clear bit propagates null and only a set bit yields true.
			if !col.required && !present {
				result[col.name] = nil
				continue
			}
			result[col.name] = present
			continue
		}
		if !present {
			result[col.name] = nil
			continue
		}

		width := col.colType.FixedWidth()
		if width == 0 || col.fixedOffset+width > len(body) {
			return nil, fmt.Errorf("msjet: fixed column %q out of range", col.name)
		}
		val, err := decodeValue(col.colType, body[col.fixedOffset:col.fixedOffset+width], version)
		if err != nil {
			return nil, err
		}
		result[col.name] = val
	}

	if len(def.variableOrder) == 0 {
		return result, nil
	}

	offsets, jumpTable, err := parseVariableMetadata(rec, nullBytes, def.variableColumns, version)
	if err != nil {
		return nil, err
	}

	jumpAddition := 0
	for i, col := range def.variableOrder {
		if i+1 >= len(offsets) {
			break
		}
		present, err := bitSet(col.columnID)
		if err != nil {
			return nil, err
		}
		if !present {
			result[col.name] = nil
			continue
		}

		if version == Version3 && jumpTable[i] {
			jumpAddition += 0x100
		}
		start := offsets[i] + jumpAddition
		end := offsets[i+1] + jumpAddition

		if start == end {
			result[col.name] = EmptyString
			continue
		}
		if start < 0 || end > len(rec) || start > end {
			return nil, errVariableFieldRange
		}
		raw := rec[start:end]

		if col.colType == ColTypeMemo {
			result[col.name] = decodeMemo(raw, pages, version, col.colType, warn)
			continue
		}
		val, err := decodeValue(col.colType, raw, version)
		if err != nil {
			return nil, err
		}
		result[col.name] = val
	}

	return result, nil
}

// parseVariableMetadata reads the variable-length field count, offsets
// array and (Jet3 only) jump table from the tail of rec, working
// backward from just ahead of the null bitmap. It recovers from a
// mismatched count by rescanning the ten bytes ahead of the null
// bitmap for the table definition's expected count, per spec.md §4.7.
func parseVariableMetadata(rec []byte, nullBytes, expectedCount int, version Version) ([]int, map[int]bool, error) {
	cursor := len(rec) - nullBytes
	if version != Version3 {
		if cursor-1 >= 0 && rec[cursor-1] == 0 {
			cursor--
		}
	}
	if cursor-2 < 0 {
		return nil, nil, errVariableMetadataMismatch
	}
	varCount := int(leU16(rec[cursor-2 : cursor]))
	cursor -= 2

	if varCount != expectedCount {
		searchEnd := len(rec) - nullBytes
		searchStart := searchEnd - 10
		if searchStart < 0 {
			searchStart = 0
		}
		found := false
		for p := searchEnd - 2; p >= searchStart; p-- {
			if p+2 <= len(rec) && int(leU16(rec[p:p+2])) == expectedCount {
				varCount = expectedCount
				cursor = p
				found = true
				break
			}
		}
		if !found {
			return nil, nil, errVariableMetadataMismatch
		}
	}

	entrySize := 2
	if version == Version3 {
		entrySize = 1
	}
	offsetsSize := (varCount + 1) * entrySize
	offsetsStart := cursor - offsetsSize
	if offsetsStart < 0 {
		return nil, nil, errVariableMetadataMismatch
	}

	offsets := make([]int, varCount+1)
	for i := 0; i <= varCount; i++ {
		if entrySize == 1 {
			offsets[i] = int(rec[offsetsStart+i])
		} else {
			offsets[i] = int(leU16(rec[offsetsStart+i*2 : offsetsStart+i*2+2]))
		}
	}
	cursor = offsetsStart

	var jumpTable map[int]bool
	if version == Version3 {
		if cursor-1 < 0 {
			return nil, nil, errVariableMetadataMismatch
		}
		jumpCount := int(rec[cursor-1])
		cursor--
		if cursor-jumpCount < 0 {
			return nil, nil, errVariableMetadataMismatch
		}
		jumpTable = make(map[int]bool, jumpCount)
		for i := 0; i < jumpCount; i++ {
			jumpTable[int(rec[cursor-jumpCount+i])] = true
		}
	}

	return offsets, jumpTable, nil
}
