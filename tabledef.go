// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "sort"

// tdefPageHeaderSize is the fixed header every TDEF page carries ahead
// of its contribution to the logical TDEF byte stream: 2 bytes magic,
// 2 bytes free-space counter (unused by this decoder), 4 bytes
// next-page pointer.
const tdefPageHeaderSize = 8

// tdefDescriptorSize is the fixed width of one column descriptor in
// the logical TDEF stream.
const tdefDescriptorSize = 10

// tdefIndexEntrySize is the fixed width of one (unparsed) index
// metadata entry skipped ahead of the column-name table.
const tdefIndexEntrySize = 8

// column is one column descriptor reconstructed from a TDEF chain.
type column struct {
	name        string
	colType     ColumnType
	fixedLength bool
	required    bool // not-null constraint; see record.go's Boolean handling
	fixedOffset int
	columnIndex int
	columnID    int
}

// tableDef is a reconstructed table definition: header counters plus
// the column descriptors in declaration order and, for the
// variable-length columns, in lookup-key order. The keyed lookup
// itself is the separate columnIndexLookup.
type tableDef struct {
	columnCount     int
	variableColumns int
	realIndexCount  int
	rowCount        int

	columns []*column // declaration order, for fixed-length and null-bitmap passes

	// variableOrder holds only the variable-length columns, ordered by
	// the same key used to build byKey, matching how the variable-
	// length metadata's offsets array is laid out on disk.
	variableOrder []*column
}

// columnIndexLookup holds the columns keyed by columnIndex - minIndex,
// or by columnID on fallback, and records whether the map was keyed by
// column ID.
type columnIndexLookup struct {
	byKey      map[int]*column
	keyedByID  bool
}

// parseTableDef walks a TDEF page chain starting at tdefPage and
// reconstructs its header and column descriptors.
func parseTableDef(pages []page, tdefPage uint32) (*tableDef, *columnIndexLookup, error) {
	stream, err := readTDEFStream(pages, tdefPage)
	if err != nil {
		return nil, nil, err
	}

	if len(stream) < 10 {
		return nil, nil, ErrTableHeaderCorrupt
	}

	columnCount := int(leU16(stream[0:2]))
	variableColumns := int(leU16(stream[2:4]))
	realIndexCount := int(leU16(stream[4:6]))
	rowCount := int(leU32(stream[6:10]))

	offset := 10
	columns := make([]*column, columnCount)
	for i := 0; i < columnCount; i++ {
		if offset+tdefDescriptorSize > len(stream) {
			return nil, nil, ErrTableHeaderCorrupt
		}
		d := stream[offset : offset+tdefDescriptorSize]
		columns[i] = &column{
			colType:     ColumnType(d[0]),
			fixedLength: d[1]&0x01 != 0,
			required:    d[1]&0x02 != 0,
			fixedOffset: int(leU16(d[2:4])),
			columnIndex: int(leU16(d[4:6])),
			columnID:    int(leU16(d[6:8])),
		}
		offset += tdefDescriptorSize
	}

	offset += realIndexCount * tdefIndexEntrySize
	if offset > len(stream) {
		return nil, nil, ErrTableHeaderCorrupt
	}

	for i := 0; i < columnCount; i++ {
		if offset+2 > len(stream) {
			return nil, nil, ErrTableHeaderCorrupt
		}
		nameLen := int(leU16(stream[offset : offset+2]))
		offset += 2
		if offset+nameLen > len(stream) {
			return nil, nil, ErrTableHeaderCorrupt
		}
		columns[i].name = string(stream[offset : offset+nameLen])
		offset += nameLen
	}

	lookup, err := buildColumnLookup(columns, columnCount)
	if err != nil {
		return nil, nil, err
	}

	def := &tableDef{
		columnCount:     columnCount,
		variableColumns: variableColumns,
		realIndexCount:  realIndexCount,
		rowCount:        rowCount,
		columns:         columns,
	}
	def.variableOrder = orderVariableColumns(columns, lookup)

	return def, lookup, nil
}

// readTDEFStream concatenates the payload of every page in the TDEF
// chain starting at tdefPage, following nextPagePtr until it is zero.
func readTDEFStream(pages []page, tdefPage uint32) ([]byte, error) {
	var stream []byte
	cur := tdefPage
	seen := map[uint32]bool{}

	for {
		if int(cur) >= len(pages) {
			return nil, ErrTableHeaderCorrupt
		}
		p := pages[cur]
		if p.kind != PageTableDef {
			return nil, ErrTableHeaderCorrupt
		}
		if seen[cur] {
			// A cyclic chain is corrupt; stop rather than loop forever.
			return nil, ErrTableHeaderCorrupt
		}
		seen[cur] = true

		if len(p.data) < tdefPageHeaderSize {
			return nil, ErrTableHeaderCorrupt
		}
		nextPtr := leU32(p.data[4:8])
		stream = append(stream, p.data[tdefPageHeaderSize:]...)

		if nextPtr == 0 {
			break
		}
		cur = nextPtr
	}
	return stream, nil
}

// buildColumnLookup keys columns first by columnIndex-minIndex; if
// that produces fewer than columnCount distinct keys (a collision),
// it falls back to keying by columnID. Order matters: some files
// reuse columnIndex across columns but keep columnID stable.
func buildColumnLookup(columns []*column, columnCount int) (*columnIndexLookup, error) {
	if columnCount == 0 {
		return &columnIndexLookup{byKey: map[int]*column{}}, nil
	}

	minIndex := columns[0].columnIndex
	for _, c := range columns {
		if c.columnIndex < minIndex {
			minIndex = c.columnIndex
		}
	}

	byIndex := make(map[int]*column, columnCount)
	for _, c := range columns {
		byIndex[c.columnIndex-minIndex] = c
	}
	if len(byIndex) == columnCount {
		return &columnIndexLookup{byKey: byIndex}, nil
	}

	byID := make(map[int]*column, columnCount)
	for _, c := range columns {
		byID[c.columnID] = c
	}
	if len(byID) != columnCount {
		return nil, ErrTableHeaderCorrupt
	}
	return &columnIndexLookup{byKey: byID, keyedByID: true}, nil
}

// orderVariableColumns returns the variable-length columns ordered by
// their lookup key ascending, matching the positional layout of the
// on-disk variable-length offsets array.
func orderVariableColumns(columns []*column, lookup *columnIndexLookup) []*column {
	keys := make([]int, 0, len(lookup.byKey))
	for k := range lookup.byKey {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	ordered := make([]*column, 0, len(columns))
	for _, k := range keys {
		c := lookup.byKey[k]
		if !c.fixedLength {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

func leU16(b []byte) uint16 { v, _ := readUint16(b); return v }
func leU32(b []byte) uint32 { v, _ := readUint32(b); return v }
