// Package jettest synthesizes minimal, valid Jet/Access byte buffers
// for use in msjet's tests. It is an independent encoder: it hardcodes
// the same on-disk layout the decoder expects without importing any
// of the decoder's unexported helpers, so a test failure means the
// decoder disagrees with the documented format rather than the two
// sharing a bug.
package jettest

import (
	"encoding/binary"
	"math"
	"sort"
)

// Page sizes and magics, mirrored from the decoder's own constants.
const (
	PageSizeJet3 = 0x0800
	PageSizeJet4 = 0x1000

	CatalogPageIndex = 2

	dataPageHeaderSize = 10
	tdefPageHeaderSize = 8
	tdefDescriptorSize = 10

	recordOffsetDeleted  = 0x8000
	recordOffsetOverflow = 0x4000
)

var (
	pageMagicData     = [2]byte{0x01, 0x01}
	pageMagicTableDef = [2]byte{0x02, 0x01}
	fileHeaderMagic   = [2]byte{0x00, 0x01}
)

// versionByte maps a Version (3, 4, 5, 2010) to the file header's
// single dialect-selector byte.
func versionByte(version int) byte {
	switch version {
	case 3:
		return 0
	case 4:
		return 1
	case 5:
		return 2
	case 2010:
		return 3
	default:
		panic("jettest: unsupported version")
	}
}

func pageSizeFor(version int) int {
	if version == 3 {
		return PageSizeJet3
	}
	return PageSizeJet4
}

// CatalogRow describes one MSysObjects row for buildCatalogPage-style
// test helpers: an Id (the TDEF page number it names), a Type, Flags,
// and a Name.
type CatalogRow struct {
	ID    int
	Type  int
	Flags int32
	Name  string
}

// Column describes one column of a synthetic table definition.
type Column struct {
	Name        string
	Type        byte // matches msjet.ColumnType's on-disk code
	FixedLength bool
	FixedOffset int
	ColumnIndex int
	ColumnID    int
}

// Builder assembles a sequence of fixed-size pages into a complete
// buffer.
type Builder struct {
	Version  int
	pageSize int
	pages    [][]byte
}

// NewBuilder starts a buffer for the given Jet dialect version. Page 0
// (the file header), page 1 (reserved) and page 2 (the catalog TDEF
// slot at CatalogPageIndex, filled by SetPage) are pre-allocated, so
// the first AddPage returns page 3.
func NewBuilder(version int) *Builder {
	b := &Builder{Version: version, pageSize: pageSizeFor(version)}
	header := make([]byte, b.pageSize)
	copy(header[0:2], fileHeaderMagic[:])
	header[0x14] = versionByte(version)
	b.pages = append(b.pages, header)        // page 0: file header
	b.pages = append(b.pages, make([]byte, b.pageSize)) // page 1: reserved
	b.pages = append(b.pages, make([]byte, b.pageSize)) // page 2: catalog TDEF slot
	return b
}

// AddPage appends a page and returns its page number.
func (b *Builder) AddPage(data []byte) uint32 {
	page := make([]byte, b.pageSize)
	copy(page, data)
	b.pages = append(b.pages, page)
	return uint32(len(b.pages) - 1)
}

// SetPage overwrites an already-allocated page, used to place the
// catalog TDEF at the fixed CatalogPageIndex.
func (b *Builder) SetPage(index uint32, data []byte) {
	for uint32(len(b.pages)) <= index {
		b.pages = append(b.pages, make([]byte, b.pageSize))
	}
	copy(b.pages[index], data)
}

// Build concatenates every page into the final buffer.
func (b *Builder) Build() []byte {
	buf := make([]byte, 0, len(b.pages)*b.pageSize)
	for _, p := range b.pages {
		buf = append(buf, p...)
	}
	return buf
}

// PageSize returns the dialect's page size.
func (b *Builder) PageSize() int { return b.pageSize }

// BuildTDEF encodes a single-page table definition (no continuation
// chain) for columns, with the given index- and row-count header
// fields.
func BuildTDEF(pageSize int, columns []Column, realIndexCount, rowCount int) []byte {
	var stream []byte
	stream = append(stream, le16(uint16(len(columns)))...)
	varCount := 0
	for _, c := range columns {
		if !c.FixedLength {
			varCount++
		}
	}
	stream = append(stream, le16(uint16(varCount))...)
	stream = append(stream, le16(uint16(realIndexCount))...)
	stream = append(stream, le32(uint32(rowCount))...)

	for _, c := range columns {
		desc := make([]byte, tdefDescriptorSize)
		desc[0] = c.Type
		if c.FixedLength {
			desc[1] = 0x01
		}
		binary.LittleEndian.PutUint16(desc[2:4], uint16(c.FixedOffset))
		binary.LittleEndian.PutUint16(desc[4:6], uint16(c.ColumnIndex))
		binary.LittleEndian.PutUint16(desc[6:8], uint16(c.ColumnID))
		stream = append(stream, desc...)
	}

	stream = append(stream, make([]byte, realIndexCount*8)...)

	for _, c := range columns {
		stream = append(stream, le16(uint16(len(c.Name)))...)
		stream = append(stream, []byte(c.Name)...)
	}

	page := make([]byte, pageSize)
	copy(page[0:2], pageMagicTableDef[:])
	// nextPagePtr (bytes 4:8) left zero: single-page chain.
	copy(page[tdefPageHeaderSize:], stream)
	return page
}

// Record builds the byte layout of one record, given the fixed-length
// columns (in declaration order) and the variable-length columns (in
// on-disk offset order), their encoded payloads, and null status.
type Record struct {
	version     int
	columnCount int
	fixed       []fixedField
	variable    [][]byte // nil entry means null
	boolBits    map[int]bool
}

type fixedField struct {
	offset int
	width  int
	data   []byte // nil means null
}

// NewRecord starts a record builder for a table with columnCount total
// columns (drives the null-bitmap width).
func NewRecord(version, columnCount int) *Record {
	return &Record{version: version, columnCount: columnCount}
}

// SetFixed places data at a fixed byte offset within the fixed-length
// region. Pass data == nil for a null value.
func (r *Record) SetFixed(offset, width int, data []byte) {
	r.fixed = append(r.fixed, fixedField{offset: offset, width: width, data: data})
}

// SetBoolean sets the null-bitmap bit for a Boolean column directly,
// since Boolean carries its value in the presence bit rather than in
// the fixed-length byte region.
func (r *Record) SetBoolean(columnID int, value bool) {
	if r.boolBits == nil {
		r.boolBits = map[int]bool{}
	}
	r.boolBits[columnID] = value
}

// AddVariable appends a variable-length column's payload in on-disk
// order. Pass data == nil for a null value.
func (r *Record) AddVariable(data []byte) {
	r.variable = append(r.variable, data)
}

// Build renders the full record: prefix, fixed region, variable
// payloads, variable-length metadata tail, and null bitmap. Null
// status for each field comes directly from whether its data was nil
// when added; fixedColumnIDs and variableColumnIDs give the column ID
// that corresponds, by position, to each SetFixed/AddVariable call, so
// the right null-bitmap bit can be set.
func (r *Record) Build(fixedColumnIDs, variableColumnIDs []int) []byte {
	prefixLen := 1
	if r.version != 3 {
		prefixLen = 2
	}

	fixedSize := 0
	for _, f := range r.fixed {
		if f.offset+f.width > fixedSize {
			fixedSize = f.offset + f.width
		}
	}
	body := make([]byte, fixedSize)
	for _, f := range r.fixed {
		if f.data != nil {
			copy(body[f.offset:f.offset+f.width], f.data)
		}
	}

	varBase := prefixLen + len(body)
	var varBlob []byte
	absOffsets := make([]int, len(r.variable)+1)
	for i, v := range r.variable {
		absOffsets[i] = varBase + len(varBlob)
		if v != nil {
			varBlob = append(varBlob, v...)
		}
	}
	absOffsets[len(r.variable)] = varBase + len(varBlob)

	// offsets holds the values actually written to the offsets array.
	// For Jet4+ these are the absolute positions verbatim. For Jet3,
	// offsets are single bytes: whenever an absolute position would
	// not fit in a byte given the addition accumulated so far, a new
	// 0x100 addition is introduced and the corresponding variable
	// field index is flagged in the jump table, mirroring exactly how
	// record.go's parseVariableMetadata reconstructs them.
	offsets := make([]int, len(absOffsets))
	jumpTable := map[int]bool{}
	if r.version == 3 {
		addition := 0
		for i, abs := range absOffsets {
			for abs-addition > 0xFF {
				addition += 0x100
				if i < len(r.variable) {
					jumpTable[i] = true
				}
			}
			offsets[i] = abs - addition
		}
	} else {
		copy(offsets, absOffsets)
	}

	nullBytes := (r.columnCount + 7) / 8
	nullBitmap := make([]byte, nullBytes)
	setBit := func(columnID int) {
		nullBitmap[columnID/8] |= 1 << uint(columnID%8)
	}
	for i, f := range r.fixed {
		if f.data != nil && i < len(fixedColumnIDs) {
			setBit(fixedColumnIDs[i])
		}
	}
	for i, v := range r.variable {
		if v != nil && i < len(variableColumnIDs) {
			setBit(variableColumnIDs[i])
		}
	}
	for id, v := range r.boolBits {
		if v {
			setBit(id)
		}
	}

	var tail []byte
	entrySize := 2
	if r.version == 3 {
		entrySize = 1
	}
	for _, off := range offsets {
		if entrySize == 1 {
			tail = append(tail, byte(off&0xFF))
		} else {
			tail = append(tail, le16(uint16(off))...)
		}
	}
	tail = append(tail, le16(uint16(len(r.variable)))...)
	if r.version != 3 {
		tail = append(tail, 0) // padding byte
	}

	if r.version == 3 {
		// On-disk order (start to end): prefix, body, variable data,
		// jump-table indices, jump-table count, offsets array,
		// variable-field count, null bitmap. record.go's
		// parseVariableMetadata reads this tail back to front.
		jumpIndices := make([]int, 0, len(jumpTable))
		for idx := range jumpTable {
			jumpIndices = append(jumpIndices, idx)
		}
		sort.Ints(jumpIndices)
		jumpBytes := make([]byte, 0, len(jumpIndices))
		for _, idx := range jumpIndices {
			jumpBytes = append(jumpBytes, byte(idx))
		}
		rec := make([]byte, 0, prefixLen+len(body)+len(varBlob)+len(jumpBytes)+1+len(offsets)+2+nullBytes)
		rec = append(rec, make([]byte, prefixLen)...)
		rec = append(rec, body...)
		rec = append(rec, varBlob...)
		rec = append(rec, jumpBytes...)
		rec = append(rec, byte(len(jumpIndices)))
		rec = append(rec, offsetBytesJet3(offsets)...)
		rec = append(rec, le16(uint16(len(r.variable)))...)
		rec = append(rec, nullBitmap...)
		return rec
	}

	rec := make([]byte, 0, prefixLen+len(body)+len(varBlob)+len(tail)+nullBytes)
	rec = append(rec, make([]byte, prefixLen)...)
	rec = append(rec, body...)
	rec = append(rec, varBlob...)
	rec = append(rec, tail...)
	rec = append(rec, nullBitmap...)
	return rec
}

func offsetBytesJet3(offsets []int) []byte {
	out := make([]byte, len(offsets))
	for i, off := range offsets {
		out[i] = byte(off & 0xFF)
	}
	return out
}

// DataPage lays out a sequence of records (given back-to-front, since
// real pages grow inward) into one classified data page, with support
// for deleted and overflow slots interleaved among inline ones.
type DataPage struct {
	pageSize int
	owner    uint32
	entries  []dataPageEntry
}

type dataPageEntry struct {
	kind    int // 0 = inline, 1 = deleted, 2 = overflow
	record  []byte
	overPtr uint32
}

// NewDataPage starts a data page owned by the given TDEF page number.
func NewDataPage(pageSize int, owner uint32) *DataPage {
	return &DataPage{pageSize: pageSize, owner: owner}
}

// AddRecord appends a live inline record.
func (d *DataPage) AddRecord(rec []byte) { d.entries = append(d.entries, dataPageEntry{kind: 0, record: rec}) }

// AddDeleted appends a deleted-record slot; it carries no bytes.
func (d *DataPage) AddDeleted() { d.entries = append(d.entries, dataPageEntry{kind: 1}) }

// AddOverflow appends a slot pointing at an LVAL/overflow record
// elsewhere in the file, packed as (pageNumber<<8 | slot).
func (d *DataPage) AddOverflow(pageNumber uint32, slot uint8) {
	d.entries = append(d.entries, dataPageEntry{kind: 2, overPtr: pageNumber<<8 | uint32(slot)})
}

// Build renders the page: records are placed growing down from the
// end of the page in entry order, and the offset table is written
// right after the header in the same order, matching the descending-
// offset invariant the decoder relies on.
func (d *DataPage) Build() []byte {
	page := make([]byte, d.pageSize)
	copy(page[0:2], pageMagicData[:])
	binary.LittleEndian.PutUint32(page[4:8], d.owner)
	binary.LittleEndian.PutUint16(page[8:10], uint16(len(d.entries)))

	cursor := d.pageSize
	offsetTable := make([]uint16, len(d.entries))
	for i, e := range d.entries {
		switch e.kind {
		case 0:
			cursor -= len(e.record)
			copy(page[cursor:cursor+len(e.record)], e.record)
			offsetTable[i] = uint16(cursor)
		case 1:
			offsetTable[i] = uint16(cursor) | recordOffsetDeleted
		case 2:
			cursor -= 4
			binary.LittleEndian.PutUint32(page[cursor:cursor+4], e.overPtr)
			offsetTable[i] = uint16(cursor) | recordOffsetOverflow
		}
	}
	for i, off := range offsetTable {
		pos := dataPageHeaderSize + i*2
		binary.LittleEndian.PutUint16(page[pos:pos+2], off)
	}
	return page
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// EncodeInt32 renders a fixed Int32 payload.
func EncodeInt32(v int32) []byte { return le32(uint32(v)) }

// EncodeInt16 renders a fixed Int16 payload.
func EncodeInt16(v int16) []byte { return le16(uint16(v)) }

// EncodeFloat64 renders a fixed Float64 payload.
func EncodeFloat64(v float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return b
}

// EncodeMoney renders an 8-byte Money payload from a decimal value.
func EncodeMoney(v float64) []byte {
	scaled := int64(math.Round(v * 10000))
	low := uint32(scaled)
	high := int32(scaled >> 32)
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], low)
	binary.LittleEndian.PutUint32(b[4:8], uint32(high))
	return b
}

// EncodeGUID renders a 16-byte GUID payload from its raw component
// bytes, with no byte-order flipping.
func EncodeGUID(b [16]byte) []byte { return b[:] }

// EncodeText renders a variable Text payload. For Jet3 it is plain
// bytes; for Jet4+ it is UTF-16LE with no BOM, matching decodeText's
// default path.
func EncodeText(s string, version int) []byte {
	if version == 3 {
		return []byte(s)
	}
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, le16(uint16(r))...)
	}
	return out
}

// EncodeMemoInline renders an inline memo payload: a 12-byte header
// with the inline flag set, followed by the Text-encoded body.
func EncodeMemoInline(s string, version int) []byte {
	body := EncodeText(s, version)
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(body))|0x80000000)
	return append(header, body...)
}

// EncodeMemoLVAL renders a memo header pointing at an overflow record
// via the LVAL type-1 flag.
func EncodeMemoLVAL(pageNumber uint32, slot uint8, length int) []byte {
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], uint32(length)|0x40000000)
	binary.LittleEndian.PutUint32(header[4:8], pageNumber<<8|uint32(slot))
	return header
}
