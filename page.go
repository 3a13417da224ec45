// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

// page is one fixed-size block of the input buffer together with its
// classification. Pages are indexed by page number (byte offset /
// page size), matching the "array indexed by page number" preference
// noted in the design: a page-number-keyed slice stands in for the
// conceptual offset->bytes dictionary.
type page struct {
	data []byte
	kind PageKind
}

// classifyPages splits buf into fixed-size pages and tags each one by
// its first two magic bytes. It fails with ErrMalformedBuffer when
// buf's length is not a whole multiple of pageSize.
func classifyPages(buf []byte, pageSize uint32) ([]page, error) {
	if pageSize == 0 || len(buf)%int(pageSize) != 0 {
		return nil, ErrMalformedBuffer
	}

	count := len(buf) / int(pageSize)
	pages := make([]page, count)
	for i := 0; i < count; i++ {
		start := i * int(pageSize)
		data := buf[start : start+int(pageSize)]
		pages[i] = page{data: data, kind: classifyPage(data)}
	}
	return pages, nil
}

// classifyPage tags a single page by its leading magic bytes.
func classifyPage(data []byte) PageKind {
	if len(data) < 2 {
		return PageOther
	}
	switch {
	case data[0] == pageMagicData[0] && data[1] == pageMagicData[1]:
		return PageData
	case data[0] == pageMagicTableDef[0] && data[1] == pageMagicTableDef[1]:
		return PageTableDef
	default:
		return PageOther
	}
}

// pageOwner returns the TDEF page number that a data page declares as
// its owner. The field sits right after the 2-byte magic and a 2-byte
// reserved/checksum-like field, mirroring the fixed small header every
// data page carries ahead of its record-offset table.
func pageOwner(data []byte) (uint32, error) {
	return readUint32(pageAt(data, dataPageOwnerOffset))
}

// pageAt returns the tail of data starting at offset, for primitive
// reads that only need a lower bound.
func pageAt(data []byte, offset int) []byte {
	if offset < 0 || offset > len(data) {
		return nil
	}
	return data[offset:]
}

// dataPageOwnerOffset is the byte offset of the 4-byte page-owner
// field within a data page header.
const dataPageOwnerOffset = 0x04
