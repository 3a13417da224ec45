// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

// resolveOverflow follows a packed (page number, slot index) record
// pointer to the byte range of the record it designates. It never
// returns an error: callers substitute a safe fallback when ok is
// false, per spec.md §4.6.
func resolveOverflow(pages []page, ptr uint32) (data []byte, ok bool) {
	pageNumber := ptr >> 8
	slot := ptr & 0xFF

	if int(pageNumber) >= len(pages) {
		return nil, false
	}
	p := pages[pageNumber]
	if p.kind != PageData {
		return nil, false
	}
	if len(p.data) < dataPageHeaderSize {
		return nil, false
	}

	recordCount := int(leU16(p.data[8:10]))
	if int(slot) >= recordCount {
		return nil, false
	}

	pos := dataPageHeaderSize + int(slot)*2
	if pos+2 > len(p.data) {
		return nil, false
	}
	raw := leU16(p.data[pos : pos+2])
	if raw&0x8000 != 0 {
		return nil, false
	}
	start := int(raw & 0x0FFF)

	var end int
	if slot == 0 {
		end = len(p.data)
	} else {
		prevPos := dataPageHeaderSize + (int(slot)-1)*2
		if prevPos+2 > len(p.data) {
			return nil, false
		}
		prevRaw := leU16(p.data[prevPos : prevPos+2])
		end = int(prevRaw & 0x0FFF)
	}

	if start < 0 || end > len(p.data) || start > end {
		return nil, false
	}
	return p.data[start:end], true
}
