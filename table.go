// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "fmt"

// decodeRows walks every data page owned by a table definition and
// decodes its live records in page order, numbering rows 1-based over
// the records that actually survive decoding. A page or record that
// fails to parse is logged through warn and skipped rather than
// aborting the table, per spec.md §7's per-row recoverability rule.
func decodeRows(pages []page, dataPageNumbers []uint32, def *tableDef, version Version, warn func(string)) ([]Row, error) {
	var rows []Row
	rowNumber := 1

	for _, pn := range dataPageNumbers {
		if int(pn) >= len(pages) {
			warn(fmt.Sprintf("%s %d out of range, skipping", WarnDataPageUnparseable, pn))
			continue
		}
		p := pages[pn]
		slots, err := parseDataPage(p)
		if err != nil {
			warn(fmt.Sprintf("%s %d unparseable, skipping: %v", WarnDataPageUnparseable, pn, err))
			continue
		}

		for _, slot := range slots {
			var rec []byte
			if slot.overflow {
				data, ok := resolveOverflow(pages, slot.overflowPtr)
				if !ok {
					warn(WarnOverflowUnresolved + ", skipping row")
					continue
				}
				rec = data
			} else {
				if slot.start > slot.end || int(slot.end) > len(p.data) {
					warn(fmt.Sprintf("%s: record slot out of range, skipping row", WarnRecordSkipped))
					continue
				}
				rec = p.data[slot.start:slot.end]
			}

			data, err := decodeRecord(rec, def, version, pages, warn)
			if err != nil {
				warn(fmt.Sprintf("%s: %v", WarnRecordSkipped, err))
				continue
			}
			rows = append(rows, Row{RowNumber: rowNumber, Data: data})
			rowNumber++
		}
	}
	return rows, nil
}
