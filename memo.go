// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "fmt"

// memoHeaderSize is the fixed 12-byte header ahead of a memo/LVAL
// payload: 4 bytes length-and-flags, 4 bytes record pointer, 4 bytes
// reserved.
const memoHeaderSize = 12

// memoInlineFlag marks a memo whose payload is stored inline,
// immediately following the header, rather than in an LVAL chain.
const memoInlineFlag = 0x80000000

// memoLVALType1Flag marks a memo stored as a single LVAL record
// elsewhere in the file, addressed by the header's record pointer.
const memoLVALType1Flag = 0x40000000

// decodeMemo decodes a Memo (type 12) field. It never fails: any
// error along the way degrades to a best-effort fallback, since losing
// one memo value must never cost the rest of the row. LVAL type 2
// (multi-page memos, neither flag bit set) is out of scope and always
// falls back.
func decodeMemo(raw []byte, pages []page, version Version, colType ColumnType, warn func(string)) (result Value) {
	defer func() {
		if r := recover(); r != nil {
			warn(fmt.Sprintf("msjet: memo decode recovered from panic: %v", r))
			result = string(raw)
		}
	}()

	if len(raw) < memoHeaderSize {
		s, err := decodeText(raw, version)
		if err != nil {
			return string(raw)
		}
		return s
	}

	lengthAndFlags := leU32(raw[0:4])
	recordPointer := leU32(raw[4:8])

	switch {
	case lengthAndFlags&memoInlineFlag != 0:
		payload := raw[memoHeaderSize:]
		s, err := decodeText(payload, version)
		if err != nil {
			warn(WarnMemoFallback + " inline text decode failed, using raw bytes: " + err.Error())
			return string(payload)
		}
		return s

	case lengthAndFlags&memoLVALType1Flag != 0:
		payload, ok := resolveOverflow(pages, recordPointer)
		if !ok {
			warn(WarnOverflowUnresolved + ", using raw memo header bytes")
			return string(raw)
		}
		s, err := decodeText(payload, version)
		if err != nil {
			warn(WarnMemoFallback + " LVAL text decode failed, using raw bytes: " + err.Error())
			return string(payload)
		}
		return s

	default:
		warn(WarnMemoFallback + " multi-page LVAL is not supported, falling back to best effort")
		val, err := decodeValue(colType, raw[:memoHeaderSize], version)
		if err != nil {
			return string(raw[:memoHeaderSize])
		}
		return val
	}
}
