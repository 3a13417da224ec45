// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// jetEpoch is the date-only base from which Jet DateTime values count
// whole days. The fractional remainder is the time of day, but it is
// measured from noon rather than midnight (see decodeDateTime); this
// follows the OLE Automation Date convention also used by
// mdbtools/jackcess (see DESIGN.md for the epoch decision).
var jetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// readUint8 reads a single byte.
func readUint8(b []byte) (uint8, error) {
	if len(b) < 1 {
		return 0, ErrOutsideBoundary
	}
	return b[0], nil
}

// readInt8 reads a signed byte.
func readInt8(b []byte) (int8, error) {
	v, err := readUint8(b)
	return int8(v), err
}

// readUint16 reads a little-endian uint16.
func readUint16(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint16(b), nil
}

// readInt16 reads a little-endian signed int16.
func readInt16(b []byte) (int16, error) {
	v, err := readUint16(b)
	return int16(v), err
}

// readUint32 reads a little-endian uint32.
func readUint32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint32(b), nil
}

// readInt32 reads a little-endian signed int32.
func readInt32(b []byte) (int32, error) {
	v, err := readUint32(b)
	return int32(v), err
}

// readUint64 reads a little-endian uint64.
func readUint64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readFloat32 reads a little-endian IEEE-754 single.
func readFloat32(b []byte) (float32, error) {
	v, err := readUint32(b)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// readFloat64 reads a little-endian IEEE-754 double.
func readFloat64(b []byte) (float64, error) {
	v, err := readUint64(b)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ErrOutsideBoundary is returned when a primitive read would run past
// the end of the supplied slice.
var ErrOutsideBoundary = fmt.Errorf("msjet: read outside buffer boundary")

// decodeMoney decodes the 8-byte fixed-point Money representation:
// low 32 bits unsigned, high 32 bits signed, scaled by 1/10000.
func decodeMoney(b []byte) (float64, error) {
	raw, err := readUint64(b)
	if err != nil {
		return 0, err
	}
	low := uint32(raw)
	high := int32(raw >> 32)
	return (float64(low) + float64(high)*4294967296.0) / 10000.0, nil
}

// decodeDateTime decodes a Float64 day count into an ISO-8601 string.
// The integer part is the day offset from jetEpoch; the fractional
// part is the time of day measured from noon, not midnight (an
// encoded 0.0 is noon on the epoch day), so it is shifted by half a
// day and wrapped before being converted to (hours, minutes, seconds)
// by successive multiplication and flooring, as the source format
// does.
func decodeDateTime(raw float64) string {
	days := math.Floor(raw)
	frac := raw - days

	shifted := frac + 0.5
	if shifted >= 1.0 {
		shifted -= 1.0
	}

	hoursF := shifted * 24
	hours := math.Floor(hoursF)

	minutesF := (hoursF - hours) * 60
	minutes := math.Floor(minutesF)

	secondsF := (minutesF - minutes) * 60
	seconds := math.Floor(secondsF)

	t := jetEpoch.AddDate(0, 0, int(days))
	t = t.Add(time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second)
	return t.Format("2006-01-02T15:04:05.000Z")
}

// decodeGUID formats 16 raw bytes as a lowercase hyphenated GUID. No
// byte-order flip is applied to any group: this is the raw-bytes-to-
// hex rendering the source defines, which diverges from RFC 4122
// canonical formatting.
func decodeGUID(b []byte) (string, error) {
	if len(b) < 16 {
		return "", ErrOutsideBoundary
	}
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		b[0:4], b[4:6], b[6:8], b[8:10], b[10:16]), nil
}

// decodeText decodes a variable-length Text (type 10) payload
// according to the dialect's compressed-Unicode convention.
func decodeText(b []byte, version Version) (string, error) {
	if version == Version3 {
		return string(b), nil
	}

	if len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE)) {
		dec := charmap.Windows1252.NewDecoder()
		out, err := dec.Bytes(b[2:])
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeValue decodes a typed value from raw bytes, given the column's
// type code and the file's dialect. Memo (type 12) is never routed
// through here directly (see memo.go), but falls back to Text when
// handed raw bytes by a caller that already resolved the LVAL chain.
func decodeValue(colType ColumnType, raw []byte, version Version) (Value, error) {
	switch colType {
	case ColTypeBoolean:
		// Boolean has no payload; presence/absence is the null bitmap
		// itself (see record.go).
		return true, nil
	case ColTypeInt8:
		v, err := readInt8(raw)
		return int64(v), err
	case ColTypeInt16:
		v, err := readInt16(raw)
		return int64(v), err
	case ColTypeInt32:
		v, err := readInt32(raw)
		return int64(v), err
	case ColTypeMoney:
		return decodeMoney(raw)
	case ColTypeFloat32:
		v, err := readFloat32(raw)
		return float64(v), err
	case ColTypeFloat64:
		return readFloat64(raw)
	case ColTypeDateTime:
		v, err := readFloat64(raw)
		if err != nil {
			return nil, err
		}
		return decodeDateTime(v), nil
	case ColTypeBinary:
		return string(raw), nil
	case ColTypeText:
		return decodeText(raw, version)
	case ColTypeOLE:
		return string(raw), nil
	case ColTypeMemo:
		return decodeText(raw, version)
	case ColTypeGUID:
		return decodeGUID(raw)
	case ColTypeBit96Bytes17:
		if len(raw) < 17 {
			return "", ErrOutsideBoundary
		}
		return string(raw[:17]), nil
	case ColTypeComplex:
		v, err := readInt32(raw)
		return int64(v), err
	default:
		return nil, fmt.Errorf("msjet: unsupported column type %d (%s)", colType, colType)
	}
}
