// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

// fileHeaderVersionOffset is the byte offset within the first page of
// the single version byte that selects the Jet dialect.
const fileHeaderVersionOffset = 0x14

// fileHeaderMagic is the two-byte generic database-definition page
// marker every Jet/Access file starts with, ahead of the TDEF (02 01)
// and data (01 01) page magics used for every other page in the file.
var fileHeaderMagic = [2]byte{0x00, 0x01}

// readFileHeader verifies the leading signature and derives the
// dialect and page size from the first page of buf.
func readFileHeader(buf []byte) (Version, uint32, error) {
	if len(buf) < fileHeaderVersionOffset+1 {
		return 0, 0, ErrMalformedBuffer
	}

	if buf[0] != fileHeaderMagic[0] || buf[1] != fileHeaderMagic[1] {
		return 0, 0, ErrMalformedBuffer
	}

	versionByte := buf[fileHeaderVersionOffset]
	var version Version
	switch versionByte {
	case 0:
		version = Version3
	case 1:
		version = Version4
	case 2:
		version = Version5
	case 3:
		version = Version2010
	default:
		return 0, 0, ErrUnknownVersion
	}

	return version, version.PageSize(), nil
}
