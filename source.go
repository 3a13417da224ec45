// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// OpenFile memory-maps the file at path read-only and parses it with
// default Options. The returned Parser's Close method unmaps the file;
// callers that need custom Options should mmap the file themselves and
// call NewWithOptions directly. The core decoder never depends on this
// convenience constructor: it only ever operates on an in-memory []byte.
func OpenFile(path string) (*MappedParser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("msjet: %w", err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("msjet: mmap %s: %w", path, err)
	}

	p, err := New([]byte(m))
	if err != nil {
		_ = m.Unmap()
		return nil, err
	}
	return &MappedParser{Parser: p, mapping: m}, nil
}

// MappedParser is a Parser backed by a memory-mapped file. Close must
// be called to release the mapping once the caller is done decoding.
type MappedParser struct {
	*Parser
	mapping mmap.MMap
}

// Close unmaps the underlying file. The MappedParser must not be used
// afterward.
func (m *MappedParser) Close() error {
	return m.mapping.Unmap()
}
