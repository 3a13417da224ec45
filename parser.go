// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import (
	"fmt"
	"io"
	"sync"

	"github.com/jetdecode/msjet/internal/log"
)

// Options controls how a Parser is constructed. The zero value is a
// ready-to-use default.
type Options struct {
	// LogWriter receives warning and debug output. Defaults to
	// io.Discard when nil.
	LogWriter io.Writer
	// LogLevel is the minimum level that reaches LogWriter. Defaults
	// to log.LevelWarn.
	LogLevel log.Level
}

// Parser decodes the user tables of a single Jet/Access database held
// entirely in memory. It never mutates or writes the input buffer.
type Parser struct {
	logger *log.Helper

	version  Version
	pageSize uint32
	pages    []page

	dataPagesByOwner map[uint32][]uint32

	catalogOnce sync.Once
	catalog     map[string]uint32
	tableOrder  []string
	catalogErr  error

	defCacheMu sync.Mutex
	defCache   map[uint32]*tableDef

	warnMu   sync.Mutex
	warnings []string
}

// New parses buf, which must hold a complete Jet/Access database
// image, using default Options.
func New(buf []byte) (*Parser, error) {
	return NewWithOptions(buf, Options{})
}

// NewWithOptions parses buf using the supplied Options.
func NewWithOptions(buf []byte, opts Options) (*Parser, error) {
	w := opts.LogWriter
	if w == nil {
		w = io.Discard
	}
	logger := log.NewHelper(log.NewFilter(log.NewStdLogger(w), log.FilterLevel(opts.LogLevel)))

	version, pageSize, err := readFileHeader(buf)
	if err != nil {
		return nil, err
	}
	pages, err := classifyPages(buf, pageSize)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		logger:           logger,
		version:          version,
		pageSize:         pageSize,
		pages:            pages,
		dataPagesByOwner: linkDataPages(pages),
		defCache:         make(map[uint32]*tableDef),
	}
	if err := p.ensureCatalog(); err != nil {
		return nil, err
	}
	return p, nil
}

// Version reports the Jet dialect detected in the file header.
func (p *Parser) Version() Version { return p.version }

// Warnings returns every recoverable anomaly logged while decoding,
// in the order encountered: a running log of per-row conditions a
// caller may want to surface without treating the parse as having
// failed.
func (p *Parser) Warnings() []string {
	p.warnMu.Lock()
	defer p.warnMu.Unlock()
	out := make([]string, len(p.warnings))
	copy(out, p.warnings)
	return out
}

func (p *Parser) warn(msg string) {
	p.warnMu.Lock()
	p.warnings = append(p.warnings, msg)
	p.warnMu.Unlock()
	p.logger.Warnf("%s", msg)
}

func (p *Parser) ensureCatalog() error {
	p.catalogOnce.Do(func() {
		entries, err := buildCatalog(p.pages, p.dataPagesByOwner, p.version, p.warn)
		if err != nil {
			p.catalogErr = err
			return
		}
		p.catalog = make(map[string]uint32, len(entries))
		p.tableOrder = make([]string, 0, len(entries))
		for _, e := range entries {
			if _, dup := p.catalog[e.name]; dup {
				continue
			}
			p.catalog[e.name] = e.tdefPage
			p.tableOrder = append(p.tableOrder, e.name)
		}
	})
	return p.catalogErr
}

// TableNames returns the user table names this file's catalog lists,
// in catalog-scan order.
func (p *Parser) TableNames() ([]string, error) {
	if err := p.ensureCatalog(); err != nil {
		return nil, err
	}
	out := make([]string, len(p.tableOrder))
	copy(out, p.tableOrder)
	return out, nil
}

func (p *Parser) tableDefFor(tdefPage uint32) (*tableDef, error) {
	p.defCacheMu.Lock()
	defer p.defCacheMu.Unlock()
	if def, ok := p.defCache[tdefPage]; ok {
		return def, nil
	}
	def, _, err := parseTableDef(p.pages, tdefPage)
	if err != nil {
		return nil, err
	}
	p.defCache[tdefPage] = def
	return def, nil
}

// ParseTable decodes every live row of the named user table.
func (p *Parser) ParseTable(name string) ([]Row, error) {
	if err := p.ensureCatalog(); err != nil {
		return nil, err
	}
	tdefPage, ok := p.catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}

	dataPages := p.dataPagesByOwner[tdefPage]
	if len(dataPages) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyTable, name)
	}

	def, err := p.tableDefFor(tdefPage)
	if err != nil {
		return nil, err
	}
	return decodeRows(p.pages, dataPages, def, p.version, p.warn)
}

// RowCursor streams one user table's rows without materializing the
// whole table in memory, mirroring bufio.Scanner's Next/Row/Err shape.
type RowCursor struct {
	p         *Parser
	def       *tableDef
	pages     []uint32
	pageIdx   int
	slots     []recordSlot
	slotIdx   int
	rowNumber int
	cur       Row
	err       error
}

// ParseTableSeq returns a cursor over the named table's live rows,
// decoded lazily one at a time as Next is called.
func (p *Parser) ParseTableSeq(name string) (*RowCursor, error) {
	if err := p.ensureCatalog(); err != nil {
		return nil, err
	}
	tdefPage, ok := p.catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	dataPages := p.dataPagesByOwner[tdefPage]
	if len(dataPages) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyTable, name)
	}
	def, err := p.tableDefFor(tdefPage)
	if err != nil {
		return nil, err
	}
	return &RowCursor{p: p, def: def, pages: dataPages, rowNumber: 1}, nil
}

// Next advances the cursor and reports whether a row is available.
func (c *RowCursor) Next() bool {
	for {
		if c.slotIdx >= len(c.slots) {
			if !c.advancePage() {
				return false
			}
			continue
		}
		slot := c.slots[c.slotIdx]
		c.slotIdx++

		var rec []byte
		if slot.overflow {
			data, ok := resolveOverflow(c.p.pages, slot.overflowPtr)
			if !ok {
				c.p.warn(WarnOverflowUnresolved + ", skipping row")
				continue
			}
			rec = data
		} else {
			pg := c.p.pages[c.pages[c.pageIdx-1]]
			if slot.start > slot.end || int(slot.end) > len(pg.data) {
				c.p.warn(fmt.Sprintf("%s: record slot out of range, skipping row", WarnRecordSkipped))
				continue
			}
			rec = pg.data[slot.start:slot.end]
		}

		data, err := decodeRecord(rec, c.def, c.p.version, c.p.pages, c.p.warn)
		if err != nil {
			c.p.warn(fmt.Sprintf("%s: %v", WarnRecordSkipped, err))
			continue
		}
		c.cur = Row{RowNumber: c.rowNumber, Data: data}
		c.rowNumber++
		return true
	}
}

func (c *RowCursor) advancePage() bool {
	if c.pageIdx >= len(c.pages) {
		return false
	}
	pn := c.pages[c.pageIdx]
	c.pageIdx++
	if int(pn) >= len(c.p.pages) {
		c.p.warn(fmt.Sprintf("%s %d out of range, skipping", WarnDataPageUnparseable, pn))
		c.slots = nil
		c.slotIdx = 0
		return true
	}
	slots, err := parseDataPage(c.p.pages[pn])
	if err != nil {
		c.p.warn(fmt.Sprintf("%s %d unparseable, skipping: %v", WarnDataPageUnparseable, pn, err))
		c.slots = nil
		c.slotIdx = 0
		return true
	}
	c.slots = slots
	c.slotIdx = 0
	return true
}

// Row returns the row most recently produced by Next.
func (c *RowCursor) Row() Row { return c.cur }

// Err always returns nil: per-row failures are logged as warnings and
// skipped rather than surfaced as a terminal cursor error.
func (c *RowCursor) Err() error { return c.err }
