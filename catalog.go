// Copyright 2024 The msjet authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that
// can be found in the LICENSE file.

package msjet

import "fmt"

// catalogTypeUserTable is the MSysObjects Type value identifying a
// user table, as opposed to queries, forms, or system objects.
const catalogTypeUserTable = 1

// systemTableFlags are the MSysObjects Flags bit combinations that
// mark a nominally Type==1 entry as a hidden system table rather than
// a user table, in both their unsigned and sign-extended int32 forms.
var systemTableFlags = map[int64]bool{
	int64(flagSystemTableHidden):  true,
	int64(flagSystemTableHidden2): true,
	int64(flagSystemTableHidden3): true,
}

// catalogEntry is one accepted MSysObjects row: a user table's name
// paired with the TDEF page number that roots its definition.
type catalogEntry struct {
	name     string
	tdefPage uint32
}

// linkDataPages scans every classified page and groups data pages by
// the TDEF page number each one declares as its owner, per spec.md
// §4.9 step 3. Data pages owned by a page that never turned out to be
// a TDEF page are silently ignored: they may belong to a temporary or
// unrecognized structure this decoder need not model.
func linkDataPages(pages []page) map[uint32][]uint32 {
	byOwner := make(map[uint32][]uint32)
	for i, p := range pages {
		if p.kind != PageData {
			continue
		}
		owner, err := pageOwner(p.data)
		if err != nil {
			continue
		}
		if int(owner) >= len(pages) || pages[owner].kind != PageTableDef {
			continue
		}
		byOwner[owner] = append(byOwner[owner], uint32(i))
	}
	return byOwner
}

// buildCatalog decodes the MSysObjects table rooted at CatalogPageIndex
// and returns the user tables it lists, in the order their rows were
// encountered.
func buildCatalog(pages []page, dataPagesByOwner map[uint32][]uint32, version Version, warn func(string)) ([]catalogEntry, error) {
	def, lookup, err := parseTableDef(pages, CatalogPageIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogMissing, err)
	}
	_ = lookup

	requiredCols := map[string]bool{"Name": false, "Type": false, "Flags": false, "Id": false}
	for _, c := range def.columns {
		if _, ok := requiredCols[c.name]; ok {
			requiredCols[c.name] = true
		}
	}
	for name, found := range requiredCols {
		if !found {
			return nil, fmt.Errorf("%w: catalog table definition is missing column %q", ErrCatalogMissing, name)
		}
	}

	rows, err := decodeRows(pages, dataPagesByOwner[CatalogPageIndex], def, version, warn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogMissing, err)
	}

	var entries []catalogEntry
	for _, row := range rows {
		name, _ := row.Data["Name"].(string)
		typeVal, hasType := asInt64(row.Data["Type"])
		flagsVal, hasFlags := asInt64(row.Data["Flags"])
		idVal, hasID := asInt64(row.Data["Id"])

		if name == EmptyString || !hasType || !hasFlags || !hasID {
			warn(fmt.Sprintf("%s %d missing a required field, skipping", WarnCatalogRowSkipped, row.RowNumber))
			continue
		}
		if typeVal != catalogTypeUserTable {
			continue
		}
		if systemTableFlags[flagsVal] {
			continue
		}
		entries = append(entries, catalogEntry{name: name, tdefPage: uint32(idVal)})
	}
	return entries, nil
}

func asInt64(v Value) (int64, bool) {
	i, ok := v.(int64)
	return i, ok
}
