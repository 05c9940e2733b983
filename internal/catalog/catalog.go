// Package catalog implements the system catalog: _tables, _columns, and
// _sequences, the boot page, and database bootstrap (spec.md §6),
// grounded in original_source/src/system/{initdb,boot,systable,syscolumn,
// syssequence}.c. It also exposes the generic insert-with-split-retry and
// chain-scan helpers that internal/tableam reuses for ordinary user
// tables.
package catalog

import (
	"encoding/binary"
	"errors"
	"fmt"

	"burkeqldb/internal/fileio"
	"burkeqldb/internal/pager"
	"burkeqldb/internal/record"
	"burkeqldb/internal/storeerr"
)

// Row is one decoded catalog (or user-table) row: Values/Isnull indexed by
// the descriptor's Colnum, exactly as record.Defill returns them.
type Row struct {
	Values []any
	Isnull []bool
}

// ScanChain walks the page chain starting at firstPageID, decoding every
// record with d and following NextPageID until it hits zero. A zero
// firstPageID (an empty heap) returns no rows.
func ScanChain(m *pager.Manager, fileID fileio.FileID, firstPageID uint32, d *record.Descriptor) ([]Row, error) {
	var rows []Row
	pageID := firstPageID
	for pageID != 0 {
		idx, err := m.Request(pager.Tag{FileID: fileID, PageID: pageID})
		if err != nil {
			return nil, err
		}
		page := m.Frame(idx)
		n := page.NumRecords()
		for i := uint16(0); i < n; i++ {
			values, isnull, err := record.Defill(d, page.Record(i))
			if err != nil {
				m.Release(idx)
				return nil, err
			}
			rows = append(rows, Row{Values: values, Isnull: isnull})
		}
		next := page.NextPageID()
		m.Release(idx)
		pageID = next
	}
	return rows, nil
}

// insertIntoChain inserts rec into the page currently known as the heap's
// last page (lastPageID==0 means the heap is empty and must be allocated
// fresh). It returns the (possibly new, if a split occurred) last page id.
// This implements the retry-on-split loop common to
// systableinit_insert_record/syscolumninit_insert_record/
// syssequenceinit_insert_record: look up the last page, try to insert,
// split and retry on the new tail page if full.
func insertIntoChain(m *pager.Manager, fileID fileio.FileID, lastPageID uint32, rec []byte) (uint32, error) {
	var idx int
	var err error
	if lastPageID == 0 {
		idx, err = m.Allocate(fileID)
		if err != nil {
			return 0, err
		}
		m.Frame(idx).InitDataPage()
		m.MarkDirty(idx)
	} else {
		idx, err = m.Request(pager.Tag{FileID: fileID, PageID: lastPageID})
		if err != nil {
			return 0, err
		}
	}

	for {
		page := m.Frame(idx)
		insErr := page.Insert(rec)
		if insErr == nil {
			m.MarkDirty(idx)
			pageID := page.PageID()
			m.Release(idx)
			return pageID, nil
		}
		if !errors.Is(insErr, storeerr.ErrPageFull) {
			m.Release(idx)
			return 0, insErr
		}

		newIdx, splitErr := m.PageSplit(idx)
		if splitErr != nil {
			return 0, splitErr
		}
		idx = newIdx
	}
}

// SystableScan returns every row of _tables, in insertion order.
func SystableScan(m *pager.Manager) ([]Row, error) {
	return ScanChain(m, fileio.FileData, FirstSystablePageID, systableDescriptor)
}

// GetObjectID returns the object_id of the named table, or
// storeerr.ErrCatalogMissing if no such table is registered.
func GetObjectID(m *pager.Manager, name string) (int64, error) {
	row, err := findSystableRow(m, name)
	if err != nil {
		return 0, err
	}
	return row.Values[0].(int64), nil
}

// GetFirstPageID returns the first_page_id of the named table's heap (0 if
// it has never been populated).
func GetFirstPageID(m *pager.Manager, name string) (uint32, error) {
	row, err := findSystableRow(m, name)
	if err != nil {
		return 0, err
	}
	return uint32(row.Values[systableColFirstPageID].(int32)), nil
}

// GetLastPageID returns the last_page_id of the named table's heap (0 if
// it has never been populated).
func GetLastPageID(m *pager.Manager, name string) (uint32, error) {
	row, err := findSystableRow(m, name)
	if err != nil {
		return 0, err
	}
	return uint32(row.Values[systableColLastPageID].(int32)), nil
}

func findSystableRow(m *pager.Manager, name string) (Row, error) {
	rows, err := SystableScan(m)
	if err != nil {
		return Row{}, err
	}
	for _, r := range rows {
		if r.Values[1].(string) == name {
			return r, nil
		}
	}
	return Row{}, fmt.Errorf("%w: %s", storeerr.ErrCatalogMissing, name)
}

// SetFirstPageID updates the named table's first_page_id column in place.
func SetFirstPageID(m *pager.Manager, name string, pageID uint32) error {
	return setSystablePageIDColumn(m, name, systableColFirstPageID, pageID)
}

// SetLastPageID updates the named table's last_page_id column in place.
func SetLastPageID(m *pager.Manager, name string, pageID uint32) error {
	return setSystablePageIDColumn(m, name, systableColLastPageID, pageID)
}

// setSystablePageIDColumn performs an in-place point update of a single
// fixed int32 column in the _tables row matching name, grounded in
// systable_set_first_pageid/systable_set_last_pageid's scan-and-patch
// approach (there is no update operation; this duplicates the scan).
func setSystablePageIDColumn(m *pager.Manager, name string, colnum int, newValue uint32) error {
	pageID := uint32(FirstSystablePageID)
	for pageID != 0 {
		idx, err := m.Request(pager.Tag{FileID: fileio.FileData, PageID: pageID})
		if err != nil {
			return err
		}
		page := m.Frame(idx)
		n := page.NumRecords()
		for i := uint16(0); i < n; i++ {
			rec := page.Record(i)
			values, _, err := record.Defill(systableDescriptor, rec)
			if err != nil {
				m.Release(idx)
				return err
			}
			if values[1].(string) != name {
				continue
			}
			off, err := record.ComputeOffsetToColumn(systableDescriptor, rec, colnum)
			if err != nil {
				m.Release(idx)
				return err
			}
			binary.LittleEndian.PutUint32(rec[off:], newValue)
			m.MarkDirty(idx)
			m.Release(idx)
			return nil
		}
		next := page.NextPageID()
		m.Release(idx)
		pageID = next
	}
	return fmt.Errorf("%w: %s", storeerr.ErrCatalogMissing, name)
}

// InsertRow inserts rec (already fill'd by the caller) into tableName's
// heap, allocating its first page on the table's very first insert and
// updating _tables.first_page_id/last_page_id as needed. This is the
// general-purpose counterpart of initColumns/initSequences, reused by
// internal/tableam for ordinary user tables (spec.md §4.7).
func InsertRow(m *pager.Manager, tableName string, rec []byte) error {
	firstPageID, err := GetFirstPageID(m, tableName)
	if err != nil {
		return err
	}
	lastPageID, err := GetLastPageID(m, tableName)
	if err != nil {
		return err
	}

	newLast, err := insertIntoChain(m, fileio.FileData, lastPageID, rec)
	if err != nil {
		return err
	}

	if firstPageID == 0 {
		if err := SetFirstPageID(m, tableName, newLast); err != nil {
			return err
		}
	}
	if newLast != lastPageID {
		if err := SetLastPageID(m, tableName, newLast); err != nil {
			return err
		}
	}
	return nil
}

// InitDB bootstraps a fresh data file: the boot page, then the _tables,
// _columns, and _sequences rows describing the catalog itself, per
// original_source's initdb(). If the file is already initialized (the boot
// page exists and carries a nonzero major version), InitDB is a no-op.
func InitDB(m *pager.Manager) error {
	reg := m.Registry()
	if reg.NextPageID(fileio.FileData) > BootPageID {
		info, err := readBootInfo(m)
		if err != nil {
			return err
		}
		if info.MajorVersion > 0 {
			return nil
		}
	}

	if err := initBootPage(m); err != nil {
		return err
	}
	if err := initTables(m); err != nil {
		return err
	}
	if err := initColumns(m); err != nil {
		return err
	}
	if err := initSequences(m); err != nil {
		return err
	}
	return nil
}

func buildSystableRow(objectID int64, name, typ string, firstPageID, lastPageID int32) ([]byte, error) {
	values := []any{objectID, name, typ, firstPageID, lastPageID}
	isnull := []bool{false, false, false, false, false}
	return record.Fill(systableDescriptor, values, isnull)
}

// initTables inserts the three rows describing _tables, _columns, and
// _sequences into the _tables heap itself. The first insert (for
// "_tables") is special-cased: it allocates the heap's very first page
// directly, since systable_get_last_pageid would otherwise have nothing to
// scan yet (original_source/src/system/systable.c,
// systableinit_insert_record).
func initTables(m *pager.Manager) error {
	rec0, err := buildSystableRow(1, "_tables", "s", FirstSystablePageID, FirstSystablePageID)
	if err != nil {
		return err
	}
	idx, err := m.Allocate(fileio.FileData)
	if err != nil {
		return err
	}
	if m.Frame(idx).PageID() != FirstSystablePageID {
		return fmt.Errorf("catalog: expected first _tables page id %d, got %d", FirstSystablePageID, m.Frame(idx).PageID())
	}
	m.Frame(idx).InitDataPage()
	if err := m.Frame(idx).Insert(rec0); err != nil {
		m.Release(idx)
		return err
	}
	m.MarkDirty(idx)
	m.Release(idx)

	tablesLastPageID := uint32(FirstSystablePageID)
	rows := []struct {
		objectID int64
		name     string
	}{
		{2, "_columns"},
		{3, "_sequences"},
	}
	for _, row := range rows {
		rec, err := buildSystableRow(row.objectID, row.name, "s", 0, 0)
		if err != nil {
			return err
		}
		newLast, err := insertIntoChain(m, fileio.FileData, tablesLastPageID, rec)
		if err != nil {
			return err
		}
		if newLast != tablesLastPageID {
			tablesLastPageID = newLast
			if err := SetLastPageID(m, "_tables", tablesLastPageID); err != nil {
				return err
			}
		}
	}
	return nil
}

type columnSpec struct {
	objectID int64
	tableID  int64
	name     string
	dataType record.DataType
	maxLen   int16
	colnum   uint8
	notNull  bool
}

// columnBootstrap enumerates the 20 rows describing _tables, _columns, and
// _sequences columns, in the exact object-id and declaration order of
// original_source/src/system/initdb.c's init_columns, with one addition:
// initdb.c's own init_columns never emits a metadata row for
// _sequences.type even though syssequence.c's own
// syssequence_get_record_desc declares that column at colnum 2. That row
// is added here (object id 20) so _columns actually describes every
// column _sequences.type DEFILL_RECORD relies on; see DESIGN.md's
// `_columns` bootstrap row-count note for why 20, not the 22 spec.md's prose states, is the
// grounded count. Object ids past the added row shift up by one
// accordingly, and the bootstrap sys_object_id sequence (initSequences)
// now takes object id 24 rather than 23.
var columnBootstrap = []columnSpec{
	{4, 1, "object_id", record.BigInt, 8, 0, true},
	{5, 1, "name", record.Varchar, 50, 1, true},
	{6, 1, "type", record.Char, 1, 2, true},
	{7, 1, "first_page_id", record.Int, 4, 3, true},
	{8, 1, "last_page_id", record.Int, 4, 4, true},

	{9, 2, "object_id", record.BigInt, 8, 0, true},
	{10, 2, "table_id", record.BigInt, 8, 1, true},
	{11, 2, "name", record.Varchar, 50, 2, true},
	{12, 2, "data_type", record.TinyInt, 1, 3, true},
	{13, 2, "max_length", record.SmallInt, 2, 4, true},
	{14, 2, "precision", record.TinyInt, 1, 5, true},
	{15, 2, "scale", record.TinyInt, 1, 6, true},
	{16, 2, "colnum", record.TinyInt, 1, 7, true},
	{17, 2, "is_not_null", record.TinyInt, 1, 8, true},

	{18, 3, "object_id", record.BigInt, 8, 0, true},
	{19, 3, "name", record.Varchar, 50, 1, true},
	{20, 3, "type", record.Char, 1, 2, true},
	{21, 3, "column_id", record.BigInt, 8, 3, false},
	{22, 3, "next_value", record.BigInt, 8, 4, true},
	{23, 3, "increment", record.BigInt, 8, 5, true},
}

// initColumns populates the _columns heap with one row per column of
// _tables, _columns, and _sequences. precision/scale are always null:
// this engine has no fractional data type for them to describe.
func initColumns(m *pager.Manager) error {
	for _, c := range columnBootstrap {
		values := []any{
			c.objectID, c.tableID, c.name,
			uint8(c.dataType), int16(c.maxLen),
			nil, nil,
			c.colnum, c.notNull,
		}
		isnull := []bool{false, false, false, false, false, true, true, false, false}
		rec, err := record.Fill(syscolumnDescriptor, values, isnull)
		if err != nil {
			return err
		}
		if err := InsertRow(m, "_columns", rec); err != nil {
			return err
		}
	}
	return nil
}

// initSequences populates the _sequences heap with the single bootstrap
// object-id generator, matching initdb.c's init_sequences. Its object id
// (24) and starting next_value (25) are one past the last _columns
// metadata row, which is itself one higher than initdb.c's literal
// numbering because of the added _sequences.type row in columnBootstrap.
func initSequences(m *pager.Manager) error {
	values := []any{int64(24), "sys_object_id", "s", nil, int64(25), int64(1)}
	isnull := []bool{false, false, false, true, false, false}
	rec, err := record.Fill(syssequenceDescriptor, values, isnull)
	if err != nil {
		return err
	}
	return InsertRow(m, "_sequences", rec)
}
