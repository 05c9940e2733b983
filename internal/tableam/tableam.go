// Package tableam is the table access layer: given a table name, it loads
// the table's column descriptor from the catalog and performs full scans
// and inserts against its heap, per spec.md §4.7. It is the layer a SQL
// executor (out of scope, spec.md §1 Non-goals) would sit on top of.
package tableam

import (
	"fmt"
	"sort"

	"burkeqldb/internal/catalog"
	"burkeqldb/internal/fileio"
	"burkeqldb/internal/pager"
	"burkeqldb/internal/record"
	"burkeqldb/internal/storeerr"
)

// Table binds a table's object id, heap location, and column descriptor,
// loaded once from the catalog via Open.
type Table struct {
	Name     string
	ObjectID int64
	Desc     *record.Descriptor
}

// Open loads name's column descriptor from _columns by scanning for rows
// whose table_id matches name's object_id in _tables, then sorting by
// colnum to recover declaration order (original_source has no secondary
// index on _columns, so this is a linear scan — spec.md carries no
// indexing Non-goal exception for system catalogs either).
func Open(m *pager.Manager, name string) (*Table, error) {
	objectID, err := catalog.GetObjectID(m, name)
	if err != nil {
		return nil, err
	}

	colsFirstPageID, err := catalog.GetFirstPageID(m, "_columns")
	if err != nil {
		return nil, err
	}
	rows, err := catalog.ScanChain(m, fileio.FileData, colsFirstPageID, columnDescriptorForScan())
	if err != nil {
		return nil, err
	}

	var cols []record.Column
	for _, r := range rows {
		if r.Values[1].(int64) != objectID {
			continue
		}
		cols = append(cols, record.Column{
			Name:    r.Values[2].(string),
			Type:    record.DataType(r.Values[3].(uint8)),
			Colnum:  int(r.Values[7].(uint8)),
			MaxLen:  int(r.Values[4].(int16)),
			NotNull: r.Values[8].(bool),
		})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s has no registered columns", storeerr.ErrCatalogMissing, name)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Colnum < cols[j].Colnum })

	desc, err := record.NewDescriptor(cols)
	if err != nil {
		return nil, err
	}
	return &Table{Name: name, ObjectID: objectID, Desc: desc}, nil
}

// columnDescriptorForScan returns the same shape as catalog's unexported
// syscolumnDescriptor; tableam builds its own copy since it cannot import
// catalog's private declarations, and the shape is part of the
// spec-pinned catalog layout rather than an implementation detail.
func columnDescriptorForScan() *record.Descriptor {
	d, err := record.NewDescriptor([]record.Column{
		{Name: "object_id", Type: record.BigInt, Colnum: 0, MaxLen: 8, NotNull: true},
		{Name: "table_id", Type: record.BigInt, Colnum: 1, MaxLen: 8, NotNull: true},
		{Name: "name", Type: record.Varchar, Colnum: 2, MaxLen: 50, NotNull: true},
		{Name: "data_type", Type: record.TinyInt, Colnum: 3, MaxLen: 1, NotNull: true},
		{Name: "max_length", Type: record.SmallInt, Colnum: 4, MaxLen: 2, NotNull: true},
		{Name: "precision", Type: record.TinyInt, Colnum: 5, MaxLen: 1},
		{Name: "scale", Type: record.TinyInt, Colnum: 6, MaxLen: 1},
		{Name: "colnum", Type: record.TinyInt, Colnum: 7, MaxLen: 1, NotNull: true},
		{Name: "is_not_null", Type: record.Bool, Colnum: 8, MaxLen: 1, NotNull: true},
	})
	if err != nil {
		panic(err)
	}
	return d
}

// FullScan reads every row of t's heap in insertion order, per spec.md §4.7
// and invariant 7.
func FullScan(m *pager.Manager, t *Table) ([]catalog.Row, error) {
	firstPageID, err := catalog.GetFirstPageID(m, t.Name)
	if err != nil {
		return nil, err
	}
	return catalog.ScanChain(m, fileio.FileData, firstPageID, t.Desc)
}

// Insert encodes values/isnull with t's descriptor and appends the record
// to t's heap, allocating the heap's first page on the table's very first
// insert and splitting the tail page when it is full (spec.md §4.7, §9
// open question 6).
func Insert(m *pager.Manager, t *Table, values []any, isnull []bool) error {
	rec, err := record.Fill(t.Desc, values, isnull)
	if err != nil {
		return err
	}
	return catalog.InsertRow(m, t.Name, rec)
}
