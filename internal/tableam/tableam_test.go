package tableam

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"burkeqldb/internal/catalog"
	"burkeqldb/internal/fileio"
	"burkeqldb/internal/pager"
	"burkeqldb/internal/record"
)

func newTestManager(t *testing.T, frames int, pageSize uint32) *pager.Manager {
	t.Helper()
	reg := fileio.NewRegistry(pageSize)
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := reg.Open(fileio.FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return pager.NewManager(frames, pageSize, reg, zap.NewNop())
}

// registerTable is a minimal stand-in for a CREATE TABLE operation (out of
// scope per spec.md §1): it writes the _tables row and one _columns row
// per column directly, the way a DDL layer above tableam would.
func registerTable(t *testing.T, m *pager.Manager, objectID int64, name string, cols []record.Column) {
	t.Helper()

	tablesDesc := mustSystableDescForTest(t)
	tableRec, err := record.Fill(tablesDesc, []any{objectID, name, "u", int32(0), int32(0)}, []bool{false, false, false, false, false})
	if err != nil {
		t.Fatalf("Fill _tables row: %v", err)
	}
	if err := catalog.InsertRow(m, "_tables", tableRec); err != nil {
		t.Fatalf("InsertRow _tables: %v", err)
	}

	colsDesc := columnDescriptorForScan()
	for i, c := range cols {
		values := []any{
			int64(1000 + i), objectID, c.Name,
			uint8(c.Type), int16(c.MaxLen),
			nil, nil,
			uint8(c.Colnum), c.NotNull,
		}
		isnull := []bool{false, false, false, false, false, true, true, false, false}
		rec, err := record.Fill(colsDesc, values, isnull)
		if err != nil {
			t.Fatalf("Fill _columns row: %v", err)
		}
		if err := catalog.InsertRow(m, "_columns", rec); err != nil {
			t.Fatalf("InsertRow _columns: %v", err)
		}
	}
}

func mustSystableDescForTest(t *testing.T) *record.Descriptor {
	t.Helper()
	d, err := record.NewDescriptor([]record.Column{
		{Name: "object_id", Type: record.BigInt, Colnum: 0, MaxLen: 8, NotNull: true},
		{Name: "name", Type: record.Varchar, Colnum: 1, MaxLen: 50, NotNull: true},
		{Name: "type", Type: record.Char, Colnum: 2, MaxLen: 1, NotNull: true},
		{Name: "first_page_id", Type: record.Int, Colnum: 3, MaxLen: 4, NotNull: true},
		{Name: "last_page_id", Type: record.Int, Colnum: 4, MaxLen: 4, NotNull: true},
	})
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	return d
}

func TestOpen_LoadsColumnsInColnumOrder(t *testing.T) {
	m := newTestManager(t, 8, 4096)
	if err := catalog.InitDB(m); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	registerTable(t, m, 500, "widgets", []record.Column{
		{Name: "id", Type: record.Int, Colnum: 0, MaxLen: 4, NotNull: true},
		{Name: "label", Type: record.Varchar, Colnum: 1, MaxLen: 30},
	})

	tbl, err := Open(m, "widgets")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tbl.ObjectID != 500 {
		t.Errorf("ObjectID = %d, want 500", tbl.ObjectID)
	}
	if got := tbl.Desc.Columns[0].Name; got != "id" {
		t.Errorf("Columns[0].Name = %q, want id", got)
	}
	if got := tbl.Desc.Columns[1].Name; got != "label" {
		t.Errorf("Columns[1].Name = %q, want label", got)
	}
}

func TestInsertAndFullScan_RoundTrips(t *testing.T) {
	m := newTestManager(t, 8, 4096)
	if err := catalog.InitDB(m); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	registerTable(t, m, 501, "items", []record.Column{
		{Name: "id", Type: record.Int, Colnum: 0, MaxLen: 4, NotNull: true},
		{Name: "note", Type: record.Varchar, Colnum: 1, MaxLen: 30},
	})

	tbl, err := Open(m, "items")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := Insert(m, tbl, []any{i, "row"}, []bool{false, false}); err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
	}

	rows, err := FullScan(m, tbl)
	if err != nil {
		t.Fatalf("FullScan: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for i, r := range rows {
		if got := r.Values[0].(int32); got != int32(i+1) {
			t.Errorf("row %d id = %d, want %d (insertion order)", i, got, i+1)
		}
	}
}

func TestInsert_NullColumnRoundTrips(t *testing.T) {
	m := newTestManager(t, 8, 4096)
	if err := catalog.InitDB(m); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	registerTable(t, m, 502, "people", []record.Column{
		{Name: "id", Type: record.Int, Colnum: 0, MaxLen: 4, NotNull: true},
		{Name: "nickname", Type: record.Varchar, Colnum: 1, MaxLen: 20},
	})

	tbl, err := Open(m, "people")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Insert(m, tbl, []any{int32(1), nil}, []bool{false, true}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rows, err := FullScan(m, tbl)
	if err != nil {
		t.Fatalf("FullScan: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !rows[0].Isnull[1] {
		t.Error("nickname should be null")
	}
}
