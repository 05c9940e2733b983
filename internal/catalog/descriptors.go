package catalog

import "burkeqldb/internal/record"

// systableDescriptor describes _tables(object_id, name, type,
// first_page_id, last_page_id), per
// original_source/src/system/systable.c's systable_get_record_desc.
var systableDescriptor = mustDescriptor([]record.Column{
	{Name: "object_id", Type: record.BigInt, Colnum: 0, MaxLen: 8, NotNull: true},
	{Name: "name", Type: record.Varchar, Colnum: 1, MaxLen: 50, NotNull: true},
	{Name: "type", Type: record.Char, Colnum: 2, MaxLen: 1, NotNull: true},
	{Name: "first_page_id", Type: record.Int, Colnum: 3, MaxLen: 4, NotNull: true},
	{Name: "last_page_id", Type: record.Int, Colnum: 4, MaxLen: 4, NotNull: true},
})

// syscolumnDescriptor describes _columns(object_id, table_id, name,
// data_type, max_length, precision, scale, colnum, is_not_null), per
// original_source/src/system/syscolumn.c's syscolumn_get_record_desc.
// precision/scale are nullable: this engine never stores fractional data
// types (spec.md has no DECIMAL/FLOAT), so they are always null but the
// columns exist for forward compatibility with the bootstrap catalog shape.
var syscolumnDescriptor = mustDescriptor([]record.Column{
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

// syssequenceDescriptor describes _sequences(object_id, name, type,
// column_id, next_value, increment), per
// original_source/src/system/syssequence.c's syssequence_get_record_desc.
// column_id is nullable: a sequence not owned by any identity column (like
// the bootstrap object-id generator) has none.
var syssequenceDescriptor = mustDescriptor([]record.Column{
	{Name: "object_id", Type: record.BigInt, Colnum: 0, MaxLen: 8, NotNull: true},
	{Name: "name", Type: record.Varchar, Colnum: 1, MaxLen: 50, NotNull: true},
	{Name: "type", Type: record.Char, Colnum: 2, MaxLen: 1, NotNull: true},
	{Name: "column_id", Type: record.BigInt, Colnum: 3, MaxLen: 8},
	{Name: "next_value", Type: record.BigInt, Colnum: 4, MaxLen: 8, NotNull: true},
	{Name: "increment", Type: record.BigInt, Colnum: 5, MaxLen: 8, NotNull: true},
})

func mustDescriptor(cols []record.Column) *record.Descriptor {
	d, err := record.NewDescriptor(cols)
	if err != nil {
		panic(err)
	}
	return d
}

// Column indices used by Get/SetFirstPageID and Get/SetLastPageID; the
// setters use them for in-place updates.
const (
	systableColFirstPageID = 3
	systableColLastPageID  = 4
)
