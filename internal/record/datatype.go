// Package record implements the row codec: fill_record/defill_record and
// their supporting length computations (spec.md §4.2), grounded in
// original_source/src/storage/record.c.
package record

// DataType enumerates the column type tags. The parenthetical widths
// below are the fixed on-disk byte width for everything except CHAR and
// VARCHAR, whose width comes from the column's MaxLen.
type DataType uint8

const (
	TinyInt  DataType = iota + 1 // 1 byte
	SmallInt                     // 2 bytes
	Int                          // 4 bytes
	BigInt                       // 8 bytes
	Bool                         // 1 byte
	Char                         // MaxLen bytes, fixed-width
	Varchar                      // variable, 2-byte length prefix + up to MaxLen bytes
)

// IsVariable reports whether values of this type are var-length encoded
// (length-prefixed) rather than fixed-width.
func (t DataType) IsVariable() bool { return t == Varchar }

// FixedWidth returns the fixed on-disk width in bytes for fixed-width
// types, given the column's declared MaxLen (only meaningful for Char).
// It panics if called on Varchar; callers must check IsVariable first.
func (t DataType) FixedWidth(maxLen int) int {
	switch t {
	case TinyInt, Bool:
		return 1
	case SmallInt:
		return 2
	case Int:
		return 4
	case BigInt:
		return 8
	case Char:
		return maxLen
	default:
		panic("record: FixedWidth called on variable-length type")
	}
}
