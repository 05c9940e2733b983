package record

import "fmt"

// Column describes one declared column: name, type, maximum on-disk
// length, declaration order (Colnum, 0-based), and not-null constraint.
type Column struct {
	Name    string
	Type    DataType
	Colnum  int
	MaxLen  int
	NotNull bool
}

// Descriptor is the full set of declared columns for a table, in
// declaration order. NFixed is the count of non-Varchar columns;
// HasNullable is true if any column is nullable. Declaration order is
// preserved even though serialization groups fixed-before-variable
// (spec.md §3): callers always address columns by Colnum.
type Descriptor struct {
	Columns     []Column
	NFixed      int
	HasNullable bool
}

// NewDescriptor validates and builds a Descriptor from columns in
// declaration order. It enforces the invariants from spec.md §3: NFixed
// equals the count of non-Varchar columns, and the sum of Colnum values
// is n(n-1)/2. Only the sum is checked: a set of colnums with the right
// sum but a repeated or out-of-range index is not rejected.
func NewDescriptor(columns []Column) (*Descriptor, error) {
	n := len(columns)
	nfixed := 0
	hasNullable := false
	colnumSum := 0
	for _, c := range columns {
		if !c.Type.IsVariable() {
			nfixed++
		}
		if !c.NotNull {
			hasNullable = true
		}
		colnumSum += c.Colnum
	}
	want := n * (n - 1) / 2
	if colnumSum != want {
		return nil, fmt.Errorf("record: colnum assignment invalid: sum=%d want=%d", colnumSum, want)
	}
	return &Descriptor{Columns: columns, NFixed: nfixed, HasNullable: hasNullable}, nil
}

// NCols returns the total column count.
func (d *Descriptor) NCols() int { return len(d.Columns) }

// nthColumn returns the n-th column of the requested kind (fixed or
// variable), scanning declaration order each time — the same approach
// original_source's get_nth_col uses, which is how declaration order
// survives the fixed/variable regrouping during serialization.
func (d *Descriptor) nthColumn(wantFixed bool, n int) *Column {
	count := 0
	for i := range d.Columns {
		c := &d.Columns[i]
		isFixed := !c.Type.IsVariable()
		if isFixed == wantFixed {
			if count == n {
				return c
			}
			count++
		}
	}
	return nil
}

// nullBitmapBytes returns the number of bytes the null bitmap occupies:
// 0 if the descriptor has no nullable column, else floor(ncols/8)+1,
// per spec.md §4.2.
func (d *Descriptor) nullBitmapBytes() int {
	if !d.HasNullable {
		return 0
	}
	return d.NCols()/8 + 1
}
