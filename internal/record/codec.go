package record

import (
	"encoding/binary"
	"fmt"

	"burkeqldb/internal/storeerr"
)

// Values and Nulls are indexed by Colnum (declaration order). Typed Go
// values per DataType: TinyInt→uint8, SmallInt→int16, Int→int32,
// BigInt→int64, Bool→bool, Char/Varchar→string.

// fixedValueWidth returns the number of bytes a fixed column occupies
// when present (not null). Null fixed columns occupy zero bytes: the
// record shortens, per spec.md §4.2 step 1.
func fixedValueWidth(c *Column) int {
	return c.Type.FixedWidth(c.MaxLen)
}

// fixedBytesLen sums the present-fixed-column widths, in fixed-column
// iteration order.
func fixedBytesLen(d *Descriptor, isnull []bool) int {
	total := 0
	for i := 0; i < d.NFixed; i++ {
		c := d.nthColumn(true, i)
		if !isnull[c.Colnum] {
			total += fixedValueWidth(c)
		}
	}
	return total
}

// varBytesLen sums 2+truncatedLen for each present variable column.
func varBytesLen(d *Descriptor, values []any, isnull []bool) int {
	total := 0
	nvar := d.NCols() - d.NFixed
	for i := 0; i < nvar; i++ {
		c := d.nthColumn(false, i)
		if isnull[c.Colnum] {
			continue
		}
		s, _ := values[c.Colnum].(string)
		n := len(s)
		if n > c.MaxLen {
			n = c.MaxLen
		}
		total += n + 2
	}
	return total
}

// ComputeLength returns 12 + fixedBytes + nullBitmapBytes + varBytes, per
// spec.md §4.2.
func ComputeLength(d *Descriptor, values []any, isnull []bool) int {
	return HeaderSize + fixedBytesLen(d, isnull) + d.nullBitmapBytes() + varBytesLen(d, values, isnull)
}

// setBit sets bit colnum (LSB-first) in the bitmap region starting at
// bitmap[0]. The null bitmap is addressed by Colnum directly (declaration
// order), as demonstrated by spec.md §8 scenarios S2/S3: the bit position
// is the column's declared order, independent of the fixed/variable
// write-order split used elsewhere in the codec.
func setBit(bitmap []byte, colnum int, present bool) {
	if present {
		bitmap[colnum/8] |= 1 << uint(colnum%8)
	}
}

func getBit(bitmap []byte, colnum int) bool {
	return bitmap[colnum/8]&(1<<uint(colnum%8)) != 0
}

func putFixedValue(buf []byte, c *Column, v any) {
	switch c.Type {
	case TinyInt:
		buf[0] = v.(uint8)
	case Bool:
		if v.(bool) {
			buf[0] = 1
		} else {
			buf[0] = 0
		}
	case SmallInt:
		binary.LittleEndian.PutUint16(buf, uint16(v.(int16)))
	case Int:
		binary.LittleEndian.PutUint32(buf, uint32(v.(int32)))
	case BigInt:
		binary.LittleEndian.PutUint64(buf, uint64(v.(int64)))
	case Char:
		s, _ := v.(string)
		n := copy(buf, s)
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
	}
}

func getFixedValue(buf []byte, c *Column) any {
	switch c.Type {
	case TinyInt:
		return buf[0]
	case Bool:
		return buf[0] != 0
	case SmallInt:
		return int16(binary.LittleEndian.Uint16(buf))
	case Int:
		return int32(binary.LittleEndian.Uint32(buf))
	case BigInt:
		return int64(binary.LittleEndian.Uint64(buf))
	case Char:
		return string(buf)
	}
	return nil
}

// Fill serializes values/isnull (both indexed by Colnum) into a freshly
// allocated record buffer, including the 12-byte header. It implements
// fill_record/compute_record_length from spec.md §4.2.
func Fill(d *Descriptor, values []any, isnull []bool) ([]byte, error) {
	if len(values) != d.NCols() || len(isnull) != d.NCols() {
		return nil, fmt.Errorf("record: values/isnull length must equal NCols (%d)", d.NCols())
	}

	total := ComputeLength(d, values, isnull)
	buf := make([]byte, total)

	nullOffset := HeaderSize + fixedBytesLen(d, isnull)
	putHeader(buf, Header{NullOffset: uint16(nullOffset)})

	cursor := HeaderSize
	for i := 0; i < d.NFixed; i++ {
		c := d.nthColumn(true, i)
		if isnull[c.Colnum] {
			continue
		}
		w := fixedValueWidth(c)
		putFixedValue(buf[cursor:cursor+w], c, values[c.Colnum])
		cursor += w
	}

	bitmapLen := d.nullBitmapBytes()
	if bitmapLen > 0 {
		bitmap := buf[nullOffset : nullOffset+bitmapLen]
		for colnum := 0; colnum < d.NCols(); colnum++ {
			setBit(bitmap, colnum, !isnull[colnum])
		}
	}
	cursor = nullOffset + bitmapLen

	nvar := d.NCols() - d.NFixed
	for i := 0; i < nvar; i++ {
		c := d.nthColumn(false, i)
		if isnull[c.Colnum] {
			continue
		}
		s, _ := values[c.Colnum].(string)
		if len(s) > c.MaxLen {
			s = s[:c.MaxLen]
		}
		totalLen := len(s) + 2
		binary.LittleEndian.PutUint16(buf[cursor:], uint16(totalLen))
		copy(buf[cursor+2:cursor+totalLen], s)
		cursor += totalLen
	}

	return buf, nil
}

// Defill deserializes buf (a full record, including its 12-byte header)
// back into values/isnull indexed by Colnum, per spec.md §4.2.
func Defill(d *Descriptor, buf []byte) ([]any, []bool, error) {
	for i := range d.Columns {
		if t := d.Columns[i].Type; t < TinyInt || t > Varchar {
			return nil, nil, fmt.Errorf("%w: column %d has type code %d", storeerr.ErrDecodeUnknownType, d.Columns[i].Colnum, t)
		}
	}

	values := make([]any, d.NCols())
	isnull := make([]bool, d.NCols())

	hdr := getHeader(buf)
	bitmapLen := d.nullBitmapBytes()
	var bitmap []byte
	if bitmapLen > 0 {
		bitmap = buf[hdr.NullOffset : int(hdr.NullOffset)+bitmapLen]
	}

	cursor := HeaderSize
	for i := 0; i < d.NFixed; i++ {
		c := d.nthColumn(true, i)
		present := bitmapLen == 0 || getBit(bitmap, c.Colnum)
		if !present {
			isnull[c.Colnum] = true
			continue
		}
		w := fixedValueWidth(c)
		values[c.Colnum] = getFixedValue(buf[cursor:cursor+w], c)
		cursor += w
	}

	cursor = int(hdr.NullOffset) + bitmapLen

	nvar := d.NCols() - d.NFixed
	for i := 0; i < nvar; i++ {
		c := d.nthColumn(false, i)
		present := bitmapLen == 0 || getBit(bitmap, c.Colnum)
		if !present {
			isnull[c.Colnum] = true
			continue
		}
		if cursor+2 > len(buf) {
			return nil, nil, fmt.Errorf("record: truncated varlen length prefix at %d", cursor)
		}
		totalLen := int(binary.LittleEndian.Uint16(buf[cursor:]))
		if totalLen < 2 || cursor+totalLen > len(buf) {
			return nil, nil, fmt.Errorf("record: invalid varlen totalLen %d at %d", totalLen, cursor)
		}
		values[c.Colnum] = string(buf[cursor+2 : cursor+totalLen])
		cursor += totalLen
	}

	return values, isnull, nil
}

// ComputeOffsetToColumn returns the byte offset from record start of a
// fixed, non-null column's value, for in-place point updates (used by
// the catalog's set_first_pageid/set_last_pageid). Per spec.md §9 open
// question 3 and SPEC_FULL.md decision E.3, this is undefined — and
// returns storeerr.ErrInvalidColumnTarget — for variable columns or for
// a column whose currently-stored value is null.
func ComputeOffsetToColumn(d *Descriptor, buf []byte, colnum int) (int, error) {
	target := &d.Columns[colnum]
	if target.Type.IsVariable() {
		return 0, fmt.Errorf("%w: column %d is variable-length", storeerr.ErrInvalidColumnTarget, colnum)
	}

	hdr := getHeader(buf)
	bitmapLen := d.nullBitmapBytes()
	var bitmap []byte
	if bitmapLen > 0 {
		bitmap = buf[hdr.NullOffset : int(hdr.NullOffset)+bitmapLen]
	}
	present := func(c *Column) bool { return bitmapLen == 0 || getBit(bitmap, c.Colnum) }

	cursor := HeaderSize
	for i := 0; i < d.NFixed; i++ {
		c := d.nthColumn(true, i)
		if c.Colnum == colnum {
			if !present(c) {
				return 0, fmt.Errorf("%w: column %d is currently null", storeerr.ErrInvalidColumnTarget, colnum)
			}
			return cursor, nil
		}
		if present(c) {
			cursor += fixedValueWidth(c)
		}
	}
	return 0, fmt.Errorf("record: column %d not found among fixed columns", colnum)
}
