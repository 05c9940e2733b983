package record

import "encoding/binary"

// HeaderSize is the packed record header size in bytes, per spec.md §3:
// {xmin:u32, xmax:u32, infomask:u16, nullOffset:u16}. xmin/xmax/infomask
// are reserved for a future transaction system (spec.md §1 Non-goals:
// no concurrency/MVCC is implemented); this module writes them as zero
// and never interprets them.
const HeaderSize = 12

const (
	offXmin       = 0
	offXmax       = 4
	offInfomask   = 8
	offNullOffset = 10
)

// Header is the parsed form of a record's 12-byte header.
type Header struct {
	Xmin       uint32
	Xmax       uint32
	Infomask   uint16
	NullOffset uint16
}

func putHeader(buf []byte, h Header) {
	binary.LittleEndian.PutUint32(buf[offXmin:], h.Xmin)
	binary.LittleEndian.PutUint32(buf[offXmax:], h.Xmax)
	binary.LittleEndian.PutUint16(buf[offInfomask:], h.Infomask)
	binary.LittleEndian.PutUint16(buf[offNullOffset:], h.NullOffset)
}

func getHeader(buf []byte) Header {
	return Header{
		Xmin:       binary.LittleEndian.Uint32(buf[offXmin:]),
		Xmax:       binary.LittleEndian.Uint32(buf[offXmax:]),
		Infomask:   binary.LittleEndian.Uint16(buf[offInfomask:]),
		NullOffset: binary.LittleEndian.Uint16(buf[offNullOffset:]),
	}
}
