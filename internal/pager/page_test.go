package pager

import (
	"bytes"
	"errors"
	"testing"

	"burkeqldb/internal/storeerr"
)

func TestPage_InitDataPage(t *testing.T) {
	p := NewPage(4096)
	p.InitDataPage()

	if p.PageType() != PageTypeData {
		t.Errorf("PageType = %v, want data", p.PageType())
	}
	if p.NumRecords() != 0 {
		t.Errorf("NumRecords = %d, want 0", p.NumRecords())
	}
	want := uint16(4096 - HeaderSize)
	if p.FreeBytes() != want || p.FreeData() != want {
		t.Errorf("FreeBytes/FreeData = %d/%d, want %d", p.FreeBytes(), p.FreeData(), want)
	}
}

func TestPage_InsertUpdatesHeaderAndSlot(t *testing.T) {
	p := NewPage(4096)
	p.InitDataPage()

	record := []byte("hello, world")
	if err := p.Insert(record); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if p.NumRecords() != 1 {
		t.Errorf("NumRecords = %d, want 1", p.NumRecords())
	}
	wantFreeBytes := uint16(4096-HeaderSize) - uint16(len(record)+4)
	if p.FreeBytes() != wantFreeBytes {
		t.Errorf("FreeBytes = %d, want %d", p.FreeBytes(), wantFreeBytes)
	}

	got := p.Record(0)
	if !bytes.Equal(got, record) {
		t.Errorf("Record(0) = %q, want %q", got, record)
	}
	slot := p.Slot(0)
	if int(slot.Length) != len(record) {
		t.Errorf("slot length = %d, want %d", slot.Length, len(record))
	}
	if int(slot.Offset) != HeaderSize {
		t.Errorf("slot offset = %d, want %d (first record right after header)", slot.Offset, HeaderSize)
	}
}

func TestPage_InsertSequenceIsInsertionOrder(t *testing.T) {
	p := NewPage(256)
	p.InitDataPage()

	rows := [][]byte{[]byte("r1"), []byte("r2"), []byte("r3")}
	for _, r := range rows {
		if err := p.Insert(r); err != nil {
			t.Fatalf("Insert(%q): %v", r, err)
		}
	}

	for i, want := range rows {
		got := p.Record(uint16(i))
		if !bytes.Equal(got, want) {
			t.Errorf("Record(%d) = %q, want %q (scan must preserve insertion order)", i, got, want)
		}
	}
}

func TestPage_InsertFailsWhenFull(t *testing.T) {
	p := NewPage(64)
	p.InitDataPage()

	big := bytes.Repeat([]byte{0x01}, 100)
	err := p.Insert(big)
	if err == nil {
		t.Fatal("expected ErrPageFull")
	}
	if !errors.Is(err, storeerr.ErrPageFull) {
		t.Errorf("err = %v, want ErrPageFull", err)
	}
	if p.NumRecords() != 0 {
		t.Errorf("NumRecords = %d, want 0 after failed insert", p.NumRecords())
	}
}
