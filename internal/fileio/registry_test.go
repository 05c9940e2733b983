package fileio

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestRegistry_OpenEmptyFileStartsAtPageOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	r := NewRegistry(4096)
	if err := r.Open(FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := r.NextPageID(FileData); got != 1 {
		t.Errorf("NextPageID = %d, want 1", got)
	}
}

func TestRegistry_AllocatePageIDMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	r := NewRegistry(4096)
	if err := r.Open(FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	first, err := r.AllocatePageID(FileData)
	if err != nil {
		t.Fatalf("AllocatePageID: %v", err)
	}
	second, err := r.AllocatePageID(FileData)
	if err != nil {
		t.Fatalf("AllocatePageID: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("got ids %d, %d; want 1, 2", first, second)
	}
}

func TestRegistry_WriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	r := NewRegistry(4096)
	if err := r.Open(FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := bytes.Repeat([]byte{0xAB}, 4096)
	if err := r.WritePage(FileData, 1, want); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	got := make([]byte, 4096)
	if err := r.ReadPage(FileData, 1, got); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round-tripped bytes differ")
	}
}

func TestRegistry_ShortReadPastEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	r := NewRegistry(4096)
	if err := r.Open(FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	buf := make([]byte, 4096)
	if err := r.ReadPage(FileData, 5, buf); err == nil {
		t.Fatal("expected short-read error past EOF")
	}
}

func TestRegistry_ReopenDerivesNextPageIDFromSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	r := NewRegistry(4096)
	if err := r.Open(FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	buf := make([]byte, 4096)
	for i := uint32(1); i <= 3; i++ {
		if err := r.WritePage(FileData, i, buf); err != nil {
			t.Fatalf("WritePage: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r2 := NewRegistry(4096)
	if err := r2.Open(FileData, path); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := r2.NextPageID(FileData); got != 4 {
		t.Errorf("NextPageID after reopen = %d, want 4", got)
	}
}
