// Package fileio implements the file registry: the mapping from a small
// file-id enumeration to an OS file handle and the next unallocated page
// id for that file (spec.md §4.5). It knows nothing about page contents;
// it is purely seek+read/write plumbing, grounded in
// original_source/src/buffer/bufpool.c's bufpool_read_page/flush_page.
package fileio

import (
	"fmt"
	"os"

	"burkeqldb/internal/storeerr"
)

// FileID enumerates the small, fixed set of files the engine knows about.
type FileID uint32

const (
	// FileData is the single heap data file.
	FileData FileID = 1
	// FileLog is reserved for a future write-ahead log; spec.md's
	// Non-goals exclude crash recovery/WAL, so this id is never opened
	// by this module, only reserved so on-disk headers that mention a
	// log file id remain meaningful.
	FileLog FileID = 2
)

type entry struct {
	path       string
	handle     *os.File
	nextPageID uint32
}

// Registry opens one *os.File per registered FileID on first use and
// tracks each file's next unallocated page id.
type Registry struct {
	pageSize uint32
	files    map[FileID]*entry
}

// NewRegistry returns an empty registry for the given page size. Files are
// opened lazily by Open.
func NewRegistry(pageSize uint32) *Registry {
	return &Registry{pageSize: pageSize, files: make(map[FileID]*entry)}
}

// Open registers path for id, opening (and creating if necessary) the
// backing OS file with O_RDWR|O_CREAT, user read+write. nextPageId is
// derived from the file's current size: (fileLen / pageSize) + 1, so an
// empty file yields nextPageId=1 (page ids are 1-based; page 1 is the
// boot page).
func (r *Registry) Open(id FileID, path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("fileio: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("fileio: stat %s: %w", path, err)
	}
	next := uint32(info.Size()/int64(r.pageSize)) + 1
	r.files[id] = &entry{path: path, handle: f, nextPageID: next}
	return nil
}

// Handle returns the open file for id, or nil if it has not been opened.
func (r *Registry) Handle(id FileID) *os.File {
	e := r.files[id]
	if e == nil {
		return nil
	}
	return e.handle
}

// NextPageID returns the next unallocated page id for id without
// consuming it.
func (r *Registry) NextPageID(id FileID) uint32 {
	e := r.files[id]
	if e == nil {
		return 0
	}
	return e.nextPageID
}

// AllocatePageID returns the next unallocated page id for id and advances
// the counter by one. Page ids are monotonically increasing and never
// reused, matching spec.md §4.5.
func (r *Registry) AllocatePageID(id FileID) (uint32, error) {
	e := r.files[id]
	if e == nil {
		return 0, fmt.Errorf("fileio: file id %d not open", id)
	}
	pid := e.nextPageID
	e.nextPageID++
	return pid, nil
}

// ReadPage reads exactly pageSize bytes for pageId from id's file into buf.
// buf must be at least pageSize bytes. Fails with ErrIOShortRead if fewer
// bytes were available, per spec.md §4.3 and §9 open question 4 (a short
// read is always an error; page creation goes through Allocate, never
// through a lazily-initializing read).
func (r *Registry) ReadPage(id FileID, pageID uint32, buf []byte) error {
	e := r.files[id]
	if e == nil {
		return fmt.Errorf("fileio: file id %d not open", id)
	}
	off := int64(pageID-1) * int64(r.pageSize)
	n, err := e.handle.ReadAt(buf[:r.pageSize], off)
	if n < int(r.pageSize) {
		if err != nil {
			return fmt.Errorf("%w: %v", storeerr.ErrIOShortRead, err)
		}
		return fmt.Errorf("%w: read %d of %d bytes", storeerr.ErrIOShortRead, n, r.pageSize)
	}
	return nil
}

// WritePage writes exactly pageSize bytes from buf to pageId in id's file.
func (r *Registry) WritePage(id FileID, pageID uint32, buf []byte) error {
	e := r.files[id]
	if e == nil {
		return fmt.Errorf("fileio: file id %d not open", id)
	}
	off := int64(pageID-1) * int64(r.pageSize)
	n, err := e.handle.WriteAt(buf[:r.pageSize], off)
	if n < int(r.pageSize) {
		if err != nil {
			return fmt.Errorf("%w: %v", storeerr.ErrIOShortWrite, err)
		}
		return fmt.Errorf("%w: wrote %d of %d bytes", storeerr.ErrIOShortWrite, n, r.pageSize)
	}
	return nil
}

// Close closes every open file handle.
func (r *Registry) Close() error {
	var firstErr error
	for _, e := range r.files {
		if err := e.handle.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
