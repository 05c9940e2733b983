package pager

import "burkeqldb/internal/fileio"

// Pool is a fixed-size array of page frames. It knows nothing about the
// OS file beyond the *fileio.Registry passed to Read/Flush, per spec.md
// §4.3.
type Pool struct {
	frames   []Page
	pageSize uint32
}

// NewPool allocates size zero-filled frames of pageSize bytes each.
func NewPool(size int, pageSize uint32) *Pool {
	frames := make([]Page, size)
	for i := range frames {
		frames[i] = NewPage(pageSize)
	}
	return &Pool{frames: frames, pageSize: pageSize}
}

// Size returns the number of frames in the pool.
func (p *Pool) Size() int { return len(p.frames) }

// Frame returns the page image held in frame i.
func (p *Pool) Frame(i int) Page { return p.frames[i] }

// Read seeks the file identified by tag.FileID to (pageId-1)*pageSize and
// reads exactly pageSize bytes into frame i.
func (p *Pool) Read(reg *fileio.Registry, frameIndex int, tag Tag) error {
	return reg.ReadPage(tag.FileID, tag.PageID, p.frames[frameIndex])
}

// Flush writes exactly pageSize bytes from frame i back to disk. The file
// and page id are taken from the descriptor's tag, not from a caller
// parameter, per spec.md §4.3.
func (p *Pool) Flush(reg *fileio.Registry, desc *Descriptor, frameIndex int) error {
	return reg.WritePage(desc.Tag.FileID, desc.Tag.PageID, p.frames[frameIndex])
}
