package pager

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"burkeqldb/internal/fileio"
	"burkeqldb/internal/storeerr"
)

// Manager is the buffer manager: it mediates lookup, load, pin/unpin,
// eviction, allocation, and page-split over a Pool and its descriptor
// table (spec.md §4.4).
type Manager struct {
	pool     *Pool
	descs    descriptorTable
	registry *fileio.Registry
	pageSize uint32
	log      *zap.Logger
	id       uuid.UUID
}

// NewManager builds a buffer manager over size frames of pageSize bytes,
// backed by registry for I/O. log may be zap.NewNop() in tests. This
// always returns a fully-initialized container, resolving spec.md §9's
// "bufmgr_init in multiple variants never writes the return" open
// question: there is no representable half-initialized Manager in Go.
func NewManager(size int, pageSize uint32, registry *fileio.Registry, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		pool:     NewPool(size, pageSize),
		descs:    newDescriptorTable(size),
		registry: registry,
		pageSize: pageSize,
		log:      log,
		id:       uuid.New(),
	}
	m.log.Debug("buffer manager initialized",
		zap.String("instance_id", m.id.String()),
		zap.Int("frames", size),
		zap.Uint32("page_size", pageSize),
	)
	return m
}

// PageSize returns the configured page size.
func (m *Manager) PageSize() uint32 { return m.pageSize }

// Frame returns the page image pinned in frameIndex.
func (m *Manager) Frame(frameIndex int) Page { return m.pool.Frame(frameIndex) }

// Request pins the frame holding tag, loading it from disk into an empty
// or evicted frame if absent. Caller must call Release on every exit
// path. PageID<=0 (the zero Tag) returns -1 without side effect, per
// spec.md §4.4.
func (m *Manager) Request(tag Tag) (int, error) {
	if tag.PageID == 0 {
		return -1, nil
	}

	if idx := m.descs.findByTag(tag); idx >= 0 {
		m.descs[idx].pin()
		return idx, nil
	}

	idx := m.descs.findEmpty()
	if idx < 0 {
		var err error
		idx, err = m.evict()
		if err != nil {
			return -1, err
		}
	}

	if err := m.pool.Read(m.registry, idx, tag); err != nil {
		return -1, err
	}
	m.descs[idx].setTag(tag)
	m.descs[idx].endIO()
	m.descs[idx].pin()
	return idx, nil
}

// evict finds the first unpinned descriptor, flushes its frame
// unconditionally, and resets it for reuse. Eviction policy is
// first-fit-unpinned; dirty-only flushing is an explicit future
// optimization (spec.md §4.4).
func (m *Manager) evict() (int, error) {
	idx := m.descs.findVictim()
	if idx < 0 {
		return -1, storeerr.ErrNoVictim
	}
	m.descs[idx].startIO()
	if err := m.pool.Flush(m.registry, &m.descs[idx], idx); err != nil {
		return -1, err
	}
	m.log.Debug("evicted frame",
		zap.Int("frame", idx),
		zap.Uint32("old_page_id", m.descs[idx].Tag.PageID),
	)
	m.descs[idx].reset()
	return idx, nil
}

// Release unpins the frame.
func (m *Manager) Release(frameIndex int) {
	m.descs[frameIndex].unpin()
}

// Allocate claims the next page id from the file registry for fileID,
// chooses an empty or evicted frame, zeroes it, writes the new page id
// into the header, pins it, and returns the frame index.
func (m *Manager) Allocate(fileID fileio.FileID) (int, error) {
	pageID, err := m.registry.AllocatePageID(fileID)
	if err != nil {
		return -1, err
	}

	idx := m.descs.findEmpty()
	if idx < 0 {
		idx, err = m.evict()
		if err != nil {
			return -1, err
		}
	}

	frame := m.pool.Frame(idx)
	for i := range frame {
		frame[i] = 0
	}
	frame.SetPageID(pageID)

	m.descs[idx].setTag(Tag{FileID: fileID, PageID: pageID})
	m.descs[idx].endIO()
	m.descs[idx].pin()
	return idx, nil
}

// MarkDirty flags the frame's descriptor as dirty.
func (m *Manager) MarkDirty(frameIndex int) {
	m.descs[frameIndex].setDirty()
}

// FlushPage writes frameIndex back to disk and then resets its
// descriptor, dropping the cache entry. See SPEC_FULL.md open question 2.
func (m *Manager) FlushPage(frameIndex int) error {
	if err := m.pool.Flush(m.registry, &m.descs[frameIndex], frameIndex); err != nil {
		return err
	}
	m.descs[frameIndex].reset()
	return nil
}

// FlushAll writes every dirty frame back to disk without resetting any
// descriptor, so warm frames stay cached. See SPEC_FULL.md open question 2.
func (m *Manager) FlushAll() error {
	for i := range m.descs {
		if !m.descs[i].Dirty || m.descs[i].isUnused() {
			continue
		}
		if err := m.pool.Flush(m.registry, &m.descs[i], i); err != nil {
			return err
		}
		m.descs[i].Dirty = false
	}
	return nil
}

// PageSplit allocates a new tail page for the chain that frameIndex
// belongs to. The referenced page must be the last page of its chain
// (NextPageID==0); otherwise PageSplit fails with
// storeerr.ErrSplitUnsupported and mutates nothing (spec.md §4.4, §8 S6).
func (m *Manager) PageSplit(frameIndex int) (int, error) {
	oldPage := m.pool.Frame(frameIndex)
	if oldPage.NextPageID() != 0 {
		return -1, storeerr.ErrSplitUnsupported
	}
	oldTag := m.descs[frameIndex].Tag

	newIdx, err := m.Allocate(oldTag.FileID)
	if err != nil {
		return -1, err
	}
	newPage := m.pool.Frame(newIdx)
	newPage.InitDataPage()
	newPage.SetPrevPageID(oldTag.PageID)
	newPage.SetNextPageID(0)
	m.descs[newIdx].setDirty()

	oldPage.SetNextPageID(newPage.PageID())
	m.descs[frameIndex].setDirty()

	m.Release(frameIndex)

	return newIdx, nil
}

// Registry exposes the underlying file registry for components (like the
// catalog bootstrap) that must open files or query raw page ids.
func (m *Manager) Registry() *fileio.Registry { return m.registry }

// FrameStatus reports one frame's occupancy for diagnostics.
type FrameStatus struct {
	Frame    int
	FileID   fileio.FileID
	PageID   uint32
	PinCount int
	Dirty    bool
	Occupied bool
}

// FrameStatuses returns the occupancy of every frame in the pool, in frame
// order, for internal/diag's snapshot dump — the structured descendant of
// original_source's bufmgr_diag_summary.
func (m *Manager) FrameStatuses() []FrameStatus {
	out := make([]FrameStatus, len(m.descs))
	for i := range m.descs {
		d := &m.descs[i]
		out[i] = FrameStatus{
			Frame:    i,
			FileID:   d.Tag.FileID,
			PageID:   d.Tag.PageID,
			PinCount: d.PinCount,
			Dirty:    d.Dirty,
			Occupied: !d.Tag.IsEmpty(),
		}
	}
	return out
}

// InstanceID returns this manager's diagnostic instance id.
func (m *Manager) InstanceID() uuid.UUID { return m.id }

// String implements fmt.Stringer for diagnostics.
func (m *Manager) String() string {
	return fmt.Sprintf("Manager{instance=%s frames=%d pageSize=%d}", m.id, m.pool.Size(), m.pageSize)
}
