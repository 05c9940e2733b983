package catalog

import (
	"encoding/binary"

	"burkeqldb/internal/fileio"
	"burkeqldb/internal/pager"
	"burkeqldb/internal/storeerr"
)

// BootPageID and FirstSystablePageID are fixed page numbers: the boot page
// is always the first page ever allocated in the data file, and the
// _tables heap's first page always follows it, per
// original_source/src/include/system/boot.h and systable.h.
const (
	BootPageID          = 1
	FirstSystablePageID = 2
)

// MajorVersion/MinorVersion/PatchNum are this engine's on-disk format
// version, written into every fresh boot page.
const (
	MajorVersion uint16 = 1
	MinorVersion uint32 = 2
	PatchNum     uint32 = 69
)

// Boot page byte layout, packed within the first 12 bytes of page 1:
//
//	offset  size  field
//	0       2     majorVersion  uint16 LE
//	2       4     minorVersion  uint32 LE
//	6       4     patchNum      uint32 LE
//	10      2     pageSize      uint16 LE
const (
	offMajorVersion = 0
	offMinorVersion = 2
	offPatchNum     = 6
	offPageSize     = 10
)

// BootInfo is the parsed contents of the boot page.
type BootInfo struct {
	MajorVersion uint16
	MinorVersion uint32
	PatchNum     uint32
	PageSize     uint16
}

func writeBootPage(p pager.Page, info BootInfo) {
	binary.LittleEndian.PutUint16(p[offMajorVersion:], info.MajorVersion)
	binary.LittleEndian.PutUint32(p[offMinorVersion:], info.MinorVersion)
	binary.LittleEndian.PutUint32(p[offPatchNum:], info.PatchNum)
	binary.LittleEndian.PutUint16(p[offPageSize:], info.PageSize)
}

func readBootPage(p pager.Page) BootInfo {
	return BootInfo{
		MajorVersion: binary.LittleEndian.Uint16(p[offMajorVersion:]),
		MinorVersion: binary.LittleEndian.Uint32(p[offMinorVersion:]),
		PatchNum:     binary.LittleEndian.Uint32(p[offPatchNum:]),
		PageSize:     binary.LittleEndian.Uint16(p[offPageSize:]),
	}
}

// initBootPage allocates a fresh page 1 and stamps it with the engine's
// version and configured page size, then flushes it, per
// original_source's init_boot_page/flush_boot_page. The data file must be
// empty; callers check registry.NextPageID first to avoid reinitializing
// an existing database (see InitDB).
func initBootPage(m *pager.Manager) error {
	idx, err := m.Allocate(fileio.FileData)
	if err != nil {
		return err
	}
	if m.Frame(idx).PageID() != BootPageID {
		return storeerr.ErrBootPageMismatch
	}

	writeBootPage(m.Frame(idx), BootInfo{
		MajorVersion: MajorVersion,
		MinorVersion: MinorVersion,
		PatchNum:     PatchNum,
		PageSize:     uint16(m.PageSize()),
	})
	m.MarkDirty(idx)
	return m.FlushPage(idx)
}

// readBootInfo loads page 1 and returns its parsed contents, pinning and
// releasing it for the duration of the call.
func readBootInfo(m *pager.Manager) (BootInfo, error) {
	tag := pager.Tag{FileID: fileio.FileData, PageID: BootPageID}
	idx, err := m.Request(tag)
	if err != nil {
		return BootInfo{}, err
	}
	if idx < 0 {
		return BootInfo{}, nil
	}
	defer m.Release(idx)
	return readBootPage(m.Frame(idx)), nil
}
