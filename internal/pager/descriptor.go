package pager

import "burkeqldb/internal/fileio"

// Tag uniquely identifies one on-disk page. FileID=0 or PageID=0 is
// "empty" — fileio.FileID and page id zero values both happen to be the
// zero value, so the zero Tag is naturally "empty".
type Tag struct {
	FileID fileio.FileID
	PageID uint32
}

// IsEmpty reports whether the tag identifies no page, per spec.md §4.3.
func (t Tag) IsEmpty() bool { return t.FileID == 0 || t.PageID == 0 }

// Descriptor is one frame's metadata: tag, pin/use counters, dirty/valid
// flags (spec.md §3 Buffer descriptor, §4.3).
type Descriptor struct {
	Tag      Tag
	PinCount int
	UseCount int
	Dirty    bool
	Valid    bool
}

// reset zeroes tag, counters, and the dirty flag. Called after a flush
// during eviction, or by FlushPage (see SPEC_FULL.md open question 2).
func (d *Descriptor) reset() {
	d.Tag = Tag{}
	d.PinCount = 0
	d.UseCount = 0
	d.Dirty = false
}

// pin increments both pinCount and useCount.
func (d *Descriptor) pin() {
	d.PinCount++
	d.UseCount++
}

// unpin decrements pinCount, clamped at zero. The original
// bufdesc_unpin does not clamp; spec.md §9 open question explicitly
// calls for this implementation to clamp.
func (d *Descriptor) unpin() {
	if d.PinCount > 0 {
		d.PinCount--
	}
}

func (d *Descriptor) setTag(t Tag)    { d.Tag = t }
func (d *Descriptor) setDirty()       { d.Dirty = true }
func (d *Descriptor) startIO()        { d.Valid = false }
func (d *Descriptor) endIO()          { d.Valid = true }
func (d *Descriptor) isUnused() bool  { return d.Tag.IsEmpty() }

// descriptorTable is the parallel array of per-frame descriptors.
type descriptorTable []Descriptor

func newDescriptorTable(size int) descriptorTable {
	dt := make(descriptorTable, size)
	for i := range dt {
		dt[i] = Descriptor{Valid: true}
	}
	return dt
}

// findByTag does a linear scan for a descriptor matching tag.
func (dt descriptorTable) findByTag(tag Tag) int {
	for i := range dt {
		if dt[i].Tag == tag {
			return i
		}
	}
	return -1
}

// findEmpty does a linear scan for an unused descriptor. On success it
// marks the descriptor invalid (I/O in progress is about to start).
func (dt descriptorTable) findEmpty() int {
	for i := range dt {
		if dt[i].isUnused() {
			dt[i].startIO()
			return i
		}
	}
	return -1
}

// findVictim does a linear scan for the first descriptor with
// PinCount==0 (first-fit-unpinned eviction policy, spec.md §4.4).
func (dt descriptorTable) findVictim() int {
	for i := range dt {
		if dt[i].PinCount == 0 {
			return i
		}
	}
	return -1
}
