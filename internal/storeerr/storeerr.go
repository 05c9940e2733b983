// Package storeerr defines the bounded error taxonomy shared by every
// storage-core component. Errors here are sentinel values (or wrap one via
// %w) so callers can use errors.Is instead of string matching.
package storeerr

import "errors"

var (
	// ErrConfigMissing is returned when a configuration file cannot be
	// opened at all.
	ErrConfigMissing = errors.New("config_missing")

	// ErrConfigInvalid is returned when a configuration file exists but
	// contains an unparseable or unusable value (bad integer, missing
	// required key).
	ErrConfigInvalid = errors.New("config_invalid")

	// ErrIOShortRead is returned when a page read returned fewer than
	// pageSize bytes.
	ErrIOShortRead = errors.New("io_short_read")

	// ErrIOShortWrite is returned when a page write wrote fewer than
	// pageSize bytes.
	ErrIOShortWrite = errors.New("io_short_write")

	// ErrNoVictim is returned when eviction found no unpinned frame.
	ErrNoVictim = errors.New("no_victim")

	// ErrPageFull is returned by Page.Insert when there is not enough
	// contiguous free space for the record plus its slot.
	ErrPageFull = errors.New("page_full")

	// ErrSplitUnsupported is returned when PageSplit is invoked on a page
	// that is not the tail of its chain.
	ErrSplitUnsupported = errors.New("split_unsupported")

	// ErrCatalogMissing is returned when a catalog lookup by name finds
	// no matching row.
	ErrCatalogMissing = errors.New("catalog_missing")

	// ErrDecodeUnknownType is returned when the record decoder encounters
	// a data-type code it does not recognize.
	ErrDecodeUnknownType = errors.New("decode_unknown_type")

	// ErrInvalidColumnTarget is returned by ComputeOffsetToColumn when
	// asked for a variable-length column or a column whose stored value
	// is currently null; spec.md leaves this case undefined, so this
	// module specifies it as a usage error rather than an offset.
	ErrInvalidColumnTarget = errors.New("invalid_column_target")

	// ErrBootPageMismatch is returned when the first page ever allocated
	// in the data file does not land on BootPageID, which would indicate
	// a corrupt or non-empty data file opened as if fresh.
	ErrBootPageMismatch = errors.New("boot_page_mismatch")
)
