package diag

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"burkeqldb/internal/catalog"
	"burkeqldb/internal/fileio"
	"burkeqldb/internal/pager"
)

func newTestManager(t *testing.T, frames int, pageSize uint32) *pager.Manager {
	t.Helper()
	reg := fileio.NewRegistry(pageSize)
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := reg.Open(fileio.FileData, path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return pager.NewManager(frames, pageSize, reg, zap.NewNop())
}

func TestBuildSnapshot_ListsBootstrapTables(t *testing.T) {
	m := newTestManager(t, 8, 4096)
	if err := catalog.InitDB(m); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	snap, err := BuildSnapshot(m)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if len(snap.Tables) != 3 {
		t.Fatalf("len(Tables) = %d, want 3", len(snap.Tables))
	}
	if len(snap.Frames) != 8 {
		t.Fatalf("len(Frames) = %d, want 8", len(snap.Frames))
	}
	if snap.PageSize != 4096 {
		t.Errorf("PageSize = %d, want 4096", snap.PageSize)
	}
}

func TestDumpSnapshot_ProducesYAML(t *testing.T) {
	m := newTestManager(t, 4, 4096)
	if err := catalog.InitDB(m); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	out, err := DumpSnapshot(m)
	if err != nil {
		t.Fatalf("DumpSnapshot: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "_tables") {
		t.Errorf("snapshot YAML missing _tables: %s", s)
	}
	if !strings.Contains(s, "instance_id") {
		t.Errorf("snapshot YAML missing instance_id: %s", s)
	}
}

func TestReporter_NilLoggerIsSafe(t *testing.T) {
	m := newTestManager(t, 2, 4096)
	r := NewReporter(nil)
	r.LogSnapshotSummary(m) // must not panic
}
