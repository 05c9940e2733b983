package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "burkeql.conf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_RecognizedKeys(t *testing.T) {
	path := writeTempConfig(t, `
# a comment line
DATA_FILE=/tmp/burkeql.data
PAGE_SIZE=8192
BUFPOOL_SIZE=16
UNKNOWN_KEY=ignored
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "/tmp/burkeql.data" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.PageSize != 8192 {
		t.Errorf("PageSize = %d", cfg.PageSize)
	}
	if cfg.BufpoolSize != 16 {
		t.Errorf("BufpoolSize = %d", cfg.BufpoolSize)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, "DATA_FILE=/tmp/burkeql.data\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.BufpoolSize != DefaultBufpoolSize {
		t.Errorf("BufpoolSize = %d, want default %d", cfg.BufpoolSize, DefaultBufpoolSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.conf")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_InvalidPageSize(t *testing.T) {
	path := writeTempConfig(t, "DATA_FILE=/tmp/x\nPAGE_SIZE=not-a-number\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid PAGE_SIZE")
	}
}

func TestLoad_MissingDataFile(t *testing.T) {
	path := writeTempConfig(t, "PAGE_SIZE=4096\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error when DATA_FILE is absent")
	}
}
