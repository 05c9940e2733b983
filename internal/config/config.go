// Package config loads the immutable, read-only configuration snapshot the
// rest of the storage core is built around: a data-file path, a page size,
// and a buffer pool frame count. Nothing below main ever reads the file
// again or mutates process-wide state; main passes the individual settings
// (page size, frame count, data-file path) to the component constructors,
// none of which takes a *Config.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"burkeqldb/internal/storeerr"
)

// Defaults mirror the original implementation's fallbacks.
const (
	DefaultPageSize     = 4096
	DefaultBufpoolSize  = 32
	minRecognizedPage   = 512
	maxRecognizedPage   = 1 << 20
)

// Config is the prepared snapshot main reads its settings from; component
// constructors receive those settings as individual arguments. The core never reads a config file itself beyond this load;
// per spec.md §1 the config-file reader's internal details are an external
// collaborator's concern, but the shape of the parsed result is not.
type Config struct {
	DataFile    string
	PageSize    uint32
	BufpoolSize int
}

// Load reads a key=value text file: '#' starts a line comment, blank lines
// are skipped, and keys are split on the first '='. Recognized keys are
// DATA_FILE, PAGE_SIZE, and BUFPOOL_SIZE; anything else is ignored, matching
// the original parse_config_param behavior of silently skipping unknown
// keys rather than failing the whole load.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storeerr.ErrConfigMissing, path, err)
	}
	defer f.Close()

	cfg := &Config{
		PageSize:    DefaultPageSize,
		BufpoolSize: DefaultBufpoolSize,
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])

		switch key {
		case "DATA_FILE":
			if val == "" {
				return nil, fmt.Errorf("%w: DATA_FILE is empty", storeerr.ErrConfigInvalid)
			}
			cfg.DataFile = val
		case "PAGE_SIZE":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: PAGE_SIZE %q: %v", storeerr.ErrConfigInvalid, val, err)
			}
			if n < minRecognizedPage || n > maxRecognizedPage {
				return nil, fmt.Errorf("%w: PAGE_SIZE %d out of range", storeerr.ErrConfigInvalid, n)
			}
			cfg.PageSize = uint32(n)
		case "BUFPOOL_SIZE":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: BUFPOOL_SIZE %q: %v", storeerr.ErrConfigInvalid, val, err)
			}
			if n <= 0 {
				return nil, fmt.Errorf("%w: BUFPOOL_SIZE must be positive", storeerr.ErrConfigInvalid)
			}
			cfg.BufpoolSize = n
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", storeerr.ErrConfigInvalid, err)
	}
	if cfg.DataFile == "" {
		return nil, fmt.Errorf("%w: DATA_FILE is required", storeerr.ErrConfigInvalid)
	}
	return cfg, nil
}

// New builds a Config directly, bypassing the file reader. Used by tests
// and by any embedder that already has a prepared configuration struct,
// per spec.md §1 ("the core consumes a prepared configuration struct").
func New(dataFile string, pageSize uint32, bufpoolSize int) *Config {
	return &Config{DataFile: dataFile, PageSize: pageSize, BufpoolSize: bufpoolSize}
}
