// Command burkeqldb opens (or bootstraps) a data file and prints its
// catalog snapshot. A SQL front end, ODBC driver, and interactive shell
// are explicit Non-goals (spec.md §1); this is the minimal wiring that
// exercises config, fileio, pager, catalog, and diag together end to end.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"burkeqldb/internal/catalog"
	"burkeqldb/internal/config"
	"burkeqldb/internal/diag"
	"burkeqldb/internal/fileio"
	"burkeqldb/internal/pager"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "burkeqldb:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a burkeqldb config file (KEY=VALUE lines)")
	dataFile := flag.String("data", "", "path to the data file (overrides DATA_FILE from -config)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg = config.New(*dataFile, config.DefaultPageSize, config.DefaultBufpoolSize)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if cfg.DataFile == "" {
		return fmt.Errorf("no data file configured (pass -data or set DATA_FILE)")
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	registry := fileio.NewRegistry(cfg.PageSize)
	if err := registry.Open(fileio.FileData, cfg.DataFile); err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer registry.Close()

	mgr := pager.NewManager(cfg.BufpoolSize, cfg.PageSize, registry, log)

	if err := catalog.InitDB(mgr); err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	reporter := diag.NewReporter(log)
	reporter.LogSnapshotSummary(mgr)

	out, err := diag.DumpSnapshot(mgr)
	if err != nil {
		return fmt.Errorf("dump snapshot: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
