package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bynzo/biblio/internal/catalog"
	"github.com/bynzo/biblio/internal/ingest"
	"github.com/bynzo/biblio/internal/library"
	"github.com/bynzo/biblio/internal/ocr"
	"github.com/bynzo/biblio/internal/store"
	"github.com/bynzo/biblio/internal/titles"
)

func openStore() (store.Store, error) {
	return store.New(storeBackend, dataDir)
}

// buildIngest wires the full scan pipeline on top of an open store.
func buildIngest(st store.Store, engineName string, timeout time.Duration) (*ingest.Service, *library.Manager, error) {
	engine, err := ocr.NewEngine(engineName)
	if err != nil {
		return nil, nil, err
	}

	manager := library.NewManager(st)
	service := ingest.NewService(
		ocr.NewService(engine, st, timeout),
		titles.NewResolver(timeout),
		catalog.NewClient(timeout),
		manager,
	)
	return service, manager, nil
}

// parseIndex converts the 1-based position shown by `biblio list` into
// the 0-based index the library manager uses.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid book number: %q (use the # column from 'biblio list')", arg)
	}
	return n - 1, nil
}
