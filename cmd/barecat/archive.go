package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/isarandi/barecat"
)

// openArchive opens the archive whose index lives at path, discovering the
// shard files next to it by the standard naming scheme. With verbose set,
// library diagnostics go to stderr as text logs.
func openArchive(path string, verbose bool) (*barecat.Barecat, error) {
	shards, err := barecat.DiscoverShards(path)
	if err != nil {
		return nil, err
	}
	logger := barecat.NoopLogger()
	if verbose {
		logger = barecat.NewTextLogger(slog.LevelDebug)
	}
	return barecat.Open(path, shards, barecat.WithLogger(logger))
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitGeneralError
}
