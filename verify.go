package barecat

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/isarandi/barecat/index"
)

// Verify recomputes the CRC32C of the file at path and compares it against
// the checksum stored in the index. It returns a *ChecksumError on mismatch
// and ErrNoChecksum when the index has none recorded. The content is streamed
// through a bounded window, never loaded whole.
func (bc *Barecat) Verify(path string) error {
	loc, err := bc.resolve(path)
	if err != nil {
		return err
	}
	if !loc.HasCRC32C {
		return fmt.Errorf("%q: %w", path, ErrNoChecksum)
	}
	crc, err := bc.shards.Checksum(locationAddress(loc), bc.window)
	if err != nil {
		return err
	}
	if crc != loc.CRC32C {
		bc.logger.Warn("checksum mismatch",
			"path", path, "expected", loc.CRC32C, "actual", crc)
		return &ChecksumError{Path: path, Expected: loc.CRC32C, Actual: crc}
	}
	return nil
}

// VerifyReport summarizes a whole-archive verification pass.
type VerifyReport struct {
	// Checked is the number of files whose checksum was recomputed.
	Checked int
	// Skipped is the number of files without a stored checksum.
	Skipped int
	// Mismatched lists the paths whose content failed verification.
	Mismatched []string
}

// OK reports whether every checked file verified cleanly.
func (r VerifyReport) OK() bool { return len(r.Mismatched) == 0 }

// VerifyAll verifies every file in the archive that has a stored checksum.
// The index is walked in physical order so each shard is read front to back,
// with checksum work spread over a bounded number of goroutines. Mismatches
// are collected in the report; I/O and backend failures abort the pass and
// are returned as the error.
//
// The archive's index backend must support enumeration (the built-in SQLite
// backend does).
func (bc *Barecat) VerifyAll(ctx context.Context) (VerifyReport, error) {
	if bc.closed.Load() {
		return VerifyReport{}, ErrClosed
	}
	walker, ok := bc.resolver.(index.Walker)
	if !ok {
		return VerifyReport{}, errors.New("barecat: index backend does not support enumeration")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var (
		mu     sync.Mutex
		report VerifyReport
	)
	walkErr := walker.Walk(ctx, func(e index.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.HasCRC32C {
			mu.Lock()
			report.Skipped++
			mu.Unlock()
			return nil
		}
		g.Go(func() error {
			crc, err := bc.shards.Checksum(locationAddress(e.Location), bc.window)
			if err != nil {
				return fmt.Errorf("%s: %w", e.Path, err)
			}
			mu.Lock()
			defer mu.Unlock()
			report.Checked++
			if crc != e.CRC32C {
				bc.logger.Warn("checksum mismatch",
					"path", e.Path, "expected", e.CRC32C, "actual", crc)
				report.Mismatched = append(report.Mismatched, e.Path)
			}
			return nil
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return report, err
	}
	if walkErr != nil {
		return report, walkErr
	}
	return report, nil
}
