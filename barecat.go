package barecat

import (
	"errors"
	"sync/atomic"

	"github.com/isarandi/barecat/index"
	"github.com/isarandi/barecat/shard"
)

// FileInfo describes one file stored in the archive, as recorded by the
// index.
type FileInfo struct {
	Path      string
	Shard     int
	Offset    int64
	Size      int64
	CRC32C    uint32
	HasCRC32C bool
}

// Address returns the physical address of the file's content.
func (fi FileInfo) Address() shard.Address {
	return shard.Address{Shard: fi.Shard, Offset: fi.Offset, Length: fi.Size}
}

// Barecat is an open archive: the index connection plus one read handle per
// shard file. It is created by Open, used concurrently by any number of
// readers, and released exactly once by Close.
type Barecat struct {
	resolver index.Resolver
	shards   *shard.Table
	logger   *Logger
	window   int
	closed   atomic.Bool
}

// Open opens the archive index at indexPath together with the given shard
// files. Opening is all-or-nothing: if the index or any shard fails to open,
// everything already acquired is released and an error is returned.
//
// The shard paths must be in shard-number order; DiscoverShards produces
// such a list from the archive's standard file naming.
func Open(indexPath string, shardPaths []string, optFns ...Option) (*Barecat, error) {
	opts := applyOptions(optFns)
	if len(shardPaths) == 0 {
		return nil, errors.New("barecat: no shard paths given")
	}

	resolver := opts.resolver
	if resolver == nil {
		r, err := index.OpenSQLite(indexPath)
		if err != nil {
			return nil, err
		}
		resolver = r
	}

	shards, err := shard.Open(shardPaths)
	if err != nil {
		resolver.Close()
		return nil, err
	}

	opts.logger.Debug("archive opened", "index", indexPath, "num_shards", shards.Len())

	return &Barecat{
		resolver: resolver,
		shards:   shards,
		logger:   opts.logger,
		window:   opts.checksumWindow,
	}, nil
}

// Read resolves path through the index and returns the file's content. The
// returned buffer is allocated to exactly the file's size. A path absent from
// the index fails with ErrNotFound.
//
// The resolved address is untrusted: a corrupted index entry (negative or
// oversized size) fails with a range error before any allocation happens.
func (bc *Barecat) Read(path string) ([]byte, error) {
	loc, err := bc.resolve(path)
	if err != nil {
		return nil, err
	}
	addr := locationAddress(loc)
	if err := bc.shards.Validate(addr); err != nil {
		return nil, err
	}
	buf := make([]byte, loc.Size)
	if _, err := bc.shards.ReadAt(addr, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadInto is the caller-buffered form of Read: the file's full content is
// read into dest and the number of bytes written is returned. dest must hold
// at least the file's size; shard.ErrShortBuffer is returned otherwise,
// never a silently partial read.
func (bc *Barecat) ReadInto(path string, dest []byte) (int, error) {
	loc, err := bc.resolve(path)
	if err != nil {
		return 0, err
	}
	return bc.shards.ReadAt(locationAddress(loc), dest)
}

// ReadAt reads a byte range by explicit physical address, bypassing the
// index. This is the trust-the-caller entry point for addresses already
// known, e.g. from a prior Stat.
func (bc *Barecat) ReadAt(shardID int, offset, length int64) ([]byte, error) {
	if bc.closed.Load() {
		return nil, ErrClosed
	}
	addr := shard.Address{Shard: shardID, Offset: offset, Length: length}
	if err := bc.shards.Validate(addr); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := bc.shards.ReadAt(addr, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ChecksumAt computes the CRC32C of a byte range by explicit physical
// address, streaming through a bounded window rather than loading the range.
func (bc *Barecat) ChecksumAt(shardID int, offset, length int64) (uint32, error) {
	if bc.closed.Load() {
		return 0, ErrClosed
	}
	return bc.shards.Checksum(shard.Address{Shard: shardID, Offset: offset, Length: length}, bc.window)
}

// Stat returns the index record for path without reading any content.
func (bc *Barecat) Stat(path string) (FileInfo, error) {
	loc, err := bc.resolve(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Path:      index.NormalizePath(path),
		Shard:     loc.Shard,
		Offset:    loc.Offset,
		Size:      loc.Size,
		CRC32C:    loc.CRC32C,
		HasCRC32C: loc.HasCRC32C,
	}, nil
}

// NumShards returns the number of shard files backing the archive.
func (bc *Barecat) NumShards() int { return bc.shards.Len() }

// Close releases the index connection and all shard handles. It is
// idempotent; operations after Close fail with ErrClosed.
func (bc *Barecat) Close() error {
	if bc == nil || !bc.closed.CompareAndSwap(false, true) {
		return nil
	}
	var firstErr error
	if err := bc.resolver.Close(); err != nil {
		firstErr = err
	}
	if err := bc.shards.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	bc.logger.Debug("archive closed")
	return firstErr
}

func (bc *Barecat) resolve(path string) (index.Location, error) {
	if bc.closed.Load() {
		return index.Location{}, ErrClosed
	}
	loc, err := bc.resolver.Resolve(path)
	if err != nil {
		return index.Location{}, translateError(err)
	}
	return loc, nil
}

func locationAddress(loc index.Location) shard.Address {
	return shard.Address{Shard: loc.Shard, Offset: loc.Offset, Length: loc.Size}
}
