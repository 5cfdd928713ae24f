package index

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrNotFound is returned by Resolve when a path has no entry in the index.
// This is a normal outcome for absent files, distinct from a backend failure.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("index: path not found")

// Location is the physical address of a file's content: which shard holds it
// and where. CRC32C is the checksum recorded at write time; HasCRC32C is
// false for entries written without one.
type Location struct {
	Shard     int
	Offset    int64
	Size      int64
	CRC32C    uint32
	HasCRC32C bool
}

// Entry pairs an archive path with its location, as produced by enumeration.
type Entry struct {
	Path string
	Location
}

// Resolver looks up physical locations for archive paths. Implementations
// must be pure queries (no index mutation) and safe for concurrent use.
type Resolver interface {
	// Resolve returns the location for the given archive path, or an error
	// satisfying errors.Is(err, ErrNotFound) when the path is absent.
	Resolve(path string) (Location, error)

	io.Closer
}

// Walker is an optional interface for resolvers that can enumerate every
// entry in the index. Entries are yielded in physical order (by shard, then
// offset) so that a full scan reads each shard file forward.
type Walker interface {
	Walk(ctx context.Context, fn func(Entry) error) error
}

// NormalizePath canonicalizes an archive path the way the index stores paths:
// redundant separators and dot segments collapse, leading slashes are
// stripped, and the archive root is the empty string.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return p
}
