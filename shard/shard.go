package shard

import (
	"errors"
	"fmt"
	"os"
)

// Shard is an open, read-only handle to one shard file. The size is captured
// once at open time; shard files are immutable for the lifetime of the table.
type Shard struct {
	f    *os.File
	size int64
}

// Size returns the shard's size in bytes as captured at open time.
func (s *Shard) Size() int64 { return s.size }

// Name returns the path the shard was opened from.
func (s *Shard) Name() string { return s.f.Name() }

// Table is a dense, fixed-size collection of shard handles indexed by shard
// number. It is created fully open and stays open until Close; there is no
// reopening or resizing.
type Table struct {
	shards []*Shard
	closed bool
}

// Open opens every given path for positional reading. Either all shards open
// successfully or none stay open: on any failure the already-opened handles
// are closed before returning.
func Open(paths []string) (*Table, error) {
	if len(paths) == 0 {
		return nil, errors.New("shard: no shard paths given")
	}

	shards := make([]*Shard, 0, len(paths))
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll(shards)
			return nil, fmt.Errorf("open shard %d: %w", i, err)
		}
		fi, err := f.Stat()
		if err != nil {
			f.Close()
			closeAll(shards)
			return nil, fmt.Errorf("stat shard %d: %w", i, err)
		}
		shards = append(shards, &Shard{f: f, size: fi.Size()})
	}

	return &Table{shards: shards}, nil
}

// Get returns the handle for the given shard number.
func (t *Table) Get(shard int) (*Shard, error) {
	if shard < 0 || shard >= len(t.shards) {
		return nil, &InvalidShardError{Shard: shard, NumShards: len(t.shards)}
	}
	return t.shards[shard], nil
}

// Len returns the number of shards in the table.
func (t *Table) Len() int { return len(t.shards) }

// Close releases every shard handle. It is idempotent; the first close error
// is returned, but all handles are closed regardless.
func (t *Table) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return closeAll(t.shards)
}

func closeAll(shards []*Shard) error {
	var firstErr error
	for _, s := range shards {
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// locate resolves and validates an address in one step: the shard number must
// be within the table and [Offset, Offset+Length) must lie within the shard,
// with the sum not overflowing.
func (t *Table) locate(addr Address) (*Shard, error) {
	s, err := t.Get(addr.Shard)
	if err != nil {
		return nil, err
	}
	if addr.Offset < 0 || addr.Length < 0 ||
		addr.Length > s.size || addr.Offset > s.size-addr.Length {
		return nil, &RangeError{Shard: addr.Shard, Offset: addr.Offset, Length: addr.Length, Size: s.size}
	}
	return s, nil
}

// Validate reports whether addr denotes a readable range without performing
// any I/O.
func (t *Table) Validate(addr Address) error {
	_, err := t.locate(addr)
	return err
}
