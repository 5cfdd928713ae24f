package shard

import (
	"errors"
	"fmt"
	"io"
)

// ErrShortBuffer is returned when a destination buffer cannot hold the
// requested range.
var ErrShortBuffer = errors.New("shard: destination buffer too small")

// InvalidShardError indicates a shard number outside the table.
type InvalidShardError struct {
	Shard     int
	NumShards int
}

func (e *InvalidShardError) Error() string {
	return fmt.Sprintf("shard %d out of range [0, %d)", e.Shard, e.NumShards)
}

// RangeError indicates an offset/length pair that does not denote a valid
// byte range within the shard.
type RangeError struct {
	Shard  int
	Offset int64
	Length int64
	Size   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("shard %d: range [%d, %d+%d) outside shard of size %d",
		e.Shard, e.Offset, e.Offset, e.Length, e.Size)
}

// TruncatedReadError indicates that the shard file ended before the full
// requested range could be read. Since ranges are validated against the size
// captured at open time, this means the file shrank underneath the table or
// the index is inconsistent with the shard contents.
//
// Satisfies errors.Is(err, io.ErrUnexpectedEOF).
type TruncatedReadError struct {
	Shard  int
	Offset int64
	Want   int64
	Got    int64
}

func (e *TruncatedReadError) Error() string {
	return fmt.Sprintf("shard %d: truncated read at offset %d: want %d bytes, got %d",
		e.Shard, e.Offset, e.Want, e.Got)
}

func (e *TruncatedReadError) Unwrap() error { return io.ErrUnexpectedEOF }
