package shard

import (
	"fmt"
	"io"
)

// Address locates a byte range within the archive: a shard number plus an
// offset/length pair within that shard. Addresses typically come from the
// index and are re-validated here before every read.
type Address struct {
	Shard  int
	Offset int64
	Length int64
}

// ReadAt reads the exact range addr denotes into dest, which must hold at
// least addr.Length bytes. It returns the number of bytes read, which on
// success is always addr.Length: short reads are retried, and a premature end
// of the shard file fails with TruncatedReadError rather than reporting
// partial data as success.
//
// Reads are purely positional; no seek cursor is shared with other callers.
func (t *Table) ReadAt(addr Address, dest []byte) (int, error) {
	s, err := t.locate(addr)
	if err != nil {
		return 0, err
	}
	if int64(len(dest)) < addr.Length {
		return 0, ErrShortBuffer
	}

	buf := dest[:addr.Length]
	var read int64
	for read < addr.Length {
		n, err := s.f.ReadAt(buf[read:], addr.Offset+read)
		read += int64(n)
		switch {
		case err == io.EOF:
			if read < addr.Length {
				return int(read), &TruncatedReadError{
					Shard: addr.Shard, Offset: addr.Offset, Want: addr.Length, Got: read,
				}
			}
		case err != nil:
			return int(read), fmt.Errorf("shard %d: read at offset %d: %w", addr.Shard, addr.Offset+read, err)
		}
	}
	return int(read), nil
}
