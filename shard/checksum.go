package shard

import (
	"fmt"
	"io"

	"github.com/isarandi/barecat/internal/hash"
)

// DefaultChecksumWindow is the chunk size used when streaming a byte range
// through the CRC32C accumulator.
const DefaultChecksumWindow = 64 * 1024

// Checksum computes the CRC32C of the exact range addr denotes, reading it in
// window-sized chunks so memory use stays bounded regardless of the range
// length. A window <= 0 selects DefaultChecksumWindow.
//
// The same validation as ReadAt applies, and the result is a pure function of
// the shard content at that range.
func (t *Table) Checksum(addr Address, window int) (uint32, error) {
	s, err := t.locate(addr)
	if err != nil {
		return 0, err
	}
	if window <= 0 {
		window = DefaultChecksumWindow
	}
	if int64(window) > addr.Length {
		window = int(addr.Length)
	}

	buf := make([]byte, window)
	var crc uint32
	var done int64
	for done < addr.Length {
		chunk := buf
		if rem := addr.Length - done; rem < int64(len(chunk)) {
			chunk = chunk[:rem]
		}
		n, err := s.f.ReadAt(chunk, addr.Offset+done)
		if n > 0 {
			crc = hash.Update(crc, chunk[:n])
			done += int64(n)
		}
		switch {
		case err == io.EOF:
			if done < addr.Length {
				return 0, &TruncatedReadError{
					Shard: addr.Shard, Offset: addr.Offset, Want: addr.Length, Got: done,
				}
			}
		case err != nil:
			return 0, fmt.Errorf("shard %d: read at offset %d: %w", addr.Shard, addr.Offset+done, err)
		}
	}
	return crc, nil
}
