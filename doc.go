// Package barecat reads files out of a barecat archive: many small files
// packed back to back into a few large shard files, with an SQLite index
// mapping each path to the shard, offset and size of its content.
//
// This package is the read path only. Archives are written and maintained by
// separate tooling; here the index is queried, byte ranges are read
// positionally from the shard files, and stored CRC32C checksums can be
// verified without materializing whole shards in memory.
//
// # Quick start
//
//	shards, _ := barecat.DiscoverShards("data.barecat")
//	bc, err := barecat.Open("data.barecat", shards)
//	if err != nil { ... }
//	defer bc.Close()
//
//	content, err := bc.Read("images/0001.jpg")
//
// When the physical address of an item is already known (for example cached
// from a previous Stat), the index can be bypassed:
//
//	content, err := bc.ReadAt(shardID, offset, length)
//	crc, err := bc.ChecksumAt(shardID, offset, length)
//
// # Concurrency
//
// A Barecat is safe for concurrent readers: shard reads are positional
// (pread) and index queries go through a connection pool. Close must not race
// with in-flight reads; quiesce readers first.
package barecat
