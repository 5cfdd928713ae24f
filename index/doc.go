// Package index adapts the archive's external lookup index to the read path.
//
// The index maps logical file paths to physical locations — a shard number,
// a byte offset, a size, and optionally a stored CRC32C. This package only
// ever queries the index; building and maintaining it belongs to the write
// tooling.
//
// Resolver is the interface the read path consumes. The built-in
// implementation is SQLite-backed (the archive's native index format), but a
// custom Resolver can be swapped in without touching the read or checksum
// logic.
package index
