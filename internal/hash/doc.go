// Package hash provides the CRC32-Castagnoli (CRC32C) primitives used for
// integrity checking of stored file content.
//
// CRC32C is the checksum the archive index records for every file, chosen for
// hardware acceleration on x86 (SSE4.2) and ARM (CRC extension) and for being
// the industry standard for storage integrity (iSCSI, Btrfs, RocksDB).
//
// For one-shot checksums use CRC32C; for streaming over a large byte range,
// fold consecutive chunks with Update.
package hash
