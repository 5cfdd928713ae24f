// Package shard manages the open file handles of a sharded archive and
// performs bounds-checked positional reads against them.
//
// A Table owns one read-only handle per shard file for its whole lifetime.
// Reads are addressed by (shard, offset, length) triples and go through
// os.File.ReadAt, so concurrent readers never share a seek cursor.
// Offset/length pairs are treated as untrusted: every read and checksum is
// validated against the shard size captured at open time, and a read that
// cannot deliver the full requested length fails instead of returning
// partial data.
package shard
