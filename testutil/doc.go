// Package testutil builds small barecat archives for tests.
//
// This package is intended for use in tests only. It writes real shard files
// and a real SQLite index into a temporary directory, so tests exercise the
// same code paths as production archives:
//
//	ar := testutil.WriteArchive(t, map[string][]byte{
//		"a.txt":     []byte("hello"),
//		"sub/b.bin": data,
//	}, 2)
//	bc, err := barecat.Open(ar.IndexPath, ar.ShardPaths)
package testutil
