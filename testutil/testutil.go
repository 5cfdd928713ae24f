package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/isarandi/barecat/internal/hash"
)

// Entry records where a file landed in the generated archive.
type Entry struct {
	Shard  int
	Offset int64
	Size   int64
	CRC32C uint32
}

// Archive is a barecat archive written into a test's temp directory.
type Archive struct {
	// Base is the archive path; IndexPath equals Base.
	Base       string
	IndexPath  string
	ShardPaths []string
	// Entries maps each file path to its physical location.
	Entries map[string]Entry
}

const schema = `CREATE TABLE files (
	path   TEXT PRIMARY KEY,
	shard  INTEGER NOT NULL,
	offset INTEGER NOT NULL,
	size   INTEGER NOT NULL,
	crc32c INTEGER
)`

// WriteArchive writes the given files into numShards shard files plus an
// SQLite index, using the standard shard naming scheme. Files are assigned
// to shards round-robin in sorted path order, so the layout is deterministic.
func WriteArchive(t *testing.T, files map[string][]byte, numShards int) *Archive {
	t.Helper()

	base := filepath.Join(t.TempDir(), "test.barecat")
	ar := &Archive{
		Base:      base,
		IndexPath: base,
		Entries:   make(map[string]Entry, len(files)),
	}

	shardFiles := make([]*os.File, numShards)
	offsets := make([]int64, numShards)
	for i := range shardFiles {
		path := fmt.Sprintf("%s-shard-%05d", base, i)
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("create shard %d: %v", i, err)
		}
		defer f.Close()
		shardFiles[i] = f
		ar.ShardPaths = append(ar.ShardPaths, path)
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	db, err := sql.Open("sqlite", base)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create index schema: %v", err)
	}

	insert, err := db.Prepare(`INSERT INTO files (path, shard, offset, size, crc32c) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		t.Fatalf("prepare insert: %v", err)
	}
	defer insert.Close()

	for i, p := range paths {
		content := files[p]
		shard := i % numShards
		e := Entry{
			Shard:  shard,
			Offset: offsets[shard],
			Size:   int64(len(content)),
			CRC32C: hash.CRC32C(content),
		}
		if _, err := shardFiles[shard].Write(content); err != nil {
			t.Fatalf("write shard %d: %v", shard, err)
		}
		offsets[shard] += e.Size
		if _, err := insert.Exec(p, e.Shard, e.Offset, e.Size, int64(e.CRC32C)); err != nil {
			t.Fatalf("insert %q: %v", p, err)
		}
		ar.Entries[p] = e
	}

	for i, f := range shardFiles {
		if err := f.Sync(); err != nil {
			t.Fatalf("sync shard %d: %v", i, err)
		}
	}
	return ar
}

// Exec runs a statement against the archive's index, for tests that need to
// manipulate index records directly (e.g. planting bad addresses).
func Exec(t *testing.T, indexPath, query string, args ...any) {
	t.Helper()
	db, err := sql.Open("sqlite", indexPath)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// ClearChecksum nulls out the stored checksum of one file.
func ClearChecksum(t *testing.T, indexPath, path string) {
	t.Helper()
	Exec(t, indexPath, `UPDATE files SET crc32c = NULL WHERE path = ?`, path)
}

// CorruptShard flips one byte of a shard file in place.
func CorruptShard(t *testing.T, shardPath string, offset int64) {
	t.Helper()
	f, err := os.OpenFile(shardPath, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open shard for corruption: %v", err)
	}
	defer f.Close()
	b := make([]byte, 1)
	if _, err := f.ReadAt(b, offset); err != nil {
		t.Fatalf("read shard byte: %v", err)
	}
	b[0] ^= 0xFF
	if _, err := f.WriteAt(b, offset); err != nil {
		t.Fatalf("write shard byte: %v", err)
	}
}
