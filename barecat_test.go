package barecat_test

import (
	"crypto/rand"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isarandi/barecat"
	"github.com/isarandi/barecat/shard"
	"github.com/isarandi/barecat/testutil"
)

func testFiles(t *testing.T) map[string][]byte {
	t.Helper()
	big := make([]byte, 200*1024) // spans multiple checksum windows
	_, err := rand.Read(big)
	require.NoError(t, err)
	return map[string][]byte{
		"hello.txt":      []byte("HELLO"),
		"empty":          {},
		"sub/dir/big":    big,
		"sub/small.json": []byte(`{"k": 1}`),
	}
}

func openArchive(t *testing.T, files map[string][]byte, numShards int) (*barecat.Barecat, *testutil.Archive) {
	t.Helper()
	ar := testutil.WriteArchive(t, files, numShards)
	bc, err := barecat.Open(ar.IndexPath, ar.ShardPaths)
	require.NoError(t, err)
	t.Cleanup(func() { bc.Close() })
	return bc, ar
}

func TestRead(t *testing.T) {
	files := testFiles(t)
	bc, _ := openArchive(t, files, 3)

	for path, want := range files {
		got, err := bc.Read(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
		require.Len(t, got, len(want), path)
	}
}

func TestRead_NotFound(t *testing.T) {
	bc, _ := openArchive(t, testFiles(t), 2)

	_, err := bc.Read("no/such/path")
	require.ErrorIs(t, err, barecat.ErrNotFound)
}

func TestReadInto(t *testing.T) {
	bc, _ := openArchive(t, testFiles(t), 2)

	buf := make([]byte, 16)
	n, err := bc.ReadInto("hello.txt", buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "HELLO", string(buf[:n]))

	_, err = bc.ReadInto("hello.txt", make([]byte, 3))
	require.ErrorIs(t, err, shard.ErrShortBuffer)
}

func TestReadAt_MatchesReadByPath(t *testing.T) {
	files := testFiles(t)
	bc, ar := openArchive(t, files, 3)

	for path, want := range files {
		e := ar.Entries[path]
		got, err := bc.ReadAt(e.Shard, e.Offset, e.Size)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)

		viaPath, err := bc.Read(path)
		require.NoError(t, err, path)
		require.Equal(t, viaPath, got, path)
	}
}

func TestReadAt_RangeError(t *testing.T) {
	bc, _ := openArchive(t, map[string][]byte{"f": make([]byte, 100)}, 1)

	_, err := bc.ReadAt(0, 98, 5)
	var re *shard.RangeError
	require.ErrorAs(t, err, &re)

	_, err = bc.ReadAt(7, 0, 1)
	var ise *shard.InvalidShardError
	require.ErrorAs(t, err, &ise)

	_, err = bc.ReadAt(0, 0, -1)
	require.ErrorAs(t, err, &re)
}

func TestChecksumAt(t *testing.T) {
	files := testFiles(t)
	bc, ar := openArchive(t, files, 2)

	table := crc32.MakeTable(crc32.Castagnoli)
	for path, content := range files {
		e := ar.Entries[path]
		crc, err := bc.ChecksumAt(e.Shard, e.Offset, e.Size)
		require.NoError(t, err, path)
		require.Equal(t, crc32.Checksum(content, table), crc, path)

		again, err := bc.ChecksumAt(e.Shard, e.Offset, e.Size)
		require.NoError(t, err, path)
		require.Equal(t, crc, again, path)
	}
}

func TestStat(t *testing.T) {
	files := testFiles(t)
	bc, ar := openArchive(t, files, 2)

	fi, err := bc.Stat("/sub//dir/./big")
	require.NoError(t, err)
	e := ar.Entries["sub/dir/big"]
	require.Equal(t, "sub/dir/big", fi.Path)
	require.Equal(t, e.Shard, fi.Shard)
	require.Equal(t, e.Offset, fi.Offset)
	require.Equal(t, e.Size, fi.Size)
	require.True(t, fi.HasCRC32C)
	require.Equal(t, e.CRC32C, fi.CRC32C)

	// Stat then ReadAt is the cached-address pattern.
	got, err := bc.ReadAt(fi.Shard, fi.Offset, fi.Size)
	require.NoError(t, err)
	require.Equal(t, files["sub/dir/big"], got)
}

func TestRead_CorruptIndexSize(t *testing.T) {
	// The index is untrusted input: a corrupted size must surface as a range
	// error from Read, not blow up allocating the result buffer.
	tests := []struct {
		name string
		size int64
	}{
		{"negative", -5},
		{"beyond shard", 1 << 20},
		{"absurd", 1 << 62},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("content")}, 1)
			testutil.Exec(t, ar.IndexPath, `UPDATE files SET size = ? WHERE path = 'f'`, tt.size)

			bc, err := barecat.Open(ar.IndexPath, ar.ShardPaths)
			require.NoError(t, err)
			defer bc.Close()

			_, err = bc.Read("f")
			var re *shard.RangeError
			require.ErrorAs(t, err, &re)

			_, err = bc.ReadInto("f", make([]byte, 16))
			require.ErrorAs(t, err, &re)
		})
	}
}

func TestNumShards(t *testing.T) {
	bc, _ := openArchive(t, testFiles(t), 3)
	require.Equal(t, 3, bc.NumShards())
}

func TestClose(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("x")}, 1)
	bc, err := barecat.Open(ar.IndexPath, ar.ShardPaths)
	require.NoError(t, err)

	require.NoError(t, bc.Close())
	require.NoError(t, bc.Close())

	_, err = bc.Read("f")
	require.ErrorIs(t, err, barecat.ErrClosed)
	_, err = bc.ReadAt(0, 0, 1)
	require.ErrorIs(t, err, barecat.ErrClosed)
	_, err = bc.ChecksumAt(0, 0, 1)
	require.ErrorIs(t, err, barecat.ErrClosed)
	_, err = bc.Stat("f")
	require.ErrorIs(t, err, barecat.ErrClosed)
}

func TestOpen_NoShards(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("x")}, 1)
	_, err := barecat.Open(ar.IndexPath, nil)
	require.Error(t, err)
}

func TestOpen_MissingIndex(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("x")}, 1)
	_, err := barecat.Open(ar.IndexPath+".nope", ar.ShardPaths)
	require.Error(t, err)
}

func TestOpen_MissingShard(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("x")}, 1)
	paths := append([]string{}, ar.ShardPaths...)
	paths = append(paths, paths[0]+"-missing")
	_, err := barecat.Open(ar.IndexPath, paths)
	require.Error(t, err)
}

func TestWithChecksumWindow(t *testing.T) {
	files := testFiles(t)
	ar := testutil.WriteArchive(t, files, 1)

	bc, err := barecat.Open(ar.IndexPath, ar.ShardPaths, barecat.WithChecksumWindow(11))
	require.NoError(t, err)
	defer bc.Close()

	e := ar.Entries["sub/dir/big"]
	crc, err := bc.ChecksumAt(e.Shard, e.Offset, e.Size)
	require.NoError(t, err)
	require.Equal(t, e.CRC32C, crc)
}
