package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isarandi/barecat/testutil"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// whatever it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRun_Read(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"greeting.txt": []byte("HELLO")}, 1)

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"read", ar.Base, "greeting.txt"})
	})
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, "HELLO", out)
}

func TestRun_ReadVerbose(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"greeting.txt": []byte("HELLO")}, 1)

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"read", "-v", ar.Base, "greeting.txt"})
	})
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, "HELLO", out)
}

func TestRun_ReadNotFound(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("x")}, 1)
	require.Equal(t, ExitNotFound, run([]string{"read", ar.Base, "nope"}))
}

func TestRun_Checksum(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"f": []byte("HELLO")}, 1)

	var byPath, byAddress string
	code := ExitGeneralError
	byPath = captureStdout(t, func() {
		code = run([]string{"checksum", ar.Base, "f"})
	})
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, "0xe88e8c58\n", byPath)

	byAddress = captureStdout(t, func() {
		code = run([]string{"checksum", "-shard", "0", "-offset", "0", "-length", "5", ar.Base})
	})
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, byPath, byAddress)
}

func TestRun_Verify(t *testing.T) {
	ar := testutil.WriteArchive(t, map[string][]byte{"a": []byte("aaa"), "b": []byte("bb")}, 1)

	var code int
	captureStdout(t, func() {
		code = run([]string{"verify", ar.Base})
	})
	require.Equal(t, ExitSuccess, code)

	testutil.CorruptShard(t, ar.ShardPaths[0], ar.Entries["a"].Offset)
	captureStdout(t, func() {
		code = run([]string{"verify", ar.Base})
	})
	require.Equal(t, ExitVerifyFailed, code)
}

func TestRun_UnknownCommand(t *testing.T) {
	require.Equal(t, ExitInvalidArgs, run([]string{"frobnicate"}))
	require.Equal(t, ExitInvalidArgs, run(nil))
}
