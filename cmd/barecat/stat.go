package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/isarandi/barecat"
)

func runStat(args []string) int {
	fs := flag.NewFlagSet("stat", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: barecat stat [options] <archive> <path>

Print the index record of a file: shard, offset, size and stored checksum.

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return ExitInvalidArgs
	}

	bc, err := openArchive(fs.Arg(0), *verbose)
	if err != nil {
		return fail(err)
	}
	defer bc.Close()

	fi, err := bc.Stat(fs.Arg(1))
	if errors.Is(err, barecat.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: %s: not found in archive\n", fs.Arg(1))
		return ExitNotFound
	}
	if err != nil {
		return fail(err)
	}

	fmt.Printf("path:   %s\n", fi.Path)
	fmt.Printf("shard:  %d\n", fi.Shard)
	fmt.Printf("offset: %d\n", fi.Offset)
	fmt.Printf("size:   %d\n", fi.Size)
	if fi.HasCRC32C {
		fmt.Printf("crc32c: 0x%08x\n", fi.CRC32C)
	} else {
		fmt.Printf("crc32c: (none)\n")
	}
	return ExitSuccess
}
