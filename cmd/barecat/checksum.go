package main

import (
	"flag"
	"fmt"
	"os"
)

func runChecksum(args []string) int {
	fs := flag.NewFlagSet("checksum", flag.ExitOnError)

	shard := fs.Int("shard", -1, "Shard number for address form")
	offset := fs.Int64("offset", 0, "Byte offset for address form")
	length := fs.Int64("length", 0, "Byte length for address form")
	verbose := fs.Bool("v", false, "Verbose logging to stderr")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: barecat checksum <archive> [<path>]
       barecat checksum -shard N -offset OFF -length LEN <archive>

Print the CRC32C of a file (resolved through the index) or of an explicit
byte range in a shard.

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	byAddress := *shard >= 0
	if (byAddress && fs.NArg() != 1) || (!byAddress && fs.NArg() != 2) {
		fs.Usage()
		return ExitInvalidArgs
	}

	bc, err := openArchive(fs.Arg(0), *verbose)
	if err != nil {
		return fail(err)
	}
	defer bc.Close()

	if !byAddress {
		fi, err := bc.Stat(fs.Arg(1))
		if err != nil {
			return fail(err)
		}
		*shard, *offset, *length = fi.Shard, fi.Offset, fi.Size
	}

	crc, err := bc.ChecksumAt(*shard, *offset, *length)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("0x%08x\n", crc)
	return ExitSuccess
}
