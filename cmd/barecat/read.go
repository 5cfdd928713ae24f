package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/isarandi/barecat"
)

func runRead(args []string) int {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: barecat read [options] <archive> <path>

Read one file out of the archive and write its content to stdout.

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

	content, err := bc.Read(fs.Arg(1))
	if errors.Is(err, barecat.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: %s: not found in archive\n", fs.Arg(1))
		return ExitNotFound
	}
	if err != nil {
		return fail(err)
	}
	if _, err := os.Stdout.Write(content); err != nil {
		return fail(err)
	}
	return ExitSuccess
}
