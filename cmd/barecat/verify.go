package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: barecat verify [options] <archive> [<path>]

Recompute CRC32C checksums and compare them against the index. With a path,
verify that single file; without, scan the whole archive in physical order.

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}
	if fs.NArg() != 1 && fs.NArg() != 2 {
		fs.Usage()
		return ExitInvalidArgs
	}

	bc, err := openArchive(fs.Arg(0), *verbose)
	if err != nil {
		return fail(err)
	}
	defer bc.Close()

	if fs.NArg() == 2 {
		if err := bc.Verify(fs.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			return ExitVerifyFailed
		}
		fmt.Printf("OK: %s\n", fs.Arg(1))
		return ExitSuccess
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping...")
		cancel()
	}()

	report, err := bc.VerifyAll(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("checked %d, skipped %d (no stored checksum)\n", report.Checked, report.Skipped)
	if !report.OK() {
		for _, path := range report.Mismatched {
			fmt.Printf("FAIL: %s\n", path)
		}
		return ExitVerifyFailed
	}
	fmt.Println("OK")
	return ExitSuccess
}
