package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitNotFound     = 3
	ExitVerifyFailed = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "read":
		return runRead(cmdArgs)
	case "checksum":
		return runChecksum(cmdArgs)
	case "stat":
		return runStat(cmdArgs)
	case "verify":
		return runVerify(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: barecat <command> [options]

Commands:
  read      Read a file from the archive and write it to stdout
  checksum  Print the CRC32C of a file or of an explicit shard range
  stat      Print the index record of a file
  verify    Check stored checksums against shard content
  help      Show this help

Run 'barecat <command> -h' for command options.`)
}
