// unibind-profiles is a CLI tool for inspecting and converting the
// interaction-profile catalogue.
package main

import (
	"fmt"
	"os"

	"github.com/unibind/unibind-go/cmd/unibind-profiles/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "validate":
		exitCode = commands.RunValidate(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("unibind-profiles version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`unibind-profiles - interaction-profile catalogue tool

Usage:
  unibind-profiles <command> [options] [files...]

Commands:
  validate   Validate catalogue files (or the embedded catalogue)
  show       Display profiles with their subpaths and derived god actions
  convert    Convert the catalogue to JSON or CBOR

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  unibind-profiles validate
  unibind-profiles validate custom-catalogue.yaml
  unibind-profiles show --format json
  unibind-profiles show --profile /interaction_profiles/khr/simple_controller
  unibind-profiles convert --format cbor -o catalogue.cbor

For command-specific help, run:
  unibind-profiles <command> --help`)
}
