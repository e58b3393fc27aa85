// Package cmd implements loxwalk's cobra command tree.
//
// Each pipeline stage is its own subcommand (tokenize, parse, resolve,
// evaluate, run) so a caller can stop at whichever stage they need —
// dumping tokens to debug the scanner, or printing the parenthesized
// AST to debug the parser, without running the program.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// exitCode is set by a subcommand's RunE when the pipeline detects a
// diagnostic (65) or runtime failure (70), and read by main after
// Execute returns. cobra's own exit path only distinguishes
// success/failure, not which failure, so the subcommands track the
// exact code here instead of calling os.Exit directly — that would
// skip cobra's own error formatting and any deferred cleanup.
var exitCode int

// setExitCode records the process exit code a subcommand wants when
// it is larger than the one already recorded; calls with a smaller or
// equal code are ignored so the most severe diagnostic wins.
func setExitCode(code int) {
	if code > exitCode {
		exitCode = code
	}
}

var rootCmd = &cobra.Command{
	Use:     "loxwalk",
	Short:   "A tree-walking interpreter for the Language",
	Version: version,
}

// Execute runs the command tree and exits the process with the code
// the executed subcommand recorded via setExitCode.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(runCmd)
}

// readSource reads the file named by the subcommand's sole positional
// argument.
func readSource(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one source file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
