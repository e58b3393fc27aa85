package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kristofer/loxwalk/pkg/scanner"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Scan a source file and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}

		tokens, diags := scanner.Scan(source)
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d)
		}
		if len(diags) > 0 {
			setExitCode(65)
		}
		return nil
	},
}
