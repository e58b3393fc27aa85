package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kristofer/loxwalk/pkg/parser"
	"github.com/kristofer/loxwalk/pkg/resolver"
	"github.com/kristofer/loxwalk/pkg/scanner"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Run static scope resolution and print each resolved variable's scope distance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}

		tokens, diags := scanner.Scan(source)
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d)
		}
		if len(diags) > 0 {
			setExitCode(65)
			return nil
		}

		p := parser.New(tokens)
		stmts := p.Parse()
		if p.HasErrors() {
			for _, e := range p.Errors() {
				fmt.Fprintln(os.Stderr, e)
			}
			setExitCode(65)
			return nil
		}

		r := resolver.New()
		r.Resolve(stmts)
		if r.HasErrors() {
			for _, e := range r.Errors() {
				fmt.Fprintln(os.Stderr, e)
			}
			setExitCode(65)
			return nil
		}

		for _, ref := range r.References() {
			if ref.Global {
				fmt.Printf("%s @ global\n", ref.Name)
			} else {
				fmt.Printf("%s @ %d\n", ref.Name, ref.Distance)
			}
		}
		return nil
	},
}
