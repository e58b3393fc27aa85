package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/parser"
	"github.com/kristofer/loxwalk/pkg/scanner"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Scan and parse a source file, printing its parenthesized AST form",
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

		for _, stmt := range stmts {
			fmt.Println(ast.PrintStmt(stmt))
		}
		return nil
	},
}
