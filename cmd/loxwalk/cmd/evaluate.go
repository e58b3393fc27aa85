package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/interpreter"
	"github.com/kristofer/loxwalk/pkg/parser"
	"github.com/kristofer/loxwalk/pkg/resolver"
	"github.com/kristofer/loxwalk/pkg/scanner"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Evaluate each top-level expression in a source file and print its value",
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

		in := interpreter.New(os.Stdout, r.Locals())
		for _, stmt := range stmts {
			es, ok := stmt.(*ast.ExpressionStmt)
			if !ok {
				// Non-expression top-level statements (var/fun
				// declarations and the like) still execute, so a
				// later expression can reference what they define.
				if err := in.Run([]ast.Stmt{stmt}); err != nil {
					fmt.Fprintln(os.Stderr, err.Error())
					setExitCode(70)
					return nil
				}
				continue
			}

			v, err := in.Evaluate(es.Expr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				setExitCode(70)
				return nil
			}
			fmt.Println(interpreter.Stringify(v))
		}
		return nil
	},
}
