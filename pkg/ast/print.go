package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an expression in the parenthesized form used by the
// `parse` CLI verb: "(<op-lexeme> <child>...)" for operators,
// "(group <inner>)" for Grouping, the literal's display form (or
// "nil") for Literal, and the bare name for Variable.
func Print(e Expr) string {
	switch v := e.(type) {
	case *Literal:
		return printLiteral(v.Value)
	case *Grouping:
		return parenthesize("group", v.Inner)
	case *Unary:
		return parenthesize(v.Op.Lexeme, v.Right)
	case *Binary:
		return parenthesize(v.Op.Lexeme, v.Left, v.Right)
	case *Logical:
		return parenthesize(v.Op.Lexeme, v.Left, v.Right)
	case *Variable:
		return v.Name.Lexeme
	case *Assign:
		return parenthesize("= "+v.Name.Lexeme, v.Value)
	case *Call:
		args := make([]Expr, 0, len(v.Args)+1)
		args = append(args, v.Callee)
		args = append(args, v.Args...)
		return parenthesize("call", args...)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func printLiteral(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(Print(e))
	}
	b.WriteByte(')')
	return b.String()
}

// PrintStmt renders a statement in the same spirit: Print -> "(print
// <expr>)", Block -> "(block <decl>...)", If -> "(if <cond> <then>
// <else?>)", While -> "(while <cond> <body>)", Var -> "(<name>
// <init?>)". An ExpressionStmt prints its bare expression form.
func PrintStmt(s Stmt) string {
	switch v := s.(type) {
	case *ExpressionStmt:
		return Print(v.Expr)
	case *PrintStmt:
		return "(print " + Print(v.Expr) + ")"
	case *VarStmt:
		if v.Initializer != nil {
			return fmt.Sprintf("(%s %s)", v.Name.Lexeme, Print(v.Initializer))
		}
		return fmt.Sprintf("(%s)", v.Name.Lexeme)
	case *Block:
		var b strings.Builder
		b.WriteString("(block")
		for _, decl := range v.Decls {
			b.WriteByte(' ')
			b.WriteString(PrintStmt(decl))
		}
		b.WriteByte(')')
		return b.String()
	case *IfStmt:
		if v.Else != nil {
			return fmt.Sprintf("(if %s %s %s)", Print(v.Condition), PrintStmt(v.Then), PrintStmt(v.Else))
		}
		return fmt.Sprintf("(if %s %s)", Print(v.Condition), PrintStmt(v.Then))
	case *WhileStmt:
		return fmt.Sprintf("(while %s %s)", Print(v.Condition), PrintStmt(v.Body))
	case *FunctionStmt:
		var b strings.Builder
		fmt.Fprintf(&b, "(fun %s (", v.Name.Lexeme)
		for i, p := range v.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Lexeme)
		}
		b.WriteString(")")
		for _, decl := range v.Body {
			b.WriteByte(' ')
			b.WriteString(PrintStmt(decl))
		}
		b.WriteByte(')')
		return b.String()
	case *ReturnStmt:
		if v.Value != nil {
			return "(return " + Print(v.Value) + ")"
		}
		return "(return)"
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}
