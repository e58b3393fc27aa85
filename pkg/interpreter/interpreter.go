// Package interpreter evaluates a resolved loxwalk program.
//
// The interpreter walks the AST directly rather than compiling to an
// intermediate bytecode form: every expression and statement type has
// a corresponding case in evaluate/execute, mirroring the shape of
// pkg/parser's grammar one-to-one. Variable lookups consult the
// scope-distance table produced by pkg/resolver when one exists for
// the reference, and fall back to a dynamic global lookup otherwise —
// the same two-tier scheme jlox calls "resolved" vs. "global".
package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/callable"
	"github.com/kristofer/loxwalk/pkg/environment"
	"github.com/kristofer/loxwalk/pkg/token"
)

// RuntimeError is a failure discovered during evaluation. It carries
// the offending token so the top-level driver can report a line
// number, mirroring the line attribution the scanner and parser give
// their own diagnostics.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// Interpreter evaluates a single program's statements against a
// global environment seeded with the native function roster.
//
// An Interpreter may be reused across multiple Run calls against the
// same globals (as the `evaluate` CLI verb does for a single source file),
// but each Run starts fresh at the global environment.
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	locals  map[ast.Expr]int
	stdout  io.Writer
}

// New creates an Interpreter writing Print output to stdout, with the
// native function roster installed in the global environment.
func New(stdout io.Writer, locals map[ast.Expr]int) *Interpreter {
	globals := environment.New()
	installNatives(globals)
	if locals == nil {
		locals = make(map[ast.Expr]int)
	}
	return &Interpreter{globals: globals, env: globals, locals: locals, stdout: stdout}
}

// Run executes a program's top-level statements. It returns the first
// RuntimeError encountered — loxwalk, like its teacher's VM, halts the
// whole run at the first runtime failure rather than attempting to
// recover and continue, since by this stage there is no syntactic
// structure left to resynchronize against.
func (in *Interpreter) Run(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression and returns its value, for
// the `evaluate` CLI verb (which renders it with Stringify).
func (in *Interpreter) Evaluate(expr ast.Expr) (interface{}, error) {
	return in.evaluate(expr)
}

// ExecuteBlock runs stmts in env, restoring the interpreter's previous
// environment on every exit path — normal completion, a ReturnSignal,
// or a RuntimeError. It satisfies callable.Executor, letting
// callable.Function call back into statement execution for its body
// without importing this package.
func (in *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, Stringify(v))
		return nil

	case *ast.VarStmt:
		var value interface{}
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.Block:
		return in.ExecuteBlock(s.Decls, environment.NewEnclosed(in.env))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		switch {
		case isTruthy(cond):
			return in.execute(s.Then)
		case s.Else != nil:
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		fn := callable.NewFunction(s.Name.Lexeme, params, s.Body, in.env)
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value interface{}
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &callable.ReturnSignal{Value: value}

	default:
		panic(fmt.Sprintf("interpreter: unhandled statement %T", stmt))
	}
}

func (in *Interpreter) evaluate(expr ast.Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Unary:
		right, err := in.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op.Kind {
		case token.Minus:
			n, err := checkNumberOperand(e.Op, right)
			if err != nil {
				return nil, err
			}
			return -n, nil
		case token.Bang:
			return !isTruthy(right), nil
		}
		panic(fmt.Sprintf("interpreter: unhandled unary operator %s", e.Op.Kind))

	case *ast.Binary:
		return in.evaluateBinary(e)

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op.Kind == token.Or {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Variable:
		return in.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if dist, ok := in.locals[e]; ok {
			in.env.AssignAt(dist, e.Name.Lexeme, value)
		} else if err := in.globals.Assign(e.Name.Lexeme, value); err != nil {
			return nil, &RuntimeError{Token: e.Name, Message: err.Error()}
		}
		return value, nil

	case *ast.Call:
		return in.evaluateCall(e)

	default:
		panic(fmt.Sprintf("interpreter: unhandled expression %T", expr))
	}
}

func (in *Interpreter) evaluateBinary(e *ast.Binary) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.Minus:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Slash:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case token.Star:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Plus:
		return in.evaluatePlus(e.Op, left, right)
	case token.Greater:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	}
	panic(fmt.Sprintf("interpreter: unhandled binary operator %s", e.Op.Kind))
}

// evaluatePlus overloads "+" for numeric addition and string
// concatenation, per the Language's arithmetic rules; any other
// operand combination is a runtime error.
func (in *Interpreter) evaluatePlus(op token.Token, left, right interface{}) (interface{}, error) {
	if l, ok := left.(float64); ok {
		if r, ok := right.(float64); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return l + r, nil
		}
	}
	return nil, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
}

func (in *Interpreter) evaluateCall(e *ast.Call) (interface{}, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(callable.Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}

	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}

	result, err := fn.Call(in, args)
	if err != nil {
		if _, ok := err.(*RuntimeError); ok {
			return nil, err
		}
		return nil, &RuntimeError{Token: e.Paren, Message: err.Error()}
	}
	return result, nil
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (interface{}, error) {
	if dist, ok := in.locals[expr]; ok {
		return in.env.GetAt(dist, name.Lexeme), nil
	}
	v, err := in.globals.Get(name.Lexeme)
	if err != nil {
		return nil, &RuntimeError{Token: name, Message: err.Error()}
	}
	return v, nil
}

func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func checkNumberOperand(op token.Token, operand interface{}) (float64, error) {
	if n, ok := operand.(float64); ok {
		return n, nil
	}
	return 0, &RuntimeError{Token: op, Message: "Operand must be a number."}
}

func checkNumberOperands(op token.Token, left, right interface{}) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if lok && rok {
		return l, r, nil
	}
	return 0, 0, &RuntimeError{Token: op, Message: "Operands must be numbers."}
}

// Stringify renders a runtime value in the Language's display form:
// numbers drop a trailing ".0" when integral, strings print without
// quotes, nil prints as "nil", and callables defer to their own
// String method.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return strings.TrimSuffix(s, ".0")
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// installNatives registers loxwalk's fixed native function roster
// into globals: clock (wall-clock seconds), str (display-form
// stringification), num (string-to-number parsing), and len
// (byte length of a string).
func installNatives(globals *environment.Environment) {
	globals.Define("clock", &callable.Native{
		NameStr: "clock",
		ArityN:  0,
		Fn: func(args []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	globals.Define("str", &callable.Native{
		NameStr: "str",
		ArityN:  1,
		Fn: func(args []interface{}) (interface{}, error) {
			return Stringify(args[0]), nil
		},
	})

	globals.Define("num", &callable.Native{
		NameStr: "num",
		ArityN:  1,
		Fn: func(args []interface{}) (interface{}, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("Argument must be a numeric string.")
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("Argument must be a numeric string.")
			}
			return n, nil
		},
	})

	globals.Define("len", &callable.Native{
		NameStr: "len",
		ArityN:  1,
		Fn: func(args []interface{}) (interface{}, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("Argument must be a string.")
			}
			return float64(len(s)), nil
		},
	})
}
