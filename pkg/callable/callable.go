// Package callable defines the Callable interface shared by
// user-defined functions and native functions, and the return-value
// control-flow signal used to implement non-local returns.
//
// Callable lives in its own package, separate from pkg/interpreter,
// because both user functions and the interpreter need to refer to
// it: a user function needs to call back into statement execution to
// run its body, and the interpreter needs to construct and invoke
// Callables. Executor breaks that cycle — it's the small slice of the
// interpreter's behavior a function body actually needs, satisfied by
// *interpreter.Interpreter without either package importing the
// other's concrete types both ways.
package callable

import (
	"fmt"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/environment"
)

// Executor is the subset of interpreter behavior a function body
// needs in order to run: execute a block of statements in a given
// environment, returning a ReturnSignal if the body hit a return
// statement.
type Executor interface {
	ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) error
}

// Callable is anything invocable with a fixed arity: a user-defined
// function or a native function exposed to loxwalk source.
type Callable interface {
	Arity() int
	Call(exec Executor, args []interface{}) (interface{}, error)
	String() string
}

// ReturnSignal is how a return statement unwinds out of a function
// body. It is returned as an ordinary Go error value up through
// ExecuteBlock and the statement-execution chain, and is type-asserted
// and unwrapped at the function-call boundary in Function.Call — never
// recovered from a panic. A return statement with no value carries a
// nil Value, which loxwalk functions surface as the language's nil.
type ReturnSignal struct {
	Value interface{}
}

func (r *ReturnSignal) Error() string { return "return" }

// Function is a user-defined loxwalk function: a name, its
// declaration's parameter list and body, and the environment active
// at the point it was declared — captured so the function can close
// over variables from its enclosing scope even after that scope's
// block has finished executing.
type Function struct {
	Name    string
	Params  []string
	Body    []ast.Stmt
	Closure *environment.Environment
}

// NewFunction constructs a Function bound to closure.
func NewFunction(name string, params []string, body []ast.Stmt, closure *environment.Environment) *Function {
	return &Function{Name: name, Params: params, Body: body, Closure: closure}
}

// Arity returns the function's declared parameter count.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Call runs the function body in a fresh environment enclosed by the
// function's closure, with each parameter bound to the corresponding
// argument. A ReturnSignal raised by the body supplies the call's
// result; falling off the end of the body without one yields nil.
func (f *Function) Call(exec Executor, args []interface{}) (interface{}, error) {
	env := environment.NewEnclosed(f.Closure)
	for i, param := range f.Params {
		env.Define(param, args[i])
	}

	err := exec.ExecuteBlock(f.Body, env)
	if err == nil {
		return nil, nil
	}
	if ret, ok := err.(*ReturnSignal); ok {
		return ret.Value, nil
	}
	return nil, err
}

// String renders a function value the way loxwalk displays it:
// "<fn name>".
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Native wraps a Go function as a loxwalk-callable native, bypassing
// ExecuteBlock entirely since a native has no AST body to interpret.
type Native struct {
	NameStr string
	ArityN  int
	Fn      func(args []interface{}) (interface{}, error)
}

// Arity returns the native's declared parameter count.
func (n *Native) Arity() int {
	return n.ArityN
}

// Call invokes the wrapped Go function directly, ignoring exec.
func (n *Native) Call(_ Executor, args []interface{}) (interface{}, error) {
	return n.Fn(args)
}

// String renders every native function value as the bare literal
// "<native fn>", per the language's display-form rule — unlike
// user-defined functions, natives don't print their own name.
func (n *Native) String() string {
	return "<native fn>"
}
