package callable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/environment"
)

// fakeExecutor runs statements using a trivial interpreter stand-in
// good enough to exercise Function.Call without pulling in
// pkg/interpreter (which itself depends on this package).
type fakeExecutor struct{}

func (fakeExecutor) ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) error {
	for _, stmt := range stmts {
		if ret, ok := stmt.(*ast.ReturnStmt); ok {
			var value interface{}
			if lit, ok := ret.Value.(*ast.Literal); ok {
				value = lit.Value
			}
			return &ReturnSignal{Value: value}
		}
	}
	return nil
}

func TestFunctionArity(t *testing.T) {
	fn := NewFunction("f", []string{"a", "b"}, nil, environment.New())
	assert.Equal(t, 2, fn.Arity())
}

func TestFunctionCallReturnsSignaledValue(t *testing.T) {
	body := []ast.Stmt{&ast.ReturnStmt{Value: &ast.Literal{Value: 42.0}}}
	fn := NewFunction("f", nil, body, environment.New())

	v, err := fn.Call(fakeExecutor{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestFunctionCallFallsOffEndYieldsNil(t *testing.T) {
	fn := NewFunction("f", nil, nil, environment.New())

	v, err := fn.Call(fakeExecutor{}, nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFunctionCallBindsParametersInFreshScope(t *testing.T) {
	closure := environment.New()
	var captured *environment.Environment
	exec := executorFunc(func(stmts []ast.Stmt, env *environment.Environment) error {
		captured = env
		return nil
	})

	fn := NewFunction("f", []string{"a"}, nil, closure)
	_, err := fn.Call(exec, []interface{}{1.0})
	require.NoError(t, err)

	v, err := captured.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestFunctionString(t *testing.T) {
	fn := NewFunction("greet", nil, nil, environment.New())
	assert.Equal(t, "<fn greet>", fn.String())
}

func TestNativeCallInvokesWrappedFunc(t *testing.T) {
	n := &Native{
		NameStr: "double",
		ArityN:  1,
		Fn: func(args []interface{}) (interface{}, error) {
			return args[0].(float64) * 2, nil
		},
	}

	v, err := n.Call(nil, []interface{}{21.0})
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
	assert.Equal(t, 1, n.Arity())
	assert.Equal(t, "<native fn>", n.String())
}

func TestReturnSignalErrorMessage(t *testing.T) {
	sig := &ReturnSignal{Value: 1.0}
	assert.Equal(t, "return", sig.Error())
}

// executorFunc adapts a plain function to the Executor interface.
type executorFunc func(stmts []ast.Stmt, env *environment.Environment) error

func (f executorFunc) ExecuteBlock(stmts []ast.Stmt, env *environment.Environment) error {
	return f(stmts, env)
}
