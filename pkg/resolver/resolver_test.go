package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/parser"
	"github.com/kristofer/loxwalk/pkg/scanner"
)

func resolve(t *testing.T, source string) ([]ast.Stmt, *Resolver) {
	t.Helper()
	tokens, diags := scanner.Scan(source)
	require.Empty(t, diags)

	p := parser.New(tokens)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())

	r := New()
	r.Resolve(stmts)
	return stmts, r
}

func TestResolveGlobalReferenceUnresolved(t *testing.T) {
	stmts, r := resolve(t, "var a = 1; print a;")
	require.False(t, r.HasErrors())

	printStmt := stmts[1].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)
	_, ok := r.Locals()[ref]
	assert.False(t, ok, "a top-level reference to a global should not appear in the locals table")
}

func TestResolveLocalDistanceZero(t *testing.T) {
	stmts, r := resolve(t, "{ var a = 1; print a; }")
	require.False(t, r.HasErrors())

	block := stmts[0].(*ast.Block)
	printStmt := block.Decls[1].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)

	dist, ok := r.Locals()[ref]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolveNestedBlockDistance(t *testing.T) {
	stmts, r := resolve(t, "{ var a = 1; { print a; } }")
	require.False(t, r.HasErrors())

	outer := stmts[0].(*ast.Block)
	inner := outer.Decls[1].(*ast.Block)
	printStmt := inner.Decls[0].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)

	dist, ok := r.Locals()[ref]
	require.True(t, ok)
	assert.Equal(t, 1, dist)
}

func TestResolveSelfReferenceInInitializerIsError(t *testing.T) {
	_, r := resolve(t, "{ var a = a; }")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.Errors()[0], "Can't read local variable in its own initializer.")
}

func TestResolveTopLevelReturnIsError(t *testing.T) {
	_, r := resolve(t, "return 1;")
	require.True(t, r.HasErrors())
	assert.Contains(t, r.Errors()[0], "Can't return from top-level code.")
}

func TestResolveReturnInsideFunctionIsFine(t *testing.T) {
	_, r := resolve(t, "fun f() { return 1; }")
	assert.False(t, r.HasErrors())
}

func TestResolveFunctionParamsShadowOuterScope(t *testing.T) {
	stmts, r := resolve(t, "var a = 1; fun f(a) { print a; }")
	require.False(t, r.HasErrors())

	fn := stmts[1].(*ast.FunctionStmt)
	printStmt := fn.Body[0].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)

	dist, ok := r.Locals()[ref]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolveClosureCapturesEnclosingFunctionScope(t *testing.T) {
	stmts, r := resolve(t, "fun outer() { var a = 1; fun inner() { print a; } }")
	require.False(t, r.HasErrors())

	outer := stmts[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	printStmt := inner.Body[0].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)

	dist, ok := r.Locals()[ref]
	require.True(t, ok)
	assert.Equal(t, 1, dist)
}

func TestResolveAssignTargetDistance(t *testing.T) {
	stmts, r := resolve(t, "{ var a = 1; a = 2; }")
	require.False(t, r.HasErrors())

	block := stmts[0].(*ast.Block)
	assignStmt := block.Decls[1].(*ast.ExpressionStmt)
	assign := assignStmt.Expr.(*ast.Assign)

	dist, ok := r.Locals()[assign]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolveReferencesIncludesGlobalsAndLocalsInSourceOrder(t *testing.T) {
	_, r := resolve(t, "var a = 1; { var a = 2; print a; } print a;")
	require.False(t, r.HasErrors())

	refs := r.References()
	require.Len(t, refs, 2)
	assert.Equal(t, Reference{Name: "a", Distance: 0, Global: false}, refs[0])
	assert.Equal(t, Reference{Name: "a", Global: true}, refs[1])
}

func TestResolveRedeclarationInDifferentScopesIsFine(t *testing.T) {
	// Shadowing a name in a nested scope is legal; each use resolves
	// to whichever declaration is lexically closest.
	_, r := resolve(t, "var a = 1; { var a = 2; print a; }")
	assert.False(t, r.HasErrors())
}
