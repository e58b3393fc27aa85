// Package resolver performs the static scope analysis pass between
// parsing and interpretation.
//
// loxwalk resolves variables statically: a reference to a name is
// bound to whichever declaration is lexically closest, even when a
// later declaration in the same block would shadow it at runtime by
// the time evaluation reaches that point. Binding it dynamically
// instead — walking the live environment chain at call time — lets a
// closure's captured variables silently change meaning if the
// enclosing scope gains a new declaration of the same name after the
// closure was created. The resolver exists to pin that meaning down
// before the interpreter ever runs.
//
// The resolver walks the AST once, maintaining a stack of scope
// frames — one per block or function body; the top level has no
// frame, so top-level names are globals. Each frame maps a name to whether its declaration has finished
// initializing. For every Variable and Assign expression it finds,
// it counts how many frames out from the innermost one the
// declaration lives, and records that distance keyed by the
// expression node's identity. The interpreter later looks this
// distance up instead of searching the environment chain from
// scratch.
package resolver

import (
	"fmt"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/report"
	"github.com/kristofer/loxwalk/pkg/token"
)

// functionKind tracks what kind of function body is currently being
// resolved, so that a bare top-level "return" can be rejected.
type functionKind int

const (
	noFunction functionKind = iota
	inFunction
)

// scope maps a name to whether its declaration is fully initialized.
// false means "declared but the initializer is still being resolved"
// — the state that makes `var a = a;` an error.
type scope map[string]bool

// Resolver walks a parsed program and produces the scope-distance
// side table the interpreter uses to resolve variable references.
//
// A Resolver is single-use: create one per program.
type Resolver struct {
	scopes      []scope
	locals      map[ast.Expr]int
	references  []Reference
	currentFunc functionKind
	sink        report.Sink
}

// Reference records one Variable or Assign node's resolution outcome,
// in the order it was encountered, for the `resolve` CLI verb's
// human-readable dump.
type Reference struct {
	Name     string
	Distance int
	Global   bool
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{locals: make(map[ast.Expr]int)}
}

// Resolve walks the program's top-level statements. Call
// HasErrors/Errors afterward to check for diagnostics, and Locals to
// retrieve the scope-distance table to pass to the interpreter.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

// Locals returns the scope-distance table: for each Variable or
// Assign expression resolved to a local (non-global) binding, the
// number of enclosing scopes between its use and its declaration. An
// expression absent from this map is a global reference, looked up
// by name at the outermost environment.
func (r *Resolver) Locals() map[ast.Expr]int {
	return r.locals
}

// References returns every Variable/Assign node's name and resolution
// outcome, in source order, for the `resolve` CLI verb.
func (r *Resolver) References() []Reference {
	return r.references
}

// HasErrors reports whether any resolver diagnostic was recorded.
func (r *Resolver) HasErrors() bool {
	return r.sink.HasErrors()
}

// Errors returns the accumulated resolver diagnostics, in the same
// "[Line N] Error <where>: <message>" format the parser uses.
func (r *Resolver) Errors() []string {
	return r.sink.Messages()
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(v.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(v.Expr)
	case *ast.VarStmt:
		r.declare(v.Name)
		if v.Initializer != nil {
			r.resolveExpr(v.Initializer)
		}
		r.define(v.Name)
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(v.Decls)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(v.Condition)
		r.resolveStmt(v.Then)
		if v.Else != nil {
			r.resolveStmt(v.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(v.Condition)
		r.resolveStmt(v.Body)
	case *ast.FunctionStmt:
		r.declare(v.Name)
		r.define(v.Name)
		r.resolveFunction(v, inFunction)
	case *ast.ReturnStmt:
		if r.currentFunc == noFunction {
			r.errorAt(v.Keyword, "Can't return from top-level code.")
		}
		if v.Value != nil {
			r.resolveExpr(v.Value)
		}
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch v := e.(type) {
	case *ast.Literal:
		// no sub-expressions, no references
	case *ast.Grouping:
		r.resolveExpr(v.Inner)
	case *ast.Unary:
		r.resolveExpr(v.Right)
	case *ast.Binary:
		r.resolveExpr(v.Left)
		r.resolveExpr(v.Right)
	case *ast.Logical:
		r.resolveExpr(v.Left)
		r.resolveExpr(v.Right)
	case *ast.Call:
		r.resolveExpr(v.Callee)
		for _, arg := range v.Args {
			r.resolveExpr(arg)
		}
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if initialized, ok := r.scopes[len(r.scopes)-1][v.Name.Lexeme]; ok && !initialized {
				r.errorAt(v.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(v, v.Name)
	case *ast.Assign:
		r.resolveLocal(v, v.Name)
		r.resolveExpr(v.Value)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosingFunc
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare records name in the innermost scope as not-yet-initialized.
// At the top level there is no enclosing scope frame, so top-level
// declarations are left for the interpreter's global environment to
// track by name alone.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = false
}

// define marks name's declaration in the innermost scope as finished,
// so references after the declaration are no longer reported as reads
// inside its own initializer.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost to outermost
// looking for name. If found at distance d (0 = innermost), it
// records d in the locals table keyed by the expression node's
// identity. If not found in any scope frame, the reference is left
// unresolved — a global, resolved by name at runtime instead.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			distance := len(r.scopes) - 1 - i
			r.locals[expr] = distance
			r.references = append(r.references, Reference{Name: name.Lexeme, Distance: distance})
			return
		}
	}
	r.references = append(r.references, Reference{Name: name.Lexeme, Global: true})
}

func (r *Resolver) errorAt(tok token.Token, message string) {
	r.sink.Syntax(tok.Line, fmt.Sprintf("at '%s'", tok.Lexeme), message)
}
