// Package parser implements loxwalk's recursive-descent parser.
//
// Parser Architecture:
//
// The parser uses precedence-climbing recursive descent: each grammar
// rule corresponds to a parsing method, lowest precedence (assignment)
// at the top, primary expressions at the bottom. A method recurses
// into the next-higher-precedence method before looking for its own
// operators, which is what makes `*` bind tighter than `+` without an
// explicit precedence table.
//
// Grammar (low to high precedence):
//
//	program      → declaration* EOF
//	declaration  → varDecl | funDecl | statement
//	varDecl      → "var" IDENT ( "=" expression )? ";"
//	funDecl      → "fun" IDENT "(" params? ")" block
//	params       → IDENT ( "," IDENT )*
//	statement    → exprStmt | printStmt | block | ifStmt
//	             | whileStmt | forStmt | returnStmt
//	block        → "{" declaration* "}"
//	ifStmt       → "if" "(" expression ")" statement ( "else" statement )?
//	whileStmt    → "while" "(" expression ")" statement
//	forStmt      → "for" "(" ( varDecl | exprStmt | ";" )
//	                        expression? ";" expression? ")" statement
//	returnStmt   → "return" expression? ";"
//	printStmt    → "print" expression ";"
//	exprStmt     → expression ";"
//	expression   → assignment
//	assignment   → IDENT "=" assignment | logic_or
//	logic_or     → logic_and ( "or" logic_and )*
//	logic_and    → equality ( "and" equality )*
//	equality     → comparison ( ( "!=" | "==" ) comparison )*
//	comparison   → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term         → factor ( ( "-" | "+" ) factor )*
//	factor       → unary ( ( "/" | "*" ) unary )*
//	unary        → ( "!" | "-" ) unary | call
//	call         → primary ( "(" args? ")" )*
//	primary      → NUMBER | STRING | "true" | "false" | "nil"
//	             | "(" expression ")" | IDENT
//
// All binary operators are left-associative; unary operators are
// right-associative via self-recursion.
//
// Error Handling:
//
// The parser never stops at the first syntax error. A failed
// declaration enters panic mode (synchronize): it discards tokens
// until the next statement boundary looks safe to resume from, so a
// single pass surfaces as many diagnostics as the source contains.
package parser

import (
	"fmt"

	"github.com/kristofer/loxwalk/pkg/ast"
	"github.com/kristofer/loxwalk/pkg/report"
	"github.com/kristofer/loxwalk/pkg/token"
)

// Parser turns a token stream into a program (a slice of statements).
//
// A Parser is stateful and single-use: create a new one per token
// stream.
type Parser struct {
	tokens  []token.Token
	current int
	sink    report.Sink
}

// New creates a Parser over a token stream. tokens must end with an
// EOF token, as produced by pkg/scanner.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// parseError unwinds out of whatever parsing method discovered a
// syntax error and back to the nearest declaration boundary, where
// synchronize() takes over. It never escapes Parse.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parse parses the token stream and returns the program's top-level
// statements, which may be a partial list if any declaration failed.
// Call HasErrors/Errors afterward to check for diagnostics.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// HasErrors reports whether any syntax diagnostic was recorded.
func (p *Parser) HasErrors() bool {
	return p.sink.HasErrors()
}

// Errors returns the accumulated syntax diagnostics, formatted
// "[Line N] Error at '<lexeme>': <message>" (or "at end" for EOF).
func (p *Parser) Errors() []string {
	return p.sink.Messages()
}

// --- declarations ---

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.matchKind(token.Class):
		panic(p.errorAt(p.previous(), "Classes are not supported."))
	case p.matchKind(token.Var):
		return p.varDeclaration()
	case p.matchKind(token.Fun):
		return p.function("function")
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var initializer ast.Expr
	if p.matchKind(token.Equal) {
		initializer = p.expression()
	}

	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.matchKind(token.Print):
		return p.printStatement()
	case p.matchKind(token.LeftBrace):
		return &ast.Block{Decls: p.block()}
	case p.matchKind(token.If):
		return p.ifStatement()
	case p.matchKind(token.While):
		return p.whileStatement()
	case p.matchKind(token.For):
		return p.forStatement()
	case p.matchKind(token.Return):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.matchKind(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStatement desugars "for (init; cond; inc) body" into:
//
//	{ init;
//	  while (cond_or_true) {
//	    body;
//	    inc;
//	  }
//	}
//
// An omitted condition becomes a true literal. A missing initializer
// contributes no wrapping block.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.matchKind(token.Semicolon):
		initializer = nil
	case p.matchKind(token.Var):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Decls: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{Decls: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()

	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

// --- expressions ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.matchKind(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if name, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: name.Name, Value: value}
		}
		p.errorAt(equals, "Invalid assignment target.")
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.matchKind(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.matchKind(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.matchAny(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.matchAny(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.matchAny(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.matchAny(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.matchAny(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for p.matchKind(token.LeftParen) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			args = append(args, p.expression())
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.matchKind(token.False):
		return &ast.Literal{Value: false}
	case p.matchKind(token.True):
		return &ast.Literal{Value: true}
	case p.matchKind(token.Nil):
		return &ast.Literal{Value: nil}
	case p.matchAny(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.matchKind(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.matchAny(token.This, token.Super):
		panic(p.errorAt(p.previous(), "Classes are not supported."))
	case p.matchKind(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	default:
		panic(p.errorAt(p.peek(), "Expect expression."))
	}
}

// --- token cursor helpers ---

func (p *Parser) matchKind(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// consume advances past the current token if it has the expected
// kind, else records a diagnostic and unwinds to the declaration
// boundary via panic(parseError{}).
func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// errorAt records a diagnostic at tok's location and returns the
// parseError sentinel for the caller to panic with.
func (p *Parser) errorAt(tok token.Token, message string) parseError {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = "at end"
	}
	p.sink.Syntax(tok.Line, where, message)
	return parseError{}
}

// synchronize discards tokens until the previous token was a
// semicolon, or the next token starts a new statement — the points at
// which resuming parsing is unlikely to cascade further errors.
func (p *Parser) synchronize() {
	// A failed declaration has always consumed its own leading keyword,
	// so stopping at one here still makes progress.
	switch p.peek().Kind {
	case token.Class, token.Fun, token.Var, token.For,
		token.If, token.While, token.Print, token.Return:
		return
	}
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}

		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}
