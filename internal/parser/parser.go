// Package parser implements a recursive-descent parser that resolves
// binary operator precedence by precedence climbing.
package parser

import (
	"fmt"

	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/ast"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/token"
)

// ParseError reports a missing expected token or subexpression. Parsing
// has no recovery: the first one is fatal, and its message format
// ("[Parse Error] Expected <X> on line <N>") is part of the core contract.
type ParseError struct {
	Msg  string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[Parse Error] Expected %s on line %d", e.Msg, e.Line)
}

// Parser consumes a token stream and produces a single ast.Program.
type Parser struct {
	toks    []token.Token
	current int
}

// New returns a Parser over toks, which must end with a token.EOF.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse consumes every token and returns the program, or the first
// ParseError encountered.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			prog, err = nil, pe
		}
	}()

	program := &ast.Program{}
	for !p.atEnd() {
		program.Stmts = append(program.Stmts, p.statement())
	}
	return program, nil
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(token.EXIT) && p.checkAt(1, token.LPAREN):
		return p.exitStmt()
	case p.check(token.LET) && p.checkAt(1, token.IDENT) && p.checkAt(2, token.EQ):
		return p.letStmt()
	case p.check(token.IDENT) && p.checkAt(1, token.EQ):
		return p.assignStmt()
	case p.check(token.LBRACE):
		return &ast.ScopeStmt{Body: p.scope()}
	case p.check(token.IF):
		return p.ifStmt()
	case p.check(token.PRINT) && p.checkAt(1, token.LPAREN):
		return p.printStmt()
	default:
		p.fail("statement")
		return nil // unreached: fail panics
	}
}

func (p *Parser) exitStmt() ast.Stmt {
	p.advance() // 'exit'
	p.advance() // '('
	value := p.expr(0)
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return &ast.ExitStmt{Value: value}
}

func (p *Parser) letStmt() ast.Stmt {
	p.advance() // 'let'
	name := p.advance()
	p.advance() // '='
	value := p.expr(0)
	p.expect(token.SEMI)
	return &ast.LetStmt{Name: name, Value: value}
}

func (p *Parser) assignStmt() ast.Stmt {
	name := p.advance()
	p.advance() // '='
	value := p.expr(0)
	p.expect(token.SEMI)
	return &ast.AssignStmt{Name: name, Value: value}
}

func (p *Parser) printStmt() ast.Stmt {
	p.advance() // 'print'
	p.advance() // '('
	value := p.expr(0)
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return &ast.PrintStmt{Value: value}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.advance() // 'if'
	p.expect(token.LPAREN)
	cond := p.expr(0)
	p.expect(token.RPAREN)
	then := p.scope()

	var pred ast.IfPred
	if p.check(token.ELIF) || p.check(token.ELSE) {
		pred = p.ifPred()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Pred: pred}
}

func (p *Parser) ifPred() ast.IfPred {
	switch {
	case p.match(token.ELIF):
		p.expect(token.LPAREN)
		cond := p.expr(0)
		p.expect(token.RPAREN)
		body := p.scope()
		var next ast.IfPred
		if p.check(token.ELIF) || p.check(token.ELSE) {
			next = p.ifPred()
		}
		return &ast.Elif{Cond: cond, Body: body, Next: next}
	case p.match(token.ELSE):
		return &ast.Else{Body: p.scope()}
	default:
		p.fail("`elif` or `else`")
		return nil
	}
}

func (p *Parser) scope() *ast.Scope {
	p.expect(token.LBRACE)
	s := &ast.Scope{}
	for !p.check(token.RBRACE) && !p.atEnd() {
		s.Stmts = append(s.Stmts, p.statement())
	}
	p.expect(token.RBRACE)
	return s
}

// --- expressions: precedence climbing ---

func (p *Parser) expr(minPrec int) ast.Expr {
	var left ast.Expr = p.term()
	for {
		prec, ok := token.BinPrec(p.peek().Kind)
		if !ok || prec < minPrec {
			break
		}
		op := p.advance()
		right := p.expr(prec + 1)
		left = &ast.BinExpr{Op: binOpFor(op.Kind), Lhs: left, Rhs: right}
	}
	return left
}

func binOpFor(k token.Kind) ast.BinOp {
	switch k {
	case token.PLUS:
		return ast.Add
	case token.MINUS:
		return ast.Sub
	case token.STAR:
		return ast.Mul
	case token.SLASH:
		return ast.Div
	case token.GT:
		return ast.Gt
	case token.GE:
		return ast.Ge
	case token.LT:
		return ast.Lt
	case token.LE:
		return ast.Le
	case token.EQEQ:
		return ast.EqEq
	default:
		panic(fmt.Sprintf("binOpFor: %v is not a binary operator", k))
	}
}

func (p *Parser) term() ast.Term {
	switch {
	case p.match(token.INT_LIT):
		return &ast.IntLit{Tok: p.previous()}
	case p.match(token.IDENT):
		return &ast.Ident{Tok: p.previous()}
	case p.match(token.LPAREN):
		inner := p.expr(0)
		p.expect(token.RPAREN)
		return &ast.Paren{Inner: inner}
	case p.match(token.MINUS):
		return &ast.Neg{Inner: p.term()}
	default:
		p.fail("expression")
		return nil
	}
}

// --- token-stream helpers ---

func (p *Parser) peek() token.Token {
	return p.toks[p.current]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.current + offset
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) check(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) checkAt(offset int, k token.Kind) bool {
	return p.peekAt(offset).Kind == k
}

func (p *Parser) atEnd() bool {
	return p.check(token.EOF)
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) previous() token.Token {
	return p.toks[p.current-1]
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.fail(k.String())
	return token.Token{}
}

// fail reports a parse error against the line of the previously consumed
// token, or the first token's line if nothing has been consumed yet. It
// panics to unwind to Parse, which converts it to an error.
func (p *Parser) fail(msg string) {
	line := 1
	if p.current > 0 {
		line = p.previous().Line
	} else if len(p.toks) > 0 {
		line = p.toks[0].Line
	}
	panic(&ParseError{Msg: msg, Line: line})
}
