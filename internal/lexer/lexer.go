// Package lexer turns source text into a token stream.
package lexer

import (
	"errors"

	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/token"
)

// ErrInvalidToken is returned the moment an unrecognized character is hit.
// Lexing is single-pass and fails fast: there is no recovery.
var ErrInvalidToken = errors.New("Invalid token")

// Lexer scans source text one byte at a time with one byte of lookahead.
type Lexer struct {
	src     string
	start   int
	current int
	line    int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokenize scans all of src and returns the resulting token slice, ending
// with a single token.EOF. It returns ErrInvalidToken on the first
// unrecognized character, matching the "first error is fatal" policy.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) next() (token.Token, error) {
	for {
		switch {
		case l.atEnd():
			return l.make(token.EOF), nil

		case isAlpha(l.peek(0)):
			return l.identifier(), nil

		case l.peek(0) == '-' && isDigit(l.peek(1)):
			return l.negativeNumber(), nil

		case isDigit(l.peek(0)):
			return l.number(), nil

		case l.peek(0) == '/' && l.peek(1) == '/':
			l.skipLineComment()
			continue

		case l.peek(0) == '/' && l.peek(1) == '*':
			l.skipBlockComment()
			continue

		case l.peek(0) == '\n':
			l.advance()
			l.line++
			continue

		case isSpace(l.peek(0)):
			l.advance()
			continue

		default:
			if tok, ok := l.punctuation(); ok {
				return tok, nil
			}
			return token.Token{}, ErrInvalidToken
		}
	}
}

func (l *Lexer) identifier() token.Token {
	l.start = l.current
	for isAlphaNumeric(l.peek(0)) {
		l.advance()
	}
	text := l.src[l.start:l.current]
	if kind, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kind, Line: l.line}
	}
	return token.Token{Kind: token.IDENT, Line: l.line, Value: text}
}

func (l *Lexer) number() token.Token {
	l.start = l.current
	for isDigit(l.peek(0)) {
		l.advance()
	}
	return token.Token{Kind: token.INT_LIT, Line: l.line, Value: l.src[l.start:l.current]}
}

// negativeNumber folds a '-' glued directly onto a following digit into
// the literal's text rather than emitting it as a separate MINUS token.
func (l *Lexer) negativeNumber() token.Token {
	l.start = l.current
	l.advance() // consume '-'
	for isDigit(l.peek(0)) {
		l.advance()
	}
	return token.Token{Kind: token.INT_LIT, Line: l.line, Value: l.src[l.start:l.current]}
}

func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek(0) != '\n' {
		l.advance()
	}
}

// skipBlockComment consumes up to and including the closing "*/". If
// end-of-input arrives first it terminates gracefully, matching the
// documented quirk: no error is raised for an unterminated block comment.
func (l *Lexer) skipBlockComment() {
	l.advance() // '/'
	l.advance() // '*'
	for !l.atEnd() {
		if l.peek(0) == '*' && l.peek(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek(0) == '\n' {
			l.line++
		}
		l.advance()
	}
}

func (l *Lexer) punctuation() (token.Token, bool) {
	line := l.line
	c := l.advance()
	switch c {
	case '(':
		return token.Token{Kind: token.LPAREN, Line: line}, true
	case ')':
		return token.Token{Kind: token.RPAREN, Line: line}, true
	case '{':
		return token.Token{Kind: token.LBRACE, Line: line}, true
	case '}':
		return token.Token{Kind: token.RBRACE, Line: line}, true
	case ';':
		return token.Token{Kind: token.SEMI, Line: line}, true
	case '+':
		return token.Token{Kind: token.PLUS, Line: line}, true
	case '-':
		return token.Token{Kind: token.MINUS, Line: line}, true
	case '*':
		return token.Token{Kind: token.STAR, Line: line}, true
	case '/':
		return token.Token{Kind: token.SLASH, Line: line}, true
	case '>':
		if l.match('=') {
			return token.Token{Kind: token.GE, Line: line}, true
		}
		return token.Token{Kind: token.GT, Line: line}, true
	case '<':
		if l.match('=') {
			return token.Token{Kind: token.LE, Line: line}, true
		}
		return token.Token{Kind: token.LT, Line: line}, true
	case '=':
		if l.match('=') {
			return token.Token{Kind: token.EQEQ, Line: line}, true
		}
		return token.Token{Kind: token.EQ, Line: line}, true
	default:
		return token.Token{}, false
	}
}

func (l *Lexer) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Line: l.line}
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.src)
}

func (l *Lexer) peek(offset int) byte {
	idx := l.current + offset
	if idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) advance() byte {
	c := l.src[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.src[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}
