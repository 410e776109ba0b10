// Package compiler drives the tokenizer, parser, and code generator in
// sequence to turn source text into an assembly listing. It is the single
// place the three core stages are wired together; none of them calls back
// into an earlier stage.
package compiler

import (
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/ast"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/codegen"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/lexer"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/parser"
	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/token"
)

// Compile runs the full pipeline over src and returns the emitted x86-64
// assembly text, or the first error encountered by any stage. There is no
// error recovery: compilation stops at the first failing stage.
func Compile(src string) (string, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return "", err
	}
	prog, err := Parse(toks)
	if err != nil {
		return "", err
	}
	return codegen.Generate(prog)
}

// Tokenize runs only the lexical-analysis stage, useful for --tokens
// debug dumps.
func Tokenize(src string) ([]token.Token, error) {
	return lexer.New(src).Tokenize()
}

// Parse runs only the parsing stage over an existing token stream, useful
// for --ast debug dumps.
func Parse(toks []token.Token) (*ast.Program, error) {
	return parser.New(toks).Parse()
}
