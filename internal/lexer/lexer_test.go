package lexer

import (
	"testing"

	"github.com/andreyrosariopanina/Hauss-Programming-Language/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	src := "exit(42);"
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.EXIT, token.LPAREN, token.INT_LIT, token.RPAREN, token.SEMI, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v kinds, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if toks[2].Value != "42" {
		t.Errorf("int literal value = %q, want %q", toks[2].Value, "42")
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	src := "a >= b <= c == d"
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.IDENT, token.GE, token.IDENT, token.LE, token.IDENT, token.EQEQ, token.IDENT, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeNegativeLiteralShortcut(t *testing.T) {
	// '-' immediately before a digit folds into the literal.
	toks, err := New("let x = -1;").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var lit token.Token
	for _, tk := range toks {
		if tk.Kind == token.INT_LIT {
			lit = tk
		}
	}
	if lit.Value != "-1" {
		t.Errorf("negative literal = %q, want %q", lit.Value, "-1")
	}
}

func TestTokenizeMinusIsSeparateWhenNotAdjacentToDigit(t *testing.T) {
	toks, err := New("a - 1").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.IDENT, token.MINUS, token.INT_LIT, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	src := "let x = 1; // trailing comment\n/* block\ncomment */let y = 2;"
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both `let` statements should survive, comments leave no tokens.
	count := 0
	for _, tk := range toks {
		if tk.Kind == token.LET {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 `let` tokens, got %d", count)
	}
}

func TestTokenizeUnterminatedBlockCommentIsNotAnError(t *testing.T) {
	// EOF inside /* ... */ terminates gracefully, no error.
	_, err := New("let x = 1; /* oops").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokenizeLineNumbers(t *testing.T) {
	src := "let x = 1;\nlet y = 2;\n"
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Line != 1 {
		t.Errorf("first token line = %d, want 1", toks[0].Line)
	}
	var secondLet token.Token
	seen := 0
	for _, tk := range toks {
		if tk.Kind == token.LET {
			seen++
			if seen == 2 {
				secondLet = tk
			}
		}
	}
	if secondLet.Line != 2 {
		t.Errorf("second `let` line = %d, want 2", secondLet.Line)
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := New("let x = 1 @ 2;").Tokenize()
	if err != ErrInvalidToken {
		t.Fatalf("got err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenizeWhitespaceInsensitivity(t *testing.T) {
	a, err := New("let x=1+2;").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New("let   x   =   1   +   2  ;").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("different token counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Value != b[i].Value {
			t.Errorf("token %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
