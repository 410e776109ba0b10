package token

import "testing"

func TestBinPrecTable(t *testing.T) {
	tests := []struct {
		kind   Kind
		want   int
		wantOk bool
	}{
		{PLUS, 0, true},
		{MINUS, 0, true},
		{GT, 0, true},
		{GE, 0, true},
		{LT, 0, true},
		{LE, 0, true},
		{EQEQ, 0, true},
		{STAR, 1, true},
		{SLASH, 1, true},
		{IDENT, 0, false},
		{SEMI, 0, false},
	}
	for _, tc := range tests {
		got, ok := BinPrec(tc.kind)
		if ok != tc.wantOk || (ok && got != tc.want) {
			t.Errorf("BinPrec(%v) = (%d, %v), want (%d, %v)", tc.kind, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestKindStringQuotesPunctuation(t *testing.T) {
	if got := SEMI.String(); got != "`;`" {
		t.Errorf("SEMI.String() = %q, want %q", got, "`;`")
	}
	if got := IDENT.String(); got != "identifier" {
		t.Errorf("IDENT.String() = %q, want %q", got, "identifier")
	}
}

func TestKeywordsMapping(t *testing.T) {
	for word, kind := range map[string]Kind{
		"exit": EXIT, "let": LET, "if": IF, "elif": ELIF, "else": ELSE, "print": PRINT,
	} {
		if Keywords[word] != kind {
			t.Errorf("Keywords[%q] = %v, want %v", word, Keywords[word], kind)
		}
	}
}
