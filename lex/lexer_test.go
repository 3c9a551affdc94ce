package lex

import (
	"testing"

	"sysy/report"
)

func lexAll(src string) ([]Token, *report.Sink) {
	sink := report.NewSink()
	l := NewLexer(src, sink)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks, sink
}

func TestLexKeywordsAndOperators(t *testing.T) {
	toks, sink := lexAll("int x = 1 + 2; if (x <= 3) return;")
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	wantKinds := []Kind{
		KwInt, Ident, Assign, IntLit, Plus, IntLit, Semi,
		KwIf, LParen, Ident, Le, IntLit, RParen, KwReturn, Semi, EOF,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, want := range wantKinds {
		if toks[i].Kind != want {
			t.Fatalf("token %d: got kind %d, want %d", i, toks[i].Kind, want)
		}
	}
}

func TestLexSkipsLineAndBlockComments(t *testing.T) {
	toks, sink := lexAll("int x; // trailing\n/* block\ncomment */ int y;")
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	var idents []string
	for _, tok := range toks {
		if tok.Kind == Ident {
			idents = append(idents, tok.Text)
		}
	}
	if len(idents) != 2 || idents[0] != "x" || idents[1] != "y" {
		t.Fatalf("unexpected identifiers: %v", idents)
	}
}

func TestLexHexAndDecimalIntLit(t *testing.T) {
	toks, _ := lexAll("0x1F 31")
	if toks[0].Kind != IntLit || toks[0].Val != 31 {
		t.Fatalf("expected hex literal 31, got %+v", toks[0])
	}
	if toks[1].Kind != IntLit || toks[1].Val != 31 {
		t.Fatalf("expected decimal literal 31, got %+v", toks[1])
	}
}

func TestLexStringLiteralEscapes(t *testing.T) {
	toks, _ := lexAll(`"a\nb\t%d"`)
	if toks[0].Kind != StringLit || toks[0].Text != "a\nb\t%d" {
		t.Fatalf("unexpected decoded string: %q", toks[0].Text)
	}
}

func TestLexIllegalCharacterReported(t *testing.T) {
	toks, sink := lexAll("int x = 1 @ 2;")
	if !sink.HasErrors() {
		t.Fatalf("expected an illegal-character diagnostic")
	}
	found := false
	for _, tok := range toks {
		if tok.Kind == Illegal {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Illegal token in the stream")
	}
}

func TestLexTracksLineNumbersAcrossNewlines(t *testing.T) {
	toks, _ := lexAll("int x;\nint y;\nint z;")
	var lines []int
	for _, tok := range toks {
		if tok.Kind == KwInt {
			lines = append(lines, tok.Line)
		}
	}
	if len(lines) != 3 || lines[0] != 1 || lines[1] != 2 || lines[2] != 3 {
		t.Fatalf("unexpected line tracking: %v", lines)
	}
}
