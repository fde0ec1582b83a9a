package token

import "testing"

func TestTokenStringCommon(t *testing.T) {
	tok := New(Comma, ",", 10)
	if got := tok.String(); got != "Comma , " {
		t.Fatalf("String() = %q", got)
	}
}

func TestTokenStringLiteral(t *testing.T) {
	tok := Token{Kind: String, Lexeme: `"`, Literal: "Example text", Line: 10}
	if got := tok.String(); got != `String " Example text` {
		t.Fatalf("String() = %q", got)
	}
	num := Token{Kind: Number, Lexeme: "2.50", Literal: 2.5, Line: 1}
	if got := num.String(); got != "Number 2.50 2.5" {
		t.Fatalf("String() = %q", got)
	}
}

func TestLookupKeywords(t *testing.T) {
	if Lookup("while") != While || Lookup("this") != This {
		t.Fatalf("keywords not recognised")
	}
	if Lookup("whilst") != Identifier {
		t.Fatalf("expected identifier for non-keyword")
	}
	if !Class.IsKeyword() || Identifier.IsKeyword() {
		t.Fatalf("IsKeyword misclassified")
	}
}

func TestJoinStopsAtEOF(t *testing.T) {
	tokens := []Token{
		New(Print, "print", 1),
		{Kind: Number, Lexeme: "1", Literal: 1.0, Line: 1},
		New(Semicolon, ";", 1),
		New(EOF, "", 1),
	}
	if got := Join(tokens); got != "print 1 ;" {
		t.Fatalf("Join() = %q", got)
	}
}
