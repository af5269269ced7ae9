package lexer

import "testing"

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New("t.fsl", src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestNext_Punctuation(t *testing.T) {
	toks := scanAll(t, "{}[](),;:|?*<>=>")
	want := []TokenType{LBRACE, RBRACE, LBRACKET, RBRACKET, LPAREN, RPAREN, COMMA, SEMICOLON, COLON, PIPE, QUESTION, STAR, LT, GT, ARROW, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d = %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestNext_Keywords(t *testing.T) {
	tests := []struct {
		src  string
		want TokenType
	}{
		{"collection", KwCollection},
		{"function", KwFunction},
		{"role", KwRole},
		{"access provider", KwAccessProvider},
		{"access  provider", KwAccessProvider},
		{"unique", KwUnique},
		{"check", KwCheck},
		{"compute", KwCompute},
		{"history_days", KwHistoryDays},
		{"ttl_days", KwTTLDays},
		{"migrations", KwMigrations},
		{"membership", KwMembership},
		{"privileges", KwPrivileges},
		{"true", KwTrue},
		{"false", KwFalse},
		{"null", KwNull},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l := New("t.fsl", tt.src)
			tok, err := l.Next()
			if err != nil {
				t.Fatalf("Next() error: %v", err)
			}
			if tok.Type != tt.want {
				t.Errorf("Next() type = %v, want %v", tok.Type, tt.want)
			}
		})
	}
}

func TestNext_IdentifierNotKeywordPrefix(t *testing.T) {
	l := New("t.fsl", "accessory")
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Type != IDENT || tok.Text != "accessory" {
		t.Errorf("Next() = %v %q, want IDENT accessory", tok.Type, tok.Text)
	}
}

func TestNext_Numbers(t *testing.T) {
	tests := []struct {
		src  string
		want TokenType
	}{
		{"42", INT},
		{"0", INT},
		{"3.14", DECIMAL},
		{"100.0", DECIMAL},
	}
	for _, tt := range tests {
		l := New("t.fsl", tt.src)
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next(%q) error: %v", tt.src, err)
		}
		if tok.Type != tt.want || tok.Text != tt.src {
			t.Errorf("Next(%q) = %v %q, want %v %q", tt.src, tok.Type, tok.Text, tt.want, tt.src)
		}
	}
}

func TestNext_String_Escapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"hello"`, "hello"},
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\rb"`, "a\rb"},
		{`"aAb"`, "aAb"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l := New("t.fsl", tt.src)
			tok, err := l.Next()
			if err != nil {
				t.Fatalf("Next(%q) error: %v", tt.src, err)
			}
			if tok.Type != STRING || tok.Text != tt.want {
				t.Errorf("Next(%q) = %v %q, want STRING %q", tt.src, tok.Type, tok.Text, tt.want)
			}
		})
	}
}

func TestNext_String_SurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE encoded as a UTF-16 surrogate pair.
	l := New("t.fsl", "\"\\uD83D\\uDE00\"")
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	want := "\U0001F600"
	if tok.Text != want {
		t.Errorf("Next() = %q, want %q", tok.Text, want)
	}
}

func TestNext_String_Unterminated(t *testing.T) {
	l := New("t.fsl", `"abc`)
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestNext_PositionTracking(t *testing.T) {
	l := New("t.fsl", "collection\n  Foo")
	first, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Errorf("first token pos = %d:%d, want 1:1", first.Pos.Line, first.Pos.Column)
	}
	second, err := l.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if second.Pos.Line != 2 || second.Pos.Column != 3 {
		t.Errorf("second token pos = %d:%d, want 2:3", second.Pos.Line, second.Pos.Column)
	}
}

func TestSkipTrivia_CommentsAndBlankLinesAsExtras(t *testing.T) {
	src := "// leading comment\ncollection Foo {\n\n\n  id\n}"
	l := New("t.fsl", src)
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if tok.Type == EOF {
			break
		}
	}
	extras := l.Extras()
	if len(extras) == 0 {
		t.Fatal("expected at least one extra (comment or blank run)")
	}
	foundComment := false
	foundBlank := false
	for _, e := range extras {
		if e.Text == "// leading comment" {
			foundComment = true
		}
		if e.Text == "\n\n\n" {
			foundBlank = true
		}
	}
	if !foundComment {
		t.Errorf("extras %#v missing leading comment", extras)
	}
	if !foundBlank {
		t.Errorf("extras %#v missing blank run", extras)
	}
}

func TestTakeExtras_Drains(t *testing.T) {
	l := New("t.fsl", "// c\nfoo")
	if _, err := l.Next(); err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if len(l.TakeExtras()) == 0 {
		t.Fatal("expected extras after first token")
	}
	if len(l.Extras()) != 0 {
		t.Fatal("TakeExtras should have cleared the pending list")
	}
}
