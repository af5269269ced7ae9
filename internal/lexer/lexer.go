package lexer

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/schemakit/fsl"
)

// Extra is a comment or blank-line run captured between two tokens, handed
// back to the parser so it can anchor an *fsl.Extra at the following
// declaration or member (spec.md §4.5).
type Extra struct {
	Text string
	Pos  fsl.Position
}

// Lexer scans FSL source text into tokens, collecting comments and blank
// runs as Extras rather than discarding them.
type Lexer struct {
	file string
	src  string
	start, cur int
	line, col  int
	// startLine/startCol mark the position at the start of the token
	// currently being scanned.
	startLine, startCol int

	extras []Extra
}

// New creates a lexer over src, whose positions are reported against file.
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: src, line: 1, col: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekN(n int) byte {
	if l.cur+n >= len(l.src) {
		return 0
	}
	return l.src[l.cur+n]
}

func (l *Lexer) advance() byte {
	c := l.src[l.cur]
	l.cur++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) match(c byte) bool {
	if l.isAtEnd() || l.src[l.cur] != c {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) markStart() {
	l.start = l.cur
	l.startLine = l.line
	l.startCol = l.col
}

func (l *Lexer) tok(t TokenType) Token {
	return l.tokText(t, l.src[l.start:l.cur])
}

func (l *Lexer) tokText(t TokenType, text string) Token {
	return Token{
		Type: t,
		Text: text,
		Pos: fsl.Position{
			File: l.file, Line: l.startLine, Column: l.startCol,
			Offset: l.start, Length: l.cur - l.start,
		},
	}
}

// Source returns the full source text being scanned, for callers (the
// parser's expression-blob scanner) that need to do their own byte-level
// scan past the point the token stream currently sits at.
func (l *Lexer) Source() string { return l.src }

// SeekTo repositions the lexer at the given byte offset, recomputing
// line/column by scanning the consumed prefix. Used after the parser's
// brace-balanced expression scan, which advances past the lexer's current
// token by operating directly on Source() rather than via Next.
func (l *Lexer) SeekTo(offset int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(l.src); i++ {
		if l.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	l.cur = offset
	l.line, l.col = line, col
}

// Extras returns every comment/blank-run captured since the lexer started
// (or since the caller last drained it via TakeExtras).
func (l *Lexer) Extras() []Extra { return l.extras }

// TakeExtras returns and clears the pending extras list, letting the parser
// anchor each batch to the declaration or member that follows it.
func (l *Lexer) TakeExtras() []Extra {
	out := l.extras
	l.extras = nil
	return out
}

// skipTrivia consumes whitespace and `//` line comments, recording runs of
// blank lines and comment text as Extras anchored at their own start
// position. It does not consume block comments: FSL has none.
func (l *Lexer) skipTrivia() {
	for !l.isAtEnd() {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '\n':
			blankStart := l.cur
			line, col := l.line, l.col
			newlines := 0
			for !l.isAtEnd() && l.peek() == '\n' {
				l.advance()
				newlines++
			}
			if newlines > 1 {
				l.extras = append(l.extras, Extra{
					Text: strings.Repeat("\n", newlines),
					Pos:  fsl.Position{File: l.file, Line: line, Column: col, Offset: blankStart, Length: l.cur - blankStart},
				})
			}
		case c == '/' && l.peekN(1) == '/':
			l.markStart()
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
			l.extras = append(l.extras, Extra{Text: l.src[l.start:l.cur], Pos: fsl.Position{
				File: l.file, Line: l.startLine, Column: l.startCol, Offset: l.start, Length: l.cur - l.start,
			}})
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isAlphaNum(c byte) bool { return isAlpha(c) || isDigit(c) }

// Next scans and returns the following token, skipping trivia first. An
// EOF token is returned (repeatedly) once the source is exhausted.
func (l *Lexer) Next() (Token, error) {
	l.skipTrivia()
	l.markStart()
	if l.isAtEnd() {
		return l.tok(EOF), nil
	}

	c := l.advance()
	switch {
	case c == '"':
		return l.scanString()
	case isDigit(c):
		return l.scanNumber(), nil
	case isAlpha(c):
		return l.scanIdentOrKeyword(), nil
	}

	switch c {
	case '{':
		return l.tok(LBRACE), nil
	case '}':
		return l.tok(RBRACE), nil
	case '[':
		return l.tok(LBRACKET), nil
	case ']':
		return l.tok(RBRACKET), nil
	case '(':
		return l.tok(LPAREN), nil
	case ')':
		return l.tok(RPAREN), nil
	case ',':
		return l.tok(COMMA), nil
	case ';':
		return l.tok(SEMICOLON), nil
	case ':':
		return l.tok(COLON), nil
	case '|':
		return l.tok(PIPE), nil
	case '?':
		return l.tok(QUESTION), nil
	case '*':
		return l.tok(STAR), nil
	case '<':
		return l.tok(LT), nil
	case '>':
		return l.tok(GT), nil
	case '#':
		return l.tok(HASH), nil
	case '=':
		if l.match('>') {
			return l.tok(ARROW), nil
		}
		return l.tok(ASSIGN), nil
	}

	return l.tok(ILLEGAL), fsl.ParseError(l.tokPos(), "a valid token", string(c))
}

func (l *Lexer) tokPos() fsl.Position {
	return fsl.Position{File: l.file, Line: l.startLine, Column: l.startCol, Offset: l.start, Length: l.cur - l.start}
}

func (l *Lexer) scanNumber() Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	isDecimal := false
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isDecimal = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if isDecimal {
		return l.tok(DECIMAL)
	}
	return l.tok(INT)
}

func (l *Lexer) scanIdentOrKeyword() Token {
	for !l.isAtEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}
	text := l.src[l.start:l.cur]

	// "access provider" is the only two-word keyword in the grammar.
	if text == "access" {
		save := l.cur
		saveLine, saveCol := l.line, l.col
		l.skipTrivia()
		if strings.HasPrefix(l.src[l.cur:], "provider") && !isAlphaNum(l.peekN(len("provider"))) {
			for i := 0; i < len("provider"); i++ {
				l.advance()
			}
			return l.tokText(KwAccessProvider, l.src[l.start:l.cur])
		}
		l.cur, l.line, l.col = save, saveLine, saveCol
	}

	if kw, ok := keywords[text]; ok {
		return l.tok(kw)
	}
	return l.tok(IDENT)
}

// scanString reads a double-quoted FSL string literal, resolving the escape
// sequences spec.md §6.1 lists (\", \\, \n, \t, \r, \0) plus \uXXXX Unicode
// escapes including UTF-16 surrogate pairs, the way JSON string literals do.
func (l *Lexer) scanString() (Token, error) {
	var b strings.Builder
	for {
		if l.isAtEnd() {
			return l.tok(ILLEGAL), fsl.ParseError(l.tokPos(), `closing "`, "end of file")
		}
		c := l.advance()
		if c == '"' {
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if l.isAtEnd() {
			return l.tok(ILLEGAL), fsl.ParseError(l.tokPos(), "escape sequence", "end of file")
		}
		esc := l.advance()
		switch esc {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'u':
			r, err := l.scanUnicodeEscape()
			if err != nil {
				return l.tok(ILLEGAL), err
			}
			b.WriteRune(r)
		default:
			return l.tok(ILLEGAL), fsl.ParseError(l.tokPos(), `one of \" \\ \n \t \r \0 \u`, "\\"+string(esc))
		}
	}
	return l.tokText(STRING, b.String()), nil
}

func (l *Lexer) scanUnicodeEscape() (rune, error) {
	hi, err := l.hex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) && l.peek() == '\\' && l.peekN(1) == 'u' {
		save := l.cur
		saveLine, saveCol := l.line, l.col
		l.advance()
		l.advance()
		lo, err := l.hex4()
		if err == nil {
			if r := utf16.DecodeRune(rune(hi), rune(lo)); r != utf8.RuneError {
				return r, nil
			}
		}
		l.cur, l.line, l.col = save, saveLine, saveCol
	}
	return rune(hi), nil
}

func (l *Lexer) hex4() (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		if l.isAtEnd() {
			return 0, fsl.ParseError(l.tokPos(), "4 hex digits", "end of file")
		}
		c := l.advance()
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, fsl.ParseError(l.tokPos(), "hex digit", string(c))
		}
		v = v<<4 | d
	}
	return v, nil
}
