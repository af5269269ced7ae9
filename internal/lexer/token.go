// Package lexer turns FSL source bytes into a flat token stream with
// precise source positions. It knows nothing about FQL expression grammar
// beyond the minimal tokenizer the parser's expression walker reuses
// (spec.md §4.1, §9 "Lazy FQL walker"): identifiers, strings, numbers,
// punctuation, everything else.
package lexer

import "github.com/schemakit/fsl"

// TokenType classifies a lexical token.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	IDENT
	STRING
	INT
	DECIMAL

	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )
	COMMA
	SEMICOLON
	COLON
	ASSIGN // =
	PIPE   // |
	QUESTION
	STAR
	LT
	GT
	ARROW // =>
	HASH  // # (unused in FSL proper, reserved)

	// Keywords
	KwAccessProvider
	KwCollection
	KwFunction
	KwRole
	KwAs
	KwIndex
	KwUnique
	KwCheck
	KwCompute
	KwHistoryDays
	KwTTLDays
	KwMigrations
	KwMembership
	KwPrivileges
	KwTrue
	KwFalse
	KwNull
)

var tokenNames = map[TokenType]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL", IDENT: "identifier", STRING: "string",
	INT: "integer", DECIMAL: "decimal", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", LPAREN: "(", RPAREN: ")", COMMA: ",",
	SEMICOLON: ";", COLON: ":", ASSIGN: "=", PIPE: "|", QUESTION: "?",
	STAR: "*", LT: "<", GT: ">", ARROW: "=>", HASH: "#",
	KwAccessProvider: "access provider", KwCollection: "collection",
	KwFunction: "function", KwRole: "role", KwAs: "as", KwIndex: "index",
	KwUnique: "unique", KwCheck: "check", KwCompute: "compute",
	KwHistoryDays: "history_days", KwTTLDays: "ttl_days",
	KwMigrations: "migrations", KwMembership: "membership",
	KwPrivileges: "privileges", KwTrue: "true", KwFalse: "false", KwNull: "null",
}

// String renders the token type the way it should appear in a ParseError's
// "expected X" message.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "unknown"
}

// keywords maps reserved words to their token type. Multi-word keywords
// ("access provider") are recognized by the lexer peeking ahead after
// seeing "access", not via this table.
var keywords = map[string]TokenType{
	"collection":    KwCollection,
	"function":      KwFunction,
	"role":          KwRole,
	"as":            KwAs,
	"index":         KwIndex,
	"unique":        KwUnique,
	"check":         KwCheck,
	"compute":       KwCompute,
	"history_days":  KwHistoryDays,
	"ttl_days":      KwTTLDays,
	"migrations":    KwMigrations,
	"membership":    KwMembership,
	"privileges":    KwPrivileges,
	"true":          KwTrue,
	"false":         KwFalse,
	"null":          KwNull,
}

// Token is one lexical unit with its literal text and source position.
type Token struct {
	Type TokenType
	Text string
	Pos  fsl.Position
}
