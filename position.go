package fsl

import "fmt"

// Position is a source location: file, 1-based line/column, and the byte
// span the token or node occupies. Offset and Length are byte offsets into
// the original source, used by the source-map writer and by the brace
// matching scan in the parser.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
	Length int
}

// String renders the position as "file:line:column", the form used in
// ParseError messages.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p == Position{}
}
