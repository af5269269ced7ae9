package printer

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// sourceMapComment renders the accumulated mappings as a minimal JSON
// object (no VLQ encoding — spec.md §4.2 only requires that the mapping be
// recoverable, not that it match the de-facto web source-map format byte
// for byte) and wraps it in the inline `//# sourceMappingURL=` comment the
// spec names explicitly.
func (p *printer) sourceMapComment() string {
	var b strings.Builder
	b.WriteString(`{"version":3,"file":"`)
	b.WriteString(jsonEscape(p.destFile))
	b.WriteString(`","mappings":[`)
	for i, m := range p.mappings {
		if i > 0 {
			b.WriteString(",")
		}
		symbol := m.symbol
		if orig, ok := p.mangled[m.symbol]; ok {
			symbol = orig
		}
		fmt.Fprintf(&b, `{"genLine":%d,"genCol":%d,"file":%q,"line":%d,"col":%d,"symbol":%q}`,
			m.genLine, m.genCol, m.file, m.line, m.col, symbol)
	}
	b.WriteString("]}")

	encoded := base64.StdEncoding.EncodeToString([]byte(b.String()))
	return "//# sourceMappingURL=data:application/json;base64," + encoded
}

func jsonEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
