// Package emit turns discovered and parsed component resources into
// fragments of generated source. Every emitter is a pure function of its
// inputs; the assembler concatenates the fragments.
package emit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Quote renders s as a double-quoted string literal of the target runtime.
// Interpolation openers ("#{", "#$", "#@") are escaped so the literal is
// never evaluated.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02X`, s[i])
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '#':
			if i+1 < len(s) && strings.IndexByte("{$@", s[i+1]) >= 0 {
				b.WriteString(`\#`)
			} else {
				b.WriteByte('#')
			}
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\f':
			b.WriteString(`\f`)
		case r == '\v':
			b.WriteString(`\v`)
		case r == '\a':
			b.WriteString(`\a`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == 0x1b:
			b.WriteString(`\e`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02X`, r)
		default:
			b.WriteRune(r)
		}
		i += size
	}

	b.WriteByte('"')
	return b.String()
}

// singleQuote renders s as a single-quoted literal, where only the quote and
// backslash need escaping.
func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
