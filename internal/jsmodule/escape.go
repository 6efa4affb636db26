// Package jsmodule turns template text into a JavaScript module that
// exports it as a single template literal, and back.
package jsmodule

import (
	"fmt"
	"strings"
)

// Escape makes content safe to embed between backticks.
//
// The backslash must be doubled first; otherwise the backslashes inserted
// for backticks and dollar signs would be doubled as well.
func Escape(content string) string {
	content = strings.ReplaceAll(content, `\`, `\\`)
	content = strings.ReplaceAll(content, "`", "\\`")
	content = strings.ReplaceAll(content, "$", `\$`)
	return content
}

// Unescape reverses Escape. It rejects input Escape cannot produce:
// a trailing lone backslash, an escape other than \\, \` or \$, or an
// unescaped backtick.
func Unescape(escaped string) (string, error) {
	var b strings.Builder
	b.Grow(len(escaped))

	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		switch c {
		case '\\':
			if i+1 >= len(escaped) {
				return "", fmt.Errorf("dangling backslash at offset %d", i)
			}
			next := escaped[i+1]
			if next != '\\' && next != '`' && next != '$' {
				return "", fmt.Errorf("unexpected escape \\%c at offset %d", next, i)
			}
			b.WriteByte(next)
			i++
		case '`':
			return "", fmt.Errorf("unescaped backtick at offset %d", i)
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
