package jsmodule

import (
	"fmt"
	"strings"
)

const (
	modulePrefix = "export default `"
	moduleSuffix = "`;\n"
)

// Render wraps content in an `export default` statement.
func Render(content string) string {
	escaped := Escape(content)

	var b strings.Builder
	b.Grow(len(modulePrefix) + len(escaped) + len(moduleSuffix))
	b.WriteString(modulePrefix)
	b.WriteString(escaped)
	b.WriteString(moduleSuffix)
	return b.String()
}

// Decode extracts the original content from a module produced by Render.
func Decode(module string) (string, error) {
	literal, err := body(module)
	if err != nil {
		return "", err
	}
	return Unescape(literal)
}

// Delimiters returns the byte offsets of every backtick in module that is
// not escaped. For a module produced by Render there are exactly two: the
// opening and the closing delimiter of the literal.
func Delimiters(module string) []int {
	var offsets []int
	for i := 0; i < len(module); i++ {
		switch module[i] {
		case '\\':
			i++
		case '`':
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// literal returns the backtick-delimited literal of module, delimiters included.
func literal(module string) (string, error) {
	if _, err := body(module); err != nil {
		return "", err
	}
	start := len(modulePrefix) - 1
	end := len(module) - len(moduleSuffix) + 1
	return module[start:end], nil
}

// body returns the escaped text between the literal's delimiters.
func body(module string) (string, error) {
	if !strings.HasPrefix(module, modulePrefix) {
		return "", fmt.Errorf("module does not start with %q", modulePrefix)
	}
	if !strings.HasSuffix(module, moduleSuffix) || len(module) < len(modulePrefix)+len(moduleSuffix) {
		return "", fmt.Errorf("module does not end with %q", moduleSuffix)
	}
	return module[len(modulePrefix) : len(module)-len(moduleSuffix)], nil
}
