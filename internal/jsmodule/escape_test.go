package jsmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "<div>hello</div>", want: "<div>hello</div>"},
		{name: "backslash", input: `a\b`, want: `a\\b`},
		{name: "backtick", input: "a`b", want: "a\\`b"},
		{name: "dollar", input: "${name}", want: `\${name}`},
		{name: "escaped backtick in source", input: "\\`", want: "\\\\\\`"},
		{name: "escaped dollar in source", input: `\$`, want: `\\\$`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.input))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"<div class=\"x\">${user.name}</div>",
		"`template` with $ and \\ and \\` and \\$",
		"\\\\\\",
		"line one\nline two\n\ttabbed",
		"unicode: é ✔ 日本語 \u2028",
		"<script>const s = `a ${b} c`;</script>",
		"$$$```\\\\\\",
	}

	for _, in := range inputs {
		got, err := Unescape(Escape(in))
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, got)
	}
}

func TestUnescapeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "dangling backslash", input: `abc\`},
		{name: "unknown escape", input: `\n`},
		{name: "unescaped backtick", input: "a`b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unescape(tt.input)
			assert.Error(t, err)
		})
	}
}
