package jsmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		markupExt string
		moduleExt string
		want      string
	}{
		{name: "keeps template marker", input: "a/b/x.template.html", markupExt: ".html", moduleExt: ".js", want: "a/b/x.template.js"},
		{name: "earlier segments untouched", input: "pages.html/b.html/x.template.html", markupExt: ".html", moduleExt: ".js", want: "pages.html/b.html/x.template.js"},
		{name: "marker repeated in name", input: "x.html.template.html", markupExt: ".html", moduleExt: ".js", want: "x.html.template.js"},
		{name: "other module extension", input: "src/x.template.html", markupExt: ".html", moduleExt: ".ts", want: "src/x.template.ts"},
		{name: "other markup extension", input: "src/x.template.htm", markupExt: ".htm", moduleExt: ".js", want: "src/x.template.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModulePath(tt.input, tt.markupExt, tt.moduleExt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModulePathErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		markupExt string
		moduleExt string
	}{
		{name: "wrong extension", input: "x.template.htm", markupExt: ".html", moduleExt: ".js"},
		{name: "extension only", input: ".html", markupExt: ".html", moduleExt: ".js"},
		{name: "empty markup extension", input: "x.html", markupExt: "", moduleExt: ".js"},
		{name: "same extensions", input: "x.js", markupExt: ".js", moduleExt: ".js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ModulePath(tt.input, tt.markupExt, tt.moduleExt)
			assert.Error(t, err)
		})
	}
}
