package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderResultTree_Empty(t *testing.T) {
	assert.Empty(t, RenderResultTree("web", nil))
}

func TestRenderResultTree(t *testing.T) {
	out := RenderResultTree("web", []TreeEntry{
		{Path: "src/cards/card.template.js", Status: StatusConverted, Note: "2 imports"},
		{Path: "src/app.template.js", Status: StatusConverted},
		{Path: "src/cards/broken.template.html", Status: StatusFailed},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{"web/", "└── src/"}, []string{lines[0], lines[1]})

	// Directories come before files at each level.
	assert.Contains(t, lines[2], "├── cards/")
	assert.Contains(t, lines[3], "broken.template.html")
	assert.Contains(t, lines[3], StatusFailed)
	assert.Contains(t, lines[4], "card.template.js")
	assert.Contains(t, lines[4], "2 imports")
	assert.Contains(t, lines[5], "└── app.template.js")
	assert.Len(t, lines, 6)
}

func TestRenderResultTree_StatusColumnAligned(t *testing.T) {
	out := RenderResultTree("root", []TreeEntry{
		{Path: "a.js", Status: StatusConverted},
		{Path: "dir/longer-name.js", Status: StatusConverted},
	})

	var cols []int
	for _, line := range strings.Split(out, "\n") {
		if i := strings.Index(line, StatusConverted); i >= 0 {
			cols = append(cols, len([]rune(line[:i])))
		}
	}
	if assert.Len(t, cols, 2) {
		assert.Equal(t, cols[0], cols[1])
	}
}
