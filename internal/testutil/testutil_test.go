package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeHelpers(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"src/a.template.html": "<a></a>",
		"src/nested/b.js":     "export default 1;\n",
	})

	assert.True(t, Exists(t, root, "src/nested/b.js"))
	assert.False(t, Exists(t, root, "src/missing.js"))
	assert.Equal(t, "<a></a>", ReadFile(t, root, "src/a.template.html"))
	assert.Equal(t, map[string]string{
		"src/a.template.html": "<a></a>",
		"src/nested/b.js":     "export default 1;\n",
	}, Snapshot(t, root))
}
