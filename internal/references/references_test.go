package references

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{input: "", want: ScopeRecursive},
		{input: "recursive", want: ScopeRecursive},
		{input: "Flat", want: ScopeFlat},
		{input: "deep", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecifier(t *testing.T) {
	tests := []struct {
		name    string
		fromDir string
		target  string
		want    string
	}{
		{name: "sibling", fromDir: "src/a", target: "src/a/x.template.html", want: "./x.template.html"},
		{name: "one level down", fromDir: "src/a/sub", target: "src/a/x.template.html", want: "../x.template.html"},
		{name: "two levels down", fromDir: "src/a/b/c", target: "src/a/x.template.html", want: "../../x.template.html"},
		{name: "absolute paths", fromDir: "/p/src", target: "/p/src/x.template.html", want: "./x.template.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Specifier(filepath.FromSlash(tt.fromDir), filepath.FromSlash(tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteContent_OnlyFragmentChanges(t *testing.T) {
	content := "import a from './x.template.html';\n" +
		"import b from \"./x.template.html\";\n" +
		"// see ./x.template.html for markup\n" +
		"import c from './x.template.html.bak';\n" +
		"import d from './y.template.html';\n"

	got, n := RewriteContent(content, Replacements("./x.template.html", "./x.template.js"))

	assert.Equal(t, 2, n)
	assert.Equal(t, "import a from './x.template.js';\n"+
		"import b from \"./x.template.js\";\n"+
		"// see ./x.template.html for markup\n"+
		"import c from './x.template.html.bak';\n"+
		"import d from './y.template.html';\n", got)
}

func TestRewriteContent_EveryOccurrence(t *testing.T) {
	content := "import a from './x.template.html'; import b from './x.template.html';"
	got, n := RewriteContent(content, Replacements("./x.template.html", "./x.template.js"))

	assert.Equal(t, 2, n)
	assert.Equal(t, "import a from './x.template.js'; import b from './x.template.js';", got)
}

func TestRewriteFile(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "x.template.html")
	mod := filepath.Join(dir, "x.template.js")

	t.Run("matching file is rewritten", func(t *testing.T) {
		file := filepath.Join(dir, "view.js")
		writeFile(t, file, "import template from './x.template.html';\nexport default template;\n")

		n, err := RewriteFile(file, tmpl, mod)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "import template from './x.template.js';\nexport default template;\n", readFile(t, file))
	})

	t.Run("non-matching file is byte-identical", func(t *testing.T) {
		file := filepath.Join(dir, "other.js")
		original := "import y from './y.template.html';\r\n\tconst s = `x.template.html`;"
		writeFile(t, file, original)
		before, err := os.Stat(file)
		require.NoError(t, err)

		n, err := RewriteFile(file, tmpl, mod)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, original, readFile(t, file))

		after, err := os.Stat(file)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("nested file uses parent specifier", func(t *testing.T) {
		file := filepath.Join(dir, "sub", "nested.js")
		writeFile(t, file, "import t from '../x.template.html';\nimport s from './x.template.html';\n")

		n, err := RewriteFile(file, tmpl, mod)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "import t from '../x.template.js';\nimport s from './x.template.html';\n", readFile(t, file))
	})

	t.Run("preserves permissions", func(t *testing.T) {
		file := filepath.Join(dir, "exec.js")
		writeFile(t, file, "import t from './x.template.html';")
		require.NoError(t, os.Chmod(file, 0o600))

		_, err := RewriteFile(file, tmpl, mod)
		require.NoError(t, err)

		info, err := os.Stat(file)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := RewriteFile(filepath.Join(dir, "missing.js"), tmpl, mod)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestIndexScopes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "")
	writeFile(t, filepath.Join(root, "b.ts"), "")
	writeFile(t, filepath.Join(root, "sub", "c.js"), "")
	writeFile(t, filepath.Join(root, "sub", "deeper", "d.js"), "")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "e.js"), "")
	writeFile(t, filepath.Join(root, ".cache", "f.js"), "")

	t.Run("recursive", func(t *testing.T) {
		ix, err := NewIndex(".js", ScopeRecursive)
		require.NoError(t, err)

		got, err := ix.Candidates(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.js"),
			filepath.Join(root, "sub", "c.js"),
			filepath.Join(root, "sub", "deeper", "d.js"),
		}, got)
	})

	t.Run("flat", func(t *testing.T) {
		ix, err := NewIndex(".js", ScopeFlat)
		require.NoError(t, err)

		got, err := ix.Candidates(root)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.js")}, got)
	})

	t.Run("excluded paths are dropped from cached listings", func(t *testing.T) {
		ix, err := NewIndex(".js", ScopeRecursive)
		require.NoError(t, err)

		_, err = ix.Candidates(root)
		require.NoError(t, err)

		ix.Exclude(filepath.Join(root, "sub", "c.js"))
		got, err := ix.Candidates(root)
		require.NoError(t, err)
		assert.NotContains(t, got, filepath.Join(root, "sub", "c.js"))
		assert.Contains(t, got, filepath.Join(root, "a.js"))
	})

	t.Run("missing directory errors", func(t *testing.T) {
		ix, err := NewIndex(".js", ScopeFlat)
		require.NoError(t, err)
		_, err = ix.Candidates(filepath.Join(root, "missing"))
		assert.Error(t, err)
	})

	t.Run("empty extension is rejected", func(t *testing.T) {
		_, err := NewIndex("", ScopeFlat)
		assert.Error(t, err)
	})
}

func TestRewriter(t *testing.T) {
	root := t.TempDir()
	tmpl := filepath.Join(root, "card.template.html")
	mod := filepath.Join(root, "card.template.js")

	writeFile(t, tmpl, "<div></div>")
	writeFile(t, mod, "export default `import x from './card.template.html'`;\n")
	writeFile(t, filepath.Join(root, "card.js"), "import html from './card.template.html';\n")
	writeFile(t, filepath.Join(root, "list", "list.js"), "import html from '../card.template.html';\n")
	writeFile(t, filepath.Join(root, "untouched.js"), "export const x = 1;\n")

	ix, err := NewIndex(".js", ScopeRecursive)
	require.NoError(t, err)
	rw := NewRewriter(ix)

	updates, errs := rw.Rewrite(tmpl, mod)
	require.Empty(t, errs)

	assert.Equal(t, []Update{
		{File: filepath.Join(root, "card.js"), Count: 1},
		{File: filepath.Join(root, "list", "list.js"), Count: 1},
	}, updates)

	assert.Equal(t, "import html from './card.template.js';\n", readFile(t, filepath.Join(root, "card.js")))
	assert.Equal(t, "import html from '../card.template.js';\n", readFile(t, filepath.Join(root, "list", "list.js")))
	assert.Equal(t, "export default `import x from './card.template.html'`;\n", readFile(t, mod),
		"the generated module itself must not be rewritten")
}

func TestRewriter_ListingFailure(t *testing.T) {
	ix, err := NewIndex(".js", ScopeFlat)
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "gone")
	_, errs := NewRewriter(ix).Rewrite(filepath.Join(missing, "x.template.html"), filepath.Join(missing, "x.template.js"))

	require.Len(t, errs, 1)
	assert.Equal(t, missing, errs[0].File)
	assert.Contains(t, errs[0].Error(), missing)
}
