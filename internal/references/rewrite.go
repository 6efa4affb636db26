package references

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// quotes are the string delimiters an import specifier may use.
var quotes = []string{"'", `"`}

// Specifier returns the relative import specifier naming target from a
// file in fromDir: "./x.template.html" for a sibling, "../x.template.html"
// from one directory below, and so on.
func Specifier(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", target, fromDir, err)
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel, nil
}

// Replacement is one literal substitution applied to a referencing file.
type Replacement struct {
	Old string
	New string
}

// Replacements returns the `from '<specifier>'` fragments, in both quote
// styles, that rename oldSpecifier to newSpecifier.
func Replacements(oldSpecifier, newSpecifier string) []Replacement {
	out := make([]Replacement, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, Replacement{
			Old: "from " + q + oldSpecifier + q,
			New: "from " + q + newSpecifier + q,
		})
	}
	return out
}

// RewriteContent applies every replacement to content and returns the new
// content with the number of substitutions made. Nothing outside the
// matched fragments changes.
func RewriteContent(content string, replacements []Replacement) (string, int) {
	total := 0
	for _, r := range replacements {
		n := strings.Count(content, r.Old)
		if n == 0 {
			continue
		}
		content = strings.ReplaceAll(content, r.Old, r.New)
		total += n
	}
	return content, total
}

// RewriteFile rewrites imports of templatePath in file to name modulePath.
// A file without a matching import is not written. It returns the number
// of imports rewritten.
func RewriteFile(file, templatePath, modulePath string) (int, error) {
	dir := filepath.Dir(file)

	oldSpecifier, err := Specifier(dir, templatePath)
	if err != nil {
		return 0, err
	}
	newSpecifier, err := Specifier(dir, modulePath)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", file, err)
	}

	if !strings.Contains(string(data), oldSpecifier) {
		return 0, nil
	}

	updated, n := RewriteContent(string(data), Replacements(oldSpecifier, newSpecifier))
	if n == 0 {
		return 0, nil
	}

	info, err := os.Stat(file)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", file, err)
	}
	if err := os.WriteFile(file, []byte(updated), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("writing %s: %w", file, err)
	}

	return n, nil
}
