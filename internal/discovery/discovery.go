// Package discovery finds template files under a project root.
package discovery

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	oerrors "github.com/opmodel/tplmigrate/internal/errors"
)

// DefaultPattern matches every template below src/.
const DefaultPattern = "src/**/*.template.html"

// Discover returns the slash-separated paths, relative to root, of every
// regular file matching pattern, sorted lexicographically. Hidden files and
// files below hidden directories are skipped unless the pattern names a
// hidden segment itself. No match is not an error: the result is simply
// empty.
func Discover(root, pattern string) ([]string, error) {
	pattern, err := normalizePattern(pattern)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("project root does not exist", root,
				"Pass an existing directory as the root argument or set root in the config file.")
		}
		return nil, fmt.Errorf("reading project root: %w", err)
	}
	if !info.IsDir() {
		return nil, oerrors.NewValidationError("project root is not a directory", root, "root", "")
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", pattern, err)
	}

	if !hasHiddenSegment(pattern) {
		visible := matches[:0]
		for _, m := range matches {
			if !hasHiddenSegment(m) {
				visible = append(visible, m)
			}
		}
		matches = visible
	}

	sort.Strings(matches)
	return matches, nil
}

// hasHiddenSegment reports whether any segment of a slash-separated path
// starts with a dot.
func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// ValidatePattern reports whether pattern can be used for discovery.
func ValidatePattern(pattern string) error {
	_, err := normalizePattern(pattern)
	return err
}

// normalizePattern strips a leading "./" and rejects patterns that would
// leave the project tree.
func normalizePattern(pattern string) (string, error) {
	p := strings.TrimSpace(pattern)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}

	switch {
	case p == "":
		return "", oerrors.NewValidationError("pattern is empty", "", "pattern", "Use a glob such as "+DefaultPattern)
	case path.IsAbs(p) || strings.HasPrefix(p, "\\"):
		return "", oerrors.NewValidationError("pattern must be relative to the project root", pattern, "pattern", "")
	case p == ".." || strings.HasPrefix(p, "../") || strings.Contains(p, "/../"):
		return "", oerrors.NewValidationError("pattern must not leave the project root", pattern, "pattern", "")
	case !doublestar.ValidatePattern(p):
		return "", oerrors.NewValidationError("invalid glob pattern", pattern, "pattern", "Check brackets and braces in the pattern")
	}

	return p, nil
}
