package references

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the number of directory listings kept per run.
const defaultCacheSize = 256

// skipDirs are never descended into during a recursive search.
var skipDirs = map[string]bool{
	"node_modules": true,
}

// Index lists candidate referencing files below a directory. Listings are
// cached for the lifetime of the Index: a migration run neither creates
// nor removes referencing files, and the modules it writes are excluded.
type Index struct {
	moduleExt string
	scope     Scope
	cache     *lru.Cache[string, []string]
	excluded  map[string]struct{}
}

// NewIndex creates an index of files ending in moduleExt.
func NewIndex(moduleExt string, scope Scope) (*Index, error) {
	if moduleExt == "" {
		return nil, fmt.Errorf("module extension must be set")
	}
	cache, err := lru.New[string, []string](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating listing cache: %w", err)
	}
	return &Index{
		moduleExt: moduleExt,
		scope:     scope,
		cache:     cache,
		excluded:  make(map[string]struct{}),
	}, nil
}

// Exclude removes path from every listing. Generated modules are excluded
// so their embedded template text is never rewritten.
func (ix *Index) Exclude(path string) {
	ix.excluded[filepath.Clean(path)] = struct{}{}
}

// Candidates returns the files that may reference a template in dir,
// sorted, minus excluded paths.
func (ix *Index) Candidates(dir string) ([]string, error) {
	dir = filepath.Clean(dir)

	files, ok := ix.cache.Get(dir)
	if !ok {
		var err error
		files, err = ix.list(dir)
		if err != nil {
			return nil, err
		}
		ix.cache.Add(dir, files)
	}

	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, skip := ix.excluded[f]; skip {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (ix *Index) list(dir string) ([]string, error) {
	if ix.scope == ScopeFlat {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		var files []string
		for _, e := range entries {
			if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ix.moduleExt) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ix.moduleExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
