package references

import (
	"path/filepath"
)

// Update records a referencing file whose imports were rewritten.
type Update struct {
	File  string
	Count int
}

// FileError records a referencing file that could not be processed.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Rewriter updates every referencing file of a template.
type Rewriter struct {
	index *Index
}

// NewRewriter creates a rewriter over index.
func NewRewriter(index *Index) *Rewriter {
	return &Rewriter{index: index}
}

// Rewrite points every import of templatePath at modulePath. Failures on
// individual files are collected and do not stop the remaining files.
func (r *Rewriter) Rewrite(templatePath, modulePath string) ([]Update, []*FileError) {
	dir := filepath.Dir(templatePath)

	candidates, err := r.index.Candidates(dir)
	if err != nil {
		return nil, []*FileError{{File: dir, Err: err}}
	}

	var (
		updates []Update
		errs    []*FileError
	)
	for _, file := range candidates {
		if filepath.Clean(file) == filepath.Clean(modulePath) {
			continue
		}
		n, err := RewriteFile(file, templatePath, modulePath)
		if err != nil {
			errs = append(errs, &FileError{File: file, Err: err})
			continue
		}
		if n > 0 {
			updates = append(updates, Update{File: file, Count: n})
		}
	}

	return updates, errs
}
