package migrate

import "os"

// Stage names the step of the per-file state machine at which a failure
// happened.
type Stage string

const (
	StageRead       Stage = "read"
	StageRender     Stage = "render"
	StageVerify     Stage = "verify"
	StageWrite      Stage = "write"
	StageReferences Stage = "references"
	StageDelete     Stage = "delete"
)

// State is the position of a template in the per-file state machine:
// Discovered → Converted → ReferencesRewritten → Deleted.
type State string

const (
	StateDiscovered          State = "discovered"
	StateConverted           State = "converted"
	StateReferencesRewritten State = "references-rewritten"
	StateDeleted             State = "deleted"
)

// Conversion is one template and the module generated from it.
type Conversion struct {
	Template string `json:"template"`
	Module   string `json:"module"`
	Size     int    `json:"size"`
	State    State  `json:"state"`

	content string
	perm    os.FileMode
}

// Failure records an error for one file.
type Failure struct {
	Path    string `json:"path"`
	Stage   Stage  `json:"stage"`
	Message string `json:"error"`

	Err error `json:"-"`
}

func newFailure(path string, stage Stage, err error) Failure {
	return Failure{Path: path, Stage: stage, Message: err.Error(), Err: err}
}

// ReferenceUpdate records a referencing file whose imports were rewritten.
type ReferenceUpdate struct {
	Template string `json:"template"`
	File     string `json:"file"`
	Count    int    `json:"count"`
}

// Report summarizes a migration run.
type Report struct {
	RunID       string `json:"runId"`
	Root        string `json:"root"`
	Pattern     string `json:"pattern"`
	Discovered  int    `json:"discovered"`
	Interrupted bool   `json:"interrupted,omitempty"`

	// Converted lists templates that reached the Deleted state.
	Converted []Conversion `json:"converted"`
	// Stranded lists templates whose module was written but whose
	// original could not be deleted.
	Stranded []Conversion      `json:"stranded,omitempty"`
	Updated  []ReferenceUpdate `json:"updated"`
	Failures []Failure         `json:"failures"`
	// Warnings are reference-rewrite failures; they never fail a template.
	Warnings []Failure `json:"warnings"`
}

// ConvertedCount returns the number of fully converted templates.
func (r *Report) ConvertedCount() int {
	return len(r.Converted)
}

// HasFailures reports whether any template failed.
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}

// UpdatedFiles returns the number of distinct referencing files rewritten.
func (r *Report) UpdatedFiles() int {
	seen := make(map[string]struct{}, len(r.Updated))
	for _, u := range r.Updated {
		seen[u.File] = struct{}{}
	}
	return len(seen)
}
