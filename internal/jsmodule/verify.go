package jsmodule

import (
	"fmt"

	"github.com/dop251/goja"
)

// MismatchError reports a module whose literal does not evaluate to the
// original template text.
type MismatchError struct {
	// Offset is the first byte at which the evaluated value differs.
	Offset int
	// Want and Got are the lengths of the original and evaluated text.
	Want, Got int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("module evaluates to different text: first difference at byte %d (want %d bytes, got %d)",
		e.Offset, e.Want, e.Got)
}

// Verifier evaluates generated modules in a JavaScript runtime.
// A Verifier is not safe for concurrent use.
type Verifier struct {
	vm *goja.Runtime
}

// NewVerifier creates a verifier backed by a fresh goja runtime.
func NewVerifier() *Verifier {
	vm := goja.New()
	vm.SetMaxCallStackSize(64)
	return &Verifier{vm: vm}
}

// Verify checks that module's exported literal evaluates to original.
// The literal is parsed by a real JavaScript parser, so an unescaped
// delimiter or a stray interpolation shows up as a syntax error or a
// mismatch.
func (v *Verifier) Verify(module, original string) error {
	lit, err := literal(module)
	if err != nil {
		return err
	}

	prog, err := goja.Compile("module.js", "("+lit+")", true)
	if err != nil {
		return fmt.Errorf("parsing module literal: %w", err)
	}

	val, err := v.vm.RunProgram(prog)
	if err != nil {
		return fmt.Errorf("evaluating module literal: %w", err)
	}

	got, ok := val.Export().(string)
	if !ok {
		return fmt.Errorf("module literal evaluates to %T, not a string", val.Export())
	}
	if got != original {
		return &MismatchError{Offset: firstDiff(got, original), Want: len(original), Got: len(got)}
	}
	return nil
}

func firstDiff(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
