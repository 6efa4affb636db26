// Package references finds source files that import a template and
// rewrites those imports to name the generated module.
package references

import (
	"fmt"
	"strings"
)

// Scope controls which files are searched for references.
type Scope string

const (
	// ScopeRecursive searches the template's directory and every directory below it.
	ScopeRecursive Scope = "recursive"

	// ScopeFlat searches only the template's own directory.
	ScopeFlat Scope = "flat"
)

// ParseScope parses a scope name. Empty means recursive.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeRecursive:
		return ScopeRecursive, nil
	case ScopeFlat:
		return ScopeFlat, nil
	default:
		return "", fmt.Errorf("unknown reference scope %q (valid: %s, %s)", s, ScopeRecursive, ScopeFlat)
	}
}

// ValidScopes returns the accepted scope names.
func ValidScopes() []string {
	return []string{string(ScopeRecursive), string(ScopeFlat)}
}
