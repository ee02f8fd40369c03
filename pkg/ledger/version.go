package ledger

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the layout of runs and cases written by this package.
const SchemaVersion = "v1.0.0"

// IsCompatibleSchema reports whether a ledger written with stored can be read
// and appended to by code at current.
// Compatibility rules:
// - Major version must match exactly.
// - Minor and patch versions can differ.
func IsCompatibleSchema(stored, current string) (bool, error) {
	if !semver.IsValid(stored) {
		return false, fmt.Errorf("invalid stored schema version: %q", stored)
	}
	if !semver.IsValid(current) {
		return false, fmt.Errorf("invalid schema version: %q", current)
	}

	return semver.Major(stored) == semver.Major(current), nil
}

func schemaMismatch(stored, current string) string {
	return fmt.Sprintf("ledger schema %s cannot be used with schema %s (requires %s.x.x)",
		stored, current, semver.Major(current))
}
