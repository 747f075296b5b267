// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compat gates a run on the version of a library it depends on.
package compat

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Error reports a library version that does not satisfy the required
// constraint.
type Error struct {
	Library    string
	Version    string
	Constraint string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s version %s is incompatible: requires %s", e.Library, e.Version, e.Constraint)
}

// Check verifies that version satisfies constraint (e.g. ">= 2.0.0").
// An empty constraint accepts any version. Malformed versions or
// constraints are returned as plain errors; an unsatisfied constraint is
// returned as *Error.
func Check(library, version, constraint string) error {
	if constraint == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parsing %s version %q: %w", library, version, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}

	if !c.Check(v) {
		return &Error{Library: library, Version: version, Constraint: constraint}
	}
	return nil
}
