// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrBackendVersion is returned when the backend reports a version outside
// backend.min_version.
var ErrBackendVersion = errors.New("backend version not supported")

func parseConstraint(s string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", s, err)
	}
	return c, nil
}

// CheckBackendVersion reports whether reported satisfies constraint.
// Either side being empty passes: older backends do not report a version.
func CheckBackendVersion(constraint, reported string) error {
	if constraint == "" || reported == "" {
		return nil
	}
	c, err := parseConstraint(constraint)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("%w: unparseable version %q", ErrBackendVersion, reported)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrBackendVersion, v, constraint)
	}
	return nil
}
