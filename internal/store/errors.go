// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"errors"
	"strings"
)

// Typed store errors. Callers branch on these to map storage failures to
// user-facing responses without seeing statement internals.
var (
	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrConstraint is returned on constraint violations, most commonly a
	// duplicate value in a UNIQUE column.
	ErrConstraint = errors.New("constraint violation")
	// ErrQueryFailed is returned for every other engine failure.
	ErrQueryFailed = errors.New("query failed")
)

// isConstraintError checks if an error is an SQLite constraint violation.
// SQLite reports these as "... constraint failed" in the error message.
func isConstraintError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "constraint failed")
}

// IsUniqueViolation reports whether an error from the store is a
// constraint violation, suitable for a user-actionable conflict response.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConstraint)
}
