// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeFilename strips any directory components from a client-supplied
// filename, defeating traversal via names like "../../../etc/passwd".
func SanitizeFilename(filename string) (string, error) {
	safe := filepath.Base(filename)
	switch safe {
	case ".", "..", "", string(filepath.Separator):
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	return safe, nil
}

// SafeJoinPath joins path components under base and fails when the result
// escapes it.
func SafeJoinPath(base string, components ...string) (string, error) {
	joined := filepath.Join(append([]string{base}, components...)...)

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("invalid target path: %w", err)
	}

	// The separator suffix keeps /uploads from matching /uploads-evil.
	if absJoined != absBase && !strings.HasPrefix(absJoined, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes base directory", joined)
	}
	return joined, nil
}
