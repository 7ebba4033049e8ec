// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "with special characters",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "with multiple spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "with leading/trailing hyphens",
			input:    "-Hello World-",
			expected: "hello-world",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "french title",
			input:    "Comprendre les lifetimes en Rust",
			expected: "comprendre-les-lifetimes-en-rust",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestUniqueSuffix(t *testing.T) {
	s := UniqueSuffix()
	if s == "" {
		t.Fatal("UniqueSuffix() returned empty string")
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			t.Errorf("UniqueSuffix() = %q, contains non base36 character %q", s, r)
		}
	}
	if !IsValidSlug("title-" + s) {
		t.Errorf("slug with suffix %q is not a valid slug", s)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "page-123", "a"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-hello", "hello-", "hello--world", "Hello", "héllo", "hello world"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
