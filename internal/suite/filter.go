package suite

import (
	"path/filepath"
	"strings"

	"leavesmoke/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters cases by name pattern using wildcard matching.
// Supports patterns like "leave*" or "*token*"; matching ignores case.
// Login cases are kept whenever a selected case needs the session token,
// and the suite order is preserved.
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	pattern = strings.ToLower(pattern)
	selected := make([]bool, len(cases))
	needsLogin := false

	for i, tc := range cases {
		if matchName(strings.ToLower(tc.Name), pattern) {
			selected[i] = true
			if tc.RequiresAuth() {
				needsLogin = true
			}
		}
	}

	var filtered []domain.TestCase
	for i, tc := range cases {
		if selected[i] || (needsLogin && tc.Login) {
			filtered = append(filtered, tc)
		}
	}

	return filtered
}

func matchName(name, pattern string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible substring match for patterns like "*leave*"
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}

	return false
}
