package suite

import (
	"path/filepath"
	"strings"
)

// Filter filters cases by id pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// FilterCases keeps the cases whose id matches the pattern. Patterns support
// * and ? wildcards ("test-pepe-*") and plain substring matching ("pepe").
func (f *Filter) FilterCases(cases []Case, pattern string) []Case {
	if pattern == "" {
		return cases
	}

	var filtered []Case
	for _, c := range cases {
		if matchesPattern(c.ID, pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// FilterSuites applies FilterCases to every suite, dropping suites left with
// no cases.
func (f *Filter) FilterSuites(suites []*Suite, pattern string) []*Suite {
	if pattern == "" {
		return suites
	}

	var filtered []*Suite
	for _, s := range suites {
		cases := f.FilterCases(s.Cases, pattern)
		if len(cases) == 0 {
			continue
		}
		trimmed := *s
		trimmed.Cases = cases
		filtered = append(filtered, &trimmed)
	}
	return filtered
}

func matchesPattern(id, pattern string) bool {
	if matched, err := filepath.Match(pattern, id); err == nil && matched {
		return true
	}

	// Substring matching for wildcard patterns filepath.Match rejects, like
	// "*pepe*" against ids with extra separators.
	if strings.ContainsAny(pattern, "*?") {
		parts := strings.Split(pattern, "*")
		hasNonEmpty := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmpty = true
			if !strings.Contains(id, part) {
				return false
			}
		}
		return hasNonEmpty
	}

	return strings.Contains(id, pattern)
}
