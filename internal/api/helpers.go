package api

import "strings"

// splitCSV splits a comma-separated query parameter into trimmed,
// non-empty values. Returns nil for an empty input.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
