package utils

import "strings"

// SplitTrimmed splits a separated list, trims whitespace around each
// element, and drops empties. Useful for comma lists coming from env vars.
func SplitTrimmed(s, sep string) []string {
	var result []string

	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}
