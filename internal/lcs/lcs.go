// Package lcs provides functions for finding the longest common prefix of
// strings, used to suggest a known name for a misspelled one.
package lcs

import (
	"slices"
	"strings"
)

// CommonPrefix returns the longest common prefix of the strings in ss.
func CommonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}

	// The longest common prefix of the lexicographically smallest and largest
	// strings is the longest common prefix of all of them.
	min := slices.Min(ss)
	max := slices.Max(ss)
	for i := range []byte(min) {
		if min[i] != max[i] {
			return min[:i]
		}
	}
	return min
}

// Closest returns the candidate sharing the longest case-insensitive common
// prefix with s. The prefix must be at least minLen bytes long, or cover the
// whole of s or the candidate. On ties the earlier candidate wins.
func Closest(s string, candidates []string, minLen int) (string, bool) {
	lower := strings.ToLower(s)

	best, bestLen := "", 0
	for _, c := range candidates {
		n := len(CommonPrefix([]string{lower, strings.ToLower(c)}))
		if n == 0 || n <= bestLen {
			continue
		}
		if n < minLen && n != len(lower) && n != len(c) {
			continue
		}
		best, bestLen = c, n
	}
	return best, bestLen != 0
}
