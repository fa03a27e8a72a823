// Package scoring holds the placement scoring rules: job suitability,
// distance to a dream drive, placement readiness and the eligibility
// forecast. Every function here is pure and never fails; absent inputs
// count as empty or zero.
package scoring

import (
	"math"
	"strings"
)

// clamp keeps v inside [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// normalizeSkills lowercases and trims the student's skills, dropping blanks.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// hasSkill reports whether requirement appears as a substring of any of the
// normalized student skills. Matching is case-insensitive.
func hasSkill(normalized []string, requirement string) bool {
	req := strings.ToLower(strings.TrimSpace(requirement))
	if req == "" {
		return false
	}
	for _, s := range normalized {
		if strings.Contains(s, req) {
			return true
		}
	}
	return false
}

// coverage splits requirements into matched and missing, preserving input
// order. Blank requirement strings are ignored entirely.
func coverage(normalized, requirements []string) (matched, missing []string) {
	for _, r := range requirements {
		if strings.TrimSpace(r) == "" {
			continue
		}
		if hasSkill(normalized, r) {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	return matched, missing
}

// ratio returns part/total, treating an empty requirement set as fully covered.
func ratio(part, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(part) / float64(total)
}
