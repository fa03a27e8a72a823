package postgres

import "strings"

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = lower(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
