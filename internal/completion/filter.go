package completion

import "strings"

// FilterFold keeps the candidates containing word, ignoring case.
// An empty word keeps everything. Order is preserved and the result is never nil.
func FilterFold(candidates []string, word string) []string {
	filtered := make([]string, 0, len(candidates))
	if word == "" {
		return append(filtered, candidates...)
	}

	needle := strings.ToLower(word)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// filterExact keeps the candidates containing word, case-sensitive.
// Command names are matched this way.
func filterExact(candidates []string, word string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.Contains(c, word) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// without removes every candidate that already appears in used
func without(candidates, used []string) []string {
	seen := make(map[string]struct{}, len(used))
	for _, u := range used {
		seen[u] = struct{}{}
	}

	remaining := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; !ok {
			remaining = append(remaining, c)
		}
	}
	return remaining
}
