// Package analysis derives daily series and statistics from raw mood
// observations. All transforms propagate absence: a statistic that lacks
// enough data resolves to a nil value, never to zero.
package analysis

import (
	"sort"
	"strings"
	"unicode"
)

// ExtractHashtags returns the normalized hashtag tokens found in freeform
// note text. Tokens are lowercased, stripped of trailing punctuation, and
// deduplicated; the result is sorted for deterministic downstream use.
func ExtractHashtags(text string) []string {
	if !strings.Contains(text, "#") {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string

	// Scan rune-by-rune so hashtags embedded mid-field ("great#day") and
	// punctuation-adjacent tags ("#tired,") are both caught.
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(runes) && isTagRune(runes[j]) {
			j++
		}
		tag := normalizeTag(string(runes[i+1 : j]))
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
		i = j - 1
	}

	sort.Strings(tags)
	return tags
}

func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimFunc(s, func(r rune) bool { return !isTagRune(r) }))
	if s == "" || s == "_" || s == "-" {
		return ""
	}
	return s
}
