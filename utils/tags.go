package utils

import (
	"strings"
)

// NormalizeTags turns a list of candidate tag strings into the stored
// comma-joined encoding: whitespace trimmed, empties dropped, duplicates
// collapsed keeping first-occurrence order. An empty or all-blank input
// yields the empty string.
func NormalizeTags(tags []string) string {
	seen := make(map[string]struct{}, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	return strings.Join(cleaned, ",")
}

// SplitTags decodes a stored tags value back into a list, dropping empty
// segments. The result is never nil so an empty value serializes as [].
func SplitTags(stored string) []string {
	tags := []string{}
	for _, t := range strings.Split(stored, ",") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
