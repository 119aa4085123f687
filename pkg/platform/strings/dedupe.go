// Package strings holds small list helpers for configuration values.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every element and drops empties and repeats, keeping
// the first occurrence.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SplitList splits a separated list such as "kafka-1:9092, kafka-2:9092"
// and cleans it with DedupeAndTrim. An empty string yields nil.
func SplitList(raw, sep string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(raw, sep))
}
