package mcp

import "strings"

// splitTagList turns a comma-separated tag argument into a name slice. The
// store normalizes further (trim, dedupe), so this only has to split.
func splitTagList(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
