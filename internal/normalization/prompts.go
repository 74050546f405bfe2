package normalization

import (
	"regexp"
	"strings"
)

// Leading enumeration markers like "1. ", "2) " or "3 " that models prepend
// to list output.
var enumerationMarker = regexp.MustCompile(`^\s*\d+[).]?\s*`)

// SplitPrompts cleans raw multi-line model output into discrete prompt
// strings: one prompt per line, enumeration markers stripped, surrounding
// whitespace trimmed, empty leftovers dropped. The result may be shorter or
// longer than the amount the model was asked for; callers tolerate both.
func SplitPrompts(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned := strings.TrimSpace(enumerationMarker.ReplaceAllString(line, ""))
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
