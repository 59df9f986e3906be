package dataset

import "strings"

// ExtractColumn splits each input line on sep and collects the part at the
// 1-based index. Lines are trimmed first; blank lines and lines with fewer
// than index parts are silently skipped, never padded. Surviving parts are
// joined with newlines.
func ExtractColumn(lines []string, sep string, index int) string {
	if index < 1 {
		return ""
	}

	var parts []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cols := strings.Split(line, sep)
		if len(cols) < index {
			continue
		}
		parts = append(parts, cols[index-1])
	}
	return strings.Join(parts, "\n")
}
