package haml

import (
	"strings"
)

// indentUnit is the indentation emitted per nesting level.
const indentUnit = "  "

// reservedLineMarkers are the characters Haml interprets at the start of a
// line (tag, id, class, script, comment, filter markers). Plain text lines
// beginning with one of them must be escaped.
const reservedLineMarkers = `%.#!=-~/:&`

// tabulate returns the indentation prefix for the given depth.
func tabulate(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(indentUnit, depth)
}

// formatText renders a block of plain text as Haml text lines at the given
// depth. Interpolation openers are escaped so re-parsing the output treats
// them as literal text, and lines that would read as Haml markup get a
// leading backslash. Empty input renders as nothing, not an empty line.
func formatText(text string, depth int) string {
	text = strings.ReplaceAll(text, "#{", `\#{`)
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) + depth*len(indentUnit))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		b.WriteString(tabulate(depth))
		if line != "" && strings.IndexByte(reservedLineMarkers, line[0]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
