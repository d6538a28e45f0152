package explain

import (
	"fmt"
	"strings"
)

// render turns the structured output into numbered plain text with
// formulas in **bold**.
func render(out explanationOutput) string {
	var b strings.Builder
	n := 0
	for _, s := range out.Steps {
		text := strings.TrimSpace(s.Text)
		formula := strings.TrimSpace(s.Formula)
		if text == "" && formula == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s\n", n, text)
		if formula != "" {
			fmt.Fprintf(&b, "   **%s**\n", formula)
		}
	}
	if a := strings.TrimSpace(out.Answer); a != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**Answer: %s**\n", a)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Segment is a run of text that is either plain or bold.
type Segment struct {
	Text string
	Bold bool
}

// Segments splits line on "**" markers. An unmatched marker is kept as
// literal text.
func Segments(line string) []Segment {
	var out []Segment
	bold := false
	for {
		i := strings.Index(line, "**")
		if i < 0 {
			break
		}
		if !bold && !strings.Contains(line[i+2:], "**") {
			break
		}
		if i > 0 {
			out = append(out, Segment{Text: line[:i], Bold: bold})
		}
		bold = !bold
		line = line[i+2:]
	}
	if line != "" {
		out = append(out, Segment{Text: line, Bold: bold})
	}
	return out
}
