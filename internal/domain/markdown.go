package domain

import (
	"fmt"
	"strings"
)

// MaxHeadingLevel is the deepest ATX heading Markdown allows.
const MaxHeadingLevel = 6

// RaiseHeadings rewrites ATX headings so that none is shallower than
// minLevel. A digest injects a level-1 title per section, so entry bodies
// must not compete with it. Headings already at or below minLevel in the
// hierarchy (numerically >= minLevel) are left untouched, and no heading
// ever exceeds level 6. Fenced code blocks are passed through verbatim.
func RaiseHeadings(markdown string, minLevel int) string {
	if minLevel <= 1 {
		return markdown
	}
	if minLevel > MaxHeadingLevel {
		minLevel = MaxHeadingLevel
	}

	lines := strings.Split(markdown, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level := headingLevel(trimmed)
		if level == 0 || level >= minLevel {
			continue
		}
		body := strings.TrimPrefix(trimmed, strings.Repeat("#", level))
		lines[i] = strings.Repeat("#", minLevel) + body
	}

	return strings.Join(lines, "\n")
}

// headingLevel returns the ATX heading level of a line, or 0 if the line
// is not a heading. A heading marker must be followed by a space or end
// the line ("#foo" is not a heading).
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > MaxHeadingLevel {
		return 0
	}
	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return 0
	}
	return level
}

// DigestSection renders one entry as a digest section: a level-1 title, a
// visible source-link line, and the entry body with its headings raised
// below the title.
func DigestSection(title, link, markdown string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Source: <%s>\n\n", link)
	b.WriteString(strings.TrimSpace(RaiseHeadings(markdown, 2)))
	b.WriteString("\n")
	return b.String()
}
