package assistant

import (
	"regexp"
	"strings"
)

var (
	emphasisMarkers = regexp.MustCompile(`\*\*|__`)
	headingMarker   = regexp.MustCompile(`^\s{0,3}#{1,6}\s*`)
	bulletMarker    = regexp.MustCompile(`^(\s*)[*-]\s+`)
	blankRuns       = regexp.MustCompile(`\n{3,}`)
)

// StripMarkup removes bold and heading markers from provider text and turns
// "*" or "-" bullets into plain lines.
func StripMarkup(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = emphasisMarkers.ReplaceAllString(line, "")
		line = headingMarker.ReplaceAllString(line, "")
		line = bulletMarker.ReplaceAllString(line, "$1")
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.Join(lines, "\n")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
