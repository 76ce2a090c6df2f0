package platform

import "regexp"

// videoIDPattern matches a bracketed 11-character video ID embedded in a
// filename, e.g. "Song Title [dQw4w9WgXcQ]".
var videoIDPattern = regexp.MustCompile(`\[([A-Za-z0-9_-]{11})\]`)

// ExtractVideoID returns the video ID embedded in a filename, if any.
// Only exact 11-character bracketed IDs match; other bracketed text is
// ignored.
func ExtractVideoID(filename string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}
