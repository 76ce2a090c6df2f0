package platform

import (
	"regexp"
	"strings"
)

// illegalNameChars matches characters that are not allowed in file names
// on at least one supported platform.
var illegalNameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// SanitizeTitle strips illegal filename characters from a title and trims
// surrounding whitespace. The result may be empty.
func SanitizeTitle(title string) string {
	cleaned := illegalNameChars.ReplaceAllString(title, "")
	return strings.TrimSpace(cleaned)
}
