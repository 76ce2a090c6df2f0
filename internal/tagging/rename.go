package tagging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ytget/yt-audio-tagger/internal/platform"
)

// Rename moves the audio file to a name derived from its tagged title,
// keeping the directory and extension. The returned path is the file's
// final location. Renames are skipped rather than forced: an empty
// sanitized title, an unchanged name, or an existing target all leave
// the file where it is.
func Rename(path, newTitle string) (string, error) {
	title := platform.SanitizeTitle(newTitle)
	if title == "" {
		return path, nil
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	target := filepath.Join(dir, title+ext)

	if target == path {
		return path, nil
	}

	// First writer keeps the name; a later duplicate title stays under
	// its original filename.
	if _, err := os.Stat(target); err == nil {
		log.Printf("Rename target already exists, keeping %s", filepath.Base(path))
		return path, nil
	}

	if err := os.Rename(path, target); err != nil {
		return path, fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return target, nil
}
