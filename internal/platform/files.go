package platform

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File system constants
const (
	// DefaultDirPermissions is the default permission for created directories
	DefaultDirPermissions = 0755

	// AudioExt is the container extension produced by the download stage
	AudioExt = ".m4a"
)

// coverExtensions lists sibling art extensions in priority order.
var coverExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// CreateDirectoryIfNotExists creates a directory if it doesn't exist
func CreateDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, DefaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory.
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// ScanAudioFiles walks root and returns the absolute paths of all audio
// files beneath it, sorted lexicographically for a stable tagging order.
func ScanAudioFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), AudioExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// FindCoverArt looks for a sibling image file sharing the audio file's
// stem. Extensions are tried in priority order: jpg, jpeg, png, webp.
func FindCoverArt(audioPath string) (string, bool) {
	stem := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	for _, ext := range coverExtensions {
		candidate := stem + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Stem returns the file's base name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
