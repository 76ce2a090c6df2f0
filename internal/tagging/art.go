package tagging

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	mp4tag "github.com/zhaarey/go-mp4tag"
	"golang.org/x/image/webp"
)

// JPEG quality for WebP conversions
const webpConvertQuality = 90

// loadCover reads an image file and returns it as an embeddable picture.
// JPEG and PNG pass through untouched; WebP is re-encoded as JPEG since
// the container has no native WebP format tag.
func loadCover(path string) (*mp4tag.MP4Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return &mp4tag.MP4Picture{Format: mp4tag.ImageTypeJPEG, Data: data}, nil
	case ".png":
		return &mp4tag.MP4Picture{Format: mp4tag.ImageTypePNG, Data: data}, nil
	case ".webp":
		converted, err := convertWebP(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert webp cover %s: %w", path, err)
		}
		return &mp4tag.MP4Picture{Format: mp4tag.ImageTypeJPEG, Data: converted}, nil
	default:
		return nil, fmt.Errorf("unsupported cover format: %s", path)
	}
}

// convertWebP decodes a WebP image and re-encodes it as JPEG.
func convertWebP(data []byte) ([]byte, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode webp: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: webpConvertQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
