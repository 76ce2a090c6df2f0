package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-audio-tagger/internal/model"
	"github.com/ytget/yt-audio-tagger/internal/platform"
)

// Download constants
const (
	AudioQuality = "bestaudio"

	VideoURLTemplate = "https://www.youtube.com/watch?v=%s"

	thumbnailTimeout = 30 * time.Second
)

// Fetcher downloads audio tracks and their thumbnails.
type Fetcher struct {
	http *resty.Client
}

// NewFetcher creates a new audio fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		http: resty.New().SetTimeout(thumbnailTimeout),
	}
}

// FetchAudio downloads the best audio track for one video into destDir.
// The file is named "<sanitized title> [<video ID>].m4a" so the tagging
// stage can map it back to its source metadata. A sibling thumbnail is
// saved alongside when the metadata carries one; thumbnail failures are
// logged and do not fail the download.
func (f *Fetcher) FetchAudio(ctx context.Context, meta model.SourceVideoMeta, destDir string, progress func(percent string)) (string, error) {
	title := platform.SanitizeTitle(meta.Title)
	if title == "" {
		title = meta.ID
	}
	outputPath := filepath.Join(destDir, fmt.Sprintf("%s [%s]%s", title, meta.ID, platform.AudioExt))

	d := ytdlp.New().
		WithFormat(AudioQuality, platform.AudioExt).
		WithOutputPath(outputPath)

	if progress != nil {
		d = d.WithProgress(func(p ytdlp.Progress) {
			progress(fmt.Sprintf("%.1f%%", p.Percent))
		})
	}

	videoURL := fmt.Sprintf(VideoURLTemplate, meta.ID)
	if _, err := d.Download(ctx, videoURL); err != nil {
		return "", fmt.Errorf("failed to download audio for %s: %w", meta.ID, err)
	}

	if meta.Thumbnail != "" {
		f.fetchThumbnail(ctx, meta.Thumbnail, outputPath)
	}

	return outputPath, nil
}

// fetchThumbnail saves the video's thumbnail next to the audio file,
// sharing its stem. The image extension follows the response
// Content-Type.
func (f *Fetcher) fetchThumbnail(ctx context.Context, url, audioPath string) {
	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Printf("Failed to fetch thumbnail %s: %v", url, err)
		return
	}
	if resp.IsError() {
		log.Printf("Thumbnail request for %s returned %s", url, resp.Status())
		return
	}

	ext := extensionForContentType(resp.Header().Get("Content-Type"))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(url))
	}
	if ext == "" {
		log.Printf("Cannot determine thumbnail format for %s", url)
		return
	}

	stem := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	target := stem + ext
	if err := os.WriteFile(target, resp.Body(), 0644); err != nil {
		log.Printf("Failed to save thumbnail %s: %v", target, err)
	}
}

// extensionForContentType maps image content types to file extensions.
func extensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "image/jpeg"):
		return ".jpg"
	case strings.Contains(contentType, "image/png"):
		return ".png"
	case strings.Contains(contentType, "image/webp"):
		return ".webp"
	}
	return ""
}
