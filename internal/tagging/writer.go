package tagging

import (
	"fmt"
	"log"
	"strconv"

	mp4tag "github.com/zhaarey/go-mp4tag"

	"github.com/ytget/yt-audio-tagger/internal/model"
	"github.com/ytget/yt-audio-tagger/internal/platform"
)

// Writer applies tag records to audio files.
type Writer struct{}

// NewWriter creates a new tag writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Apply writes the record's fields into the audio file at path. Sibling
// cover art is embedded when present; art problems are logged and the
// file is still tagged without a picture.
func (w *Writer) Apply(path string, rec model.TagRecord) error {
	tags := buildTags(rec)

	if artPath, ok := platform.FindCoverArt(path); ok {
		pic, err := loadCover(artPath)
		if err != nil {
			log.Printf("Skipping cover art for %s: %v", path, err)
		} else {
			tags.Pictures = []*mp4tag.MP4Picture{pic}
		}
	}

	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	defer mp4.Close()

	if err := mp4.Write(tags, []string{}); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

// buildTags maps a tag record onto container atoms. Empty fields are
// left unset so existing atoms are not overwritten with blanks.
func buildTags(rec model.TagRecord) *mp4tag.MP4Tags {
	tags := &mp4tag.MP4Tags{
		Custom: make(map[string]string),
	}

	if rec.Title != "" {
		tags.Title = rec.Title
	}
	if rec.Artist != "" {
		tags.Artist = rec.Artist
	}
	if rec.Album != "" {
		tags.Album = rec.Album
	}
	if rec.Genre != "" {
		tags.CustomGenre = rec.Genre
	}
	if rec.Year != "" {
		if year, err := strconv.Atoi(rec.Year); err == nil {
			tags.Year = int32(year)
		}
	}
	if rec.Remix && rec.Remixer != "" {
		tags.Comment = fmt.Sprintf("Remix by %s", rec.Remixer)
	}

	return tags
}
