package pipeline

import (
	"context"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

// ContentResolver resolves a playlist URL to its title and per-video
// metadata.
type ContentResolver interface {
	ResolvePlaylistContents(ctx context.Context, playlistURL string) (string, map[string]model.SourceVideoMeta, error)
}

// AudioFetcher downloads one video's audio track into destDir and
// returns the path of the saved file. The progress callback receives
// percent-complete strings.
type AudioFetcher interface {
	FetchAudio(ctx context.Context, meta model.SourceVideoMeta, destDir string, progress func(percent string)) (string, error)
}

// Inferrer produces a tag record for one downloaded file. It never
// fails; a degraded record is returned instead of an error.
type Inferrer interface {
	Infer(ctx context.Context, stem, playlistName string, meta model.SourceVideoMeta) model.TagRecord
}

// TagApplier writes a tag record into an audio file.
type TagApplier interface {
	Apply(path string, rec model.TagRecord) error
}
