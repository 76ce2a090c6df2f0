package model

// AllUploadsTitle is the synthetic playlist title used when a channel
// reports no distinct playlists but still has uploads.
const AllUploadsTitle = "All Uploads (as playlist)"

// PlaylistRef is a single playlist discovered on a channel, shown to the
// user as a checkable row and handed to the pipeline for downloading.
type PlaylistRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SourceVideoMeta is the metadata captured for one video when a playlist
// is resolved. It is built once per resolution, keyed by video ID, and
// read-only afterwards.
type SourceVideoMeta struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	Uploader    string `json:"uploader"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}
