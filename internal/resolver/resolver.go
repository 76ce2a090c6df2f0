package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

// Timeout constants
const (
	DefaultResolveTimeout = 120 * time.Second
)

// URL parameters and path fragments
const (
	PlaylistURLParam   = "list="
	PlaylistsPathPart  = "/playlists"
	HandlePrefix       = "@"
	ChannelURLTemplate = "https://www.youtube.com/%s/playlists"
)

// Service resolves channel playlists and playlist contents by invoking
// the yt-dlp binary at a configured path. The path is injected rather
// than read from the process environment so that tests and packaged
// builds can point at their own binary.
type Service struct {
	ytdlpPath string
	timeout   time.Duration
}

// NewService creates a new resolver service using the given yt-dlp
// binary path.
func NewService(ytdlpPath string) *Service {
	return &Service{
		ytdlpPath: ytdlpPath,
		timeout:   DefaultResolveTimeout,
	}
}

// SetTimeout sets the timeout for resolve operations
func (s *Service) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// NormalizeChannelURL turns user input into a URL yt-dlp can enumerate
// playlists from. Bare @handles become a full playlists-tab URL; inputs
// that already carry a scheme are passed through, with /playlists
// appended to handle-style channel URLs that lack a tab.
func NormalizeChannelURL(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	if strings.HasPrefix(trimmed, HandlePrefix) {
		return fmt.Sprintf(ChannelURLTemplate, trimmed)
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		// Treat anything else without a scheme as a playlist ID.
		return playlistURLFromID(trimmed)
	}

	// Channel URL by handle without an explicit tab: browse its playlists.
	if idx := strings.Index(trimmed, "/"+HandlePrefix); idx != -1 {
		rest := trimmed[idx+1:]
		if !strings.Contains(rest, "/") {
			return trimmed + PlaylistsPathPart
		}
	}

	return trimmed
}

// ResolvePlaylists enumerates the playlists of a channel. When the
// channel has no distinct playlists but does have uploads, a single
// synthetic "All Uploads" entry pointing at the original URL is
// returned.
func (s *Service) ResolvePlaylists(ctx context.Context, channelURL string) ([]model.PlaylistRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.runYTDLP(ctx, "-J", "--flat-playlist", "--skip-download", channelURL)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate playlists: %w", err)
	}

	return parsePlaylistList(out, channelURL)
}

// ResolvePlaylistContents resolves a playlist to its title and a map of
// per-video metadata keyed by video ID.
func (s *Service) ResolvePlaylistContents(ctx context.Context, playlistURL string) (string, map[string]model.SourceVideoMeta, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.runYTDLP(ctx, "-J", "--skip-download", playlistURL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve playlist contents: %w", err)
	}

	return parsePlaylistContents(out)
}

// runYTDLP invokes the configured yt-dlp binary and returns its stdout.
func (s *Service) runYTDLP(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, s.ytdlpPath, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", s.ytdlpPath, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", s.ytdlpPath, err)
	}
	return out, nil
}

// extractorInfo mirrors the subset of yt-dlp's -J output the resolver
// reads. Entries stays raw so the presence of the key can be told apart
// from an empty list.
type extractorInfo struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Type        string          `json:"_type"`
	IEKey       string          `json:"ie_key"`
	URL         string          `json:"url"`
	WebpageURL  string          `json:"webpage_url"`
	Channel     string          `json:"channel"`
	Description string          `json:"description"`
	Uploader    string          `json:"uploader"`
	Thumbnail   string          `json:"thumbnail"`
	Entries     json.RawMessage `json:"entries"`
}

// parsePlaylistList extracts playlist references from a flat-playlist
// dump of a channel's playlists tab.
func parsePlaylistList(data []byte, originalURL string) ([]model.PlaylistRef, error) {
	var root extractorInfo
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse playlist listing: %w", err)
	}

	if len(root.Entries) == 0 {
		return nil, nil
	}

	var entries []extractorInfo
	if err := json.Unmarshal(root.Entries, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse playlist entries: %w", err)
	}

	var refs []model.PlaylistRef
	for _, e := range entries {
		if !isPlaylistEntry(e) {
			continue
		}
		url := e.URL
		if url == "" {
			url = e.WebpageURL
		}
		if url == "" || e.Title == "" {
			continue
		}
		// Flat-playlist entries sometimes carry a bare playlist ID in
		// the url field rather than a full URL.
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			url = playlistURLFromID(url)
		}
		refs = append(refs, model.PlaylistRef{Title: e.Title, URL: url})
	}

	// Channel with uploads but no distinct playlists: offer the uploads
	// themselves as a single synthetic playlist.
	if len(refs) == 0 {
		return []model.PlaylistRef{{Title: model.AllUploadsTitle, URL: originalURL}}, nil
	}

	return refs, nil
}

// playlistURLFromID builds a full playlist URL from a bare playlist ID.
func playlistURLFromID(id string) string {
	return "https://www.youtube.com/playlist?" + PlaylistURLParam + id
}

// isPlaylistEntry reports whether a flat-playlist entry describes a
// playlist rather than a bare video.
func isPlaylistEntry(e extractorInfo) bool {
	return e.Type == "playlist" || e.IEKey == "YoutubePlaylist" || e.IEKey == "YoutubeTab"
}

// parsePlaylistContents extracts the playlist title and per-video
// metadata from a full -J dump. Both the multi-entry playlist shape and
// the single-video shape are handled.
func parsePlaylistContents(data []byte) (string, map[string]model.SourceVideoMeta, error) {
	var root extractorInfo
	if err := json.Unmarshal(data, &root); err != nil {
		return "", nil, fmt.Errorf("failed to parse playlist contents: %w", err)
	}

	metas := make(map[string]model.SourceVideoMeta)

	if len(root.Entries) == 0 {
		// Single video resolved directly.
		if root.ID != "" {
			metas[root.ID] = metaFromEntry(root)
		}
		return root.Title, metas, nil
	}

	var entries []extractorInfo
	if err := json.Unmarshal(root.Entries, &entries); err != nil {
		return "", nil, fmt.Errorf("failed to parse video entries: %w", err)
	}

	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		metas[e.ID] = metaFromEntry(e)
	}

	return root.Title, metas, nil
}

// metaFromEntry converts a raw entry into the domain metadata record.
func metaFromEntry(e extractorInfo) model.SourceVideoMeta {
	return model.SourceVideoMeta{
		ID:          e.ID,
		Title:       e.Title,
		Channel:     e.Channel,
		Description: e.Description,
		Uploader:    e.Uploader,
		Thumbnail:   e.Thumbnail,
	}
}
