package infer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

// Prompt constants
const (
	// DescriptionLimit caps how much of the video description is sent to
	// the model.
	DescriptionLimit = 300
)

// systemPrompt instructs the model to answer with a single JSON object.
const systemPrompt = `You are a music metadata assistant. Given information about a video, respond with ONLY a JSON object with these keys: "title" (string, the song title without artist), "artist" (string), "remix" (boolean, true if this is a remix), "remixer" (string, empty if not a remix), "year" (string, release year or empty), "genre" (string or empty). No explanation, no markdown, just the JSON object.`

// BuildPrompt renders the user message for one video. The description is
// truncated to DescriptionLimit characters.
func BuildPrompt(playlistName string, meta model.SourceVideoMeta) string {
	desc := truncateOnRuneBoundary(meta.Description, DescriptionLimit)

	var b strings.Builder
	fmt.Fprintf(&b, "Video title: %s\n", meta.Title)
	if meta.Channel != "" {
		fmt.Fprintf(&b, "Channel: %s\n", meta.Channel)
	}
	if meta.Uploader != "" && meta.Uploader != meta.Channel {
		fmt.Fprintf(&b, "Uploader: %s\n", meta.Uploader)
	}
	if playlistName != "" {
		fmt.Fprintf(&b, "Playlist: %s\n", playlistName)
	}
	if desc != "" {
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}
	b.WriteString("Extract the song metadata as JSON.")
	return b.String()
}

// truncateOnRuneBoundary caps s at limit bytes without splitting a
// multi-byte rune.
func truncateOnRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
