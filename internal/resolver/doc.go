// Package resolver discovers a channel's playlists and resolves playlist
// contents to per-video metadata using the yt-dlp command-line tool.
package resolver
