// Package pipeline orchestrates per-playlist runs: resolve the playlist,
// download audio tracks with bounded parallelism, infer and write tags,
// and rename files, emitting a typed event stream for the UI.
package pipeline
