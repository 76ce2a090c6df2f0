// Package infer asks a local chat-completion endpoint to turn a video's
// metadata into structured song tags, with a lenient parser for the
// model's JSON output and a deterministic filename-based fallback.
package infer
