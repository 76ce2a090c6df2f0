// Package platform provides filesystem helpers: directory creation,
// audio file scanning, cover art discovery, filename sanitization, and
// video ID extraction from bracketed filename suffixes.
package platform
