// Package tagging writes song metadata and cover art into downloaded
// audio files and renames them to their tagged titles.
package tagging
