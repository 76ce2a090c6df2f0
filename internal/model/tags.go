package model

// Provenance records how a TagRecord was produced, so the UI can tell
// AI-tagged files apart from filename-derived ones.
type Provenance string

const (
	// ProvenanceInferred means the record came from the metadata
	// inference endpoint.
	ProvenanceInferred Provenance = "inferred"

	// ProvenanceFallback means the record was derived from the filename
	// alone because inference was unavailable or invalid.
	ProvenanceFallback Provenance = "fallback"
)

// TagRecord is the structured song metadata applied to a downloaded audio
// file. A record is never partially applied: either the full inferred
// record or the full fallback record is used.
type TagRecord struct {
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	Remix      bool       `json:"remix"`
	Remixer    string     `json:"remixer"`
	Year       string     `json:"year"`
	Genre      string     `json:"genre"`
	Album      string     `json:"album"`
	Provenance Provenance `json:"provenance"`
}

// FallbackRecord returns the deterministic record used whenever metadata
// inference fails: title from the filename stem, album from the playlist
// name, everything else empty.
func FallbackRecord(stem, playlistName string) TagRecord {
	return TagRecord{
		Title:      stem,
		Album:      playlistName,
		Provenance: ProvenanceFallback,
	}
}
