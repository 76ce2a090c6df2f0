package model

import "time"

// EventKind tags the variants of a PipelineEvent.
type EventKind int

const (
	// EventDownloading carries a progress update for one file.
	EventDownloading EventKind = iota

	// EventFinished means one file's audio download completed.
	EventFinished

	// EventTagged means one file was tagged and renamed.
	EventTagged

	// EventDone means a pipeline run processed all of its files.
	EventDone

	// EventError means a pipeline run failed.
	EventError
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDownloading:
		return "downloading"
	case EventFinished:
		return "finished"
	case EventTagged:
		return "tagged"
	case EventDone:
		return "done"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// PipelineEvent is a single notification emitted by a pipeline run. The
// presentation layer subscribes to the event stream and must marshal any
// widget updates onto the UI thread itself.
type PipelineEvent struct {
	RunID    string
	Playlist string
	Kind     EventKind
	Percent  string // percent-complete string, e.g. "42.0%"
	File     string
	OldName  string
	NewName  string
	Tags     *TagRecord
	ArtPath  string
	Message  string
	Time     time.Time
}
