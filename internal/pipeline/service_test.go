package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

// fakeResolver serves canned playlist contents.
type fakeResolver struct {
	title string
	metas map[string]model.SourceVideoMeta
	err   error
}

func (f *fakeResolver) ResolvePlaylistContents(ctx context.Context, playlistURL string) (string, map[string]model.SourceVideoMeta, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.title, f.metas, nil
}

// fakeFetcher writes an empty audio file per video, plus optional stray
// files simulating leftovers from earlier runs.
type fakeFetcher struct {
	strays []string
	placed bool
	err    error
}

func (f *fakeFetcher) FetchAudio(ctx context.Context, meta model.SourceVideoMeta, destDir string, progress func(percent string)) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if progress != nil {
		progress("50.0%")
	}
	if !f.placed {
		for _, stray := range f.strays {
			if err := os.WriteFile(filepath.Join(destDir, stray), []byte("a"), 0644); err != nil {
				return "", err
			}
		}
		f.placed = true
	}
	path := filepath.Join(destDir, fmt.Sprintf("%s [%s].m4a", meta.Title, meta.ID))
	if err := os.WriteFile(path, []byte("a"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// fakeInferrer tags known videos as inferred and everything else with
// the fallback record.
type fakeInferrer struct{}

func (fakeInferrer) Infer(ctx context.Context, stem, playlistName string, meta model.SourceVideoMeta) model.TagRecord {
	if meta.ID == "" {
		return model.FallbackRecord(stem, playlistName)
	}
	return model.TagRecord{
		Title:      "Tagged " + meta.Title,
		Artist:     "Artist",
		Album:      playlistName,
		Provenance: model.ProvenanceInferred,
	}
}

// fakeTagger records applied records by path.
type fakeTagger struct {
	applied map[string]model.TagRecord
}

func (f *fakeTagger) Apply(path string, rec model.TagRecord) error {
	if f.applied == nil {
		f.applied = make(map[string]model.TagRecord)
	}
	f.applied[filepath.Base(path)] = rec
	return nil
}

// collectEvents drains the event stream until a Done or Error event for
// each expected run arrives.
func collectEvents(t *testing.T, svc *Service, terminalCount int) []model.PipelineEvent {
	t.Helper()
	var events []model.PipelineEvent
	terminals := 0
	deadline := time.After(10 * time.Second)
	for terminals < terminalCount {
		select {
		case ev := <-svc.Events():
			events = append(events, ev)
			if ev.Kind == model.EventDone || ev.Kind == model.EventError {
				terminals++
			}
		case <-deadline:
			t.Fatalf("timed out waiting for events, got %d so far", len(events))
		}
	}
	return events
}

func countKind(events []model.PipelineEvent, kind model.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestServiceRunPipeline(t *testing.T) {
	dir := t.TempDir()
	resolver := &fakeResolver{
		title: "Mixes",
		metas: map[string]model.SourceVideoMeta{
			"aaaaaaaaaaa": {ID: "aaaaaaaaaaa", Title: "Track One"},
			"bbbbbbbbbbb": {ID: "bbbbbbbbbbb", Title: "Track Two"},
		},
	}
	fetcher := &fakeFetcher{strays: []string{"Leftover Song.m4a"}}
	tagger := &fakeTagger{}

	svc := NewService(dir, 2, resolver, fetcher, fakeInferrer{}, tagger)

	run, err := svc.StartRun(model.PlaylistRef{Title: "Mixes", URL: "https://example.com/list"})
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	events := collectEvents(t, svc, 1)

	if got := countKind(events, model.EventFinished); got != 2 {
		t.Errorf("finished events = %d, want 2", got)
	}
	if got := countKind(events, model.EventTagged); got != 3 {
		t.Errorf("tagged events = %d, want 3", got)
	}
	if got := countKind(events, model.EventDone); got != 1 {
		t.Errorf("done events = %d, want 1", got)
	}
	if got := countKind(events, model.EventError); got != 0 {
		t.Errorf("error events = %d, want 0", got)
	}

	stored, ok := svc.GetRun(run.ID)
	if !ok {
		t.Fatal("run not found after completion")
	}
	if stored.Status != model.RunStatusCompleted {
		t.Errorf("status = %s, want Completed", stored.Status)
	}

	// Known videos were tagged with inferred records and renamed.
	playlistDir := filepath.Join(dir, "Mixes")
	for _, name := range []string{"Tagged Track One.m4a", "Tagged Track Two.m4a"} {
		if _, err := os.Stat(filepath.Join(playlistDir, name)); err != nil {
			t.Errorf("expected renamed file %s: %v", name, err)
		}
	}

	// The leftover file got the fallback record and kept its name.
	rec, ok := tagger.applied["Leftover Song.m4a"]
	if !ok {
		t.Fatal("leftover file was not tagged")
	}
	if rec.Provenance != model.ProvenanceFallback {
		t.Errorf("leftover provenance = %q, want fallback", rec.Provenance)
	}
	if rec.Title != "Leftover Song" || rec.Album != "Mixes" {
		t.Errorf("unexpected leftover record: %+v", rec)
	}
	if _, err := os.Stat(filepath.Join(playlistDir, "Leftover Song.m4a")); err != nil {
		t.Errorf("leftover file should keep its name: %v", err)
	}
}

func TestServiceResolveErrorEmitsErrorEvent(t *testing.T) {
	resolver := &fakeResolver{err: fmt.Errorf("network down")}
	svc := NewService(t.TempDir(), 1, resolver, &fakeFetcher{}, fakeInferrer{}, &fakeTagger{})

	run, err := svc.StartRun(model.PlaylistRef{Title: "Broken", URL: "u"})
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	events := collectEvents(t, svc, 1)

	if got := countKind(events, model.EventError); got != 1 {
		t.Fatalf("error events = %d, want 1", got)
	}
	if got := countKind(events, model.EventDone); got != 0 {
		t.Errorf("done events = %d, want 0", got)
	}

	stored, _ := svc.GetRun(run.ID)
	if stored.Status != model.RunStatusError {
		t.Errorf("status = %s, want Error", stored.Status)
	}
	if stored.LastError == "" {
		t.Error("LastError should be set")
	}
}

func TestServiceDuplicateRunRejected(t *testing.T) {
	// Zero capacity keeps the first run pending so the duplicate check
	// is deterministic.
	svc := NewService(t.TempDir(), 0, &fakeResolver{title: "T"}, &fakeFetcher{}, fakeInferrer{}, &fakeTagger{})

	ref := model.PlaylistRef{Title: "T", URL: "https://example.com/list"}
	if _, err := svc.StartRun(ref); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if _, err := svc.StartRun(ref); err == nil {
		t.Error("StartRun() expected duplicate error")
	}
}

func TestServiceCancelPendingRun(t *testing.T) {
	svc := NewService(t.TempDir(), 0, &fakeResolver{title: "T"}, &fakeFetcher{}, fakeInferrer{}, &fakeTagger{})

	run, err := svc.StartRun(model.PlaylistRef{Title: "T", URL: "u"})
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	if err := svc.CancelRun(run.ID); err != nil {
		t.Fatalf("CancelRun() error = %v", err)
	}

	stored, _ := svc.GetRun(run.ID)
	if stored.Status != model.RunStatusStopped {
		t.Errorf("status = %s, want Stopped", stored.Status)
	}

	// Cancelling a finished run is an error.
	if err := svc.CancelRun(run.ID); err == nil {
		t.Error("CancelRun() expected error for finished run")
	}

	if err := svc.CancelRun("missing"); err == nil {
		t.Error("CancelRun() expected error for unknown run")
	}
}

func TestServiceQueuedRunStartsAfterCapacityFrees(t *testing.T) {
	dir := t.TempDir()
	resolver := &fakeResolver{
		title: "Solo",
		metas: map[string]model.SourceVideoMeta{
			"ccccccccccc": {ID: "ccccccccccc", Title: "Only Track"},
		},
	}

	svc := NewService(dir, 1, resolver, &fakeFetcher{}, fakeInferrer{}, &fakeTagger{})

	if _, err := svc.StartRun(model.PlaylistRef{Title: "First", URL: "u1"}); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if _, err := svc.StartRun(model.PlaylistRef{Title: "Second", URL: "u2"}); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	events := collectEvents(t, svc, 2)

	if got := countKind(events, model.EventDone); got != 2 {
		t.Errorf("done events = %d, want 2", got)
	}
	for _, run := range svc.GetAllRuns() {
		if run.Status != model.RunStatusCompleted {
			t.Errorf("run %s status = %s, want Completed", run.Playlist.Title, run.Status)
		}
	}
}
