package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-audio-tagger/internal/model"
	"github.com/ytget/yt-audio-tagger/internal/platform"
	"github.com/ytget/yt-audio-tagger/internal/tagging"
)

// Service constants
const (
	// EventBufferSize is the capacity of the event channel. A slow UI
	// consumer drops progress events rather than blocking a run.
	EventBufferSize = 256
)

// Run tracks one playlist's trip through the pipeline.
type Run struct {
	ID         string
	Playlist   model.PlaylistRef
	Status     model.RunStatus
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time

	cancel context.CancelFunc
}

// Service schedules playlist runs with bounded parallelism.
type Service struct {
	runs        map[string]*Run
	runsMutex   sync.RWMutex
	maxParallel int
	activeCount int
	downloadDir string

	resolver ContentResolver
	fetcher  AudioFetcher
	inferrer Inferrer
	tagger   TagApplier
	rename   func(path, newTitle string) (string, error)

	events chan model.PipelineEvent
}

// NewService creates a new pipeline service.
func NewService(downloadDir string, maxParallel int, resolver ContentResolver, fetcher AudioFetcher, inferrer Inferrer, tagger TagApplier) *Service {
	return &Service{
		runs:        make(map[string]*Run),
		maxParallel: maxParallel,
		downloadDir: downloadDir,
		resolver:    resolver,
		fetcher:     fetcher,
		inferrer:    inferrer,
		tagger:      tagger,
		rename:      tagging.Rename,
		events:      make(chan model.PipelineEvent, EventBufferSize),
	}
}

// Events returns the stream of pipeline notifications. The consumer is
// responsible for marshaling any UI updates onto the UI thread.
func (s *Service) Events() <-chan model.PipelineEvent {
	return s.events
}

// StartRun queues a run for one playlist. A playlist with an unfinished
// run cannot be queued twice.
func (s *Service) StartRun(playlist model.PlaylistRef) (*Run, error) {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	// Check for duplicate playlist URLs
	for _, run := range s.runs {
		if run.Playlist.URL == playlist.URL && !run.Status.IsFinished() {
			return nil, fmt.Errorf("run already exists for playlist: %s", playlist.Title)
		}
	}

	run := &Run{
		ID:        uuid.NewString(),
		Playlist:  playlist,
		Status:    model.RunStatusPending,
		StartedAt: time.Now(),
	}
	s.runs[run.ID] = run

	// Try to start run if we have capacity
	if s.activeCount < s.maxParallel {
		go s.startRun(run)
	}

	return run, nil
}

// GetRun returns a run by ID
func (s *Service) GetRun(id string) (*Run, bool) {
	s.runsMutex.RLock()
	defer s.runsMutex.RUnlock()
	run, exists := s.runs[id]
	return run, exists
}

// GetAllRuns returns all runs
func (s *Service) GetAllRuns() []*Run {
	s.runsMutex.RLock()
	defer s.runsMutex.RUnlock()

	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	return runs
}

// CancelRun cancels a pending or active run. Files already downloaded
// and tagged are left in place.
func (s *Service) CancelRun(id string) error {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	run, exists := s.runs[id]
	if !exists {
		return fmt.Errorf("run not found: %s", id)
	}

	if run.Status == model.RunStatusPending {
		run.Status = model.RunStatusStopped
		run.FinishedAt = time.Now()
		return nil
	}

	if !run.Status.IsActive() {
		return fmt.Errorf("run is not active: %s", run.Status)
	}

	run.Status = model.RunStatusStopping
	if run.cancel != nil {
		run.cancel()
	}
	return nil
}

// startRun executes one run and then hands capacity to the next pending
// run.
func (s *Service) startRun(run *Run) {
	ctx, cancel := context.WithCancel(context.Background())

	s.runsMutex.Lock()
	if run.Status != model.RunStatusPending {
		// Cancelled while queued.
		s.runsMutex.Unlock()
		cancel()
		return
	}
	s.activeCount++
	run.Status = model.RunStatusStarting
	run.cancel = cancel
	s.runsMutex.Unlock()

	defer func() {
		cancel()

		s.runsMutex.Lock()
		s.activeCount--
		s.runsMutex.Unlock()

		// Try to start next pending run
		s.startNextPendingRun()
	}()

	err := s.runPipeline(ctx, run)

	s.runsMutex.Lock()
	switch {
	case err == nil:
		run.Status = model.RunStatusCompleted
	case errors.Is(err, context.Canceled):
		run.Status = model.RunStatusStopped
	default:
		run.Status = model.RunStatusError
		run.LastError = err.Error()
	}
	run.FinishedAt = time.Now()
	s.runsMutex.Unlock()

	if err == nil {
		s.emit(model.PipelineEvent{
			RunID:    run.ID,
			Playlist: run.Playlist.Title,
			Kind:     model.EventDone,
		})
	} else if !errors.Is(err, context.Canceled) {
		s.emit(model.PipelineEvent{
			RunID:    run.ID,
			Playlist: run.Playlist.Title,
			Kind:     model.EventError,
			Message:  err.Error(),
		})
	}
}

// runPipeline resolves, downloads, and tags one playlist.
func (s *Service) runPipeline(ctx context.Context, run *Run) error {
	s.setStatus(run, model.RunStatusResolving)

	playlistName, metas, err := s.resolver.ResolvePlaylistContents(ctx, run.Playlist.URL)
	if err != nil {
		return fmt.Errorf("failed to resolve playlist %s: %w", run.Playlist.Title, err)
	}
	if playlistName == "" {
		playlistName = run.Playlist.Title
	}

	playlistDir := filepath.Join(s.downloadDir, platform.SanitizeTitle(playlistName))
	if err := platform.CreateDirectoryIfNotExists(playlistDir); err != nil {
		return err
	}

	s.setStatus(run, model.RunStatusDownloading)
	if err := s.downloadAll(ctx, run, playlistDir, metas); err != nil {
		return err
	}

	s.setStatus(run, model.RunStatusTagging)
	return s.tagAll(ctx, run, playlistDir, playlistName, metas)
}

// downloadAll fetches every video's audio in a stable order. Individual
// download failures are logged and skipped so one broken video does not
// sink the playlist.
func (s *Service) downloadAll(ctx context.Context, run *Run, playlistDir string, metas map[string]model.SourceVideoMeta) error {
	ids := make([]string, 0, len(metas))
	for id := range metas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		meta := metas[id]
		progress := func(percent string) {
			s.emit(model.PipelineEvent{
				RunID:    run.ID,
				Playlist: run.Playlist.Title,
				Kind:     model.EventDownloading,
				Percent:  percent,
				File:     meta.Title,
			})
		}

		path, err := s.fetcher.FetchAudio(ctx, meta, playlistDir, progress)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return context.Canceled
			}
			log.Printf("Skipping video %s in %s: %v", id, run.Playlist.Title, err)
			continue
		}

		s.emit(model.PipelineEvent{
			RunID:    run.ID,
			Playlist: run.Playlist.Title,
			Kind:     model.EventFinished,
			File:     filepath.Base(path),
		})
	}

	return nil
}

// tagAll infers, writes, and renames tags for every audio file in the
// playlist directory. Files whose names carry no recognizable video ID
// still get tagged, from their filename alone.
func (s *Service) tagAll(ctx context.Context, run *Run, playlistDir, playlistName string, metas map[string]model.SourceVideoMeta) error {
	files, err := platform.ScanAudioFiles(playlistDir)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		stem := platform.Stem(file)

		var meta model.SourceVideoMeta
		if id, ok := platform.ExtractVideoID(stem); ok {
			if m, found := metas[id]; found {
				meta = m
			}
		}
		if meta.ID == "" {
			// Unknown file, e.g. from an earlier run: infer from the
			// name alone.
			meta = model.SourceVideoMeta{Title: stem}
		}

		rec := s.inferrer.Infer(ctx, stem, playlistName, meta)

		artPath, _ := platform.FindCoverArt(file)

		if err := s.tagger.Apply(file, rec); err != nil {
			log.Printf("Failed to tag %s: %v", file, err)
			continue
		}

		newPath, err := s.renameTagged(file, rec)
		if err != nil {
			log.Printf("Failed to rename %s: %v", file, err)
			newPath = file
		}

		recCopy := rec
		s.emit(model.PipelineEvent{
			RunID:    run.ID,
			Playlist: run.Playlist.Title,
			Kind:     model.EventTagged,
			File:     filepath.Base(newPath),
			OldName:  filepath.Base(file),
			NewName:  filepath.Base(newPath),
			Tags:     &recCopy,
			ArtPath:  artPath,
		})
	}

	return nil
}

func (s *Service) renameTagged(path string, rec model.TagRecord) (string, error) {
	return s.rename(path, rec.Title)
}

// setStatus updates a run's status under lock.
func (s *Service) setStatus(run *Run, status model.RunStatus) {
	s.runsMutex.Lock()
	run.Status = status
	s.runsMutex.Unlock()
}

// startNextPendingRun starts the next pending run if we have capacity
func (s *Service) startNextPendingRun() {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	if s.activeCount >= s.maxParallel {
		return
	}

	// Find next pending run
	for _, run := range s.runs {
		if run.Status == model.RunStatusPending {
			go s.startRun(run)
			return
		}
	}
}

// emit sends an event without blocking; progress events are dropped when
// the consumer lags, terminal events wait.
func (s *Service) emit(ev model.PipelineEvent) {
	ev.Time = time.Now()
	if ev.Kind == model.EventDownloading {
		select {
		case s.events <- ev:
		default:
		}
		return
	}
	s.events <- ev
}
