package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-audio-tagger/internal/infer"
	"github.com/ytget/yt-audio-tagger/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir         = "download_directory"
	KeyYTDLPPath           = "ytdlp_path"
	KeyMaxParallel         = "max_parallel_runs"
	KeyInferenceEndpoint   = "inference_endpoint"
	KeyInferenceModel      = "inference_model"
	KeyInferenceTimeoutSec = "inference_timeout_sec"
)

// Default values
const (
	DefaultYTDLPPath           = "yt-dlp"
	DefaultMaxParallel         = 2
	DefaultInferenceTimeoutSec = 60
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetYTDLPPath returns the path of the yt-dlp binary used for playlist
// resolution
func (s *Settings) GetYTDLPPath() string {
	path := s.app.Preferences().String(KeyYTDLPPath)
	if path == "" {
		s.SetYTDLPPath(DefaultYTDLPPath)
		return DefaultYTDLPPath
	}
	return path
}

// SetYTDLPPath sets the yt-dlp binary path
func (s *Settings) SetYTDLPPath(path string) {
	if path == "" {
		path = DefaultYTDLPPath
	}
	s.app.Preferences().SetString(KeyYTDLPPath, path)
}

// GetMaxParallelRuns returns the maximum number of parallel playlist runs
func (s *Settings) GetMaxParallelRuns() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelRuns(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelRuns sets the maximum number of parallel playlist runs
func (s *Settings) SetMaxParallelRuns(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetInferenceEndpoint returns the chat-completion endpoint base URL
func (s *Settings) GetInferenceEndpoint() string {
	endpoint := s.app.Preferences().String(KeyInferenceEndpoint)
	if endpoint == "" {
		s.SetInferenceEndpoint(infer.DefaultEndpoint)
		return infer.DefaultEndpoint
	}
	return endpoint
}

// SetInferenceEndpoint sets the chat-completion endpoint base URL
func (s *Settings) SetInferenceEndpoint(endpoint string) {
	if endpoint == "" {
		endpoint = infer.DefaultEndpoint
	}
	s.app.Preferences().SetString(KeyInferenceEndpoint, endpoint)
}

// GetInferenceModel returns the model name sent to the chat endpoint
func (s *Settings) GetInferenceModel() string {
	model := s.app.Preferences().String(KeyInferenceModel)
	if model == "" {
		s.SetInferenceModel(infer.DefaultModel)
		return infer.DefaultModel
	}
	return model
}

// SetInferenceModel sets the model name sent to the chat endpoint
func (s *Settings) SetInferenceModel(model string) {
	if model == "" {
		model = infer.DefaultModel
	}
	s.app.Preferences().SetString(KeyInferenceModel, model)
}

// GetInferenceTimeout returns the per-request inference timeout
func (s *Settings) GetInferenceTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyInferenceTimeoutSec)
	if seconds <= 0 {
		s.SetInferenceTimeoutSec(DefaultInferenceTimeoutSec)
		return DefaultInferenceTimeoutSec * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// SetInferenceTimeoutSec sets the per-request inference timeout in seconds
func (s *Settings) SetInferenceTimeoutSec(seconds int) {
	if seconds < 1 {
		seconds = 1
	}
	s.app.Preferences().SetInt(KeyInferenceTimeoutSec, seconds)
}
