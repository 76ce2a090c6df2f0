package main

import (
	"fmt"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-audio-tagger/internal/config"
	"github.com/ytget/yt-audio-tagger/internal/infer"
	"github.com/ytget/yt-audio-tagger/internal/pipeline"
	"github.com/ytget/yt-audio-tagger/internal/platform"
	"github.com/ytget/yt-audio-tagger/internal/resolver"
	"github.com/ytget/yt-audio-tagger/internal/tagging"
	"github.com/ytget/yt-audio-tagger/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-audio-tagger"
	AppName = "YT Audio Tagger"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	resolverSvc := resolver.NewService(settings.GetYTDLPPath())
	inferrer := infer.NewAdapter(
		settings.GetInferenceEndpoint(),
		settings.GetInferenceModel(),
		settings.GetInferenceTimeout(),
	)
	pipelineSvc := pipeline.NewService(
		downloadsDir,
		settings.GetMaxParallelRuns(),
		resolverSvc,
		pipeline.NewFetcher(),
		inferrer,
		tagging.NewWriter(),
	)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, resolverSvc, pipelineSvc)

	// Show and run
	myWindow.ShowAndRun()
}
