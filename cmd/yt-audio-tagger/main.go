package main

import (
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-audio-tagger/internal/config"
	"github.com/ytget/yt-audio-tagger/internal/infer"
	"github.com/ytget/yt-audio-tagger/internal/pipeline"
	"github.com/ytget/yt-audio-tagger/internal/resolver"
	"github.com/ytget/yt-audio-tagger/internal/tagging"
	"github.com/ytget/yt-audio-tagger/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.ytget.yt-audio-tagger")
	myWindow := myApp.NewWindow("YT Audio Tagger")

	// Initialize services
	settings := config.NewSettings(myApp)
	resolverSvc := resolver.NewService(settings.GetYTDLPPath())
	inferrer := infer.NewAdapter(
		settings.GetInferenceEndpoint(),
		settings.GetInferenceModel(),
		settings.GetInferenceTimeout(),
	)
	pipelineSvc := pipeline.NewService(
		settings.GetDownloadDirectory(),
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
