package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-audio-tagger/internal/config"
	"github.com/ytget/yt-audio-tagger/internal/model"
	"github.com/ytget/yt-audio-tagger/internal/pipeline"
	"github.com/ytget/yt-audio-tagger/internal/platform"
	"github.com/ytget/yt-audio-tagger/internal/resolver"
)

// UI constants
const (
	RootCoverSize    = 96
	RootLogMaxLines  = 500
	RootWindowWidth  = 760
	RootWindowHeight = 560
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	resolverSvc *resolver.Service
	pipelineSvc *pipeline.Service

	urlEntry     *widget.Entry
	fetchBtn     *widget.Button
	downloadBtn  *widget.Button
	playlistList *widget.List

	// Playlist selection state, guarded by listMutex.
	playlists []model.PlaylistRef
	checked   map[int]bool
	listMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// Event log and cover preview
	logEntry   *widget.Entry
	logLines   []string
	logMutex   sync.Mutex
	coverImage *canvas.Image
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, resolverSvc *resolver.Service, pipelineSvc *pipeline.Service) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()

	// Ensure downloads directory exists
	platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		resolverSvc:  resolverSvc,
		pipelineSvc:  pipelineSvc,
		checked:      make(map[int]bool),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.Resize(fyne.NewSize(RootWindowWidth, RootWindowHeight))

	ui.setupUI()

	// Consume pipeline events in the background for the lifetime of the
	// window.
	go ui.consumeEvents()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Channel URL entry
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterChannel))
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onFetchClick()
	}

	ui.fetchBtn = widget.NewButton(ui.localization.GetText(KeyFetch), ui.onFetchClick)
	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)

	settingsBtn := widget.NewButton(ui.localization.GetText(KeySettings), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.fetchBtn, ui.urlEntry)

	// Notification panel under the URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Playlist selection list
	ui.playlistList = widget.NewList(
		func() int {
			ui.listMutex.Lock()
			defer ui.listMutex.Unlock()
			return len(ui.playlists)
		},
		func() fyne.CanvasObject { return ui.createPlaylistItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updatePlaylistItem(id, obj) },
	)

	// Event log
	ui.logEntry = widget.NewMultiLineEntry()
	ui.logEntry.Wrapping = fyne.TextWrapWord
	ui.logEntry.Disable()

	// Cover art preview for the most recently tagged file
	ui.coverImage = canvas.NewImageFromResource(nil)
	ui.coverImage.FillMode = canvas.ImageFillContain
	ui.coverImage.SetMinSize(fyne.NewSize(RootCoverSize, RootCoverSize))

	bottom := container.NewBorder(nil, nil, ui.coverImage, ui.downloadBtn, ui.logEntry)

	content := container.NewBorder(
		topCombined,     // top
		bottom,          // bottom
		nil,             // left
		nil,             // right
		ui.playlistList, // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
	)

	ui.window.SetMainMenu(mainMenu)
}

// playlistRow is the template for one playlist entry: a checkbox with
// the title and a copy-URL button.
func (ui *RootUI) createPlaylistItem() fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	copyBtn := widget.NewButton(ui.localization.GetText(KeyCopyURL), nil)
	copyBtn.Importance = widget.LowImportance
	return container.NewBorder(nil, nil, nil, copyBtn, check)
}

// updatePlaylistItem binds a playlist row to the entry at id.
func (ui *RootUI) updatePlaylistItem(id widget.ListItemID, obj fyne.CanvasObject) {
	ui.listMutex.Lock()
	if id >= len(ui.playlists) {
		ui.listMutex.Unlock()
		return
	}
	ref := ui.playlists[id]
	isChecked := ui.checked[id]
	ui.listMutex.Unlock()

	row, ok := obj.(*fyne.Container)
	if !ok {
		return
	}

	for _, child := range row.Objects {
		switch w := child.(type) {
		case *widget.Check:
			w.OnChanged = nil
			w.SetText(ref.Title)
			w.SetChecked(isChecked)
			w.OnChanged = func(on bool) {
				ui.listMutex.Lock()
				ui.checked[id] = on
				ui.listMutex.Unlock()
			}
		case *widget.Button:
			w.OnTapped = func() {
				ui.window.Clipboard().SetContent(ref.URL)
				ui.showNotification(ui.localization.GetText(KeyURLCopied), false)
			}
		}
	}
}

// onFetchClick resolves the entered channel URL to its playlists.
func (ui *RootUI) onFetchClick() {
	input := strings.TrimSpace(ui.urlEntry.Text)
	if input == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}

	channelURL := resolver.NormalizeChannelURL(input)
	log.Printf("Fetching playlists for %s", channelURL)

	ui.showNotification(ui.localization.GetText(KeyFetchingPlaylists), true)
	ui.fetchBtn.Disable()

	go func() {
		refs, err := ui.resolverSvc.ResolvePlaylists(context.Background(), channelURL)

		fyne.Do(func() {
			ui.fetchBtn.Enable()

			if err != nil {
				log.Printf("Playlist fetch failed: %v", err)
				ui.showNotification("Error: "+err.Error(), false)
				return
			}

			ui.listMutex.Lock()
			ui.playlists = refs
			ui.checked = make(map[int]bool)
			ui.listMutex.Unlock()

			ui.playlistList.Refresh()

			if len(refs) == 0 {
				ui.showNotification(ui.localization.GetText(KeyNoPlaylists), false)
				return
			}
			ui.showNotification(fmt.Sprintf(ui.localization.GetText(KeyFoundPlaylists), len(refs)), false)
		})
	}()
}

// onDownloadClick queues a pipeline run for every checked playlist.
func (ui *RootUI) onDownloadClick() {
	ui.listMutex.Lock()
	var selected []model.PlaylistRef
	for i, ref := range ui.playlists {
		if ui.checked[i] {
			selected = append(selected, ref)
		}
	}
	ui.listMutex.Unlock()

	if len(selected) == 0 {
		ui.showNotification(ui.localization.GetText(KeySelectPlaylist), false)
		return
	}

	for _, ref := range selected {
		run, err := ui.pipelineSvc.StartRun(ref)
		if err != nil {
			log.Printf("Failed to queue playlist %s: %v", ref.Title, err)
			ui.appendLog(fmt.Sprintf("Error: %s: %v", ref.Title, err))
			continue
		}
		log.Printf("Queued run %s for playlist %s", run.ID, ref.Title)
		ui.appendLog(fmt.Sprintf("Queued: %s", ref.Title))
	}

	ui.showNotification(ui.localization.GetText(KeyDownloadStarted), false)
}

// consumeEvents reads the pipeline event stream and reflects it in the
// log, cover preview, and system notifications.
func (ui *RootUI) consumeEvents() {
	for ev := range ui.pipelineSvc.Events() {
		switch ev.Kind {
		case model.EventDownloading:
			ui.showNotification(fmt.Sprintf("%s: %s %s", ev.Playlist, ev.File, ev.Percent), true)
		case model.EventFinished:
			ui.appendLog(fmt.Sprintf("Downloaded: %s", ev.File))
		case model.EventTagged:
			ui.appendLog(formatTaggedLine(ev))
			if ev.ArtPath != "" {
				ui.showCover(ev.ArtPath)
			}
		case model.EventDone:
			ui.appendLog(fmt.Sprintf("Completed: %s", ev.Playlist))
			ui.showNotification(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyRunCompleted), ev.Playlist), false)
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   ui.localization.GetText(KeyRunCompleted),
				Content: ev.Playlist,
			})
		case model.EventError:
			ui.appendLog(fmt.Sprintf("Error: %s: %s", ev.Playlist, ev.Message))
			ui.showNotification("Error: "+ev.Message, false)
		}
	}
}

// formatTaggedLine renders one tagged-file event for the log.
func formatTaggedLine(ev model.PipelineEvent) string {
	line := fmt.Sprintf("Tagged: %s", ev.NewName)
	if ev.OldName != "" && ev.OldName != ev.NewName {
		line = fmt.Sprintf("Tagged: %s (was %s)", ev.NewName, ev.OldName)
	}
	if ev.Tags != nil {
		if ev.Tags.Artist != "" {
			line += fmt.Sprintf(" by %s", ev.Tags.Artist)
		}
		if ev.Tags.Provenance == model.ProvenanceFallback {
			line += " [filename only]"
		}
	}
	return line
}

// appendLog adds a line to the event log, trimming old lines.
func (ui *RootUI) appendLog(line string) {
	ui.logMutex.Lock()
	ui.logLines = append(ui.logLines, line)
	if len(ui.logLines) > RootLogMaxLines {
		ui.logLines = ui.logLines[len(ui.logLines)-RootLogMaxLines:]
	}
	text := strings.Join(ui.logLines, "\n")
	ui.logMutex.Unlock()

	fyne.Do(func() {
		ui.logEntry.SetText(text)
		ui.logEntry.CursorRow = len(ui.logLines)
	})
}

// showCover displays the cover art of the most recently tagged file.
func (ui *RootUI) showCover(path string) {
	fyne.Do(func() {
		img := canvas.NewImageFromFile(path)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(RootCoverSize, RootCoverSize))
		ui.coverImage.File = img.File
		ui.coverImage.Resource = nil
		ui.coverImage.Refresh()
	})
}

// showNotification displays a message in the notification panel under
// the URL input. When spinning is true, a spinner indicates background
// activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window).Show()
}
