package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-audio-tagger/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	// UI components
	downloadDirEntry *widget.Entry
	ytdlpPathEntry   *widget.Entry
	maxParallelEntry *widget.Entry
	endpointEntry    *widget.Entry
	modelEntry       *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// yt-dlp binary path
	sd.ytdlpPathEntry = widget.NewEntry()
	sd.ytdlpPathEntry.SetPlaceHolder(config.DefaultYTDLPPath)

	// Max parallel playlist runs
	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	// Inference endpoint and model
	sd.endpointEntry = widget.NewEntry()
	sd.endpointEntry.SetPlaceHolder("http://localhost:11434")

	sd.modelEntry = widget.NewEntry()
	sd.modelEntry.SetPlaceHolder("llama3")

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,

		widget.NewLabel(sd.localization.GetText(KeyYTDLPPath)+":"),
		sd.ytdlpPathEntry,

		widget.NewLabel(sd.localization.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewSeparator(),
		widget.NewLabel("Tagging Settings"),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyInferenceEndpoint)+":"),
		sd.endpointEntry,

		widget.NewLabel(sd.localization.GetText(KeyInferenceModel)+":"),
		sd.modelEntry,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 460))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.ytdlpPathEntry.SetText(sd.settings.GetYTDLPPath())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelRuns()))
	sd.endpointEntry.SetText(sd.settings.GetInferenceEndpoint())
	sd.modelEntry.SetText(sd.settings.GetInferenceModel())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate and save download directory
	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}

	// Save yt-dlp path
	if sd.ytdlpPathEntry.Text != "" {
		sd.settings.SetYTDLPPath(sd.ytdlpPathEntry.Text)
	}

	// Validate and save max parallel runs
	if sd.maxParallelEntry.Text != "" {
		if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
			sd.settings.SetMaxParallelRuns(maxParallel)
		}
	}

	// Save inference settings
	if sd.endpointEntry.Text != "" {
		sd.settings.SetInferenceEndpoint(sd.endpointEntry.Text)
	}
	if sd.modelEntry.Text != "" {
		sd.settings.SetInferenceModel(sd.modelEntry.Text)
	}

	// Show confirmation
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
