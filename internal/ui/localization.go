package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFetch             = "fetch"
	KeyDownload          = "download"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyEnterChannel      = "enter_channel"
	KeyFetchingPlaylists = "fetching_playlists"
	KeyFoundPlaylists    = "found_playlists"
	KeyNoPlaylists       = "no_playlists"
	KeyPleaseEnterURL    = "please_enter_url"
	KeySelectPlaylist    = "select_playlist"
	KeyDownloadStarted   = "download_started"
	KeyRunCompleted      = "run_completed"
	KeyCopyURL           = "copy_url"
	KeyURLCopied         = "url_copied"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyYTDLPPath         = "ytdlp_path"
	KeyInferenceEndpoint = "inference_endpoint"
	KeyInferenceModel    = "inference_model"
	KeySettingsSaved     = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Audio Tagger",
		KeyFetch:             "Fetch",
		KeyDownload:          "Download Selected",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyEnterChannel:      "Enter channel URL or @handle (https://youtube.com/@channel)",
		KeyFetchingPlaylists: "Fetching playlists...",
		KeyFoundPlaylists:    "Found %d playlist(s)",
		KeyNoPlaylists:       "No playlists found.",
		KeyPleaseEnterURL:    "Please enter a channel URL",
		KeySelectPlaylist:    "Select at least one playlist",
		KeyDownloadStarted:   "Download started",
		KeyRunCompleted:      "Playlist completed",
		KeyCopyURL:           "Copy URL",
		KeyURLCopied:         "Playlist URL copied to clipboard",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyDownloadDirectory: "Download Directory",
		KeyMaxParallel:       "Max Parallel Playlists",
		KeyYTDLPPath:         "yt-dlp Path",
		KeyInferenceEndpoint: "Inference Endpoint",
		KeyInferenceModel:    "Inference Model",
		KeySettingsSaved:     "Settings saved successfully!",
	}
}
