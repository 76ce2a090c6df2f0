// Package ui implements the Fyne desktop shell: channel URL entry,
// playlist selection list, pipeline event log, and settings dialog.
package ui
