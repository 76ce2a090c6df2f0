// Package model defines domain data structures shared across the app:
// playlist references, source video metadata, tag records, pipeline run
// statuses, and the typed event stream consumed by the UI.
package model
