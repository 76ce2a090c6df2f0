package model

// RunStatus represents the status of a pipeline run
type RunStatus string

const (
	// RunStatusPending means the run is queued but not started
	RunStatusPending RunStatus = "Pending"

	// RunStatusStarting means the run is in the process of starting
	RunStatusStarting RunStatus = "Starting"

	// RunStatusResolving means playlist contents are being resolved
	RunStatusResolving RunStatus = "Resolving"

	// RunStatusDownloading means the audio download is in progress
	RunStatusDownloading RunStatus = "Downloading"

	// RunStatusTagging means downloaded files are being tagged and renamed
	RunStatusTagging RunStatus = "Tagging"

	// RunStatusStopping means the run is in the process of stopping
	RunStatusStopping RunStatus = "Stopping"

	// RunStatusStopped means the run was cancelled by the user
	RunStatusStopped RunStatus = "Stopped"

	// RunStatusCompleted means the run finished successfully
	RunStatusCompleted RunStatus = "Completed"

	// RunStatusError means the run failed with an error
	RunStatusError RunStatus = "Error"
)

// String returns the string representation of RunStatus
func (rs RunStatus) String() string {
	return string(rs)
}

// IsActive returns true if the run is in an active state
func (rs RunStatus) IsActive() bool {
	switch rs {
	case RunStatusStarting, RunStatusResolving, RunStatusDownloading, RunStatusTagging, RunStatusStopping:
		return true
	}
	return false
}

// IsFinished returns true if the run is in a finished state (completed, stopped, or error)
func (rs RunStatus) IsFinished() bool {
	return rs == RunStatusCompleted || rs == RunStatusStopped || rs == RunStatusError
}
