package models

// UploadState describes where an in-flight upload currently is.
type UploadState string

const (
	UploadRunning UploadState = "running"
	UploadPaused  UploadState = "paused"
	// UploadFailed is terminal unless the user retries by starting a
	// new upload; the entry stays visible until dismissed.
	UploadFailed UploadState = "failed"
)

// UploadingFile is the user-visible view of one active upload. It is
// created when the upload starts, mutated on every lifecycle event and
// removed from the active set on successful completion (the result
// becomes a File).
type UploadingFile struct {
	ID       string
	Name     string
	Key      string
	State    UploadState
	Progress float64 // percent, 0..100, two decimal places
	Error    string
}
