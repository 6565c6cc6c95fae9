package common

import "time"

// APIStatus describes inboxd status
type APIStatus struct {
	StartTime       time.Time
	Authenticated   bool
	Email           string
	Online          bool
	Uploading       bool
	QueueLength     int
	InboxPath       string
	UploadCount     int
	UploadTotalSize int64 `format:"size"`
}
