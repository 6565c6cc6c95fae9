package common

// Upload status of a recent entry
const (
	APIUploadStatusPending   = "pending"
	APIUploadStatusUploading = "uploading"
	APIUploadStatusSuccess   = "success"
	APIUploadStatusFailed    = "failed"
)

// APIRecentEntries is a list of recent uploads, most recent first
type APIRecentEntries []APIRecentEntry

// APIRecentEntry is a recent upload, as shown to the user
type APIRecentEntry struct {
	Name      string
	Status    string
	Timestamp string
	Error     string
}
