//go:build !dev
// +build !dev

package server

import (
	"time"

	"github.com/c2h5oh/datasize"
)

// ArchiveFolderName is the name of the inbox subfolder where uploaded
// files are moved when delete_after_upload is disabled
const ArchiveFolderName = "Subidos"

// LogHistorySize is the maximum number of messages in app log history
const LogHistorySize = 5000

// MaxRecentUploads is the maximum number of recent upload entries we keep
const MaxRecentUploads = 15

// DebounceDelay collapses bursts of watch events for the same path
const DebounceDelay = 2 * time.Second

// ReadyProbeDelay is the time between the two size samples of the
// readiness check
const ReadyProbeDelay = 500 * time.Millisecond

// WorkerIdleSleep is how long the worker sleeps when the queue is empty
const WorkerIdleSleep = 2 * time.Second

// OfflineSleep is how long the worker sleeps when the server is unreachable
const OfflineSleep = 15 * time.Second

// OnlineCheckInterval is the maximum age of the cached online flag before
// the worker re-probes the server
const OnlineCheckInterval = 30 * time.Second

// HealthTimeout is the timeout of a single health probe
const HealthTimeout = 5 * time.Second

// MaxRetries is the number of upload attempts before giving up on a file
const MaxRetries = 10

// RetryDelayBase is the base delay of the exponential backoff between
// two attempts (see RetryDelayExpCap)
const RetryDelayBase = 5 * time.Second

// RetryDelayExpCap caps the backoff exponent (base * 2^cap = 320s max)
const RetryDelayExpCap = 6

// DefaultMaxFileSize is the default upload size ceiling
const DefaultMaxFileSize = 200 * datasize.MB
