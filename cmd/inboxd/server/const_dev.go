//go:build dev
// +build dev

package server

import (
	"time"

	"github.com/c2h5oh/datasize"
)

// (same constants as const.go, with lowered values for dev mode)

const ArchiveFolderName = "Subidos"

const LogHistorySize = 500

const MaxRecentUploads = 15

const DebounceDelay = 1 * time.Second

const ReadyProbeDelay = 250 * time.Millisecond

const WorkerIdleSleep = 1 * time.Second

const OfflineSleep = 3 * time.Second

const OnlineCheckInterval = 10 * time.Second

const HealthTimeout = 2 * time.Second

const MaxRetries = 3

const RetryDelayBase = 1 * time.Second

const RetryDelayExpCap = 3

const DefaultMaxFileSize = 200 * datasize.MB
