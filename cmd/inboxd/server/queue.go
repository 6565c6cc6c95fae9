package server

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/inmoflow/inbox/common"
)

// QueueItem is a file waiting for upload. The item belongs to the queue
// while pending, and to the worker for the duration of one attempt.
type QueueItem struct {
	Path    string
	Retries int
}

// UploadQueue is the single source of truth for what is pending,
// uploading and recently finished. All operations are safe for
// concurrent use (the worker, the watcher and API readers share it).
type UploadQueue struct {
	items     []*QueueItem
	recent    []common.APIRecentEntry
	uploading bool
	online    bool
	mutex     sync.Mutex
}

// NewUploadQueue allocates a new UploadQueue
func NewUploadQueue() *UploadQueue {
	return &UploadQueue{
		online: true,
	}
}

// Enqueue adds a path to the queue tail with a fresh retry count, and
// records a new pending entry in the recent list. Adding a path already
// in the queue is a no-op. Returns true if the path was added.
func (queue *UploadQueue) Enqueue(path string) bool {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	for _, item := range queue.items {
		if item.Path == path {
			return false
		}
	}

	queue.items = append(queue.items, &QueueItem{
		Path:    path,
		Retries: 0,
	})

	queue.addRecent(common.APIRecentEntry{
		Name:      filepath.Base(path),
		Status:    common.APIUploadStatusPending,
		Timestamp: time.Now().Format("15:04:05"),
	})

	return true
}

// DequeueNext pops the next item from the queue head, or nil if the
// queue is empty. Never blocks.
func (queue *UploadQueue) DequeueNext() *QueueItem {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	if len(queue.items) == 0 {
		return nil
	}

	item := queue.items[0]
	queue.items = queue.items[1:]
	return item
}

// Reenqueue puts a failed item back at the queue tail with an
// incremented retry count
func (queue *UploadQueue) Reenqueue(item *QueueItem) {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	item.Retries++
	queue.items = append(queue.items, item)
}

// Length returns the number of pending items
func (queue *UploadQueue) Length() int {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	return len(queue.items)
}

// IsUploading returns true if an upload attempt is in flight
func (queue *UploadQueue) IsUploading() bool {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	return queue.uploading
}

// SetUploading sets the in-flight flag
func (queue *UploadQueue) SetUploading(uploading bool) {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	queue.uploading = uploading
}

// IsOnline returns the last known server reachability
func (queue *UploadQueue) IsOnline() bool {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	return queue.online
}

// SetOnline sets the online flag
func (queue *UploadQueue) SetOnline(online bool) {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	queue.online = online
}

// Recent returns a snapshot of the recent upload list, most recent first
func (queue *UploadQueue) Recent() common.APIRecentEntries {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	recent := make(common.APIRecentEntries, len(queue.recent))
	copy(recent, queue.recent)
	return recent
}

// UpdateRecentStatus mutates the most recent entry matching name.
// Entries are keyed by display name: two different files sharing a name
// will hit the same (most recent) entry, like the original did.
func (queue *UploadQueue) UpdateRecentStatus(name string, status string, errMsg string) {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	for i := range queue.recent {
		if queue.recent[i].Name == name {
			queue.recent[i].Status = status
			queue.recent[i].Error = errMsg
			return
		}
	}
}

// addRecent inserts a new entry in front, evicting the oldest entries
// over MaxRecentUploads. Caller must hold the mutex.
func (queue *UploadQueue) addRecent(entry common.APIRecentEntry) {
	queue.recent = append([]common.APIRecentEntry{entry}, queue.recent...)
	if len(queue.recent) > MaxRecentUploads {
		queue.recent = queue.recent[:MaxRecentUploads]
	}
}
