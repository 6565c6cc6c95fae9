package server

import (
	"fmt"
	"testing"

	"github.com/inmoflow/inbox/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueEnqueueDedup(t *testing.T) {
	queue := NewUploadQueue()

	require.True(t, queue.Enqueue("/inbox/a.pdf"))
	require.False(t, queue.Enqueue("/inbox/a.pdf"))
	require.True(t, queue.Enqueue("/inbox/b.pdf"))

	assert.Equal(t, 2, queue.Length())

	// the duplicate must not have created a second recent entry
	recent := queue.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "b.pdf", recent[0].Name)
	assert.Equal(t, "a.pdf", recent[1].Name)
	assert.Equal(t, common.APIUploadStatusPending, recent[0].Status)
}

func TestQueueFIFO(t *testing.T) {
	queue := NewUploadQueue()

	queue.Enqueue("/inbox/a.pdf")
	queue.Enqueue("/inbox/b.pdf")
	queue.Enqueue("/inbox/c.pdf")

	require.Equal(t, "/inbox/a.pdf", queue.DequeueNext().Path)
	require.Equal(t, "/inbox/b.pdf", queue.DequeueNext().Path)
	require.Equal(t, "/inbox/c.pdf", queue.DequeueNext().Path)
	require.Nil(t, queue.DequeueNext())
}

func TestQueueReenqueue(t *testing.T) {
	queue := NewUploadQueue()

	queue.Enqueue("/inbox/a.pdf")
	queue.Enqueue("/inbox/b.pdf")

	item := queue.DequeueNext()
	require.Equal(t, "/inbox/a.pdf", item.Path)
	require.Equal(t, 0, item.Retries)

	// a failed item goes back to the tail, behind b.pdf
	queue.Reenqueue(item)
	assert.Equal(t, 1, item.Retries)

	require.Equal(t, "/inbox/b.pdf", queue.DequeueNext().Path)

	again := queue.DequeueNext()
	require.Equal(t, "/inbox/a.pdf", again.Path)
	assert.Equal(t, 1, again.Retries)
}

func TestQueueRecentEviction(t *testing.T) {
	queue := NewUploadQueue()

	for i := 0; i < MaxRecentUploads+5; i++ {
		queue.Enqueue(fmt.Sprintf("/inbox/file-%d.pdf", i))
	}

	recent := queue.Recent()
	require.Len(t, recent, MaxRecentUploads)

	// most recent first, the 5 oldest entries are gone
	assert.Equal(t, fmt.Sprintf("file-%d.pdf", MaxRecentUploads+4), recent[0].Name)
	assert.Equal(t, "file-5.pdf", recent[len(recent)-1].Name)
}

func TestQueueUpdateRecentStatus(t *testing.T) {
	queue := NewUploadQueue()

	queue.Enqueue("/inbox/a.pdf")
	queue.Enqueue("/inbox/b.pdf")

	queue.UpdateRecentStatus("a.pdf", common.APIUploadStatusFailed, "boom")

	recent := queue.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, common.APIUploadStatusFailed, recent[1].Status)
	assert.Equal(t, "boom", recent[1].Error)
	assert.Equal(t, common.APIUploadStatusPending, recent[0].Status)

	// unknown name is a no-op
	queue.UpdateRecentStatus("nope.pdf", common.APIUploadStatusSuccess, "")
}

func TestQueueUpdateRecentStatusDuplicateNames(t *testing.T) {
	queue := NewUploadQueue()

	// same display name from two different folders: the most recent
	// entry wins
	queue.Enqueue("/inbox/a.pdf")
	queue.DequeueNext()
	queue.Enqueue("/elsewhere/a.pdf")

	queue.UpdateRecentStatus("a.pdf", common.APIUploadStatusUploading, "")

	recent := queue.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, common.APIUploadStatusUploading, recent[0].Status)
	assert.Equal(t, common.APIUploadStatusPending, recent[1].Status)
}

func TestQueueFlags(t *testing.T) {
	queue := NewUploadQueue()

	assert.True(t, queue.IsOnline())
	assert.False(t, queue.IsUploading())

	queue.SetOnline(false)
	queue.SetUploading(true)

	assert.False(t, queue.IsOnline())
	assert.True(t, queue.IsUploading())
}
