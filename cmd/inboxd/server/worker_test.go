package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/inmoflow/inbox/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWorker wires a Worker with stubbed sleep and connectivity, so the
// loop can be stepped synchronously
type testWorker struct {
	worker *Worker
	queue  *UploadQueue
	sleeps []time.Duration
	online bool
}

func newTestWorker(t *testing.T, serverURL string, inboxPath string, deleteAfterUpload bool) *testWorker {
	tw := &testWorker{
		queue:  NewUploadQueue(),
		online: true,
	}

	uploader := NewUploader(serverURL, testCredStore(t))

	tw.worker = &Worker{
		Queue:             tw.queue,
		Uploader:          uploader,
		Log:               testLog(),
		ServerURL:         serverURL,
		InboxPath:         inboxPath,
		DeleteAfterUpload: deleteAfterUpload,
		MaxFileSize:       DefaultMaxFileSize,
		Stats:             NewStats(),
		sleep:             func(d time.Duration) { tw.sleeps = append(tw.sleeps, d) },
		checkServer:       func(string) bool { return tw.online },
	}
	return tw
}

func writeInboxFile(t *testing.T, dir string, name string, content []byte) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func recentStatus(t *testing.T, queue *UploadQueue, name string) common.APIRecentEntry {
	for _, entry := range queue.Recent() {
		if entry.Name == name {
			return entry
		}
	}
	t.Fatalf("no recent entry for '%s'", name)
	return common.APIRecentEntry{}
}

func TestWorkerUploadSuccess(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, true)

	path := writeInboxFile(t, inbox, "report.pdf", []byte("some content"))
	tw.queue.Enqueue(path)

	tw.worker.step()

	assert.Equal(t, 1, hits)
	assert.Equal(t, 0, tw.queue.Length())
	assert.Equal(t, common.APIUploadStatusSuccess, recentStatus(t, tw.queue, "report.pdf").Status)
	assert.NoFileExists(t, path)

	count, size := tw.worker.Stats.Totals()
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(len("some content")), size)
}

func TestWorkerArchivesFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, false)

	path := writeInboxFile(t, inbox, "report.pdf", []byte("some content"))
	tw.queue.Enqueue(path)

	tw.worker.step()

	assert.NoFileExists(t, path)
	assert.FileExists(t, filepath.Join(inbox, ArchiveFolderName, "report.pdf"))
}

func TestWorkerRejectsEmptyFile(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, true)

	path := writeInboxFile(t, inbox, "empty.pdf", []byte{})
	tw.queue.Enqueue(path)

	tw.worker.step()

	// terminal failure, no upload attempt, no retry
	assert.Equal(t, 0, hits)
	assert.Equal(t, 0, tw.queue.Length())

	entry := recentStatus(t, tw.queue, "empty.pdf")
	assert.Equal(t, common.APIUploadStatusFailed, entry.Status)
	assert.Equal(t, "El archivo está vacío", entry.Error)
}

func TestWorkerRejectsOversizedFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upload expected")
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, true)
	tw.worker.MaxFileSize = 10 * datasize.B

	path := writeInboxFile(t, inbox, "big.pdf", make([]byte, 100))
	tw.queue.Enqueue(path)

	tw.worker.step()

	assert.Equal(t, 0, tw.queue.Length())

	entry := recentStatus(t, tw.queue, "big.pdf")
	assert.Equal(t, common.APIUploadStatusFailed, entry.Status)
	assert.Contains(t, entry.Error, "supera el tamaño máximo")

	// rejected files stay in the inbox
	assert.FileExists(t, path)
}

func TestWorkerRetriesThenSucceeds(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, true)

	path := writeInboxFile(t, inbox, "report.pdf", []byte("some content"))
	tw.queue.Enqueue(path)

	for i := 0; i < 3; i++ {
		tw.worker.step()
	}

	assert.Equal(t, 3, hits)
	assert.Equal(t, 0, tw.queue.Length())
	assert.Equal(t, common.APIUploadStatusSuccess, recentStatus(t, tw.queue, "report.pdf").Status)
	assert.NoFileExists(t, path)

	// the two failures produced the first two backoff delays
	require.Len(t, tw.sleeps, 2)
	assert.Equal(t, BackoffDelay(1), tw.sleeps[0])
	assert.Equal(t, BackoffDelay(2), tw.sleeps[1])
}

func TestWorkerGivesUpAfterMaxRetries(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, true)

	path := writeInboxFile(t, inbox, "report.pdf", []byte("some content"))
	tw.queue.Enqueue(path)

	for i := 0; i < MaxRetries; i++ {
		tw.worker.step()
	}

	assert.Equal(t, MaxRetries, hits)
	assert.Equal(t, 0, tw.queue.Length())

	entry := recentStatus(t, tw.queue, "report.pdf")
	assert.Equal(t, common.APIUploadStatusFailed, entry.Status)
	assert.Equal(t, "El servidor rechazó el archivo", entry.Error)

	// the file is left in place for a manual retry
	assert.FileExists(t, path)
}

func TestWorkerNotUploadingDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	inbox := t.TempDir()
	tw := newTestWorker(t, ts.URL, inbox, true)

	// capture the in-flight flag as seen from inside the backoff sleep,
	// the way a /status call during the wait would see it
	var uploadingDuringSleep []bool
	tw.worker.sleep = func(time.Duration) {
		uploadingDuringSleep = append(uploadingDuringSleep, tw.queue.IsUploading())
	}

	path := writeInboxFile(t, inbox, "report.pdf", []byte("some content"))
	tw.queue.Enqueue(path)

	tw.worker.step()

	require.Len(t, uploadingDuringSleep, 1)
	assert.False(t, uploadingDuringSleep[0])
	assert.False(t, tw.queue.IsUploading())
	assert.Equal(t, 1, tw.queue.Length())
}

func TestWorkerBackoffCapped(t *testing.T) {
	tests := []struct {
		k        int
		expected time.Duration
	}{
		{0, 5 * time.Second},
		{1, 10 * time.Second},
		{2, 20 * time.Second},
		{5, 160 * time.Second},
		{6, 320 * time.Second},
		{7, 320 * time.Second},
		{MaxRetries - 1, 320 * time.Second},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, BackoffDelay(test.k), "k=%d", test.k)
	}
}

func TestWorkerOfflineLeavesQueueAlone(t *testing.T) {
	inbox := t.TempDir()
	tw := newTestWorker(t, "http://127.0.0.1:1", inbox, true)
	tw.online = false

	path := writeInboxFile(t, inbox, "report.pdf", []byte("some content"))
	tw.queue.Enqueue(path)

	tw.worker.step()

	assert.False(t, tw.queue.IsOnline())
	assert.Equal(t, 1, tw.queue.Length())
	require.Len(t, tw.sleeps, 1)
	assert.Equal(t, OfflineSleep, tw.sleeps[0])

	// back online, the queued file goes through the normal path again
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	tw.online = true
	tw.worker.Uploader.ServerURL = ts.URL

	tw.worker.step()

	assert.True(t, tw.queue.IsOnline())
	assert.Equal(t, 0, tw.queue.Length())
	assert.Equal(t, common.APIUploadStatusSuccess, recentStatus(t, tw.queue, "report.pdf").Status)
}

func TestWorkerIdleSleep(t *testing.T) {
	tw := newTestWorker(t, "http://127.0.0.1:1", t.TempDir(), true)

	tw.worker.step()

	require.Len(t, tw.sleeps, 1)
	assert.Equal(t, WorkerIdleSleep, tw.sleeps[0])
}
