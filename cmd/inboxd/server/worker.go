package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/inmoflow/inbox/common"
)

// Worker drains the upload queue, one file at a time. There is exactly
// one worker per App, uploads are never parallelized.
type Worker struct {
	Queue    *UploadQueue
	Uploader *Uploader
	Log      *Log

	ServerURL         string
	InboxPath         string
	DeleteAfterUpload bool
	MaxFileSize       datasize.ByteSize

	Stats  *Stats
	Alerts *AlertSender

	// test seams, overridden in unit tests
	sleep       func(time.Duration)
	checkServer func(string) bool

	lastOnlineCheck time.Time
}

// NewWorker initialize a new instance
func NewWorker(queue *UploadQueue, uploader *Uploader, config *AppConfig, stats *Stats, alerts *AlertSender, log *Log) *Worker {
	return &Worker{
		Queue:             queue,
		Uploader:          uploader,
		Log:               log,
		ServerURL:         config.ServerURL,
		InboxPath:         config.InboxPath,
		DeleteAfterUpload: config.DeleteAfterUpload,
		MaxFileSize:       config.MaxFileSize,
		Stats:             stats,
		Alerts:            alerts,
		sleep:             time.Sleep,
		checkServer:       CheckServer,
	}
}

// Start the worker loop (runs for the lifetime of the process)
func (w *Worker) Start() {
	w.Log.Info(common.MessageTopicGlobal, "upload worker started")
	go func() {
		for {
			w.step()
		}
	}()
}

// step runs a single iteration of the worker loop
func (w *Worker) step() {
	// re-probe connectivity when the cached flag is stale
	if time.Since(w.lastOnlineCheck) > OnlineCheckInterval {
		online := w.checkServer(w.ServerURL)
		w.Queue.SetOnline(online)
		w.lastOnlineCheck = time.Now()
	}

	if w.Queue.IsOnline() == false {
		w.Log.Trace(common.MessageTopicGlobal, "server offline, waiting")
		// probe again on the next iteration, not after the full interval
		w.lastOnlineCheck = time.Time{}
		w.sleep(OfflineSleep)
		return
	}

	item := w.Queue.DequeueNext()
	if item == nil {
		w.sleep(WorkerIdleSleep)
		return
	}

	w.process(item)
}

func (w *Worker) process(item *QueueItem) {
	name := filepath.Base(item.Path)

	w.Queue.SetUploading(true)
	defer w.Queue.SetUploading(false)

	w.Queue.UpdateRecentStatus(name, common.APIUploadStatusUploading, "")

	size, msg, ok := w.validate(item.Path)
	if !ok {
		// not a transient condition, no retry
		w.Log.Errorf(name, "upload rejected: %s", msg)
		w.Queue.UpdateRecentStatus(name, common.APIUploadStatusFailed, msg)
		return
	}

	upErr := w.Uploader.Upload(item.Path)
	if upErr == nil {
		w.Log.Successf(name, "uploaded '%s'", name)
		w.Queue.UpdateRecentStatus(name, common.APIUploadStatusSuccess, "")
		w.finalize(item.Path, name)

		if w.Stats != nil {
			w.Stats.Inc(1, size)
		}
		if w.Alerts != nil {
			w.Alerts.Send(name)
		}
		return
	}

	w.Log.Errorf(name, "upload failed: %s", upErr.Message)

	// any failure may mean connectivity changed, force a re-probe
	w.lastOnlineCheck = time.Time{}

	if item.Retries+1 < MaxRetries {
		w.Queue.UpdateRecentStatus(name, common.APIUploadStatusPending, upErr.Humanize())
		w.Queue.Reenqueue(item)

		delay := BackoffDelay(item.Retries)
		w.Log.Infof(name, "retrying '%s' in %s (attempt %d/%d)", name, delay, item.Retries, MaxRetries)

		// the attempt is over, nothing is in flight during the wait
		w.Queue.SetUploading(false)
		w.sleep(delay)
		return
	}

	w.Log.Failuref(name, "giving up on '%s' after %d attempts", name, MaxRetries)
	w.Queue.UpdateRecentStatus(name, common.APIUploadStatusFailed, upErr.Humanize())
}

// validate rejects files that will never upload successfully, whatever
// the number of attempts. Returns the file size, plus a localized
// reason and false on rejection.
func (w *Worker) validate(path string) (int64, string, bool) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, "No se pudo leer el archivo", false
	}

	if stat.Size() == 0 {
		return 0, "El archivo está vacío", false
	}

	if datasize.ByteSize(stat.Size()) > w.MaxFileSize {
		return stat.Size(), fmt.Sprintf("El archivo supera el tamaño máximo (%s)", w.MaxFileSize.HR()), false
	}

	return stat.Size(), "", true
}

// finalize applies the post-upload disposition: delete the source, or
// move it into the archive subfolder. The upload already succeeded, so
// local errors here are logged and swallowed.
func (w *Worker) finalize(path string, name string) {
	if w.DeleteAfterUpload {
		if err := os.Remove(path); err != nil {
			w.Log.Errorf(name, "unable to delete file after upload: %s", err)
		}
		return
	}

	destDir := filepath.Join(w.InboxPath, ArchiveFolderName)
	if err := CreateDirIfNeeded(destDir); err != nil {
		w.Log.Errorf(name, "unable to create archive folder: %s", err)
		return
	}

	if err := os.Rename(path, filepath.Join(destDir, name)); err != nil {
		w.Log.Errorf(name, "unable to archive file: %s", err)
	}
}

// BackoffDelay returns the delay after the k-th failed attempt
// (base * 2^min(k, cap))
func BackoffDelay(k int) time.Duration {
	exp := k
	if exp > RetryDelayExpCap {
		exp = RetryDelayExpCap
	}
	return RetryDelayBase * time.Duration(1<<uint(exp))
}
