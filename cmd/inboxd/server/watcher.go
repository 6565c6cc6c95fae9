package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/inmoflow/inbox/common"
)

// Watcher monitors the inbox directory (non-recursive) and emits ready
// file paths on its output channel. Bursts of events for the same path
// are debounced, then the path goes through the ignore filter and the
// readiness probe before being published.
type Watcher struct {
	dir       string
	filter    *IgnoreFilter
	readyFunc func(string) bool
	log       *Log
	fsw       *fsnotify.Watcher
	out       chan string
	stop      chan struct{}
}

// debounceMsg is sent back into the event loop by a timer, keeping all
// debounce map operations on a single goroutine
type debounceMsg struct {
	path string
	gen  int
}

// NewWatcher creates a new Watcher for the given directory
func NewWatcher(dir string, filter *IgnoreFilter, log *Log) (*Watcher, error) {
	if isDir, err := IsDir(dir); !isDir {
		return nil, fmt.Errorf("unable to watch directory '%s': %s", dir, err)
	}

	return &Watcher{
		dir:       filepath.Clean(dir),
		filter:    filter,
		readyFunc: IsFileReady,
		log:       log,
		out:       make(chan string, 16),
		stop:      make(chan struct{}),
	}, nil
}

// Start the watch subscription, returning the channel of ready paths.
// An error here is fatal to the watch subsystem, the caller decides
// what to do with it.
func (w *Watcher) Start() (<-chan string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %s", err)
	}

	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("unable to watch directory '%s': %s", w.dir, err)
	}

	w.fsw = fsw
	w.log.Infof(common.MessageTopicGlobal, "watching directory '%s'", w.dir)

	go w.loop()

	return w.out, nil
}

// Stop releases the watch subscription
func (w *Watcher) Stop() {
	close(w.stop)
	if w.fsw != nil {
		w.fsw.Close()
	}
}

func (w *Watcher) loop() {
	// timerCh is the only channel timers write to, so the debounce maps
	// are only touched from this goroutine
	timerCh := make(chan debounceMsg, 64)

	timers := make(map[string]*time.Timer)
	gens := make(map[string]int)

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			path, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			if t, exists := timers[path]; exists {
				t.Stop()
			}

			gens[path]++
			gen := gens[path]
			p := path

			timers[p] = time.AfterFunc(DebounceDelay, func() {
				select {
				case timerCh <- debounceMsg{path: p, gen: gen}:
				case <-w.stop:
				}
			})

		case msg := <-timerCh:
			// discard if a newer event superseded this one
			if gens[msg.path] != msg.gen {
				continue
			}
			delete(timers, msg.path)
			delete(gens, msg.path)

			// the readiness probe blocks, keep it off this loop
			go w.evaluate(msg.path)

		case watchErr, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Errorf(common.MessageTopicGlobal, "watcher error: %s", watchErr)
		}
	}
}

// evaluate checks a debounced path and publishes it if it's a ready
// upload candidate
func (w *Watcher) evaluate(path string) {
	// only plain files directly inside the watched directory
	if filepath.Dir(path) != w.dir {
		return
	}

	if w.filter.ShouldIgnore(path) {
		return
	}

	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return
	}

	if w.readyFunc(path) == false {
		w.log.Tracef(filepath.Base(path), "file not ready yet: %s", path)
		return
	}

	w.log.Infof(filepath.Base(path), "new file detected: %s", path)

	select {
	case w.out <- path:
	case <-w.stop:
	}
}

// ScanExisting returns upload candidates already sitting in the directory,
// for files that arrived while we were not running. Files at rest are
// assumed stable, so the readiness probe is skipped.
func ScanExisting(dir string, filter *IgnoreFilter) []string {
	var files []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		return files
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			continue
		}
		if filter.ShouldIgnore(path) {
			continue
		}
		files = append(files, path)
	}

	return files
}
