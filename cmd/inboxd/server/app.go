package server

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"path/filepath"
	"time"

	"github.com/inmoflow/inbox/common"
)

// App describes an application
type App struct {
	StartTime  time.Time
	Config     *AppConfig
	Log        *Log
	LogHistory *LogHistory
	CredStore  *CredentialStore
	APIKeysDB  *APIKeyDatabase
	Filter     *IgnoreFilter
	Queue      *UploadQueue
	Uploader   *Uploader
	Worker     *Worker
	Watcher    *Watcher
	Stats      *Stats
	Alerts     *AlertSender
	Rand       *rand.Rand
	MuxAPI     *http.ServeMux

	routesAPI map[string][]*Route
}

// NewApp create a new application
func NewApp(config *AppConfig) (*App, error) {
	app := &App{
		StartTime: time.Now(),
		Config:    config,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		routesAPI: make(map[string][]*Route),
		MuxAPI:    http.NewServeMux(),
	}
	return app, nil
}

// Init the application
func (app *App) Init(trace bool, pretty bool) error {
	app.LogHistory = NewLogHistory(LogHistorySize)
	app.Log = NewLog(trace, pretty, app.LogHistory)
	app.Log.Infof(common.MessageTopicGlobal, "starting inboxd version %s", common.ServerVersion)

	err := CreateDirIfNeeded(app.Config.InboxPath)
	if err != nil {
		return fmt.Errorf("inbox folder: %s", err)
	}

	err = CreateDirIfNeeded(app.Config.DataPath)
	if err != nil {
		return fmt.Errorf("data folder: %s", err)
	}

	app.CredStore, err = NewCredentialStore(filepath.Join(app.Config.DataPath, "credentials.json"))
	if err != nil {
		return err
	}

	if app.CredStore.IsAuthenticated() {
		// best-effort token refresh, an expired token will surface as an
		// authorization error on the next upload anyway
		if err := app.CredStore.Refresh(app.Config.ServerURL); err != nil {
			app.Log.Warningf(common.MessageTopicGlobal, "token refresh failed: %s", err)
		} else {
			app.Log.Infof(common.MessageTopicGlobal, "authenticated as %s", app.CredStore.Email())
		}
	} else {
		app.Log.Warning(common.MessageTopicGlobal, "no stored session, uploads will fail until login")
	}

	app.APIKeysDB, err = NewAPIKeyDatabase(filepath.Join(app.Config.DataPath, "api-keys.db"), app.Log, app.Rand)
	if err != nil {
		return err
	}

	app.Alerts = NewAlertSender(app.Config.configPath, app.Log)

	app.Filter, err = NewIgnoreFilter(app.Config.IgnoreExpr, app.Log)
	if err != nil {
		return fmt.Errorf("ignore_expr: %s", err)
	}

	app.Queue = NewUploadQueue()
	app.Uploader = NewUploader(app.Config.ServerURL, app.CredStore)
	app.Stats = NewStats()
	app.Worker = NewWorker(app.Queue, app.Uploader, app.Config, app.Stats, app.Alerts, app.Log)

	app.Watcher, err = NewWatcher(app.Config.InboxPath, app.Filter, app.Log)
	if err != nil {
		return err
	}

	// catch files that arrived while we were not running
	for _, path := range ScanExisting(app.Config.InboxPath, app.Filter) {
		if app.Queue.Enqueue(path) {
			app.Log.Infof(filepath.Base(path), "found existing file '%s'", path)
		}
	}

	// start services
	events, err := app.Watcher.Start()
	if err != nil {
		return err
	}
	go app.forwardEvents(events)

	app.Worker.Start()

	return nil
}

// forwardEvents moves ready paths from the watcher to the upload queue
func (app *App) forwardEvents(events <-chan string) {
	for path := range events {
		app.Queue.Enqueue(path)
	}
}

// Run will start the app servers (foreground)
func (app *App) Run() {
	app.registerRouteHandlers(app.MuxAPI, app.routesAPI)

	app.Log.Infof(common.MessageTopicGlobal, "API server listening on %s (HTTP)", app.Config.API.Listen)
	err := http.ListenAndServe(app.Config.API.Listen, app.MuxAPI)
	log.Fatalf("error: ListenAndServe API server: %s", err)
}

// Status returns informations about the agent
func (app *App) Status() *common.APIStatus {
	fileCount, sizeCount := app.Stats.Totals()

	return &common.APIStatus{
		StartTime:       app.StartTime,
		Authenticated:   app.CredStore.IsAuthenticated(),
		Email:           app.CredStore.Email(),
		Online:          app.Queue.IsOnline(),
		Uploading:       app.Queue.IsUploading(),
		QueueLength:     app.Queue.Length(),
		InboxPath:       app.Config.InboxPath,
		UploadCount:     fileCount,
		UploadTotalSize: sizeCount,
	}
}
