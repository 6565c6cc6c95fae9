package server

import (
	"os"
	"os/exec"
	"path"

	"github.com/inmoflow/inbox/common"
)

// AlertSender runs an optional user script after each successful upload
// (desktop notifications, webhooks, etc). The script receives the file
// name as its first argument.
type AlertSender struct {
	scriptPath string
	log        *Log
}

// NewAlertSender creates a new AlertSender, looking for an on_upload
// script in the configuration directory
func NewAlertSender(configPath string, log *Log) *AlertSender {
	scriptPath := path.Clean(configPath + "/on_upload.sh")

	if _, err := os.Stat(scriptPath); err != nil {
		log.Trace(common.MessageTopicGlobal, "no on_upload.sh script, upload alerts disabled")
		scriptPath = ""
	}

	return &AlertSender{
		scriptPath: scriptPath,
		log:        log,
	}
}

// Send runs the alert script (if any) for an uploaded file, without
// blocking the caller
func (sender *AlertSender) Send(fileName string) {
	if sender.scriptPath == "" {
		return
	}

	go func() {
		cmd := exec.Command(sender.scriptPath, fileName)
		if err := cmd.Run(); err != nil {
			sender.log.Errorf(common.MessageTopicGlobal, "on_upload script error: %s", err)
		}
	}()
}
