package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/inmoflow/inbox/cmd/inboxd/server"
	"github.com/inmoflow/inbox/common"
)

// GetStatusController return status informations about the agent
func GetStatusController(req *server.Request) {
	req.Response.Header().Set("Content-Type", "application/json")

	retData := req.App.Status()

	enc := json.NewEncoder(req.Response)
	err := enc.Encode(&retData)
	if err != nil {
		req.App.Log.Error(common.MessageTopicGlobal, err.Error())
		http.Error(req.Response, err.Error(), 500)
		return
	}
}

// GetRecentController return the recent upload list, most recent first
func GetRecentController(req *server.Request) {
	req.Response.Header().Set("Content-Type", "application/json")

	retData := req.App.Queue.Recent()

	enc := json.NewEncoder(req.Response)
	err := enc.Encode(&retData)
	if err != nil {
		req.App.Log.Error(common.MessageTopicGlobal, err.Error())
		http.Error(req.Response, err.Error(), 500)
		return
	}
}
