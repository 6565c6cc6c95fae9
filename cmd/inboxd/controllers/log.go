package controllers

import (
	"strconv"

	"github.com/inmoflow/inbox/cmd/inboxd/server"
	"github.com/inmoflow/inbox/common"
)

// GetLogController return the latest log messages
func GetLogController(req *server.Request) {
	req.Response.Header().Set("Content-Type", "text/plain")

	maxMessages, err := strconv.Atoi(req.HTTP.FormValue("lines"))
	if err != nil || maxMessages < 1 {
		maxMessages = 50
	}

	topic := req.HTTP.FormValue("topic")
	if topic == "" {
		topic = common.MessageMatchDefault
	}

	messages := req.App.LogHistory.Search(maxMessages, topic)
	for _, message := range messages {
		req.Printf("%s %s: [%s] %s\n",
			message.Time.Format("15:04:05"),
			message.Type,
			message.Topic,
			message.Message,
		)
	}
}
