package main

import (
	"os"

	"github.com/inmoflow/inbox/cmd/inbox/client"
	"github.com/inmoflow/inbox/cmd/inbox/topics"
)

func main() {
	client.InitExitMessage()

	err := topics.Execute()

	msg := client.GetExitMessage()
	msg.Display()

	if err != nil {
		os.Exit(1)
	}
}
