package client

import "fmt"

// ExitMessage is a message displayed at the end of the command
// (ex: client update notice)
type ExitMessage struct {
	Message  string
	disabled bool
}

var globalExitMessage *ExitMessage

// InitExitMessage initializes the global exit message
func InitExitMessage() {
	globalExitMessage = &ExitMessage{}
}

// GetExitMessage returns the global exit message
func GetExitMessage() *ExitMessage {
	return globalExitMessage
}

// Disable the message (ex: for scripting-friendly outputs)
func (em *ExitMessage) Disable() {
	em.disabled = true
}

// Display the message (if any, and if not disabled)
func (em *ExitMessage) Display() {
	if em.disabled || em.Message == "" {
		return
	}
	fmt.Println()
	fmt.Print(em.Message)
}
