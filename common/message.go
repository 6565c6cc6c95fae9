package common

import "time"

// Message types
const (
	MessageNoop    = "NOOP"
	MessageTrace   = "TRACE"
	MessageInfo    = "INFO"
	MessageWarning = "WARNING"
	MessageError   = "ERROR"
	MessageSuccess = "SUCCESS"
	MessageFailure = "FAILURE"
)

// MessageMatchDefault is the default topic filter
const MessageMatchDefault = "*"

// MessageTopicGlobal is the topic used for application-wide messages
// (instead of file-related ones)
const MessageTopicGlobal = "."

// Message describes a log message
type Message struct {
	Time    time.Time
	Type    string
	Topic   string
	Message string
}

// NewMessage creates a new Message instance
func NewMessage(mtype string, topic string, message string) *Message {
	return &Message{
		Time:    time.Now(),
		Type:    mtype,
		Topic:   topic,
		Message: message,
	}
}

// MatchTarget returns true if the message matches the topic filter
func (message *Message) MatchTarget(match string) bool {
	if match == MessageMatchDefault {
		return true
	}
	return message.Topic == match
}
