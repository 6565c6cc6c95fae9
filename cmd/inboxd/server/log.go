package server

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/inmoflow/inbox/common"
)

// Log host logs for the application
type Log struct {
	history *LogHistory
	trace   bool
	pretty  bool
}

// NewLog creates a new Log
func NewLog(trace bool, pretty bool, history *LogHistory) *Log {
	return &Log{
		history: history,
		trace:   trace,
		pretty:  pretty,
	}
}

// Log is a low-level function for sending a Message
func (log *Log) Log(message *common.Message) {

	if !(message.Type == common.MessageTrace && log.trace == false) {
		if log.pretty {
			fmt.Printf("%s [%s] %s\n", prettyType(message.Type), message.Topic, message.Message)
		} else {
			fmt.Printf("%s: [%s] %s\n", message.Type, message.Topic, message.Message)
		}
	}

	// we don't historize NOOP and TRACE messages
	if message.Type != common.MessageNoop && message.Type != common.MessageTrace {
		log.history.Push(message)
	}
}

func prettyType(mtype string) string {
	switch mtype {
	case common.MessageError, common.MessageFailure:
		return color.RedString(mtype)
	case common.MessageWarning:
		return color.YellowString(mtype)
	case common.MessageSuccess:
		return color.GreenString(mtype)
	case common.MessageTrace:
		return color.CyanString(mtype)
	}
	return mtype
}

// Error sends a MessageError Message
func (log *Log) Error(topic, message string) {
	log.Log(common.NewMessage(common.MessageError, topic, message))
}

// Errorf sends a formated string MessageError Message
func (log *Log) Errorf(topic, format string, args ...interface{}) {
	log.Error(topic, fmt.Sprintf(format, args...))
}

// Warning sends a MessageWarning Message
func (log *Log) Warning(topic, message string) {
	log.Log(common.NewMessage(common.MessageWarning, topic, message))
}

// Warningf sends a formated string MessageWarning Message
func (log *Log) Warningf(topic, format string, args ...interface{}) {
	log.Warning(topic, fmt.Sprintf(format, args...))
}

// Info sends an MessageInfo Message
func (log *Log) Info(topic, message string) {
	log.Log(common.NewMessage(common.MessageInfo, topic, message))
}

// Infof sends a formated string MessageInfo Message
func (log *Log) Infof(topic, format string, args ...interface{}) {
	log.Info(topic, fmt.Sprintf(format, args...))
}

// Trace sends an MessageTrace Message
func (log *Log) Trace(topic, message string) {
	log.Log(common.NewMessage(common.MessageTrace, topic, message))
}

// Tracef sends a formated string MessageTrace Message
func (log *Log) Tracef(topic, format string, args ...interface{}) {
	log.Trace(topic, fmt.Sprintf(format, args...))
}

// Success sends an MessageSuccess Message
func (log *Log) Success(topic, message string) {
	log.Log(common.NewMessage(common.MessageSuccess, topic, message))
}

// Successf sends a formated string MessageSuccess Message
func (log *Log) Successf(topic, format string, args ...interface{}) {
	log.Success(topic, fmt.Sprintf(format, args...))
}

// Failure sends an MessageFailure Message
func (log *Log) Failure(topic, message string) {
	log.Log(common.NewMessage(common.MessageFailure, topic, message))
}

// Failuref sends a formated string MessageFailure Message
func (log *Log) Failuref(topic, format string, args ...interface{}) {
	log.Failure(topic, fmt.Sprintf(format, args...))
}
