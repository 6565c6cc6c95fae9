package server

import (
	"os"
	"time"
)

// IsFileReady returns true if the file looks fully written: two size
// samples, ReadyProbeDelay apart, must agree and be non-zero. A zero-size
// file is never ready since we can't tell it apart from a file whose
// content is still to come.
//
// This call blocks for ReadyProbeDelay, keep it off the watch event
// dispatch path.
func IsFileReady(path string) bool {
	first, err := os.Stat(path)
	if err != nil {
		return false
	}

	time.Sleep(ReadyProbeDelay)

	second, err := os.Stat(path)
	if err != nil {
		return false
	}

	return first.Size() == second.Size() && first.Size() > 0
}
