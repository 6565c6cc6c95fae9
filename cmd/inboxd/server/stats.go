package server

import (
	"sync"
	"time"
)

// Stats hosts upload statistics since startup
type Stats struct {
	StartTime time.Time
	FileCount int
	SizeCount int64
	mutex     sync.Mutex
}

// NewStats return a new Stats object
func NewStats() *Stats {
	return &Stats{
		StartTime: time.Now(),
	}
}

// Inc will increment stats
func (s *Stats) Inc(fileCount int, sizeCount int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.FileCount += fileCount
	s.SizeCount += sizeCount
}

// Totals returns current counters
func (s *Stats) Totals() (int, int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.FileCount, s.SizeCount
}
