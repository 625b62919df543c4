package services

import "sync"

// StoreLock serializes load-modify-save cycles over the two documents.
// Services that touch the same files must share one lock.
type StoreLock struct {
	mu sync.Mutex
}

// NewStoreLock creates a lock shared by the services of one data directory.
func NewStoreLock() *StoreLock {
	return &StoreLock{}
}

func (l *StoreLock) lock() func() {
	l.mu.Lock()
	return l.mu.Unlock
}
