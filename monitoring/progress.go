package monitoring

import (
	"sync"
	"time"
)

// ProgressBar tracks the completion status of a long-running job.
type ProgressBar struct {
	lock sync.Mutex

	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	InProgress uint64    `json:"in_progress"`
	Finished   uint64    `json:"finished"`
}

// IncrementFinished increases the finished amount by the given value.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.Finished += amount
}

// IncrementInProgress increases the in-progress amount by the given value.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.InProgress += amount
}

// MoveInProgressToFinished marks part of the in-progress work as done.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}
