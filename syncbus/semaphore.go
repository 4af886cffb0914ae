package syncbus

import (
	"context"
	"errors"
)

// MaxSemaphore bounds the number of concurrent Kafka sends a
// dispatcher's workers may have in flight at once.
var MaxSemaphore = 100

// SemaphoreControl is a channel-based counting semaphore, lifted
// directly from the teacher's collab/semaphore_control.go.
type SemaphoreControl struct {
	ch chan struct{}
}

// NewSemaphoreControl returns a semaphore with capacity MaxSemaphore.
func NewSemaphoreControl() *SemaphoreControl {
	return &SemaphoreControl{ch: make(chan struct{}, MaxSemaphore)}
}

// Acquire blocks until a slot is free or ctx is done.
func (s *SemaphoreControl) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.New("syncbus: acquire reached time limit")
	}
}

// Release frees a previously acquired slot.
func (s *SemaphoreControl) Release() error {
	select {
	case <-s.ch:
		return nil
	default:
		return errors.New("syncbus: release failed, semaphore not acquired")
	}
}
