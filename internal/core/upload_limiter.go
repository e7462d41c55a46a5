package core

// upload_limiter.go bounds how many uploads are parsed at once.
//
// Parsing a workbook holds the whole file in memory, so the limiter is a
// buffered-channel semaphore: callers wait up to maxWait for a slot and get
// ErrTooManyUploads after that. Drain lets shutdown wait for parses in flight.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyUploads is returned when no upload slot frees up within the wait time.
var ErrTooManyUploads = errors.New("too many uploads in progress")

const (
	defaultMaxConcurrentUploads = 4
	defaultMaxUploadWait        = 15 * time.Second
	drainPollInterval           = 50 * time.Millisecond
)

// UploadLimiter is a counting semaphore for upload parsing.
type UploadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
	total   atomic.Int64
}

// UploadStatus is a point-in-time view of the limiter.
type UploadStatus struct {
	Active        int   `json:"active"`
	Available     int   `json:"available"`
	MaxConcurrent int   `json:"max_concurrent"`
	Processed     int64 `json:"processed"`
}

// NewUploadLimiter allows maxConcurrent parses at once. Non-positive
// arguments fall back to package defaults.
func NewUploadLimiter(maxConcurrent int, maxWait time.Duration) *UploadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentUploads
	}
	if maxWait <= 0 {
		maxWait = defaultMaxUploadWait
	}
	return &UploadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire blocks until a slot is free, ctx is done, or maxWait elapses.
// Every successful Acquire must be paired with Release.
func (l *UploadLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyUploads
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *UploadLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *UploadLimiter) Release() {
	l.active.Add(-1)
	l.total.Add(1)
	<-l.slots
}

// Status reports current usage.
func (l *UploadLimiter) Status() UploadStatus {
	return UploadStatus{
		Active:        int(l.active.Load()),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
		Processed:     l.total.Load(),
	}
}

// Drain waits until no upload holds a slot, or ctx is done.
func (l *UploadLimiter) Drain(ctx context.Context) error {
	if l.active.Load() == 0 {
		return nil
	}

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.active.Load() == 0 {
				return nil
			}
		}
	}
}
