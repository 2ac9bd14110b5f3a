package tunnel

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Admission is a counted permit pool of capacity MaxOpenConnections. The
// Accept Loop acquires one permit before calling Accept on the listener and
// releases it when the per-connection task ends, converting surplus demand
// into backpressure on the listening socket rather than unbounded resource
// use.
type Admission struct {
	sem   *semaphore.Weighted
	total int64
	used  int64
}

// NewAdmission builds a permit pool with the given capacity. A non-positive
// capacity is treated as 1, since a proxy with zero admitted connections is
// not a meaningful configuration.
func NewAdmission(capacity int) *Admission {
	if capacity < 1 {
		capacity = 1
	}
	return &Admission{
		sem:   semaphore.NewWeighted(int64(capacity)),
		total: int64(capacity),
	}
}

// Acquire blocks until a permit is available or ctx is done.
func (a *Admission) Acquire(ctx context.Context) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	atomic.AddInt64(&a.used, 1)
	return nil
}

// Release returns a permit to the pool. Safe to call from any goroutine.
func (a *Admission) Release() {
	atomic.AddInt64(&a.used, -1)
	a.sem.Release(1)
}

// Used reports the number of permits currently held.
func (a *Admission) Used() int64 {
	return atomic.LoadInt64(&a.used)
}

// Total reports the pool's fixed capacity.
func (a *Admission) Total() int64 {
	return a.total
}

// StatusReporter receives periodic used/total permit observations. It is
// best-effort: a slow or blocking reporter must never delay Accept.
type StatusReporter interface {
	ReportAdmissionStatus(used, total int64)
}

// ReportStatus runs until ctx is done, calling r every interval with the
// current permit usage. It is meant to be started as its own goroutine
// alongside the Accept Loop.
func (a *Admission) ReportStatus(ctx context.Context, interval time.Duration, r StatusReporter) {
	if r == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ReportAdmissionStatus(a.Used(), a.Total())
		}
	}
}
