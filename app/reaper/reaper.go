// Package reaper runs periodic removal of expired secret messages
package reaper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/go-pkgz/lgr"
)

//go:generate moq -out purger_mock.go -fmt goimports . Purger

// Purger removes expired records and reports how many were removed
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Reaper calls Purger on schedule. Sweeps never overlap, a failed sweep is logged
// and the next tick tries again.
type Reaper struct {
	purger   Purger
	interval time.Duration

	lock  sync.Mutex
	sched *gocron.Scheduler
	done  chan struct{} // closed by Stop, releases ctx watcher
}

// New makes Reaper, zero interval means one minute
func New(purger Purger, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{purger: purger, interval: interval}
}

// Start schedules sweeps every interval, the first one runs immediately.
// Cancelling ctx stops the schedule, same as Stop.
func (r *Reaper) Start(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.sched != nil {
		return fmt.Errorf("reaper already started")
	}

	sched := gocron.NewScheduler(time.UTC)
	sched.SingletonModeAll()
	if _, err := sched.Every(r.interval).Tag("purge").Do(func() { r.Sweep(ctx) }); err != nil {
		return fmt.Errorf("schedule purge: %w", err)
	}
	sched.StartAsync()
	r.sched = sched
	r.done = make(chan struct{})
	log.Printf("[INFO] reaper started, every %v", r.interval)

	go func(done <-chan struct{}) {
		select {
		case <-ctx.Done():
			r.Stop()
		case <-done:
		}
	}(r.done)
	return nil
}

// Stop cancels the schedule and waits for a running sweep. Safe to call more than once.
func (r *Reaper) Stop() {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.sched == nil || !r.sched.IsRunning() {
		return
	}
	r.sched.Stop()
	close(r.done)
	log.Printf("[INFO] reaper stopped")
}

// Sweep runs a single purge and returns the number of removed records.
// Errors and panics are logged and reported as zero.
func (r *Reaper) Sweep(ctx context.Context) (count int64) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[WARN] purge panic, %v", rec)
			count = 0
		}
	}()

	count, err := r.purger.PurgeExpired(ctx)
	if err != nil {
		log.Printf("[WARN] purge failed, %v", err)
		return 0
	}
	if count > 0 {
		log.Printf("[INFO] purged %d expired messages", count)
	}
	return count
}
