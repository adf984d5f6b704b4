package syncer

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Debouncer coalesces bursts of sync requests into a single run.
// Every Request restarts the countdown; only the last one in a burst
// survives to actually sync. The cancellation state is checked again
// after the delay, immediately before any I/O, so a request cancelled
// during the wait never reaches the network.
type Debouncer struct {
	delay  time.Duration
	syncFn func(ctx context.Context) (SyncReport, error)

	mu      sync.Mutex
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

func NewDebouncer(delay time.Duration, syncFn func(ctx context.Context) (SyncReport, error)) *Debouncer {
	return &Debouncer{
		delay:  delay,
		syncFn: syncFn,
	}
}

// Request schedules a sync after the debounce delay,
// cancelling any sync still waiting.
func (d *Debouncer) Request(ctx context.Context) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.mu.Unlock()

	d.pending.Add(1)
	go func() {
		defer d.pending.Done()

		select {
		case <-runCtx.Done():
			return
		case <-time.After(d.delay):
		}

		// a newer request may have landed while the timer fired
		if runCtx.Err() != nil {
			return
		}

		report, err := d.syncFn(runCtx)
		if err != nil {
			log.Errorf("debounced sync: %s", err)
			return
		}
		if !report.Skipped {
			log.Debugf("debounced sync done: %d pulled, %d pushed", report.Pulled, report.Pushed)
		}
	}()
}

// Stop cancels any pending sync and waits for in-flight work.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()
	d.pending.Wait()
}
