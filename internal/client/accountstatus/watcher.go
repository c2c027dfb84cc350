package accountstatus

import (
	"context"
	"time"
)

// Watcher periodically rederives the status and hands it to a callback.
// It is a cooperative scheduled task, not a free-running goroutine: Run
// blocks until ctx is cancelled and the caller decides where it runs.
type Watcher struct {
	interval time.Duration
	policy   Policy
}

func NewWatcher(interval time.Duration, policy Policy) *Watcher {
	return &Watcher{interval: interval, policy: policy}
}

// Run emits a derived status on every tick until ctx is done. lastActivity
// is read on each tick so profile changes are picked up immediately.
func (w *Watcher) Run(ctx context.Context, lastActivity func() *time.Time, onTick func(Status)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			onTick(Derive(lastActivity(), time.Now(), w.policy))
		case <-ctx.Done():
			return
		}
	}
}
