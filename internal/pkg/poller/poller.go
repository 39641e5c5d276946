package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller runs one repeating background refresh tied to a view's lifetime:
// Start on enter, Stop on leave. At most one loop is active per Poller;
// starting an already-running poller is a no-op. Ticks run sequentially in
// one goroutine, so a slow tick simply delays the next one and the latest
// response wins.
type Poller struct {
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func New(interval time.Duration, log *zap.Logger) *Poller {
	return &Poller{interval: interval, log: log}
}

// Start begins ticking fn every interval until Stop is called or ctx is
// cancelled. fn runs with a context that dies with the loop, so in-flight
// requests are abandoned on leave.
func (p *Poller) Start(ctx context.Context, fn func(ctx context.Context)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	stopped := make(chan struct{})
	p.stopped = stopped

	go func() {
		defer close(stopped)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fn(loopCtx)
			case <-loopCtx.Done():
				p.log.Debug("poll loop stopped")
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for the current tick, if any, to return.
// Stopping an idle poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	stopped := p.stopped
	p.cancel = nil
	p.stopped = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
