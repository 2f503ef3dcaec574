// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits PollResult on the provided channel.
// One goroutine per source. No overlap. No retries.
// Run returns when ctx is done or after emitting an end-of-stream result,
// closing the source on the way out.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	defer p.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := p.PollOnce()

			select {
			case out <- res:
			case <-ctx.Done():
				return
			}

			if res.EndOfStream() {
				return
			}
		}
	}
}
