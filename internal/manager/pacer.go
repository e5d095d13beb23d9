package manager

import "time"

// pacer is a time.Ticker generalized to also support an unpaced (zero
// interval) mode, which time.Ticker itself rejects. An unpaced pacer's
// channel is always immediately ready, so Run's loop spins as fast as the
// engine allows.
type pacer struct {
	ticker *time.Ticker
	ready  chan time.Time
}

func newPacer(d time.Duration) *pacer {
	if d <= 0 {
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return &pacer{ready: ch}
	}
	return &pacer{ticker: time.NewTicker(d)}
}

func (p *pacer) C() <-chan time.Time {
	if p.ticker != nil {
		return p.ticker.C
	}
	return p.ready
}

// Reset reconfigures the pacer for interval d, switching between paced and
// unpaced modes if needed (e.g. after SetSpeed changes to/from infinite).
func (p *pacer) Reset(d time.Duration) {
	if d <= 0 {
		if p.ticker != nil {
			p.ticker.Stop()
			p.ticker = nil
		}
		if p.ready == nil {
			p.ready = make(chan time.Time, 1)
		}
		select {
		case p.ready <- time.Time{}:
		default:
		}
		return
	}

	if p.ticker == nil {
		p.ticker = time.NewTicker(d)
		return
	}
	p.ticker.Reset(d)
}

func (p *pacer) Stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
