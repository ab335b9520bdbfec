package overlay

import (
	"context"
	"time"
)

// Refresher periodically pushes the current display text to a sink.
type Refresher struct {
	source  func() string
	sink    func(string)
	delay   time.Duration
	delayCh chan time.Duration
}

// NewRefresher creates a refresher ticking every delay.
func NewRefresher(source func() string, sink func(string), delay time.Duration) *Refresher {
	return &Refresher{
		source:  source,
		sink:    sink,
		delay:   delay,
		delayCh: make(chan time.Duration, 1),
	}
}

// SetDelay changes the refresh delay. The latest value wins.
func (refresher *Refresher) SetDelay(delay time.Duration) {
	if delay <= 0 {
		return
	}
	for {
		select {
		case refresher.delayCh <- delay:
			return
		default:
		}
		select {
		case <-refresher.delayCh:
		default:
		}
	}
}

// Run refreshes the sink until ctx is done.
func (refresher *Refresher) Run(ctx context.Context) {
	refresher.sink(refresher.source())

	ticker := time.NewTicker(refresher.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case delay := <-refresher.delayCh:
			refresher.delay = delay
			ticker.Reset(delay)
		case <-ticker.C:
			refresher.sink(refresher.source())
		}
	}
}
