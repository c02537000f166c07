package requester

import (
	"time"
)

type Option func(*Requester)

// WithNow sets a custom clock.
func WithNow(nowFunc func() time.Time) Option {
	return func(r *Requester) {
		r.now = nowFunc
	}
}

// WithTxRetryInterval sets how long a transaction request stays
// outstanding before another source is tried.
func WithTxRetryInterval(d time.Duration) Option {
	return func(r *Requester) {
		r.txRetryInterval = d
	}
}

// WithBlockRetryInterval sets how long a block request stays
// outstanding before another source is tried.
func WithBlockRetryInterval(d time.Duration) Option {
	return func(r *Requester) {
		r.blkRetryInterval = d
	}
}

// WithBlockDownloadWindow bounds how far ahead of the current height
// blocks are fetched.
func WithBlockDownloadWindow(window int32) Option {
	return func(r *Requester) {
		r.blockDownloadWindow = window
	}
}

// WithMaxBlocksInFlightPerPeer bounds concurrent block downloads from
// a single peer.
func WithMaxBlocksInFlightPerPeer(limit int) Option {
	return func(r *Requester) {
		r.maxBlocksInFlightPerPeer = limit
	}
}

// WithDownloadTimeout sets the stall threshold after which a peer with
// in-flight blocks and no download progress is reported for
// disconnection.
func WithDownloadTimeout(d time.Duration) Option {
	return func(r *Requester) {
		r.downloadTimeout = d
	}
}

// WithRequestPacer sets the leaky-bucket budget for outbound requests:
// a burst allowance and a steady refill rate per second.
func WithRequestPacer(burst, ratePerSecond float64) Option {
	return func(r *Requester) {
		r.pacerBurst = burst
		r.pacerRate = ratePerSecond
	}
}

// WithSendLimitPerPass bounds how many tracked objects one
// SendRequests invocation examines per queue.
func WithSendLimitPerPass(limit int) Option {
	return func(r *Requester) {
		r.sendLimitPerPass = limit
	}
}

// WithMaxThinTypeRequests overrides the per-peer thin-type request
// allowance within the sliding window.
func WithMaxThinTypeRequests(limit int) Option {
	return func(r *Requester) {
		r.maxThinTypeRequests = limit
	}
}
