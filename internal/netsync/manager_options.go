package netsync

import "time"

type ManagerOption func(*Manager)

// WithSendInterval sets how often the dispatch pass runs.
func WithSendInterval(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.sendInterval = d
	}
}

// WithSweepInterval sets how often the timeout sweep runs.
func WithSweepInterval(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.sweepInterval = d
	}
}

// WithIBDMargin sets how many blocks behind the best peer the node may
// be before it counts as synced.
func WithIBDMargin(margin int32) ManagerOption {
	return func(m *Manager) {
		m.ibdMargin = margin
	}
}

// WithNow sets a custom clock.
func WithNow(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = nowFunc
	}
}
