package requester

import "time"

// leakyBucket paces the aggregate outbound request rate. The bucket
// fills at fillRate tokens per second up to max; each request drains
// one token. A burst of inventory announcements therefore spreads out
// over time instead of flooding every peer at once.
type leakyBucket struct {
	level    float64
	max      float64
	fillRate float64
	lastFill time.Time
}

func newLeakyBucket(max, fillRate float64, now time.Time) *leakyBucket {
	return &leakyBucket{
		level:    max,
		max:      max,
		fillRate: fillRate,
		lastFill: now,
	}
}

func (b *leakyBucket) fill(now time.Time) {
	elapsed := now.Sub(b.lastFill).Seconds()
	if elapsed <= 0 {
		return
	}

	b.level += elapsed * b.fillRate
	if b.level > b.max {
		b.level = b.max
	}
	b.lastFill = now
}

// try drains amount tokens if available and reports whether the
// request is within budget.
func (b *leakyBucket) try(amount float64, now time.Time) bool {
	b.fill(now)

	if b.level < amount {
		return false
	}

	b.level -= amount
	return true
}

func (b *leakyBucket) reset(now time.Time) {
	b.level = b.max
	b.lastFill = now
}
