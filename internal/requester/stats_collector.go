package requester

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const statCollectionIntervalDefault = 60 * time.Second

var ErrFailedToRegisterStats = errors.New("failed to register stats collector")

type requesterStats struct {
	pendingTxns   prometheus.Gauge
	pendingBlocks prometheus.Gauge
	inFlight      prometheus.Gauge
	receivedTxns  prometheus.Gauge
	rejectedTxns  prometheus.Gauge
	droppedTxns   prometheus.Gauge
	duplicates    prometheus.Gauge
}

func newRequesterStats() *requesterStats {
	return &requesterStats{
		pendingTxns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_pending_txns",
			Help: "Current number of tracked transaction requests",
		}),
		pendingBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_pending_blocks",
			Help: "Current number of tracked block requests",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_in_flight",
			Help: "Current number of outstanding object requests",
		}),
		receivedTxns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_received_total",
			Help: "Total number of objects received",
		}),
		rejectedTxns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_rejected_total",
			Help: "Total number of object requests rejected by peers",
		}),
		droppedTxns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_dropped_total",
			Help: "Total number of objects dropped after source exhaustion",
		}),
		duplicates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "membercoin_requester_duplicates_total",
			Help: "Total number of duplicate object deliveries",
		}),
	}
}

// StatsCollector periodically exports requester counters to
// prometheus.
type StatsCollector struct {
	logger    *slog.Logger
	requester *Requester
	stats     *requesterStats
	interval  time.Duration

	cancelAll context.CancelFunc
	ctx       context.Context
	waitGroup *sync.WaitGroup
}

func NewStatsCollector(logger *slog.Logger, requester *Requester) *StatsCollector {
	ctx, cancel := context.WithCancel(context.Background())

	return &StatsCollector{
		logger:    logger.With(slog.String("module", "requester-stats")),
		requester: requester,
		stats:     newRequesterStats(),
		interval:  statCollectionIntervalDefault,
		cancelAll: cancel,
		ctx:       ctx,
		waitGroup: &sync.WaitGroup{},
	}
}

func (c *StatsCollector) Start() error {
	err := registerStats(
		c.stats.pendingTxns,
		c.stats.pendingBlocks,
		c.stats.inFlight,
		c.stats.receivedTxns,
		c.stats.rejectedTxns,
		c.stats.droppedTxns,
		c.stats.duplicates,
	)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(c.interval)

	c.waitGroup.Add(1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				c.logger.Error("Recovered from panic", "panic", rec, slog.String("stacktrace", string(debug.Stack())))
			}
		}()
		defer func() {
			unregisterStats(
				c.stats.pendingTxns,
				c.stats.pendingBlocks,
				c.stats.inFlight,
				c.stats.receivedTxns,
				c.stats.rejectedTxns,
				c.stats.droppedTxns,
				c.stats.duplicates,
			)
			c.waitGroup.Done()
		}()

		for {
			select {
			case <-c.ctx.Done():
				return
			case <-ticker.C:
				snapshot := c.requester.GetStats()

				c.stats.pendingTxns.Set(float64(snapshot.PendingTxns))
				c.stats.pendingBlocks.Set(float64(snapshot.PendingBlocks))
				c.stats.inFlight.Set(float64(snapshot.InFlight))
				c.stats.receivedTxns.Set(float64(snapshot.ReceivedTxns))
				c.stats.rejectedTxns.Set(float64(snapshot.RejectedTxns))
				c.stats.droppedTxns.Set(float64(snapshot.DroppedTxns))
				c.stats.duplicates.Set(float64(snapshot.Duplicates))
			}
		}
	}()

	return nil
}

func (c *StatsCollector) Shutdown() {
	c.cancelAll()
	c.waitGroup.Wait()
}

func registerStats(cs ...prometheus.Collector) error {
	for _, c := range cs {
		err := prometheus.Register(c)
		if err != nil {
			return errors.Join(ErrFailedToRegisterStats, err)
		}
	}

	return nil
}

func unregisterStats(cs ...prometheus.Collector) {
	for _, c := range cs {
		_ = prometheus.Unregister(c)
	}
}
