// Package netsync drives the data-fetch cycle of the node: it feeds
// inbound network messages into the request manager, runs the periodic
// dispatch and timeout sweeps and tracks whether the node is still in
// initial block download.
package netsync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/requester"
)

const (
	sendIntervalDefault  = time.Second
	sweepIntervalDefault = 10 * time.Second

	// how many blocks behind the best peer the node may be before it
	// is considered synced
	ibdMarginDefault = 144
)

// Manager owns the background scheduling loops around the request
// manager: the periodic dispatch pass and the download timeout sweep.
type Manager struct {
	logger     *slog.Logger
	requester  *requester.Requester
	peers      PeerManager
	chainIndex *chain.Index

	sendInterval  time.Duration
	sweepInterval time.Duration
	ibdMargin     int32
	now           func() time.Time

	cancelAll context.CancelFunc
	ctx       context.Context
	waitGroup *sync.WaitGroup
}

func NewManager(logger *slog.Logger, req *requester.Requester, peers PeerManager, chainIndex *chain.Index, opts ...ManagerOption) *Manager {
	m := &Manager{
		logger:     logger.With(slog.String("module", "netsync")),
		requester:  req,
		peers:      peers,
		chainIndex: chainIndex,

		sendInterval:  sendIntervalDefault,
		sweepInterval: sweepIntervalDefault,
		ibdMargin:     ibdMarginDefault,
		now:           time.Now,

		waitGroup: &sync.WaitGroup{},
	}

	for _, opt := range opts {
		opt(m)
	}

	ctx, cancelAll := context.WithCancel(context.Background())
	m.ctx = ctx
	m.cancelAll = cancelAll

	return m
}

// IsIBD reports whether the node is still far behind the best peer's
// advertised height.
func (m *Manager) IsIBD() bool {
	best := m.peers.BestStartingHeight()
	if best < 0 {
		return false
	}

	return m.chainIndex.Height()+m.ibdMargin < best
}

// Start launches the dispatch and sweep loops.
func (m *Manager) Start() {
	m.startSendRequests()
	m.startSweep()
}

func (m *Manager) startSendRequests() {
	ticker := time.NewTicker(m.sendInterval)

	m.waitGroup.Add(1)
	go func() {
		defer m.waitGroup.Done()
		for {
			select {
			case <-m.ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				m.requester.SendRequests()
			}
		}
	}()
}

func (m *Manager) startSweep() {
	ticker := time.NewTicker(m.sweepInterval)

	m.waitGroup.Add(1)
	go func() {
		defer m.waitGroup.Done()
		for {
			select {
			case <-m.ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Sweep runs one maintenance pass: disconnected peers have their
// bookkeeping released, stalled peers are restarted and their
// in-flight blocks redistributed, and while blocks are still being
// downloaded every idle peer gets its download slots refilled.
func (m *Manager) Sweep() {
	now := m.now()
	ibd := m.IsIBD()

	for _, peer := range m.peers.GetPeers() {
		id := peer.ID()
		if !peer.Connected() {
			// release the peer's in-flight objects right away instead
			// of waiting out retry intervals
			m.requester.RemoveNodeState(id)
			continue
		}

		m.requester.InitializeNodeState(id)

		if m.requester.DisconnectOnDownloadTimeout(id, now) {
			m.logger.Warn("Restarting stalled peer", slog.String("peer", peer.String()))
			m.requester.RemoveNodeState(id)
			peer.Restart()
			continue
		}

		// keep pipelines full during initial sync, and finish a
		// catch-up burst that is still in flight after IBD flips off
		if ibd || !m.requester.MapBlocksInFlightEmpty() {
			m.requester.RequestNextBlocksToDownload(id)
		}
	}
}

// Shutdown stops the loops and drains the request manager state.
func (m *Manager) Shutdown() {
	m.cancelAll()
	m.waitGroup.Wait()
	m.requester.Cleanup()
}
