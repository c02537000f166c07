package p2p

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/libsv/go-p2p/wire"
)

var ErrPeerNetworkMismatch = errors.New("peer network mismatch")

const restartBackoffMax = time.Minute

// PeerManager is the connection table: the one place that maps a NodeID
// to a live peer. Everything above it stores ids; a nil GetPeer result
// means the peer is gone.
type PeerManager struct {
	execWg        sync.WaitGroup
	execCtx       context.Context
	cancelExecCtx context.CancelFunc

	l       *slog.Logger
	network wire.BitcoinNet

	mu    sync.RWMutex
	peers map[NodeID]PeerI
	order []NodeID

	restartUnhealthyPeers bool
}

func NewPeerManager(logger *slog.Logger, network wire.BitcoinNet, options ...PeerManagerOptions) *PeerManager {
	ctx, cancelFn := context.WithCancel(context.Background())

	m := &PeerManager{
		execCtx:       ctx,
		cancelExecCtx: cancelFn,

		network: network,
		l:       logger,
		peers:   make(map[NodeID]PeerI),
	}

	for _, opt := range options {
		opt(m)
	}

	return m
}

func (m *PeerManager) AddPeer(peer PeerI) error {
	if peer.Network() != m.network {
		return ErrPeerNetworkMismatch
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.peers[peer.ID()] = peer
	m.order = append(m.order, peer.ID())

	if m.restartUnhealthyPeers {
		m.startMonitorPeerHealth(peer)
	}

	return nil
}

func (m *PeerManager) RemovePeer(id NodeID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, found := m.peers[id]
	if !found {
		return false
	}

	delete(m.peers, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return true
}

// GetPeer resolves a NodeID to the live peer, or nil if it has been
// removed. Callers must handle nil: disconnects happen asynchronously.
func (m *PeerManager) GetPeer(id NodeID) PeerI {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.peers[id]
}

// GetPeers returns all peers in the order they were added.
func (m *PeerManager) GetPeers() []PeerI {
	m.mu.RLock()
	defer m.mu.RUnlock()

	peers := make([]PeerI, 0, len(m.order))
	for _, id := range m.order {
		peers = append(peers, m.peers[id])
	}

	return peers
}

func (m *PeerManager) CountConnectedPeers() uint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := uint(0)
	for _, p := range m.peers {
		if p.Connected() {
			c++
		}
	}

	return c
}

// BestStartingHeight returns the highest height any connected peer
// advertised during its handshake, or -1 when no peer is connected.
func (m *PeerManager) BestStartingHeight() int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := int32(-1)
	for _, p := range m.peers {
		if p.Connected() && p.StartingHeight() > best {
			best = p.StartingHeight()
		}
	}

	return best
}

func (m *PeerManager) Shutdown() {
	m.l.Info("Shutting down peer manager")

	m.cancelExecCtx()
	m.execWg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, peer := range m.peers {
		peer.Shutdown()
	}
}

func (m *PeerManager) startMonitorPeerHealth(peer PeerI) {
	m.l.Info("Starting peer health monitoring", slog.String("peer", peer.String()))
	m.execWg.Add(1)

	go func(p PeerI) {
		defer m.execWg.Done()

		for {
			select {
			case <-m.execCtx.Done():
				return

			case <-p.IsUnhealthyCh():
				m.l.Warn("Peer unhealthy - restarting", slog.String("peer", p.String()))
				if m.restartPeer(p) {
					return
				}
			}
		}
	}(peer)
}

// restartPeer retries the reconnect with exponential backoff until it
// succeeds or the manager shuts down. Returns true when shutting down.
func (m *PeerManager) restartPeer(p PeerI) bool {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = restartBackoffMax
	bo.MaxElapsedTime = 0 // retry until stopped

	err := backoff.Retry(func() error {
		if p.Restart() {
			return nil
		}

		m.l.Error("Peer restart failed", slog.String("peer", p.String()))
		return errors.New("restart failed")
	}, backoff.WithContext(bo, m.execCtx))

	return err != nil && m.execCtx.Err() != nil
}
