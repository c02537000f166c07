package netsync_test

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/netsync"
	"github.com/memberapp/Membercoin/internal/netsync/mocks"
	"github.com/memberapp/Membercoin/internal/p2p"
	p2pMocks "github.com/memberapp/Membercoin/internal/p2p/mocks"
	"github.com/memberapp/Membercoin/internal/requester"
	requesterMocks "github.com/memberapp/Membercoin/internal/requester/mocks"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

type peerSet struct {
	mu    sync.Mutex
	order []p2p.NodeID
	byID  map[p2p.NodeID]p2p.PeerI
}

func newPeerSet() *peerSet {
	return &peerSet{byID: make(map[p2p.NodeID]p2p.PeerI)}
}

func (s *peerSet) add(peer p2p.PeerI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, peer.ID())
	s.byID[peer.ID()] = peer
}

func (s *peerSet) get(id p2p.NodeID) p2p.PeerI {
	s.mu.Lock()
	defer s.mu.Unlock()
	if peer, found := s.byID[id]; found {
		return peer
	}
	return nil
}

func (s *peerSet) all() []p2p.PeerI {
	s.mu.Lock()
	defer s.mu.Unlock()
	peers := make([]p2p.PeerI, 0, len(s.byID))
	for _, id := range s.order {
		if peer, found := s.byID[id]; found {
			peers = append(peers, peer)
		}
	}
	return peers
}

func newTestPeer(id p2p.NodeID) *p2pMocks.PeerIMock {
	return &p2pMocks.PeerIMock{
		IDFunc:            func() p2p.NodeID { return id },
		ConnectedFunc:     func() bool { return true },
		WriteMsgFunc:      func(_ wire.Message) {},
		BytesReceivedFunc: func() uint64 { return 0 },
		StringFunc:        func() string { return "test-peer" },
		ShutdownFunc:      func() {},
		RestartFunc:       func() bool { return true },
	}
}

type harness struct {
	peers       *peerSet
	requester   *requester.Requester
	index       *chain.Index
	validator   *mocks.ValidatorMock
	headerStore *mocks.HeaderStoreMock
	handler     *netsync.MessageHandler
	ibd         bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		peers: newPeerSet(),
		index: chain.NewIndex(),
		validator: &mocks.ValidatorMock{
			ValidateTxFunc:    func(_ *wire.MsgTx) error { return nil },
			ValidateBlockFunc: func(_ *wire.MsgBlock) error { return nil },
		},
		headerStore: &mocks.HeaderStoreMock{
			WriteHeaderFunc: func(_, _ *chainhash.Hash, _ int32) error { return nil },
		},
	}

	registry := &requesterMocks.PeerRegistryMock{
		GetPeerFunc:  h.peers.get,
		GetPeersFunc: h.peers.all,
		CountConnectedPeersFunc: func() uint {
			return uint(len(h.peers.all()))
		},
	}

	h.requester = requester.New(testLogger, registry, h.index)
	h.handler = netsync.NewMessageHandler(testLogger, h.requester, h.index, h.headerStore, h.validator, func() bool { return h.ibd })

	return h
}

func sentHashes(peer *p2pMocks.PeerIMock) []chainhash.Hash {
	var out []chainhash.Hash
	for _, call := range peer.WriteMsgCalls() {
		if getData, ok := call.Msg.(*wire.MsgGetData); ok {
			for _, inv := range getData.InvList {
				out = append(out, inv.Hash)
			}
		}
	}
	return out
}

func TestOnReceiveInv(t *testing.T) {
	t.Run("tx announcement is registered and requested", func(t *testing.T) {
		// given
		h := newHarness(t)
		peer := newTestPeer(1)
		h.peers.add(peer)
		h.requester.InitializeNodeState(1)

		var txHash chainhash.Hash
		txHash[0] = 0x01
		inv := wire.NewMsgInv()
		require.NoError(t, inv.AddInvVect(wire.NewInvVect(wire.InvTypeTx, &txHash)))

		// when
		h.handler.OnReceive(inv, peer)

		// then
		require.Equal(t, int64(1), h.requester.GetStats().PendingTxns)

		h.requester.SendRequests()
		require.Equal(t, []chainhash.Hash{txHash}, sentHashes(peer))
	})

	t.Run("block announcement during IBD adds every peer as source", func(t *testing.T) {
		// given two connected peers
		h := newHarness(t)
		h.ibd = true
		peerA := newTestPeer(1)
		peerB := newTestPeer(2)
		h.peers.add(peerA)
		h.peers.add(peerB)
		h.requester.InitializeNodeState(1)
		h.requester.InitializeNodeState(2)

		var blockHash chainhash.Hash
		blockHash[0] = 0x02
		inv := wire.NewMsgInv()
		require.NoError(t, inv.AddInvVect(wire.NewInvVect(wire.InvTypeBlock, &blockHash)))

		// when announced by peer 1 only
		h.handler.OnReceive(inv, peerA)

		// then peer 2 serves as fallback after peer 1 leaves
		h.requester.RemoveNodeState(1)
		h.peers.mu.Lock()
		delete(h.peers.byID, 1)
		h.peers.mu.Unlock()

		h.requester.SendRequests()
		require.Equal(t, []chainhash.Hash{blockHash}, sentHashes(peerB))
	})
}

func TestOnReceiveTx(t *testing.T) {
	t.Run("valid tx is received exactly once", func(t *testing.T) {
		// given a tx in flight
		h := newHarness(t)
		peer := newTestPeer(1)
		h.peers.add(peer)
		h.requester.InitializeNodeState(1)

		tx := wire.NewMsgTx(1)
		txHash := tx.TxHash()
		h.requester.AskFor(wire.InvVect{Type: wire.InvTypeTx, Hash: txHash}, 1, 0)
		h.requester.SendRequests()

		// when
		h.handler.OnReceive(tx, peer)

		// then
		require.Len(t, h.validator.ValidateTxCalls(), 1)
		stats := h.requester.GetStats()
		assert.Equal(t, int64(1), stats.ReceivedTxns)
		assert.Equal(t, int64(0), stats.PendingTxns)
	})

	t.Run("invalid tx feeds the rejection back", func(t *testing.T) {
		// given
		h := newHarness(t)
		peer := newTestPeer(1)
		h.peers.add(peer)
		h.requester.InitializeNodeState(1)
		h.validator.ValidateTxFunc = func(_ *wire.MsgTx) error { return errors.New("bad script") }

		tx := wire.NewMsgTx(1)
		txHash := tx.TxHash()
		h.requester.AskFor(wire.InvVect{Type: wire.InvTypeTx, Hash: txHash}, 1, 0)
		h.requester.SendRequests()

		// when
		h.handler.OnReceive(tx, peer)

		// then the only source is exhausted and the tx dropped
		stats := h.requester.GetStats()
		assert.Equal(t, int64(1), stats.RejectedTxns)
		assert.Equal(t, int64(1), stats.DroppedTxns)
		assert.Equal(t, int64(0), stats.PendingTxns)
	})
}

func TestOnReceiveBlock(t *testing.T) {
	// given a tracked block on top of genesis
	h := newHarness(t)
	peer := newTestPeer(1)
	h.peers.add(peer)
	h.requester.InitializeNodeState(1)

	var genesisHash chainhash.Hash
	h.index.AddGenesis(genesisHash)

	var merkleRoot chainhash.Hash
	block := wire.NewMsgBlock(wire.NewBlockHeader(1, &genesisHash, &merkleRoot, 0, 0))
	blockHash := block.BlockHash()

	h.requester.AskFor(wire.InvVect{Type: wire.InvTypeBlock, Hash: blockHash}, 1, 1)
	h.requester.SendRequests()

	// when
	h.handler.OnReceive(block, peer)

	// then the header joins the index and the data is marked stored
	require.Len(t, h.validator.ValidateBlockCalls(), 1)
	node := h.index.LookupNode(&blockHash)
	require.NotNil(t, node)
	assert.Equal(t, int32(1), node.Height)
	assert.True(t, h.index.HaveData(&blockHash))
	assert.Equal(t, int32(1), h.index.Height())
	assert.Equal(t, int64(0), h.requester.GetStats().PendingBlocks)
}

func TestOnReceiveBlockInvalid(t *testing.T) {
	// given
	h := newHarness(t)
	peer := newTestPeer(1)
	h.peers.add(peer)
	h.requester.InitializeNodeState(1)
	h.validator.ValidateBlockFunc = func(_ *wire.MsgBlock) error { return errors.New("bad merkle root") }

	var genesisHash chainhash.Hash
	h.index.AddGenesis(genesisHash)

	var merkleRoot chainhash.Hash
	block := wire.NewMsgBlock(wire.NewBlockHeader(1, &genesisHash, &merkleRoot, 0, 0))
	blockHash := block.BlockHash()

	h.requester.AskFor(wire.InvVect{Type: wire.InvTypeBlock, Hash: blockHash}, 1, 1)
	h.requester.SendRequests()

	// when
	h.handler.OnReceive(block, peer)

	// then the block is not stored and stays eligible for another
	// source
	assert.Nil(t, h.index.LookupNode(&blockHash))
	assert.Equal(t, int64(1), h.requester.GetStats().PendingBlocks)
}

func TestOnReceiveHeaders(t *testing.T) {
	// given
	h := newHarness(t)
	peer := newTestPeer(1)
	h.peers.add(peer)
	h.requester.InitializeNodeState(1)

	var genesisHash chainhash.Hash
	h.index.AddGenesis(genesisHash)

	var merkleRoot chainhash.Hash
	first := wire.NewBlockHeader(1, &genesisHash, &merkleRoot, 0, 0)
	firstHash := first.BlockHash()
	second := wire.NewBlockHeader(1, &firstHash, &merkleRoot, 0, 1)

	msg := wire.NewMsgHeaders()
	require.NoError(t, msg.AddBlockHeader(first))
	require.NoError(t, msg.AddBlockHeader(second))

	// when
	h.handler.OnReceive(msg, peer)

	// then both headers are indexed and persisted
	require.Len(t, h.headerStore.WriteHeaderCalls(), 2)
	secondHash := second.BlockHash()
	node := h.index.LookupNode(&secondHash)
	require.NotNil(t, node)
	assert.Equal(t, int32(2), node.Height)
}

func TestOnReceiveReject(t *testing.T) {
	// given a tx in flight from the only source
	h := newHarness(t)
	peer := newTestPeer(1)
	h.peers.add(peer)
	h.requester.InitializeNodeState(1)

	var txHash chainhash.Hash
	txHash[0] = 0x0a
	h.requester.AskFor(wire.InvVect{Type: wire.InvTypeTx, Hash: txHash}, 1, 0)
	h.requester.SendRequests()

	reject := wire.NewMsgReject(wire.CmdTx, wire.RejectInvalid, "invalid")
	reject.Hash = txHash

	// when
	h.handler.OnReceive(reject, peer)

	// then
	stats := h.requester.GetStats()
	assert.Equal(t, int64(1), stats.RejectedTxns)
	assert.Equal(t, int64(0), stats.PendingTxns)
}

func TestOnReceiveGetDataDOS(t *testing.T) {
	// given a peer flooding thin block requests
	h := newHarness(t)
	peer := newTestPeer(1)
	shutdowns := 0
	peer.ShutdownFunc = func() { shutdowns++ }
	h.peers.add(peer)
	h.requester.InitializeNodeState(1)

	var blockHash chainhash.Hash
	blockHash[0] = 0x0b
	msg := wire.NewMsgGetData()
	require.NoError(t, msg.AddInvVect(wire.NewInvVect(wire.InvTypeFilteredBlock, &blockHash)))

	// when the request volume exceeds the window allowance
	for i := 0; i < requester.MaxThinTypeObjectRequests+1; i++ {
		h.handler.OnReceive(msg, peer)
	}

	// then the peer is disconnected
	require.Equal(t, 1, shutdowns)
}

func TestManagerIsIBD(t *testing.T) {
	// given
	h := newHarness(t)

	peerManager := &mocks.PeerManagerMock{
		BestStartingHeightFunc: func() int32 { return 1000 },
		GetPeersFunc:           h.peers.all,
		GetPeerFunc:            h.peers.get,
	}

	manager := netsync.NewManager(testLogger, h.requester, peerManager, h.index, netsync.WithIBDMargin(144))

	// far behind the best peer
	require.True(t, manager.IsIBD())

	// no peers with a known height
	peerManager.BestStartingHeightFunc = func() int32 { return -1 }
	require.False(t, manager.IsIBD())
}

func TestManagerSweepRestartsStalledPeer(t *testing.T) {
	// given four peers, one stalled past the download timeout
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := newHarness(t)

	stalled := newTestPeer(1)
	restarts := 0
	stalled.RestartFunc = func() bool {
		restarts++
		return true
	}
	h.peers.add(stalled)
	for id := p2p.NodeID(2); id <= 4; id++ {
		h.peers.add(newTestPeer(id))
	}

	peerManager := &mocks.PeerManagerMock{
		BestStartingHeightFunc: func() int32 { return -1 },
		GetPeersFunc:           h.peers.all,
		GetPeerFunc:            h.peers.get,
	}

	// the requester clock cannot be injected here, so rebuild one
	// with a fixed clock and a stalled in-flight block
	registry := &requesterMocks.PeerRegistryMock{
		GetPeerFunc:             h.peers.get,
		GetPeersFunc:            h.peers.all,
		CountConnectedPeersFunc: func() uint { return uint(len(h.peers.all())) },
	}
	req := requester.New(testLogger, registry, h.index,
		requester.WithNow(func() time.Time { return clock }),
		requester.WithDownloadTimeout(time.Minute))
	req.InitializeNodeState(1)

	var blockHash chainhash.Hash
	blockHash[0] = 0x0c
	req.MarkBlockAsInFlight(1, blockHash)

	manager := netsync.NewManager(testLogger, req, peerManager, h.index,
		netsync.WithNow(func() time.Time { return clock.Add(2 * time.Minute) }))

	// when
	manager.Sweep()

	// then the stalled peer is restarted and its bookkeeping dropped
	require.Equal(t, 1, restarts)
	require.Equal(t, 0, req.GetNumBlocksInFlight(1))
}

func TestOnReceiveTxDuplicateDelivery(t *testing.T) {
	// given a tx already received and fully processed
	h := newHarness(t)
	peerA := newTestPeer(1)
	peerB := newTestPeer(2)
	h.peers.add(peerA)
	h.peers.add(peerB)
	h.requester.InitializeNodeState(1)
	h.requester.InitializeNodeState(2)

	tx := wire.NewMsgTx(1)
	txHash := tx.TxHash()
	h.requester.AskFor(wire.InvVect{Type: wire.InvTypeTx, Hash: txHash}, 1, 0)
	h.requester.SendRequests()
	h.handler.OnReceive(tx, peerA)
	require.Len(t, h.validator.ValidateTxCalls(), 1)

	// when a second peer delivers the same tx
	h.handler.OnReceive(tx, peerB)

	// then only the duplicate counter moves, validation does not
	// run again and the sender is not penalized
	require.Len(t, h.validator.ValidateTxCalls(), 1)
	stats := h.requester.GetStats()
	assert.Equal(t, int64(1), stats.ReceivedTxns)
	assert.Equal(t, int64(1), stats.Duplicates)
	assert.Equal(t, int64(0), stats.RejectedTxns)
}

func TestManagerSweepReleasesDisconnectedPeer(t *testing.T) {
	// given a block in flight from a peer that drops its connection
	h := newHarness(t)

	gone := newTestPeer(1)
	connected := true
	gone.ConnectedFunc = func() bool { return connected }
	h.peers.add(gone)
	fallback := newTestPeer(2)
	h.peers.add(fallback)
	h.requester.InitializeNodeState(1)
	h.requester.InitializeNodeState(2)

	var blockHash chainhash.Hash
	blockHash[0] = 0x0d
	inv := wire.InvVect{Type: wire.InvTypeBlock, Hash: blockHash}
	h.requester.AskFor(inv, 1, 0)
	h.requester.AskFor(inv, 2, 0)
	h.requester.SendRequests()
	require.Len(t, sentHashes(gone), 1)
	require.Equal(t, int64(1), h.requester.GetStats().InFlight)

	peerManager := &mocks.PeerManagerMock{
		BestStartingHeightFunc: func() int32 { return -1 },
		GetPeersFunc:           h.peers.all,
		GetPeerFunc:            h.peers.get,
	}
	manager := netsync.NewManager(testLogger, h.requester, peerManager, h.index)

	// when the peer disconnects and the sweep runs
	connected = false
	manager.Sweep()

	// then its in-flight block is released and re-requested from the
	// fallback without waiting out the retry interval
	assert.Equal(t, int64(0), h.requester.GetStats().InFlight)
	assert.Equal(t, 0, h.requester.GetNumBlocksInFlight(1))

	h.requester.SendRequests()
	require.Equal(t, []chainhash.Hash{blockHash}, sentHashes(fallback))
}
