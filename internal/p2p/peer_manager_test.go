package p2p_test

import (
	"log/slog"
	"testing"

	"github.com/libsv/go-p2p/wire"
	"github.com/stretchr/testify/require"

	"github.com/memberapp/Membercoin/internal/p2p"
	"github.com/memberapp/Membercoin/internal/p2p/mocks"
)

const peerManagerNetwork = wire.TestNet

func managedPeerMock(id p2p.NodeID, connected bool, height int32) *mocks.PeerIMock {
	return &mocks.PeerIMock{
		IDFunc:             func() p2p.NodeID { return id },
		NetworkFunc:        func() wire.BitcoinNet { return peerManagerNetwork },
		ConnectedFunc:      func() bool { return connected },
		StartingHeightFunc: func() int32 { return height },
		ShutdownFunc:       func() {},
		StringFunc:         func() string { return "mock:18333" },
	}
}

func Test_PeerManagerAddPeer(t *testing.T) {
	tt := []struct {
		name        string
		peerNetwork wire.BitcoinNet

		expectedError error
	}{
		{
			name:        "Add peer with matching network",
			peerNetwork: peerManagerNetwork,
		},
		{
			name:          "Add peer with mismatched network",
			peerNetwork:   wire.MainNet,
			expectedError: p2p.ErrPeerNetworkMismatch,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			peerMq := &mocks.PeerIMock{
				IDFunc:      func() p2p.NodeID { return 1 },
				NetworkFunc: func() wire.BitcoinNet { return tc.peerNetwork },
			}

			sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)

			// when
			err := sut.AddPeer(peerMq)

			// then
			if tc.expectedError == nil {
				require.NoError(t, err)
				require.Len(t, sut.GetPeers(), 1)
			} else {
				require.ErrorIs(t, err, p2p.ErrPeerNetworkMismatch)
				require.Len(t, sut.GetPeers(), 0)
			}
		})
	}
}

func Test_PeerManagerGetPeer(t *testing.T) {
	t.Run("resolve live peer by id", func(t *testing.T) {
		// given
		sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)
		require.NoError(t, sut.AddPeer(managedPeerMock(7, true, 100)))

		// when
		found := sut.GetPeer(7)
		gone := sut.GetPeer(8)

		// then
		require.NotNil(t, found)
		require.Equal(t, p2p.NodeID(7), found.ID())
		require.Nil(t, gone)
	})

	t.Run("removed peer resolves to nil", func(t *testing.T) {
		// given
		sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)
		require.NoError(t, sut.AddPeer(managedPeerMock(7, true, 100)))

		// when
		removed := sut.RemovePeer(7)
		removedAgain := sut.RemovePeer(7)

		// then
		require.True(t, removed)
		require.False(t, removedAgain)
		require.Nil(t, sut.GetPeer(7))
	})
}

func Test_PeerManagerGetPeers(t *testing.T) {
	t.Run("returns peers in insertion order", func(t *testing.T) {
		// given
		sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)
		for _, id := range []p2p.NodeID{3, 1, 2} {
			require.NoError(t, sut.AddPeer(managedPeerMock(id, true, 100)))
		}

		// when
		peers := sut.GetPeers()

		// then
		require.Len(t, peers, 3)
		require.Equal(t, p2p.NodeID(3), peers[0].ID())
		require.Equal(t, p2p.NodeID(1), peers[1].ID())
		require.Equal(t, p2p.NodeID(2), peers[2].ID())
	})
}

func Test_PeerManagerCountConnectedPeers(t *testing.T) {
	// given
	sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)
	require.NoError(t, sut.AddPeer(managedPeerMock(1, true, 100)))
	require.NoError(t, sut.AddPeer(managedPeerMock(2, false, 200)))
	require.NoError(t, sut.AddPeer(managedPeerMock(3, true, 300)))

	// then
	require.Equal(t, uint(2), sut.CountConnectedPeers())
}

func Test_PeerManagerBestStartingHeight(t *testing.T) {
	t.Run("highest connected peer wins", func(t *testing.T) {
		// given
		sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)
		require.NoError(t, sut.AddPeer(managedPeerMock(1, true, 100)))
		require.NoError(t, sut.AddPeer(managedPeerMock(2, false, 500))) // disconnected, ignored
		require.NoError(t, sut.AddPeer(managedPeerMock(3, true, 300)))

		// then
		require.Equal(t, int32(300), sut.BestStartingHeight())
	})

	t.Run("no connected peers", func(t *testing.T) {
		// given
		sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)

		// then
		require.Equal(t, int32(-1), sut.BestStartingHeight())
	})
}

func Test_PeerManagerShutdown(t *testing.T) {
	// given
	sut := p2p.NewPeerManager(slog.Default(), peerManagerNetwork)

	shutdownCalled := 0
	peerMq := managedPeerMock(1, true, 100)
	peerMq.ShutdownFunc = func() { shutdownCalled++ }
	require.NoError(t, sut.AddPeer(peerMq))

	// when
	sut.Shutdown()

	// then
	require.Equal(t, 1, shutdownCalled)
}
