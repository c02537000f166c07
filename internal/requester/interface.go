package requester

import (
	"github.com/memberapp/Membercoin/internal/p2p"
)

// PeerRegistry resolves peer ids to live connections. The requester
// stores ids only and re-checks liveness at time of use, so a nil
// return simply means the peer is gone.
type PeerRegistry interface {
	GetPeer(id p2p.NodeID) p2p.PeerI
	GetPeers() []p2p.PeerI
	CountConnectedPeers() uint
}
