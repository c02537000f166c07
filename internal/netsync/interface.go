package netsync

import (
	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"

	"github.com/memberapp/Membercoin/internal/p2p"
)

// Validator accepts fully received objects. A returned error is the
// rejection reason fed back into the request manager.
type Validator interface {
	ValidateTx(tx *wire.MsgTx) error
	ValidateBlock(block *wire.MsgBlock) error
}

// PeerManager is the connection registry consumed by the sync loop.
type PeerManager interface {
	GetPeer(id p2p.NodeID) p2p.PeerI
	GetPeers() []p2p.PeerI
	BestStartingHeight() int32
}

// HeaderStore persists accepted block headers.
type HeaderStore interface {
	WriteHeader(hash, parent *chainhash.Hash, height int32) error
}
