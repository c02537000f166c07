package p2p

import (
	"github.com/libsv/go-p2p/wire"
)

// NodeID is the stable identifier of a peer connection. IDs are never
// reused within a process; consumers store ids instead of peer pointers
// and resolve liveness through the PeerManager at time of use.
type NodeID int32

type PeerI interface {
	ID() NodeID
	Restart() (ok bool)
	Shutdown()
	Connected() bool
	Connect() bool
	IsUnhealthyCh() <-chan struct{}
	WriteMsg(msg wire.Message)
	Network() wire.BitcoinNet
	// StartingHeight is the block height the peer advertised in its
	// VERSION message, or -1 before the handshake completed.
	StartingHeight() int32
	// BytesReceived is the total number of payload bytes read from the
	// peer since the connection was established.
	BytesReceived() uint64
	String() string
}

type MessageHandlerI interface {
	// OnReceive handles incoming messages depending on command type
	OnReceive(msg wire.Message, peer PeerI)
	// OnSend handles outgoing messages depending on command type
	OnSend(msg wire.Message, peer PeerI)
}
