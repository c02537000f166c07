package requester

import (
	"container/list"
	"time"

	"github.com/libsv/go-p2p/chaincfg/chainhash"

	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/p2p"
)

// queuedBlock is one in-flight block request belonging to a peer.
type queuedBlock struct {
	hash        chainhash.Hash
	requestedAt time.Time
}

// nodeState is the per-peer bookkeeping of the request manager.
// blocksInFlight is ordered by request time, oldest first, so the
// earliest-timeout candidate is always at the front.
type nodeState struct {
	blocksInFlight *list.List // of queuedBlock

	// when the front of blocksInFlight started downloading;
	// meaningless while the list is empty
	downloadingSince  time.Time
	lastBytesReceived uint64
	txsInFlight       int

	// desirability score feeding new source entries for this peer
	score int

	// thin-type request timestamps within the sliding DoS window
	thinTypeRequests []time.Time

	// block availability advertised by the peer
	bestKnownBlock   *chain.Node
	lastUnknownBlock *chainhash.Hash
}

func newNodeState() *nodeState {
	return &nodeState{
		blocksInFlight: list.New(),
		score:          baseSourceDesirability,
	}
}

func (s *nodeState) inFlightLoad() int {
	return s.blocksInFlight.Len() + s.txsInFlight
}

// recordThinTypeRequest appends a request timestamp and prunes entries
// that have left the window.
func (s *nodeState) recordThinTypeRequest(now time.Time, window time.Duration) {
	s.thinTypeRequests = append(s.thinTypeRequests, now)
	s.pruneThinTypeRequests(now, window)
}

func (s *nodeState) pruneThinTypeRequests(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	keep := 0
	for keep < len(s.thinTypeRequests) && !s.thinTypeRequests[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		s.thinTypeRequests = append(s.thinTypeRequests[:0], s.thinTypeRequests[keep:]...)
	}
}

// blocksInFlightIndex mirrors every peer's in-flight list by hash,
// giving O(1) removal by either key. The two structures are always
// updated together under the requester lock.
type blocksInFlightIndex map[chainhash.Hash]map[p2p.NodeID]*list.Element

func (idx blocksInFlightIndex) add(hash chainhash.Hash, id p2p.NodeID, elem *list.Element) {
	byNode, found := idx[hash]
	if !found {
		byNode = make(map[p2p.NodeID]*list.Element)
		idx[hash] = byNode
	}
	byNode[id] = elem
}

func (idx blocksInFlightIndex) remove(hash chainhash.Hash, id p2p.NodeID) (*list.Element, bool) {
	byNode, found := idx[hash]
	if !found {
		return nil, false
	}

	elem, found := byNode[id]
	if !found {
		return nil, false
	}

	delete(byNode, id)
	if len(byNode) == 0 {
		delete(idx, hash)
	}

	return elem, true
}

func (idx blocksInFlightIndex) contains(hash chainhash.Hash) bool {
	return len(idx[hash]) > 0
}
