package requester

import (
	"log/slog"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"

	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/p2p"
)

// UpdateBlockAvailability records the latest block a peer advertised.
// A hash we cannot place in the header tree yet is remembered and
// resolved later by ProcessBlockAvailability.
func (r *Requester) UpdateBlockAvailability(id p2p.NodeID, hash *chainhash.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.nodeStates[id]
	if !found {
		return
	}

	r.processBlockAvailabilityLocked(state)

	if node := r.chainIndex.LookupNode(hash); node != nil {
		if state.bestKnownBlock == nil || node.Height >= state.bestKnownBlock.Height {
			state.bestKnownBlock = node
		}
		state.lastUnknownBlock = nil
		return
	}

	h := *hash
	state.lastUnknownBlock = &h
}

// ProcessBlockAvailability checks whether the last block a peer
// advertised as unknown has since appeared in the header tree.
func (r *Requester) ProcessBlockAvailability(id p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, found := r.nodeStates[id]; found {
		r.processBlockAvailabilityLocked(state)
	}
}

func (r *Requester) processBlockAvailabilityLocked(state *nodeState) {
	if state.lastUnknownBlock == nil {
		return
	}

	node := r.chainIndex.LookupNode(state.lastUnknownBlock)
	if node == nil {
		return
	}

	if state.bestKnownBlock == nil || node.Height >= state.bestKnownBlock.Height {
		state.bestKnownBlock = node
	}
	state.lastUnknownBlock = nil
}

// FindNextBlocksToDownload selects up to count blocks the peer is
// believed to possess that are missing locally and not in flight
// anywhere, walking forward from the last common ancestor of the
// peer's best known block and our tip. The download window bounds how
// far ahead of our current height the walk reaches: a wider window
// tolerates heterogeneous peer speeds at the cost of more out-of-order
// arrivals.
func (r *Requester) FindNextBlocksToDownload(id p2p.NodeID, count int) []*chain.Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.findNextBlocksLocked(id, count)
}

func (r *Requester) findNextBlocksLocked(id p2p.NodeID, count int) []*chain.Node {
	state, found := r.nodeStates[id]
	if !found || count <= 0 {
		return nil
	}

	r.processBlockAvailabilityLocked(state)

	tip := r.chainIndex.Tip()
	bestKnown := state.bestKnownBlock
	if bestKnown == nil || tip == nil {
		return nil
	}

	walk := chain.LastCommonAncestor(bestKnown, tip)
	if walk == nil {
		return nil
	}

	windowEnd := tip.Height + r.blockDownloadWindow
	maxHeight := bestKnown.Height
	if maxHeight > windowEnd {
		maxHeight = windowEnd
	}

	blocks := make([]*chain.Node, 0, count)
	for height := walk.Height + 1; height <= maxHeight && len(blocks) < count; height++ {
		node := bestKnown.Ancestor(height)
		if node == nil {
			break
		}

		hash := node.Hash
		if r.chainIndex.HaveData(&hash) || r.blocksInFlight.contains(hash) {
			continue
		}
		if entry, tracked := r.blockRequests[hash]; tracked && entry.processing {
			continue
		}

		blocks = append(blocks, node)
	}

	return blocks
}

// RequestNextBlocksToDownload fills the peer's download slots with the
// next missing blocks along its advertised chain and sends the request.
// Invoked during initial sync and whenever new headers arrive.
func (r *Requester) RequestNextBlocksToDownload(id p2p.NodeID) {
	peer := r.peers.GetPeer(id)
	if peer == nil || !peer.Connected() {
		return
	}

	now := r.now()

	r.mu.Lock()

	state, found := r.nodeStates[id]
	if !found {
		r.mu.Unlock()
		return
	}

	slots := r.maxBlocksInFlightPerPeer - state.blocksInFlight.Len()
	blocks := r.findNextBlocksLocked(id, slots)
	if len(blocks) == 0 {
		r.mu.Unlock()
		return
	}

	msg := wire.NewMsgGetData()
	for _, node := range blocks {
		inv := wire.InvVect{Type: wire.InvTypeBlock, Hash: node.Hash}

		entry := r.askForLocked(inv, id, 1)
		entry.lastRequestTime = now
		entry.lastSource = id
		entry.outstandingReqs++
		r.inFlight++
		r.markBlockAsInFlightLocked(id, node.Hash)

		_ = msg.AddInvVect(&inv)
	}

	r.logger.Debug("Requesting next blocks",
		slog.Int("peer", int(id)),
		slog.Int("count", len(blocks)))

	r.mu.Unlock()

	peer.WriteMsg(msg)
}

// MarkBlockAsInFlight records the block as requested from the peer.
func (r *Requester) MarkBlockAsInFlight(id p2p.NodeID, hash chainhash.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.markBlockAsInFlightLocked(id, hash)
}

func (r *Requester) markBlockAsInFlightLocked(id p2p.NodeID, hash chainhash.Hash) {
	state, found := r.nodeStates[id]
	if !found {
		return
	}

	if _, dup := r.blocksInFlight[hash][id]; dup {
		return
	}

	now := r.now()
	elem := state.blocksInFlight.PushBack(queuedBlock{hash: hash, requestedAt: now})
	r.blocksInFlight.add(hash, id, elem)

	if state.blocksInFlight.Len() == 1 {
		state.downloadingSince = now
		if peer := r.peers.GetPeer(id); peer != nil {
			state.lastBytesReceived = peer.BytesReceived()
		}
	}
}

// MarkBlockAsReceived clears the in-flight record of the block for the
// peer and reports whether one existed.
func (r *Requester) MarkBlockAsReceived(hash chainhash.Hash, id p2p.NodeID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.markBlockAsReceivedLocked(hash, id)
}

func (r *Requester) markBlockAsReceivedLocked(hash chainhash.Hash, id p2p.NodeID) bool {
	return r.removeBlockInFlightLocked(hash, id)
}

// removeBlockInFlightLocked detaches one (hash, peer) in-flight record
// from both the per-peer list and the global index, keeping them
// mirrored, and restarts the peer's stall clock when its oldest entry
// was removed.
func (r *Requester) removeBlockInFlightLocked(hash chainhash.Hash, id p2p.NodeID) bool {
	elem, found := r.blocksInFlight.remove(hash, id)
	if !found {
		return false
	}

	state, ok := r.nodeStates[id]
	if !ok {
		return true
	}

	wasFront := state.blocksInFlight.Front() == elem
	state.blocksInFlight.Remove(elem)
	if wasFront && state.blocksInFlight.Len() > 0 {
		state.downloadingSince = r.now()
		if peer := r.peers.GetPeer(id); peer != nil {
			state.lastBytesReceived = peer.BytesReceived()
		}
	}

	return true
}

// MapBlocksInFlightEmpty reports whether any block is currently in
// flight from any peer.
func (r *Requester) MapBlocksInFlightEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.blocksInFlight) == 0
}
