// Package requester coordinates the fetching of blocks and
// transactions announced by peers. It tracks known sources per object,
// decides whom to ask and when to retry, bounds in-flight downloads
// per peer and reports peers that stall or flood.
package requester

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"
	"github.com/patrickmn/go-cache"

	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/p2p"
)

var ErrPeerNotConnected = errors.New("peer is not connected")

const (
	// MaxThinTypeObjectRequests is the per-peer allowance of thin
	// block requests within ThinTypeRequestWindow.
	MaxThinTypeObjectRequests = 100
	ThinTypeRequestWindow     = 10 * time.Minute

	// BeginPruningPeers is the connection count above which stalling
	// peers are reported for disconnection.
	BeginPruningPeers = 4

	DefaultBlockDownloadWindow = 1024

	defaultTxRetryInterval   = 5 * time.Second
	defaultBlkRetryInterval  = 5 * time.Second
	defaultDownloadTimeout   = 60 * time.Second
	defaultMaxBlocksInFlight = 16
	defaultSendLimitPerPass  = 256
	defaultPacerBurst        = 500
	defaultPacerRate         = 250

	baseSourceDesirability = 3
	maxSourceDesirability  = 100

	recentlyReceivedExpiry  = 10 * time.Minute
	recentlyReceivedCleanup = 5 * time.Minute
)

// Stats is a snapshot of the requester counters.
type Stats struct {
	PendingTxns   int64
	PendingBlocks int64
	InFlight      int64
	ReceivedTxns  int64
	RejectedTxns  int64
	DroppedTxns   int64
	Duplicates    int64
}

// Requester owns all request-tracking state. A single coarse lock
// guards the maps; the cross-map invariants (per-peer in-flight lists
// mirrored in the global index) hold whenever the lock is released.
// Network writes happen outside the lock, after the state transition
// is committed.
type Requester struct {
	logger     *slog.Logger
	peers      PeerRegistry
	chainIndex *chain.Index
	now        func() time.Time

	txRetryInterval          time.Duration
	blkRetryInterval         time.Duration
	blockDownloadWindow      int32
	maxBlocksInFlightPerPeer int
	downloadTimeout          time.Duration
	sendLimitPerPass         int
	maxThinTypeRequests      int
	pacerBurst               float64
	pacerRate                float64

	recentlyReceived *cache.Cache

	mu             sync.RWMutex
	txRequests     map[chainhash.Hash]*objectRequest
	blockRequests  map[chainhash.Hash]*objectRequest
	txQueue        *objectQueue
	blockQueue     *objectQueue
	nodeStates     map[p2p.NodeID]*nodeState
	blocksInFlight blocksInFlightIndex
	pacer          *leakyBucket

	inFlight     int64
	receivedTxns int64
	rejectedTxns int64
	droppedTxns  int64
	duplicates   int64
}

func New(logger *slog.Logger, peers PeerRegistry, chainIndex *chain.Index, opts ...Option) *Requester {
	r := &Requester{
		logger:     logger.With(slog.String("module", "requester")),
		peers:      peers,
		chainIndex: chainIndex,
		now:        time.Now,

		txRetryInterval:          defaultTxRetryInterval,
		blkRetryInterval:         defaultBlkRetryInterval,
		blockDownloadWindow:      DefaultBlockDownloadWindow,
		maxBlocksInFlightPerPeer: defaultMaxBlocksInFlight,
		downloadTimeout:          defaultDownloadTimeout,
		sendLimitPerPass:         defaultSendLimitPerPass,
		maxThinTypeRequests:      MaxThinTypeObjectRequests,
		pacerBurst:               defaultPacerBurst,
		pacerRate:                defaultPacerRate,

		txRequests:     make(map[chainhash.Hash]*objectRequest),
		blockRequests:  make(map[chainhash.Hash]*objectRequest),
		txQueue:        newObjectQueue(),
		blockQueue:     newObjectQueue(),
		nodeStates:     make(map[p2p.NodeID]*nodeState),
		blocksInFlight: make(blocksInFlightIndex),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.pacer = newLeakyBucket(r.pacerBurst, r.pacerRate, r.now())
	r.recentlyReceived = cache.New(recentlyReceivedExpiry, recentlyReceivedCleanup)

	return r
}

// AskFor registers demand for an object announced by a peer. Sending
// is decoupled from registration: SendRequests issues the actual
// network requests.
func (r *Requester) AskFor(inv wire.InvVect, from p2p.NodeID, priority uint32) {
	if _, found := r.recentlyReceived.Get(inv.Hash.String()); found {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.askForLocked(inv, from, priority)
}

// AskForMany registers demand for a batch of announced objects.
func (r *Requester) AskForMany(invs []wire.InvVect, from p2p.NodeID, priority uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inv := range invs {
		if _, found := r.recentlyReceived.Get(inv.Hash.String()); found {
			continue
		}
		r.askForLocked(inv, from, priority)
	}
}

// AskForDuringIBD registers announced blocks during initial sync.
// Every connected peer is optimistically added as a source, so a
// timeout or disconnect always leaves someone to fail over to.
func (r *Requester) AskForDuringIBD(invs []wire.InvVect, from p2p.NodeID, priority uint32) {
	connected := r.peers.GetPeers()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inv := range invs {
		if _, found := r.recentlyReceived.Get(inv.Hash.String()); found {
			continue
		}

		entry := r.askForLocked(inv, from, priority)
		for _, peer := range connected {
			if peer.Connected() {
				entry.addSource(peer.ID(), r.sourceDesirabilityLocked(peer.ID()))
			}
		}
	}
}

func (r *Requester) askForLocked(inv wire.InvVect, from p2p.NodeID, priority uint32) *objectRequest {
	requests, queue := r.kindLocked(inv.Type)

	entry, found := requests[inv.Hash]
	if !found {
		entry = newObjectRequest(inv, priority)
		requests[inv.Hash] = entry
		queue.add(inv.Hash)
	}
	if priority > entry.priority {
		entry.priority = priority
	}

	entry.addSource(from, r.sourceDesirabilityLocked(from))

	return entry
}

func (r *Requester) kindLocked(invType wire.InvType) (map[chainhash.Hash]*objectRequest, *objectQueue) {
	if invType == wire.InvTypeTx {
		return r.txRequests, r.txQueue
	}

	return r.blockRequests, r.blockQueue
}

// AlreadyAskedForBlock reports whether a request for the block is
// currently outstanding. Used during initial sync to avoid asking for
// the same batch twice.
func (r *Requester) AlreadyAskedForBlock(hash *chainhash.Hash) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, found := r.blockRequests[*hash]

	return found && !entry.lastRequestTime.IsZero()
}

// Downloading records that object data has started arriving from the
// peer, for stall detection distinct from request time.
func (r *Requester) Downloading(hash *chainhash.Hash, from p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, found := r.blockRequests[*hash]; found {
		entry.downloadingSince = r.now()
	}

	if state, found := r.nodeStates[from]; found {
		if peer := r.peers.GetPeer(from); peer != nil {
			state.lastBytesReceived = peer.BytesReceived()
		}
	}
}

// ProcessingTx marks a received transaction as awaiting validation.
// The peer's in-flight slot is released; the entry stays tracked so a
// duplicate announcement does not trigger a re-request.
func (r *Requester) ProcessingTx(hash *chainhash.Hash, from p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.txRequests[*hash]
	if !found {
		return
	}

	r.clearInFlightLocked(entry)
	entry.processing = true
}

// ProcessingBlock marks a received block as awaiting validation.
func (r *Requester) ProcessingBlock(hash *chainhash.Hash, from p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.blockRequests[*hash]
	if !found {
		return
	}

	r.clearInFlightLocked(entry)
	entry.processing = true
}

// Received records successful receipt of an object and releases its
// tracking entry. Calling it again for the same object is a no-op
// aside from the duplicate counter.
func (r *Requester) Received(inv wire.InvVect, from p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests, queue := r.kindLocked(inv.Type)

	entry, found := requests[inv.Hash]
	if !found {
		r.duplicates++
		return
	}

	r.clearInFlightLocked(entry)
	if entry.isBlock() {
		// a direct MarkBlockAsInFlight leaves an index record with no
		// outstanding request counted against the entry
		r.markBlockAsReceivedLocked(inv.Hash, from)
	}

	r.bumpScoreLocked(from, 1)
	r.receivedTxns++

	delete(requests, inv.Hash)
	queue.remove(inv.Hash)
	r.recentlyReceived.Set(inv.Hash.String(), struct{}{}, cache.DefaultExpiration)
}

// RecentlyReceived reports whether the object completed a receipt
// within the dedup horizon. The message-processing layer consults it
// to route duplicate deliveries to AlreadyReceived.
func (r *Requester) RecentlyReceived(hash *chainhash.Hash) bool {
	_, found := r.recentlyReceived.Get(hash.String())

	return found
}

// AlreadyReceived records the arrival of an object that was already
// fully processed. Duplicate delivery is benign: statistics only, no
// state transition and no penalty for the peer.
func (r *Requester) AlreadyReceived(from p2p.NodeID, inv wire.InvVect) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.duplicates++
	r.recentlyReceived.Set(inv.Hash.String(), struct{}{}, cache.DefaultExpiration)
}

// Rejected records that a peer could not or would not deliver an
// object. The source is dropped and the object becomes immediately
// eligible for a different source, or is dropped entirely when no
// sources remain.
func (r *Requester) Rejected(inv wire.InvVect, from p2p.NodeID, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests, queue := r.kindLocked(inv.Type)

	entry, found := requests[inv.Hash]
	if !found {
		return
	}

	r.logger.Debug("Object rejected by peer",
		slog.String("hash", inv.Hash.String()),
		slog.Int("peer", int(from)),
		slog.String("reason", reason))

	r.clearInFlightLocked(entry)
	entry.processing = false
	entry.removeSource(from)
	r.bumpScoreLocked(from, -1)
	r.rejectedTxns++

	if len(entry.sources) == 0 {
		r.dropLocked(entry, requests, queue)
		return
	}

	entry.lastRequestTime = time.Time{}
}

// BlockRejected records that a received block failed initial
// acceptance. The entry stays tracked and becomes immediately eligible
// for a re-request from another source.
func (r *Requester) BlockRejected(inv wire.InvVect, from p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.blockRequests[inv.Hash]
	if !found {
		return
	}

	r.clearInFlightLocked(entry)
	entry.processing = false
	entry.removeSource(from)
	r.bumpScoreLocked(from, -1)
	entry.lastRequestTime = time.Time{}
}

// RequestBlock requests a single block from a specific peer right
// away, bypassing the scheduler queue.
func (r *Requester) RequestBlock(from p2p.NodeID, inv wire.InvVect) error {
	peer := r.peers.GetPeer(from)
	if peer == nil || !peer.Connected() {
		return ErrPeerNotConnected
	}

	r.mu.Lock()

	entry := r.askForLocked(inv, from, 1)
	entry.lastRequestTime = r.now()
	entry.lastSource = from
	entry.outstandingReqs++
	r.inFlight++
	r.markBlockAsInFlightLocked(from, inv.Hash)

	r.mu.Unlock()

	msg := wire.NewMsgGetData()
	_ = msg.AddInvVect(&inv)
	peer.WriteMsg(msg)

	return nil
}

// RequestCorruptedBlock re-requests a block whose stored copy failed
// an integrity check. Receipt dedup is bypassed and every connected
// peer becomes a candidate source.
func (r *Requester) RequestCorruptedBlock(hash chainhash.Hash) {
	r.recentlyReceived.Delete(hash.String())
	connected := r.peers.GetPeers()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.blockRequests[hash]
	if !found {
		inv := wire.InvVect{Type: wire.InvTypeBlock, Hash: hash}
		entry = newObjectRequest(inv, 1)
		r.blockRequests[hash] = entry
		r.blockQueue.add(hash)
	}

	entry.processing = false
	entry.lastRequestTime = time.Time{}
	for _, peer := range connected {
		if peer.Connected() {
			entry.addSource(peer.ID(), r.sourceDesirabilityLocked(peer.ID()))
		}
	}
}

// ResetLastBlockRequestTime clears the request timestamp of a block so
// the scheduler treats it as immediately eligible. Called when a peer
// with blocks in flight disconnects.
func (r *Requester) ResetLastBlockRequestTime(hash *chainhash.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resetBlockRequestTimeLocked(hash)
}

func (r *Requester) resetBlockRequestTimeLocked(hash *chainhash.Hash) {
	entry, found := r.blockRequests[*hash]
	if !found {
		return
	}

	if entry.outstandingReqs > 0 && r.inFlight > 0 {
		r.inFlight--
	}
	entry.lastRequestTime = time.Time{}
	entry.outstandingReqs = 0
}

// sendItem is a committed request awaiting transmission to one peer.
type sendItem struct {
	id     p2p.NodeID
	hashes []chainhash.Hash
	msg    *wire.MsgGetData
}

// SendRequests runs one dispatch pass over the not-yet-requested and
// timed-out objects. Each pass examines a bounded slice of the backlog
// starting at the saved cursor, so repeated invocations drain a large
// backlog fairly. State is committed under the lock before any message
// is written to a peer.
func (r *Requester) SendRequests() {
	now := r.now()

	r.mu.Lock()

	items := make(map[p2p.NodeID]*sendItem)
	r.dispatchQueueLocked(r.blockQueue, r.blockRequests, r.blkRetryInterval, now, items)
	r.dispatchQueueLocked(r.txQueue, r.txRequests, r.txRetryInterval, now, items)

	r.mu.Unlock()

	for _, item := range items {
		peer := r.peers.GetPeer(item.id)
		if peer == nil || !peer.Connected() {
			r.requeueFailedSend(item)
			continue
		}
		peer.WriteMsg(item.msg)
	}
}

func (r *Requester) dispatchQueueLocked(queue *objectQueue, requests map[chainhash.Hash]*objectRequest, retryInterval time.Duration, now time.Time, items map[p2p.NodeID]*sendItem) {
	for _, hash := range queue.next(r.sendLimitPerPass) {
		entry, found := requests[hash]
		if !found || entry.processing {
			continue
		}

		if !entry.lastRequestTime.IsZero() {
			last := entry.lastRequestTime
			if entry.downloadingSince.After(last) {
				// data is arriving; judge staleness from the transfer,
				// not the request
				last = entry.downloadingSince
			}
			if now.Sub(last) < retryInterval {
				continue
			}

			// outstanding request timed out, free the slot
			r.clearInFlightLocked(entry)
			if entry.rateLimited {
				// the delay was our own pacing, the source already
				// took its penalty
				entry.rateLimited = false
			} else {
				r.bumpScoreLocked(entry.lastSource, -1)
				r.logger.Debug("Request timed out, retrying from another source",
					slog.String("hash", hash.String()),
					slog.Int("peer", int(entry.lastSource)))
			}
		}

		source := r.pickLiveSourceLocked(entry)
		if source == nil {
			r.dropLocked(entry, requests, queue)
			continue
		}

		if !r.pacer.try(1, now) {
			// budget exhausted: flag the entry and move it to the back
			// so the next pass serves fresher work first
			entry.rateLimited = true
			queue.remove(hash)
			queue.add(hash)
			break
		}
		entry.rateLimited = false

		entry.lastRequestTime = now
		entry.lastSource = source.id
		entry.outstandingReqs++
		r.inFlight++
		source.requestCount++
		if source.desirability > 0 {
			source.desirability--
		}

		if entry.isBlock() {
			r.markBlockAsInFlightLocked(source.id, hash)
		} else if state, ok := r.nodeStates[source.id]; ok {
			state.txsInFlight++
		}

		item, ok := items[source.id]
		if !ok {
			item = &sendItem{id: source.id, msg: wire.NewMsgGetData()}
			items[source.id] = item
		}
		inv := entry.inv
		_ = item.msg.AddInvVect(&inv)
		item.hashes = append(item.hashes, hash)
	}
}

// pickLiveSourceLocked returns the best source whose peer is still
// connected, pruning sources that are gone.
func (r *Requester) pickLiveSourceLocked(entry *objectRequest) *objectSource {
	live := entry.sources[:0]
	for _, s := range entry.sources {
		if peer := r.peers.GetPeer(s.id); peer != nil && peer.Connected() {
			live = append(live, s)
		}
	}
	entry.sources = live

	return entry.bestSource(func(id p2p.NodeID) int {
		if state, found := r.nodeStates[id]; found {
			return state.inFlightLoad()
		}
		return 0
	})
}

// requeueFailedSend reverts the in-flight commit for requests whose
// peer vanished between commit and write, making them immediately
// eligible again.
func (r *Requester) requeueFailedSend(item *sendItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, hash := range item.hashes {
		entry, found := r.blockRequests[hash]
		if found {
			r.markBlockAsReceivedLocked(hash, item.id)
		} else if entry, found = r.txRequests[hash]; !found {
			continue
		}

		r.clearInFlightLocked(entry)
		entry.lastRequestTime = time.Time{}
	}
}

// clearInFlightLocked releases all in-flight bookkeeping for an entry:
// peer slots, the global index and the aggregate counter.
func (r *Requester) clearInFlightLocked(entry *objectRequest) {
	if entry.outstandingReqs == 0 {
		return
	}

	if entry.isBlock() {
		for id := range r.blocksInFlight[entry.inv.Hash] {
			r.removeBlockInFlightLocked(entry.inv.Hash, id)
		}
	} else if state, found := r.nodeStates[entry.lastSource]; found && state.txsInFlight > 0 {
		state.txsInFlight--
	}

	r.inFlight -= int64(entry.outstandingReqs)
	entry.outstandingReqs = 0
}

func (r *Requester) dropLocked(entry *objectRequest, requests map[chainhash.Hash]*objectRequest, queue *objectQueue) {
	r.clearInFlightLocked(entry)
	delete(requests, entry.inv.Hash)
	queue.remove(entry.inv.Hash)
	r.droppedTxns++

	r.logger.Info("Dropping object, all sources exhausted",
		slog.String("hash", entry.inv.Hash.String()))
}

// RecordThinTypeRequest notes one thin block request made by the peer,
// feeding the DoS window.
func (r *Requester) RecordThinTypeRequest(from p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.nodeStates[from]
	if !found {
		return
	}

	state.recordThinTypeRequest(r.now(), ThinTypeRequestWindow)
}

// CheckForRequestDOS reports whether the peer exceeded the thin-type
// request allowance within the sliding window. The caller decides
// whether to ban or disconnect; the requester never closes sockets.
func (r *Requester) CheckForRequestDOS(from p2p.NodeID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.nodeStates[from]
	if !found {
		return false
	}

	state.pruneThinTypeRequests(r.now(), ThinTypeRequestWindow)

	return len(state.thinTypeRequests) > r.maxThinTypeRequests
}

// InitializeNodeState registers per-peer bookkeeping after a completed
// handshake.
func (r *Requester) InitializeNodeState(id p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.nodeStates[id]; !found {
		r.nodeStates[id] = newNodeState()
	}
}

// RemoveNodeState drops a disconnected peer's bookkeeping and returns
// all its in-flight objects to the unrequested pool. A disconnect is
// unambiguous evidence the current attempt failed, so the objects are
// immediately eligible for other sources.
func (r *Requester) RemoveNodeState(id p2p.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.nodeStates[id]
	if !found {
		return
	}

	for elem := state.blocksInFlight.Front(); elem != nil; elem = elem.Next() {
		qb := elem.Value.(queuedBlock)
		hash := qb.hash
		if byNode, ok := r.blocksInFlight[hash]; ok {
			delete(byNode, id)
			if len(byNode) == 0 {
				delete(r.blocksInFlight, hash)
			}
		}
		r.resetBlockRequestTimeLocked(&hash)
	}

	for _, entry := range r.txRequests {
		if entry.lastSource == id && entry.outstandingReqs > 0 {
			entry.outstandingReqs = 0
			entry.lastRequestTime = time.Time{}
			if r.inFlight > 0 {
				r.inFlight--
			}
		}
	}

	delete(r.nodeStates, id)
}

// GetBlocksInFlight returns the hashes currently in flight from the
// peer, oldest request first.
func (r *Requester) GetBlocksInFlight(id p2p.NodeID) []chainhash.Hash {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, found := r.nodeStates[id]
	if !found {
		return nil
	}

	hashes := make([]chainhash.Hash, 0, state.blocksInFlight.Len())
	for elem := state.blocksInFlight.Front(); elem != nil; elem = elem.Next() {
		hashes = append(hashes, elem.Value.(queuedBlock).hash)
	}

	return hashes
}

func (r *Requester) GetNumBlocksInFlight(id p2p.NodeID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, found := r.nodeStates[id]
	if !found {
		return 0
	}

	return state.blocksInFlight.Len()
}

// DisconnectOnDownloadTimeout reports whether the peer's oldest
// in-flight block has been stalled past the timeout with no download
// progress. Pruning only starts once enough peers are connected that
// losing one is affordable.
func (r *Requester) DisconnectOnDownloadTimeout(id p2p.NodeID, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.nodeStates[id]
	if !found || state.blocksInFlight.Len() == 0 {
		return false
	}

	if r.peers.CountConnectedPeers() < BeginPruningPeers {
		return false
	}

	if now.Sub(state.downloadingSince) <= r.downloadTimeout {
		return false
	}

	if peer := r.peers.GetPeer(id); peer != nil {
		received := peer.BytesReceived()
		if received > state.lastBytesReceived {
			// progress was made, restart the stall clock
			state.lastBytesReceived = received
			state.downloadingSince = now
			return false
		}
	}

	r.logger.Warn("Peer stalled block download",
		slog.Int("peer", int(id)),
		slog.Int("inFlight", state.blocksInFlight.Len()))

	return true
}

// Cleanup drains all request-tracking state for shutdown. No further
// network writes are attempted.
func (r *Requester) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.txRequests = make(map[chainhash.Hash]*objectRequest)
	r.blockRequests = make(map[chainhash.Hash]*objectRequest)
	r.txQueue.clear()
	r.blockQueue.clear()
	r.nodeStates = make(map[p2p.NodeID]*nodeState)
	r.blocksInFlight = make(blocksInFlightIndex)
	r.inFlight = 0
	r.pacer.reset(r.now())
	r.recentlyReceived.Flush()

	r.logger.Info("Request tracking state drained")
}

// GetStats returns a snapshot of the requester counters.
func (r *Requester) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		PendingTxns:   int64(len(r.txRequests)),
		PendingBlocks: int64(len(r.blockRequests)),
		InFlight:      r.inFlight,
		ReceivedTxns:  r.receivedTxns,
		RejectedTxns:  r.rejectedTxns,
		DroppedTxns:   r.droppedTxns,
		Duplicates:    r.duplicates,
	}
}

func (r *Requester) sourceDesirabilityLocked(id p2p.NodeID) int {
	if state, found := r.nodeStates[id]; found {
		return state.score
	}

	return baseSourceDesirability
}

func (r *Requester) bumpScoreLocked(id p2p.NodeID, delta int) {
	state, found := r.nodeStates[id]
	if !found {
		return
	}

	state.score += delta
	if state.score < 0 {
		state.score = 0
	}
	if state.score > maxSourceDesirability {
		state.score = maxSourceDesirability
	}
}
