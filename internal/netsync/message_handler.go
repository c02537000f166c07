package netsync

import (
	"log/slog"

	"github.com/libsv/go-p2p/wire"

	"github.com/memberapp/Membercoin/internal/chain"
	"github.com/memberapp/Membercoin/internal/p2p"
	"github.com/memberapp/Membercoin/internal/requester"
)

var _ p2p.MessageHandlerI = (*MessageHandler)(nil)

// MessageHandler routes inbound wire messages to the request manager
// and the validator. It is the only caller of the requester's public
// surface.
type MessageHandler struct {
	logger      *slog.Logger
	requester   *requester.Requester
	chainIndex  *chain.Index
	headerStore HeaderStore
	validator   Validator
	ibd         func() bool
}

func NewMessageHandler(logger *slog.Logger, req *requester.Requester, chainIndex *chain.Index, headerStore HeaderStore, validator Validator, ibd func() bool) *MessageHandler {
	return &MessageHandler{
		logger:      logger.With(slog.String("module", "netsync")),
		requester:   req,
		chainIndex:  chainIndex,
		headerStore: headerStore,
		validator:   validator,
		ibd:         ibd,
	}
}

// OnReceive handles an incoming message depending on its type.
func (h *MessageHandler) OnReceive(msg wire.Message, peer p2p.PeerI) {
	if peer == nil {
		return
	}
	id := peer.ID()

	switch m := msg.(type) {
	case *wire.MsgVersion:
		h.requester.InitializeNodeState(id)

	case *wire.MsgInv:
		h.handleInv(m, id)

	case *wire.MsgTx:
		h.handleTx(m, id)

	case *wire.MsgBlock:
		h.handleBlock(m, id)

	case *wire.MsgHeaders:
		h.handleHeaders(m, id)

	case *wire.MsgReject:
		inv := wire.InvVect{Type: wire.InvTypeTx, Hash: m.Hash}
		if m.Cmd == wire.CmdBlock {
			inv.Type = wire.InvTypeBlock
		}
		h.requester.Rejected(inv, id, m.Reason)

	case *wire.MsgGetData:
		h.handleGetData(m, id, peer)

	default:
		// ignore other messages
	}
}

// OnSend handles a message sent to a peer.
func (h *MessageHandler) OnSend(msg wire.Message, peer p2p.PeerI) {
	if peer == nil {
		return
	}

	h.logger.Debug("Sent", slog.String("cmd", msg.Command()), slog.String("peer", peer.String()))
}

func (h *MessageHandler) handleInv(msg *wire.MsgInv, id p2p.NodeID) {
	var blockInvs []wire.InvVect
	var txInvs []wire.InvVect
	for _, inv := range msg.InvList {
		switch inv.Type {
		case wire.InvTypeBlock, wire.InvTypeFilteredBlock:
			blockInvs = append(blockInvs, *inv)
		case wire.InvTypeTx:
			txInvs = append(txInvs, *inv)
		}
	}

	if len(blockInvs) > 0 {
		// the newest block an inv announces is what the peer claims
		// to have
		last := blockInvs[len(blockInvs)-1].Hash
		h.requester.UpdateBlockAvailability(id, &last)

		if h.ibd() {
			h.requester.AskForDuringIBD(blockInvs, id, 1)
		} else {
			h.requester.AskForMany(blockInvs, id, 1)
		}
	}

	if len(txInvs) > 0 {
		h.requester.AskForMany(txInvs, id, 0)
	}
}

func (h *MessageHandler) handleTx(msg *wire.MsgTx, id p2p.NodeID) {
	hash := msg.TxHash()
	inv := wire.InvVect{Type: wire.InvTypeTx, Hash: hash}

	if h.requester.RecentlyReceived(&hash) {
		h.requester.AlreadyReceived(id, inv)
		return
	}

	h.requester.ProcessingTx(&hash, id)

	if err := h.validator.ValidateTx(msg); err != nil {
		h.requester.Rejected(inv, id, err.Error())
		return
	}

	h.requester.Received(inv, id)
}

func (h *MessageHandler) handleBlock(msg *wire.MsgBlock, id p2p.NodeID) {
	hash := msg.BlockHash()
	inv := wire.InvVect{Type: wire.InvTypeBlock, Hash: hash}

	if h.requester.RecentlyReceived(&hash) {
		h.requester.AlreadyReceived(id, inv)
		return
	}

	h.requester.Downloading(&hash, id)
	h.requester.ProcessingBlock(&hash, id)

	if err := h.validator.ValidateBlock(msg); err != nil {
		h.logger.Warn("Block failed validation",
			slog.String("hash", hash.String()),
			slog.String("err", err.Error()))
		h.requester.BlockRejected(inv, id)
		return
	}

	node, err := h.chainIndex.AddHeader(hash, msg.Header.PrevBlock)
	if err == nil {
		h.chainIndex.MarkHaveData(&hash)
		if tip := h.chainIndex.Tip(); tip == nil || node.Height > tip.Height {
			_ = h.chainIndex.SetTip(node)
		}
	}

	h.requester.Received(inv, id)

	// keep the peer's download pipeline full
	h.requester.RequestNextBlocksToDownload(id)
}

func (h *MessageHandler) handleHeaders(msg *wire.MsgHeaders, id p2p.NodeID) {
	var lastHash *wire.BlockHeader
	for _, header := range msg.Headers {
		hash := header.BlockHash()

		node, err := h.chainIndex.AddHeader(hash, header.PrevBlock)
		if err != nil {
			h.logger.Debug("Orphan header",
				slog.String("hash", hash.String()),
				slog.Int("peer", int(id)))
			continue
		}

		if err = h.headerStore.WriteHeader(&hash, &header.PrevBlock, node.Height); err != nil {
			h.logger.Error("Failed to persist header", slog.String("err", err.Error()))
		}

		h.requester.UpdateBlockAvailability(id, &hash)
		lastHash = header
	}

	if lastHash != nil {
		h.requester.RequestNextBlocksToDownload(id)
	}
}

func (h *MessageHandler) handleGetData(msg *wire.MsgGetData, id p2p.NodeID, peer p2p.PeerI) {
	for _, inv := range msg.InvList {
		if inv.Type != wire.InvTypeFilteredBlock {
			continue
		}

		h.requester.RecordThinTypeRequest(id)
	}

	if h.requester.CheckForRequestDOS(id) {
		h.logger.Warn("Peer exceeded thin block request limit, disconnecting",
			slog.String("peer", peer.String()))
		h.requester.RemoveNodeState(id)
		peer.Shutdown()
	}
}
