package p2p

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/libsv/go-p2p/wire"
)

// WireReader decodes wire messages from a peer connection. Each
// message may consume at most maxMsgSize bytes, so one oversized
// announcement cannot starve the node of read capacity; the limit is
// re-armed after every message.
type WireReader struct {
	bufio.Reader
	limitedReader *io.LimitedReader
	maxMsgSize    int64
}

func NewWireReader(r io.Reader, maxMsgSize int64) *WireReader {
	lr := &io.LimitedReader{R: r, N: maxMsgSize}

	return &WireReader{
		Reader:        *bufio.NewReader(lr),
		limitedReader: lr,
		maxMsgSize:    maxMsgSize,
	}
}

func NewWireReaderSize(r io.Reader, maxMsgSize int64, buffSize int) *WireReader {
	lr := &io.LimitedReader{R: r, N: maxMsgSize}

	return &WireReader{
		Reader:        *bufio.NewReaderSize(lr, buffSize),
		limitedReader: lr,
		maxMsgSize:    maxMsgSize,
	}
}

type readResult struct {
	msg wire.Message
	err error
}

// ReadNextMsg returns the next decodable message from the connection.
// Commands this node does not handle are skipped rather than surfaced
// as errors. Returns early when the context is canceled; the
// underlying read then finishes against a connection that is being
// torn down.
func (r *WireReader) ReadNextMsg(ctx context.Context, pver uint32, network wire.BitcoinNet) (wire.Message, error) {
	result := make(chan readResult, 1)
	go r.readMsg(pver, network, result)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case readMsg := <-result:
		return readMsg.msg, readMsg.err
	}
}

func (r *WireReader) readMsg(pver uint32, network wire.BitcoinNet, result chan<- readResult) {
	for {
		msg, _, err := wire.ReadMessage(r, pver, network)
		r.resetLimit()

		if err != nil && strings.Contains(err.Error(), "unhandled command [") {
			continue
		}

		result <- readResult{msg, err}
		return
	}
}

func (r *WireReader) resetLimit() {
	r.limitedReader.N = r.maxMsgSize
}
