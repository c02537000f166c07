package requester

import (
	"time"

	"github.com/libsv/go-p2p/wire"

	"github.com/memberapp/Membercoin/internal/p2p"
)

// objectSource is one peer believed to possess an object, scored by
// desirability. requestCount tracks how often this source has already
// been tried for this object.
type objectSource struct {
	id           p2p.NodeID
	requestCount int
	desirability int
}

// objectRequest tracks the request lifecycle for a single content
// hash. Sources keep their insertion order, the tie-break when
// desirabilities are equal.
type objectRequest struct {
	inv              wire.InvVect
	sources          []*objectSource
	lastRequestTime  time.Time // zero means no request outstanding
	downloadingSince time.Time
	processing       bool
	rateLimited      bool
	priority         uint32
	outstandingReqs  uint
	lastSource       p2p.NodeID
}

func newObjectRequest(inv wire.InvVect, priority uint32) *objectRequest {
	return &objectRequest{
		inv:      inv,
		priority: priority,
	}
}

func (o *objectRequest) isBlock() bool {
	return o.inv.Type == wire.InvTypeBlock || o.inv.Type == wire.InvTypeFilteredBlock
}

// addSource registers a candidate holder and reports whether it was
// new. Re-announcing does not alter the existing score.
func (o *objectRequest) addSource(id p2p.NodeID, desirability int) bool {
	for _, s := range o.sources {
		if s.id == id {
			return false
		}
	}

	o.sources = append(o.sources, &objectSource{id: id, desirability: desirability})
	return true
}

// removeSource drops a peer from the candidate list and reports
// whether it was present.
func (o *objectRequest) removeSource(id p2p.NodeID) bool {
	for i, s := range o.sources {
		if s.id == id {
			o.sources = append(o.sources[:i], o.sources[i+1:]...)
			return true
		}
	}

	return false
}

// bestSource picks the next source to try. Less-tried sources come
// first so a retry fails over instead of hammering the same peer, then
// desirability decides, then the lighter in-flight load, then
// insertion order. load reports the current number of outstanding
// requests for a peer.
func (o *objectRequest) bestSource(load func(id p2p.NodeID) int) *objectSource {
	var best *objectSource
	bestLoad := 0
	for _, s := range o.sources {
		if best == nil {
			best = s
			bestLoad = load(s.id)
			continue
		}

		if s.requestCount != best.requestCount {
			if s.requestCount < best.requestCount {
				best = s
				bestLoad = load(s.id)
			}
			continue
		}

		if s.desirability < best.desirability {
			continue
		}
		if s.desirability > best.desirability {
			best = s
			bestLoad = load(s.id)
			continue
		}

		if l := load(s.id); l < bestLoad {
			best = s
			bestLoad = l
		}
	}

	return best
}
