package requester

import "github.com/libsv/go-p2p/chaincfg/chainhash"

// objectQueue is an ordered container of tracked hashes with a
// persistent cursor. Repeated scheduling passes resume where the last
// one stopped and wrap around, so a large backlog is drained in
// bounded round-robin slices instead of always rescanning from the
// start.
type objectQueue struct {
	order  []*chainhash.Hash // nil entries are tombstones
	slots  map[chainhash.Hash]int
	cursor int
}

func newObjectQueue() *objectQueue {
	return &objectQueue{
		slots: make(map[chainhash.Hash]int),
	}
}

func (q *objectQueue) add(hash chainhash.Hash) {
	if _, found := q.slots[hash]; found {
		return
	}

	h := hash
	q.order = append(q.order, &h)
	q.slots[hash] = len(q.order) - 1
}

// remove tombstones the entry. Dead slots are skipped during iteration
// and dropped wholesale once they dominate the backing slice.
func (q *objectQueue) remove(hash chainhash.Hash) {
	slot, found := q.slots[hash]
	if !found {
		return
	}

	q.order[slot] = nil
	delete(q.slots, hash)

	if len(q.slots)*2 < len(q.order) {
		q.compact()
	}
}

func (q *objectQueue) compact() {
	kept := make([]*chainhash.Hash, 0, len(q.slots))
	newCursor := 0
	for i, hash := range q.order {
		if hash == nil {
			continue
		}
		if i < q.cursor {
			newCursor++
		}
		q.slots[*hash] = len(kept)
		kept = append(kept, hash)
	}

	q.order = kept
	q.cursor = newCursor
}

func (q *objectQueue) len() int {
	return len(q.slots)
}

// next returns up to limit live hashes starting at the saved cursor,
// wrapping around the container, and advances the cursor past them.
func (q *objectQueue) next(limit int) []chainhash.Hash {
	if len(q.slots) == 0 || limit <= 0 {
		return nil
	}
	if limit > len(q.slots) {
		limit = len(q.slots)
	}

	out := make([]chainhash.Hash, 0, limit)
	for scanned := 0; scanned < len(q.order) && len(out) < limit; scanned++ {
		if q.cursor >= len(q.order) {
			q.cursor = 0
		}

		hash := q.order[q.cursor]
		q.cursor++

		if hash != nil {
			out = append(out, *hash)
		}
	}

	return out
}

func (q *objectQueue) clear() {
	q.order = nil
	q.slots = make(map[chainhash.Hash]int)
	q.cursor = 0
}
