package chain

import (
	"errors"
	"sync"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
)

var (
	ErrUnknownParent = errors.New("parent of header is not in the index")
	ErrUnknownNode   = errors.New("node is not in the index")
)

// Node is one header in the in-memory block tree. Hash, Parent and
// Height are immutable after insertion, so Node methods are safe to
// call without holding the index lock.
type Node struct {
	Hash   chainhash.Hash
	Parent *Node
	Height int32
}

// Ancestor returns the ancestor of n at the given height, or nil when
// the height is above n or negative.
func (n *Node) Ancestor(height int32) *Node {
	if height < 0 || height > n.Height {
		return nil
	}

	walk := n
	for walk != nil && walk.Height != height {
		walk = walk.Parent
	}

	return walk
}

// Index is the header tree of all known blocks plus a record of which
// of them have their full data stored locally. It is the chain
// collaborator of the download scheduler: ancestry, heights and
// common-ancestor computations all come from here.
type Index struct {
	mu       sync.RWMutex
	byHash   map[chainhash.Hash]*Node
	haveData map[chainhash.Hash]struct{}
	tip      *Node
}

func NewIndex() *Index {
	return &Index{
		byHash:   make(map[chainhash.Hash]*Node),
		haveData: make(map[chainhash.Hash]struct{}),
	}
}

// AddGenesis inserts the root of the tree and makes it the tip if no
// tip is set yet.
func (i *Index) AddGenesis(hash chainhash.Hash) *Node {
	i.mu.Lock()
	defer i.mu.Unlock()

	if n, found := i.byHash[hash]; found {
		return n
	}

	n := &Node{Hash: hash, Height: 0}
	i.byHash[hash] = n
	if i.tip == nil {
		i.tip = n
	}

	return n
}

// AddHeader inserts a header whose parent is already known. Inserting
// the same hash twice is a no-op returning the existing node.
func (i *Index) AddHeader(hash, parent chainhash.Hash) (*Node, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if n, found := i.byHash[hash]; found {
		return n, nil
	}

	parentNode, found := i.byHash[parent]
	if !found {
		return nil, ErrUnknownParent
	}

	n := &Node{Hash: hash, Parent: parentNode, Height: parentNode.Height + 1}
	i.byHash[hash] = n

	return n, nil
}

// LookupNode returns the node for the given hash or nil.
func (i *Index) LookupNode(hash *chainhash.Hash) *Node {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.byHash[*hash]
}

func (i *Index) Contains(hash *chainhash.Hash) bool {
	return i.LookupNode(hash) != nil
}

func (i *Index) Tip() *Node {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.tip
}

// Height of the current tip, or -1 when the index is empty.
func (i *Index) Height() int32 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.tip == nil {
		return -1
	}

	return i.tip.Height
}

// SetTip moves the tip to a node already present in the index.
func (i *Index) SetTip(n *Node) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, found := i.byHash[n.Hash]; !found {
		return ErrUnknownNode
	}

	i.tip = n
	return nil
}

// MarkHaveData records that the full block for the given hash has been
// stored locally.
func (i *Index) MarkHaveData(hash *chainhash.Hash) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.haveData[*hash] = struct{}{}
}

func (i *Index) HaveData(hash *chainhash.Hash) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	_, found := i.haveData[*hash]
	return found
}

// LastCommonAncestor returns the deepest node that is an ancestor of
// both a and b, or nil when they share no history.
func LastCommonAncestor(a, b *Node) *Node {
	if a == nil || b == nil {
		return nil
	}

	if a.Height > b.Height {
		a = a.Ancestor(b.Height)
	} else if b.Height > a.Height {
		b = b.Ancestor(a.Height)
	}

	for a != b && a != nil {
		a = a.Parent
		b = b.Parent
	}

	return a
}
