package orderbook

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"limitbook/domain"
)

// ladder is one side of the book: an ordered mapping from price to the
// time-priority queue resting at that price. Bids order descending and
// asks ascending, so the best price is always the leftmost tree entry.
// A level exists in the tree if and only if its queue is non-empty.
type ladder struct {
	tree *rbt.Tree[domain.Price, *orderList]
}

func descendingPrice(a, b domain.Price) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func ascendingPrice(a, b domain.Price) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func newLadder(side domain.Side) *ladder {
	if side == domain.Buy {
		return &ladder{tree: rbt.NewWith[domain.Price, *orderList](descendingPrice)}
	}
	return &ladder{tree: rbt.NewWith[domain.Price, *orderList](ascendingPrice)}
}

// getOrCreate returns the queue at price, creating the level lazily on
// first insertion.
func (ld *ladder) getOrCreate(price domain.Price) *orderList {
	if level, found := ld.tree.Get(price); found {
		return level
	}
	level := &orderList{}
	ld.tree.Put(price, level)
	return level
}

func (ld *ladder) level(price domain.Price) (*orderList, bool) {
	return ld.tree.Get(price)
}

func (ld *ladder) removeLevel(price domain.Price) {
	ld.tree.Remove(price)
}

// best returns the best price and its queue: highest bid, lowest ask.
func (ld *ladder) best() (domain.Price, *orderList, bool) {
	node := ld.tree.Left()
	if node == nil {
		return 0, nil, false
	}
	return node.Key, node.Value, true
}

func (ld *ladder) levels() int {
	return ld.tree.Size()
}

// walk visits every level in ladder order, best first.
func (ld *ladder) walk(visit func(price domain.Price, level *orderList)) {
	it := ld.tree.Iterator()
	for it.Next() {
		visit(it.Key(), it.Value())
	}
}
