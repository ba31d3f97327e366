package orderbook

import "limitbook/domain"

// DefaultCapacity sizes the order pool when the caller has no better
// estimate of its working set.
const DefaultCapacity = 1 << 20

// orderEntry locates a resting order without a linear scan: the pool
// handle plus the side and price identifying its level queue.
type orderEntry struct {
	h     handle
	side  domain.Side
	price domain.Price
}

// OrderBook is a price-time priority limit order book for one
// instrument. It owns the price ladders, the order index, and the order
// pool; every public operation runs the matching loop to completion
// before returning, so the book is never left crossed.
//
// The book is single-writer and deterministic: exactly one logical
// caller may drive an instance, and there is no internal locking. A
// caller that needs multiple producers has to serialize in front of it.
type OrderBook struct {
	bids   *ladder
	asks   *ladder
	orders map[domain.OrderID]orderEntry
	pool   *orderPool
}

// NewOrderBook creates a book whose pool holds at most capacity
// concurrently-live orders. Capacity is fixed for the book's lifetime.
func NewOrderBook(capacity int) *OrderBook {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &OrderBook{
		bids:   newLadder(domain.Buy),
		asks:   newLadder(domain.Sell),
		orders: make(map[domain.OrderID]orderEntry, capacity),
		pool:   newOrderPool(capacity),
	}
}

// AddOrder admits an order and runs the crossing loop, returning the
// trades it produced.
//
// Soft no-op conditions, reported as an empty trade list with a nil
// error: a duplicate order id (the resting order is left untouched), a
// non-positive quantity, and a FillAndKill order that cannot cross the
// opposite best at all (it is never allocated).
func (ob *OrderBook) AddOrder(orderType domain.OrderType, id domain.OrderID, side domain.Side, price domain.Price, quantity domain.Quantity) ([]domain.Trade, error) {
	if _, exists := ob.orders[id]; exists {
		return nil, nil
	}
	if quantity <= 0 {
		return nil, nil
	}
	if orderType == domain.FillAndKill && !ob.canMatch(side, price) {
		return nil, nil
	}

	h, err := ob.pool.acquire(orderType, id, side, price, quantity)
	if err != nil {
		return nil, err
	}

	ob.sideLadder(side).getOrCreate(price).pushBack(ob.pool, h)
	ob.orders[id] = orderEntry{h: h, side: side, price: price}

	return ob.matchOrders()
}

// CancelOrder removes a resting order and returns its slot to the pool.
// Unknown ids are a no-op.
func (ob *OrderBook) CancelOrder(id domain.OrderID) error {
	entry, exists := ob.orders[id]
	if !exists {
		return nil
	}
	delete(ob.orders, id)

	ld := ob.sideLadder(entry.side)
	if level, found := ld.level(entry.price); found {
		level.remove(ob.pool, entry.h)
		if level.empty() {
			ld.removeLevel(entry.price)
		}
	}

	return ob.pool.release(entry.h)
}

// ModifyOrder is cancel-and-replace: the existing order is cancelled and
// re-added under the same id with its original type and the new side,
// price, and quantity. The replacement enters the back of its level
// queue, so the order always loses its original time priority, even for
// a pure quantity reduction. Unknown ids are a no-op.
func (ob *OrderBook) ModifyOrder(id domain.OrderID, side domain.Side, price domain.Price, quantity domain.Quantity) ([]domain.Trade, error) {
	entry, exists := ob.orders[id]
	if !exists {
		return nil, nil
	}

	orderType := ob.pool.get(entry.h).orderType
	if err := ob.CancelOrder(id); err != nil {
		return nil, err
	}
	return ob.AddOrder(orderType, id, side, price, quantity)
}

// Size returns the number of currently resident orders.
func (ob *OrderBook) Size() int {
	return len(ob.orders)
}

// BestBid returns the highest resident bid price, if any.
func (ob *OrderBook) BestBid() (domain.Price, bool) {
	price, _, ok := ob.bids.best()
	return price, ok
}

// BestAsk returns the lowest resident ask price, if any.
func (ob *OrderBook) BestAsk() (domain.Price, bool) {
	price, _, ok := ob.asks.best()
	return price, ok
}

// GetLevels snapshots the book: one entry per resident price level per
// side carrying the aggregate remaining quantity, in ladder order, best
// first.
func (ob *OrderBook) GetLevels() (bids, asks []domain.Level) {
	bids = make([]domain.Level, 0, ob.bids.levels())
	asks = make([]domain.Level, 0, ob.asks.levels())

	ob.bids.walk(func(price domain.Price, level *orderList) {
		bids = append(bids, domain.Level{Price: price, Quantity: level.totalRemaining(ob.pool)})
	})
	ob.asks.walk(func(price domain.Price, level *orderList) {
		asks = append(asks, domain.Level{Price: price, Quantity: level.totalRemaining(ob.pool)})
	})
	return bids, asks
}

func (ob *OrderBook) sideLadder(side domain.Side) *ladder {
	if side == domain.Buy {
		return ob.bids
	}
	return ob.asks
}

// canMatch reports whether an incoming order at price would cross the
// opposite side's best. Trivially false when the opposite side is empty.
func (ob *OrderBook) canMatch(side domain.Side, price domain.Price) bool {
	if side == domain.Buy {
		bestAsk, _, ok := ob.asks.best()
		return ok && price >= bestAsk
	}
	bestBid, _, ok := ob.bids.best()
	return ok && price <= bestBid
}

// matchOrders restores the uncrossed-book invariant: while the best bid
// price reaches the best ask price, the two front (earliest-arrived)
// orders pair off for the min of their remainders. Fully filled orders
// are dequeued, deindexed, and released; each pairing emits one trade in
// which each side reports its own resting price; a level is erased only
// after the trade for that pairing is recorded.
//
// Afterwards a FillAndKill order left at either front is cancelled: it
// partially filled against the available liquidity but must never rest.
func (ob *OrderBook) matchOrders() ([]domain.Trade, error) {
	var trades []domain.Trade

	for {
		bidPrice, bidQueue, ok := ob.bids.best()
		if !ok {
			break
		}
		askPrice, askQueue, ok := ob.asks.best()
		if !ok {
			break
		}
		if bidPrice < askPrice {
			break
		}

		for !bidQueue.empty() && !askQueue.empty() {
			bidHandle := bidQueue.front()
			askHandle := askQueue.front()
			bid := ob.pool.get(bidHandle)
			ask := ob.pool.get(askHandle)

			quantity := bid.remaining
			if ask.remaining < quantity {
				quantity = ask.remaining
			}

			if err := bid.fill(quantity); err != nil {
				return trades, err
			}
			if err := ask.fill(quantity); err != nil {
				return trades, err
			}

			trade := domain.Trade{
				Bid: domain.TradeSide{OrderID: bid.id, Price: bid.price, Quantity: quantity},
				Ask: domain.TradeSide{OrderID: ask.id, Price: ask.price, Quantity: quantity},
			}

			if bid.filled() {
				bidQueue.popFront(ob.pool)
				delete(ob.orders, bid.id)
				if err := ob.pool.release(bidHandle); err != nil {
					return trades, err
				}
			}
			if ask.filled() {
				askQueue.popFront(ob.pool)
				delete(ob.orders, ask.id)
				if err := ob.pool.release(askHandle); err != nil {
					return trades, err
				}
			}

			trades = append(trades, trade)

			bidEmpty := bidQueue.empty()
			askEmpty := askQueue.empty()
			if bidEmpty {
				ob.bids.removeLevel(bidPrice)
			}
			if askEmpty {
				ob.asks.removeLevel(askPrice)
			}
			if bidEmpty || askEmpty {
				// One side exhausted this level; recheck the crossing
				// condition at the new best prices.
				break
			}
		}
	}

	if err := ob.killUnmatched(ob.bids); err != nil {
		return trades, err
	}
	if err := ob.killUnmatched(ob.asks); err != nil {
		return trades, err
	}
	return trades, nil
}

// killUnmatched cancels the front order of the side's best level when it
// is FillAndKill. At most one order per side can be in that position
// after the crossing loop exits.
func (ob *OrderBook) killUnmatched(ld *ladder) error {
	_, queue, ok := ld.best()
	if !ok || queue.empty() {
		return nil
	}
	front := ob.pool.get(queue.front())
	if front.orderType != domain.FillAndKill {
		return nil
	}
	return ob.CancelOrder(front.id)
}
