package orderbook

import "limitbook/domain"

// order is one pool slot: the resting/in-flight order itself plus the
// intrusive queue links that make level-queue removal O(1). Orders never
// leave the package; callers exchange scalars and domain.Trades only.
type order struct {
	id        domain.OrderID
	side      domain.Side
	orderType domain.OrderType
	price     domain.Price
	initial   domain.Quantity
	remaining domain.Quantity

	// Position links within the level queue, maintained by orderList.
	// They index the same pool that owns this slot.
	next handle
	prev handle
}

func (o *order) filled() bool {
	return o.remaining == 0
}

// fill decrements the remaining quantity. remaining is the only mutable
// field of a live order, and fill is the only mutator.
func (o *order) fill(quantity domain.Quantity) error {
	if quantity > o.remaining {
		return ErrFillExceedsRemaining
	}
	o.remaining -= quantity
	return nil
}
