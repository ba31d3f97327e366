package orderbook

import "errors"

var (
	// ErrPoolExhausted is returned when the order pool has no free slot
	// left. This is a capacity misconfiguration, not a retryable
	// condition: the caller has to free capacity (cancel orders) or size
	// the book for a larger working set.
	ErrPoolExhausted = errors.New("orderbook: order pool exhausted, increase pool capacity")

	// ErrInvalidHandle reports a handle that does not belong to the pool
	// or refers to a slot already released. It signals a broken engine
	// invariant and is never expected in correct operation.
	ErrInvalidHandle = errors.New("orderbook: handle not held by this pool")

	// ErrFillExceedsRemaining reports an attempted fill beyond an
	// order's remaining quantity. Unreachable while the matched quantity
	// is computed as the min of both remainders; seeing it means the
	// book state is corrupted.
	ErrFillExceedsRemaining = errors.New("orderbook: fill exceeds remaining quantity")
)
