package domain

// OrderID uniquely identifies an order. IDs are assigned by the caller
// (gateway, replay tool, or benchmark driver), never by the engine.
type OrderID uint64

// Price is expressed in signed integer tick units. The engine is
// currency-agnostic: one tick is whatever the instrument says it is.
type Price int64

// Quantity counts units of the instrument at a given price.
type Quantity int64

// Side represents the order side (Buy or Sell)
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// OrderType represents the resting policy of an order:
//   - GoodTillCancel rests until fully filled or explicitly cancelled
//   - FillAndKill executes immediately against available liquidity;
//     any unmatched remainder is cancelled rather than left resting
type OrderType int

const (
	GoodTillCancel OrderType = iota
	FillAndKill
)

func (t OrderType) String() string {
	switch t {
	case GoodTillCancel:
		return "good_till_cancel"
	case FillAndKill:
		return "fill_and_kill"
	default:
		return "unknown"
	}
}
