package domain

// TradeSide records one settled side of a match event: the resting
// order's id, the price it was resting at, and the matched quantity.
// The quantity is identical on both sides of a Trade.
type TradeSide struct {
	OrderID  OrderID
	Price    Price
	Quantity Quantity
}

// Trade is a paired settlement record produced once per match event.
// Trades are transient output for the caller (settlement, reporting,
// risk); the engine retains no trade state.
type Trade struct {
	Bid TradeSide
	Ask TradeSide
}

// Level is one entry of a depth snapshot: a resident price and the sum
// of remaining quantities of all orders at that price.
type Level struct {
	Price    Price
	Quantity Quantity
}
