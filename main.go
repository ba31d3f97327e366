package main

import (
	"fmt"

	"limitbook/domain"
	"limitbook/orderbook"
)

// Demo driver: a handful of orders through one book, printing what the
// engine returns. See cmd/benchmark and cmd/replay for the real drivers.
func main() {
	book := orderbook.NewOrderBook(orderbook.DefaultCapacity)

	if _, err := book.AddOrder(domain.GoodTillCancel, 1, domain.Buy, 100, 10); err != nil {
		panic(err)
	}
	fmt.Printf("resting orders: %d\n", book.Size())

	trades, err := book.AddOrder(domain.GoodTillCancel, 2, domain.Sell, 100, 4)
	if err != nil {
		panic(err)
	}
	for _, trade := range trades {
		fmt.Printf("trade: bid %d @ %d x ask %d @ %d, quantity %d\n",
			trade.Bid.OrderID, trade.Bid.Price, trade.Ask.OrderID, trade.Ask.Price, trade.Bid.Quantity)
	}

	bids, asks := book.GetLevels()
	fmt.Printf("depth: %d bid levels, %d ask levels\n", len(bids), len(asks))

	if err := book.CancelOrder(1); err != nil {
		panic(err)
	}
	fmt.Printf("resting orders: %d\n", book.Size())
}
