package orderbook_test

import (
	"math/rand"
	"testing"

	"limitbook/domain"
	"limitbook/orderbook"
)

// BenchmarkAddOrder measures resting inserts: every order lands on its
// own side of a wide spread so nothing crosses.
func BenchmarkAddOrder(b *testing.B) {
	book := orderbook.NewOrderBook(b.N + 1)
	rng := rand.New(rand.NewSource(1))

	sides := make([]domain.Side, b.N)
	prices := make([]domain.Price, b.N)
	for n := 0; n < b.N; n++ {
		if rng.Intn(2) == 0 {
			sides[n] = domain.Buy
			prices[n] = domain.Price(1000 + rng.Intn(100))
		} else {
			sides[n] = domain.Sell
			prices[n] = domain.Price(2000 + rng.Intn(100))
		}
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		book.AddOrder(domain.GoodTillCancel, domain.OrderID(n+1), sides[n], prices[n], 10)
	}
}

// BenchmarkCrossingFlow measures the full add+match+release cycle:
// each buy is chased by a sell at the same price, so every pair trades
// and slots churn through the pool instead of accumulating.
func BenchmarkCrossingFlow(b *testing.B) {
	book := orderbook.NewOrderBook(1 << 16)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		side := domain.Buy
		if n%2 == 1 {
			side = domain.Sell
		}
		price := domain.Price(1000 + (n/2)%16)
		if _, err := book.AddOrder(domain.GoodTillCancel, domain.OrderID(n+1), side, price, 1); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCancelOrder measures cancel of a resting order plus the
// reinsert that keeps the book populated.
func BenchmarkCancelOrder(b *testing.B) {
	book := orderbook.NewOrderBook(1 << 16)

	const depth = 1 << 10
	for i := 0; i < depth; i++ {
		book.AddOrder(domain.GoodTillCancel, domain.OrderID(i+1), domain.Buy, domain.Price(1000+i%64), 10)
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		id := domain.OrderID(n%depth + 1)
		if err := book.CancelOrder(id); err != nil {
			b.Fatal(err)
		}
		if _, err := book.AddOrder(domain.GoodTillCancel, id, domain.Buy, domain.Price(1000+n%64), 10); err != nil {
			b.Fatal(err)
		}
	}
}
