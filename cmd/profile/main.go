package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"limitbook/domain"
	"limitbook/orderbook"
)

// Profiling driver: runs a fixed amount of crossing flow under
// runtime/pprof so the matching path can be inspected with
// `go tool pprof cpu.prof`.
func main() {
	numOrders := flag.Int("orders", 2_000_000, "orders to push through the book")
	capacity := flag.Int("capacity", 0, "order pool capacity (0: sized to the order count)")
	flag.Parse()

	if *capacity == 0 {
		// Worst case every order rests; size the pool so drift in the
		// synthetic flow can never exhaust it.
		*capacity = *numOrders
	}

	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		panic(err)
	}
	defer pprof.StopCPUProfile()

	fmt.Printf("profiling %d orders, writing cpu.prof and mem.prof\n", *numOrders)

	book := orderbook.NewOrderBook(*capacity)
	var trades int64

	for seq := 0; seq < *numOrders; seq++ {
		side := domain.Buy
		if seq%2 == 1 {
			side = domain.Sell
		}
		price := domain.Price(50000 + seq%200)
		produced, err := book.AddOrder(domain.GoodTillCancel, domain.OrderID(seq+1), side, price, 1)
		if err != nil {
			panic(err)
		}
		trades += int64(len(produced))
	}

	memFile, err := os.Create("mem.prof")
	if err != nil {
		panic(err)
	}
	defer memFile.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		panic(err)
	}

	fmt.Printf("done: %d trades, %d orders still resting\n", trades, book.Size())
}
