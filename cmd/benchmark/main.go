package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"limitbook/domain"
	"limitbook/orderbook"
)

// config holds the benchmark knobs. Flags cover the common ones; a YAML
// file (-config) can set everything at once for repeatable runs.
type config struct {
	Duration  time.Duration `yaml:"duration"`
	Capacity  int           `yaml:"capacity"`
	BasePrice int64         `yaml:"base_price"`
	PriceBand int64         `yaml:"price_band"`
	PinCore   int           `yaml:"pin_core"`
}

func defaultConfig() config {
	return config{
		Duration:  5 * time.Second,
		Capacity:  orderbook.DefaultCapacity,
		BasePrice: 50000,
		PriceBand: 200,
		PinCore:   -1,
	}
}

// latency samples are taken every sampleEvery operations so measuring
// does not dominate the hot loop.
const sampleEvery = 1024

func main() {
	cfg := defaultConfig()

	configPath := flag.String("config", "", "YAML config file (overrides defaults)")
	flag.DurationVar(&cfg.Duration, "duration", cfg.Duration, "how long to run")
	flag.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "order pool capacity")
	flag.IntVar(&cfg.PinCore, "pin", cfg.PinCore, "pin the driving thread to this core (-1 to disable)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.WithError(err).Fatal("read config")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.WithError(err).Fatal("parse config")
		}
	}

	// The engine is synchronous and single-writer: the whole benchmark
	// is one goroutine locked to one OS thread, optionally pinned to a
	// core to cut scheduling jitter out of the latency samples.
	runtime.LockOSThread()
	if cfg.PinCore >= 0 {
		if err := pinToCore(cfg.PinCore); err != nil {
			log.WithError(err).Warn("core pinning failed, continuing unpinned")
		} else {
			log.WithField("core", cfg.PinCore).Info("driving thread pinned")
		}
	}

	log.WithFields(logrus.Fields{
		"duration":  cfg.Duration,
		"capacity":  cfg.Capacity,
		"baseprice": cfg.BasePrice,
		"band":      cfg.PriceBand,
	}).Info("benchmark starting")

	book := orderbook.NewOrderBook(cfg.Capacity)

	// Synthetic flow drifts: one side of the band outruns the other, so
	// resting depth grows over a long run. The driver evicts the oldest
	// resting orders between watermarks to keep the live set inside the
	// fixed pool, which also exercises out-of-order cancellation.
	highWater := cfg.Capacity * 3 / 4
	lowWater := cfg.Capacity / 2

	var (
		orders   int64
		trades   int64
		cancels  int64
		arrivals []domain.OrderID // arrival order; may contain already-filled ids
		samples  []time.Duration
		deadline = time.Now().Add(cfg.Duration)
		start    = time.Now()
		lastTick = start
	)

	for seq := int64(0); ; seq++ {
		// Alternate sides inside one overlapping band so flow both
		// rests and crosses.
		side := domain.Buy
		if seq%2 == 1 {
			side = domain.Sell
		}
		price := domain.Price(cfg.BasePrice + seq%cfg.PriceBand)
		id := domain.OrderID(seq + 1)

		sampled := seq%sampleEvery == 0
		var begin time.Time
		if sampled {
			begin = time.Now()
		}

		produced, err := book.AddOrder(domain.GoodTillCancel, id, side, price, 1)
		if err != nil {
			log.WithError(err).WithField("order", id).Fatal("add order failed")
		}

		if sampled {
			samples = append(samples, time.Since(begin))
		}

		orders++
		trades += int64(len(produced))
		arrivals = append(arrivals, id)

		if book.Size() >= highWater {
			evicted, err := evictOldest(book, &arrivals, lowWater)
			if err != nil {
				log.WithError(err).Fatal("evict failed")
			}
			cancels += evicted
		}

		// Time checks are batched: the clock is not free at this rate.
		if seq%4096 != 0 {
			continue
		}
		now := time.Now()
		if now.Sub(lastTick) >= time.Second {
			lastTick = now
			elapsed := now.Sub(start).Seconds()
			log.WithFields(logrus.Fields{
				"orders_per_sec": int64(float64(orders) / elapsed),
				"trades_per_sec": int64(float64(trades) / elapsed),
				"resting":        book.Size(),
			}).Info("progress")
		}
		if now.After(deadline) {
			break
		}
	}

	elapsed := time.Since(start)
	report(log, book, orders, trades, cancels, elapsed, samples)
}

// evictOldest cancels orders in arrival order until the book drops to
// target resident orders. Ids already matched away cancel as no-ops.
func evictOldest(book *orderbook.OrderBook, arrivals *[]domain.OrderID, target int) (int64, error) {
	var cancelled int64
	queue := *arrivals
	for len(queue) > 0 && book.Size() > target {
		if err := book.CancelOrder(queue[0]); err != nil {
			return cancelled, err
		}
		queue = queue[1:]
		cancelled++
	}
	// Drop the consumed prefix for real so the backing array is reusable.
	*arrivals = append((*arrivals)[:0], queue...)
	return cancelled, nil
}

func report(log *logrus.Logger, book *orderbook.OrderBook, orders, trades, cancels int64, elapsed time.Duration, samples []time.Duration) {
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	percentile := func(p float64) time.Duration {
		if len(samples) == 0 {
			return 0
		}
		idx := int(float64(len(samples)-1) * p)
		return samples[idx]
	}

	bids, asks := book.GetLevels()

	fmt.Println("=== benchmark results ===")
	fmt.Printf("elapsed:        %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("orders:         %d (%.0f/s)\n", orders, float64(orders)/elapsed.Seconds())
	fmt.Printf("trades:         %d (%.0f/s)\n", trades, float64(trades)/elapsed.Seconds())
	fmt.Printf("cancels:        %d\n", cancels)
	fmt.Printf("resting orders: %d (%d bid levels, %d ask levels)\n", book.Size(), len(bids), len(asks))
	fmt.Printf("add latency:    p50=%v p99=%v max=%v (%d samples)\n",
		percentile(0.50), percentile(0.99), percentile(1.0), len(samples))

	log.Info("benchmark finished")
}
