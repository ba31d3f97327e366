package orderbook

import (
	"errors"
	"testing"

	"limitbook/domain"
)

func TestPoolAcquireRelease(t *testing.T) {
	pool := newOrderPool(2)

	h, err := pool.acquire(domain.GoodTillCancel, 1, domain.Buy, 100, 10)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	o := pool.get(h)
	if o == nil {
		t.Fatal("expected live order behind fresh handle")
	}
	if o.id != 1 || o.price != 100 || o.remaining != 10 || o.initial != 10 {
		t.Errorf("slot not reconstructed: %+v", o)
	}
	if pool.available() != 1 {
		t.Errorf("expected 1 free slot, got %d", pool.available())
	}

	if err := pool.release(h); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if pool.available() != 2 {
		t.Errorf("expected 2 free slots after release, got %d", pool.available())
	}
}

func TestPoolExhausted(t *testing.T) {
	pool := newOrderPool(1)

	if _, err := pool.acquire(domain.GoodTillCancel, 1, domain.Buy, 100, 10); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	_, err := pool.acquire(domain.GoodTillCancel, 2, domain.Buy, 100, 10)
	if !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("expected ErrPoolExhausted, got %v", err)
	}
}

func TestPoolDoubleRelease(t *testing.T) {
	pool := newOrderPool(1)

	h, _ := pool.acquire(domain.GoodTillCancel, 1, domain.Buy, 100, 10)
	if err := pool.release(h); err != nil {
		t.Fatalf("first release failed: %v", err)
	}

	if err := pool.release(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("expected ErrInvalidHandle on double release, got %v", err)
	}
}

func TestPoolStaleHandle(t *testing.T) {
	pool := newOrderPool(1)

	stale, _ := pool.acquire(domain.GoodTillCancel, 1, domain.Buy, 100, 10)
	pool.release(stale)

	// The slot gets reused; the old handle must not see the new order.
	fresh, _ := pool.acquire(domain.GoodTillCancel, 2, domain.Sell, 200, 5)

	if pool.get(stale) != nil {
		t.Error("stale handle dereferenced a reused slot")
	}
	if err := pool.release(stale); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("expected ErrInvalidHandle for stale release, got %v", err)
	}
	if o := pool.get(fresh); o == nil || o.id != 2 {
		t.Error("fresh handle broken by stale release attempt")
	}
}

func TestPoolForeignHandle(t *testing.T) {
	pool := newOrderPool(1)

	if pool.get(nilHandle) != nil {
		t.Error("zero handle dereferenced")
	}
	if err := pool.release(makeHandle(42, 0)); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("expected ErrInvalidHandle for out-of-range slot, got %v", err)
	}
}

// Slot reuse must let the pool serve far more orders than its capacity
// as long as the live set stays bounded.
func TestPoolChurn(t *testing.T) {
	pool := newOrderPool(4)

	for i := 0; i < 1000; i++ {
		h, err := pool.acquire(domain.GoodTillCancel, domain.OrderID(i), domain.Buy, 100, 10)
		if err != nil {
			t.Fatalf("churn iteration %d: %v", i, err)
		}
		if err := pool.release(h); err != nil {
			t.Fatalf("churn iteration %d release: %v", i, err)
		}
	}
	if pool.available() != 4 {
		t.Errorf("expected all slots free after churn, got %d", pool.available())
	}
}
