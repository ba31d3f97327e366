package orderbook

import "limitbook/domain"

// handle is an opaque reference to a pool slot. The low 32 bits hold the
// slot index plus one (so the zero handle is never valid), the high 32
// bits the slot's generation at acquire time. A handle kept across a
// release fails the generation check instead of silently touching a
// reused slot.
type handle uint64

const nilHandle handle = 0

func makeHandle(index, gen uint32) handle {
	return handle(uint64(index+1) | uint64(gen)<<32)
}

func (h handle) slot() uint32 {
	return uint32(h) - 1
}

func (h handle) generation() uint32 {
	return uint32(h >> 32)
}

// orderPool is a fixed-capacity arena of order slots with a free-list of
// slot indices. Order creation and destruction sit on the hot path of
// every add, fill, and cancel; reusing preallocated slots keeps the
// steady state free of general-purpose allocation.
type orderPool struct {
	slots []order
	gens  []uint32
	free  []uint32
}

func newOrderPool(capacity int) *orderPool {
	p := &orderPool{
		slots: make([]order, capacity),
		gens:  make([]uint32, capacity),
		free:  make([]uint32, 0, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, uint32(i))
	}
	return p
}

// acquire takes a free slot and reconstructs it in place with the given
// order fields. Fails with ErrPoolExhausted when no slot is free.
func (p *orderPool) acquire(orderType domain.OrderType, id domain.OrderID, side domain.Side, price domain.Price, quantity domain.Quantity) (handle, error) {
	if len(p.free) == 0 {
		return nilHandle, ErrPoolExhausted
	}

	index := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	p.slots[index] = order{
		id:        id,
		side:      side,
		orderType: orderType,
		price:     price,
		initial:   quantity,
		remaining: quantity,
	}

	return makeHandle(index, p.gens[index]), nil
}

// release returns a slot to the free set and bumps its generation, which
// invalidates every outstanding handle to it. A foreign, stale, or
// double release fails with ErrInvalidHandle.
func (p *orderPool) release(h handle) error {
	index, ok := p.lookup(h)
	if !ok {
		return ErrInvalidHandle
	}
	p.gens[index]++
	p.free = append(p.free, index)
	return nil
}

// get dereferences a handle, or returns nil if it is not live in this
// pool. The pointer is only valid until the slot is released.
func (p *orderPool) get(h handle) *order {
	index, ok := p.lookup(h)
	if !ok {
		return nil
	}
	return &p.slots[index]
}

func (p *orderPool) lookup(h handle) (uint32, bool) {
	if h == nilHandle {
		return 0, false
	}
	index := h.slot()
	if int(index) >= len(p.slots) || p.gens[index] != h.generation() {
		return 0, false
	}
	return index, true
}

// available reports how many slots are currently free.
func (p *orderPool) available() int {
	return len(p.free)
}
