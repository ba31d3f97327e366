package orderbook

import "limitbook/domain"

// orderList is the time-priority queue of one price level: an intrusive
// doubly-linked sequence over pool handles, FIFO by arrival. The links
// live inside the pooled order slots, so push, front, and arbitrary
// removal are all O(1) with no per-entry allocation.
type orderList struct {
	head  handle
	tail  handle
	count int
}

// pushBack appends the latest arrival at the tail.
func (l *orderList) pushBack(pool *orderPool, h handle) {
	o := pool.get(h)
	o.prev = l.tail
	o.next = nilHandle

	if l.tail == nilHandle {
		l.head = h
	} else {
		pool.get(l.tail).next = h
	}
	l.tail = h
	l.count++
}

// remove unlinks an entry anywhere in the queue: front, tail, or
// interior. Used both for normal dequeue and out-of-order cancellation.
func (l *orderList) remove(pool *orderPool, h handle) {
	o := pool.get(h)

	if o.prev != nilHandle {
		pool.get(o.prev).next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nilHandle {
		pool.get(o.next).prev = o.prev
	} else {
		l.tail = o.prev
	}

	o.prev = nilHandle
	o.next = nilHandle
	l.count--
}

// front returns the earliest-arrived entry. This is what realizes time
// priority: matching always consumes from the front.
func (l *orderList) front() handle {
	return l.head
}

func (l *orderList) popFront(pool *orderPool) {
	if l.head != nilHandle {
		l.remove(pool, l.head)
	}
}

func (l *orderList) empty() bool {
	return l.head == nilHandle
}

func (l *orderList) size() int {
	return l.count
}

// totalRemaining sums the remaining quantity of every order in the
// queue. Backs the depth snapshot; not used on the matching path.
func (l *orderList) totalRemaining(pool *orderPool) domain.Quantity {
	var total domain.Quantity
	for h := l.head; h != nilHandle; h = pool.get(h).next {
		total += pool.get(h).remaining
	}
	return total
}
