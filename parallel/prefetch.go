package parallel

import "sync"

type result[T any] struct {
	value T
	err   error
}

// Prefetcher computes the items 0..length-1 ahead of the consumer and hands
// them out strictly in index order.
type Prefetcher[T any] struct {
	length int
	next   int
	body   func(i int) (T, error)

	slots    []chan result[T]
	sem      chan struct{}
	done     chan struct{}
	stopped  chan struct{} // closed when launch returns
	launched int           // read only after stopped is closed
	once     sync.Once
}

// Prefetch starts computing up to ahead items concurrently. With ahead <= 0
// nothing runs in the background and each item is computed by Next.
func Prefetch[T any](length, ahead int, body func(i int) (T, error)) *Prefetcher[T] {
	var p = &Prefetcher[T]{
		length: length,
		body:   body,
		done:   make(chan struct{}),
	}
	if ahead <= 0 || length <= 0 {
		return p
	}
	p.slots = make([]chan result[T], length)
	for i := range p.slots {
		// buffered, so a worker never blocks after its item is computed
		p.slots[i] = make(chan result[T], 1)
	}
	p.sem = make(chan struct{}, ahead)
	p.stopped = make(chan struct{})
	go p.launch()
	return p
}

func (p *Prefetcher[T]) launch() {
	defer close(p.stopped)
	for i := 0; i < p.length; i++ {
		select {
		case p.sem <- struct{}{}:
		case <-p.done:
			return
		}
		p.launched = i + 1
		go func(i int) {
			v, err := p.body(i)
			p.slots[i] <- result[T]{v, err}
		}(i)
	}
}

// Len is the total number of items
func (p *Prefetcher[T]) Len() int {
	return p.length
}

// Next returns the next item in index order. ok is false once all items
// were returned or the prefetcher was closed.
func (p *Prefetcher[T]) Next() (v T, ok bool, err error) {
	if p.next >= p.length {
		return v, false, nil
	}
	select {
	case <-p.done:
		return v, false, nil
	default:
	}
	var i = p.next
	p.next++
	if p.slots == nil {
		v, err = p.body(i)
		return v, true, err
	}
	r := <-p.slots[i]
	<-p.sem
	return r.value, true, r.err
}

// Close stops launching new work. Items already in flight finish in the background.
func (p *Prefetcher[T]) Close() {
	p.once.Do(func() {
		close(p.done)
	})
}

// Drain closes the prefetcher and waits for the items already in flight.
// release is called on every item that was computed without error but never
// returned by Next.
func (p *Prefetcher[T]) Drain(release func(T)) {
	p.Close()
	if p.slots == nil {
		return
	}
	<-p.stopped
	for ; p.next < p.launched; p.next++ {
		r := <-p.slots[p.next]
		<-p.sem
		if r.err == nil && release != nil {
			release(r.value)
		}
	}
	p.next = p.length
}
