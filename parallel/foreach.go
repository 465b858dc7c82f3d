// Package parallel contains the bounded ForEach and the order preserving Prefetch.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}

// ForEachErr is ForEach for bodies that can fail. It returns the error of the
// lowest failing index, so the result does not depend on scheduling.
func ForEachErr(length, limit int, body func(i int) error) error {
	var (
		mut   sync.Mutex
		first = -1
		ferr  error
	)
	ForEach(length, limit, func(i int) {
		if err := body(i); err != nil {
			mut.Lock()
			if first < 0 || i < first {
				first, ferr = i, err
			}
			mut.Unlock()
		}
	})
	return ferr
}
