package scoring

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
)

// defaultWorkerCount caps scoring goroutines for CPU-bound work. More than
// four workers shows no gain on corpus-sized inputs.
func defaultWorkerCount() int {
	return min(runtime.NumCPU(), 4)
}

// scoreParallel scores unique across contiguous chunks, one goroutine per
// chunk. Each worker writes only its own result slot, so no locking is
// needed; a panicking worker is recovered and reported as an error so the
// caller can fall back to sequential scoring.
func (s *Scorer) scoreParallel(lead *cards.Card, deck, unique []*cards.Card) ([]*ScoredCandidate, error) {
	workers := s.maxWorkers
	if workers > len(unique) {
		workers = len(unique)
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (len(unique) + workers - 1) / workers
	results := make([][]*ScoredCandidate, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= len(unique) {
			break
		}
		end := min(start+chunkSize, len(unique))

		wg.Add(1)
		go func(w int, chunk []*cards.Card) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[w] = fmt.Errorf("scoring worker %d panicked: %v", w, r)
				}
			}()
			results[w] = s.scoreChunk(lead, deck, chunk)
		}(w, unique[start:end])
	}
	wg.Wait()

	merged := make([]*ScoredCandidate, 0, len(unique))
	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			return nil, errs[w]
		}
		merged = append(merged, results[w]...)
	}
	return merged, nil
}
