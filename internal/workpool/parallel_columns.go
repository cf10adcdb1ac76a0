package workpool

// ParallelRows runs fn for every row in [start,end), splitting the range
// across pool's workers. It mirrors the renderer's row-major parallelism
// for rasterization stages (floor/ceiling/road, sky, sprite scanlines):
// rows are independent of each other, so no cross-row synchronization is
// needed beyond the final join. A nil pool, or a range too small to be
// worth the submit/wait overhead, runs fn inline.
func ParallelRows(p *Pool, start, end int, fn func(row int)) {
	if p == nil || end-start <= 8 {
		for row := start; row < end; row++ {
			fn(row)
		}
		return
	}
	p.ParallelFor(start, end, fn)
}

// ParallelColumns runs castFn for every column in [0,numColumns) and returns
// the per-column results in column order. It mirrors the renderer's
// column-major DDA parallelism: each column is an independent ray, so no
// cross-column synchronization is needed until all columns have been cast
// and the caller populates the z-buffer serially in column order.
//
// Small workloads run inline to avoid paying submit/wait overhead for a
// handful of columns (e.g. unit tests with a 4-pixel-wide screen).
func ParallelColumns[T any](p *Pool, numColumns int, castFn func(column int) T) []T {
	results := make([]T, numColumns)

	if numColumns <= 8 || p == nil {
		for c := 0; c < numColumns; c++ {
			results[c] = castFn(c)
		}
		return results
	}

	numWorkers := p.NumWorkers()
	batchSize := numColumns / numWorkers
	if batchSize < 4 {
		batchSize = 4
	}
	if batchSize > 32 {
		batchSize = 32
	}

	for i := 0; i < numColumns; i += batchSize {
		start := i
		end := start + batchSize
		if end > numColumns {
			end = numColumns
		}
		p.Submit(func() {
			for c := start; c < end; c++ {
				results[c] = castFn(c)
			}
		})
	}
	p.Wait()

	return results
}
