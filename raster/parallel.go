package raster

import (
	"runtime"
	"sync"
)

// Parallel executes a function in parallel across multiple goroutines.
// Every solver pass is embarrassingly data-parallel over rows: a pixel's
// update only reads the previous pass' buffers, so the only synchronization
// needed is the barrier at the end of this call.
//
// Arguments:
// - dataSize: The size of the data to process (typically the row count).
// - fn: Function to execute for each partition (receives start and end indices).
//
// Example:
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// For small data sizes the goroutine overhead isn't worth it.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
