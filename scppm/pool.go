package scppm

import (
	"context"
	"runtime"
	"sync"
)

// Worker pool (§5): codewords decode independently, so the turbo driver is
// dispatched across a bounded pool of goroutines with cooperative
// cancellation, and results are reassembled in codeword-index order
// regardless of completion order. Grounded on the teacher's channel-based
// worker dispatch in audio_stats.go/the TNC's multi-channel receive loop,
// adapted from per-channel audio workers to per-codeword decode jobs.

// decodeJob is one codeword's channel LLR input, tagged with its position
// in the session so results can be reassembled in order.
type decodeJob struct {
	index      int
	channelLLR [][]float64
}

type decodeOutput struct {
	index  int
	result CodewordResult
}

// DecodeCodewordsConcurrently runs DecodeCodeword over every entry in
// codewordLLRs using a pool of min(len(codewordLLRs), GOMAXPROCS) workers,
// returning results in the same order as the input regardless of which
// worker finished which job first. ctx cancellation stops dispatching new
// jobs and returns early with whatever has completed so far.
func DecodeCodewordsConcurrently(ctx context.Context, cfg *Config, codewordLLRs [][][]float64) []CodewordResult {
	n := len(codewordLLRs)
	results := make([]CodewordResult, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan decodeJob)
	out := make(chan decodeOutput)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				out <- decodeOutput{index: job.index, result: DecodeCodeword(cfg, job.channelLLR)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, llr := range codewordLLRs {
			select {
			case jobs <- decodeJob{index: i, channelLLR: llr}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	for o := range out {
		results[o.index] = o.result
	}

	return results
}
