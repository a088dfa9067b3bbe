package scppm

import (
	"math"
	"sort"
)

// Frame synchronizer (C7): locates the CSM within a continuous demodulated
// symbol stream by sliding correlation, then walks forward codeword by
// codeword confirming (or re-acquiring) sync at each expected boundary.
// Grounded on the teacher's hdlc_rec.go flag-correlation / bit-sync loop,
// adapted from HDLC flag bytes to CCSDS CSM symbols.

// SyncMark is one located CSM occurrence.
type SyncMark struct {
	Position int // index into the symbol stream of the CSM's first symbol
	Score    int // number of matching symbols against cfg.CSM()
}

// correlate scores every offset in symbols as a candidate CSM start:
// Score is the count of positions where symbols[offset+i] == csm[i],
// treating ErasureSymbol as a non-match (spec.md §4.6: erasures never
// contribute false correlation).
func correlate(symbols []int, csm []int) []int {
	n := len(symbols) - len(csm) + 1
	if n <= 0 {
		return nil
	}
	scores := make([]int, n)
	for offset := 0; offset < n; offset++ {
		score := 0
		for i, want := range csm {
			got := symbols[offset+i]
			if got != ErasureSymbol && got == want {
				score++
			}
		}
		scores[offset] = score
	}
	return scores
}

func median(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// FindCSMMarks scans the whole stream for CSM occurrences whose
// correlation score exceeds cfg.CSMThresholdK times the stream's median
// score (spec.md §4.6 peak-detection rule), keeping only the locally
// strongest mark within any len(csm)-wide cluster of candidates.
func FindCSMMarks(cfg *Config, symbols []int) []SyncMark {
	csm := cfg.CSM()
	scores := correlate(symbols, csm)
	if len(scores) == 0 {
		return nil
	}

	threshold := float64(cfg.CSMThresholdK) * median(scores)

	var marks []SyncMark
	for offset, score := range scores {
		if float64(score) <= threshold {
			continue
		}
		if len(marks) > 0 && offset-marks[len(marks)-1].Position < len(csm) {
			if score > marks[len(marks)-1].Score {
				marks[len(marks)-1] = SyncMark{Position: offset, Score: score}
			}
			continue
		}
		marks = append(marks, SyncMark{Position: offset, Score: score})
	}

	return marks
}

// SyncCodewords partitions symbols into per-codeword slices using the
// confirmed CSM marks, skipping past each CSM and taking the symbols up to
// the next confirmed or re-acquired CSM. When a mark is missing at an
// expected boundary (a dropped CSM), the searchWindow around the predicted
// position is rescanned for the strongest local correlation peak above
// threshold, re-establishing sync without requiring every single CSM to
// have been found by FindCSMMarks (spec.md §4.6 "sync recovery" behavior).
//
// Whenever a codeword is bounded by two confirmed CSMs, the span between
// them is resampled to the expected length (spec.md §4.6 step 4), absorbing
// the cumulative transmitter/receiver clock skew that accumulates between
// markers before the decoder ever sees the symbols. The final codeword in a
// stream, which has no following CSM to measure drift against, is taken at
// its nominal length uncorrected.
func SyncCodewords(cfg *Config, symbols []int) (codewords [][]int, marks []SyncMark) {
	csm := cfg.CSM()
	cwLen := cfg.InterleavedSymbolsPerCodeword()
	stride := len(csm) + cwLen
	const searchWindow = 4

	marks = FindCSMMarks(cfg, symbols)
	if len(marks) == 0 {
		return nil, nil
	}

	pos := marks[0].Position
	markIdx := 1
	var confirmed []SyncMark

	for pos+stride <= len(symbols) {
		confirmed = append(confirmed, SyncMark{Position: pos})
		cwStart := pos + len(csm)
		predicted := pos + stride

		for markIdx < len(marks) && marks[markIdx].Position < predicted-searchWindow {
			markIdx++
		}

		nextPos := -1
		if markIdx < len(marks) && abs(marks[markIdx].Position-predicted) <= searchWindow {
			nextPos = marks[markIdx].Position
			markIdx++
		} else if reacq := reacquire(symbols, csm, predicted, searchWindow); reacq >= 0 {
			nextPos = reacq
		}

		if nextPos > cwStart && nextPos <= len(symbols) {
			codewords = append(codewords, resampleDrift(symbols[cwStart:nextPos], cwLen))
		} else {
			codewords = append(codewords, symbols[cwStart:cwStart+cwLen])
		}

		if nextPos < 0 {
			break
		}
		pos = nextPos
	}

	return codewords, confirmed
}

// resampleDrift linearly resamples src to exactly wantLen entries along an
// evenly-spaced index axis, absorbing the clock-skew drift that stretches
// or compresses the true symbol count between two confirmed CSMs relative
// to the nominal stride (spec.md §4.6 step 4). PPM symbol values are
// categorical, so "linear resampling" here means nearest-neighbor selection
// at each evenly-spaced target position rather than interpolating between
// values.
func resampleDrift(src []int, wantLen int) []int {
	if len(src) == wantLen {
		return src
	}
	out := make([]int, wantLen)
	if wantLen == 1 || len(src) == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	scale := float64(len(src)-1) / float64(wantLen-1)
	for i := 0; i < wantLen; i++ {
		srcIdx := int(math.Round(float64(i) * scale))
		if srcIdx >= len(src) {
			srcIdx = len(src) - 1
		}
		out[i] = src[srcIdx]
	}
	return out
}

// reacquire rescans a small window around a predicted CSM position for the
// best-correlating offset, used when FindCSMMarks missed an expected CSM.
func reacquire(symbols []int, csm []int, predicted, window int) int {
	best := -1
	bestScore := -1
	for offset := predicted - window; offset <= predicted+window; offset++ {
		if offset < 0 || offset+len(csm) > len(symbols) {
			continue
		}
		score := 0
		for i, want := range csm {
			got := symbols[offset+i]
			if got != ErasureSymbol && got == want {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = offset
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
