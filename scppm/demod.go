package scppm

import "math"

// Demodulator (C6): converts a sorted stream of photon arrival timestamps
// into a slot-indexed symbol stream, applying the dark-count and guard-slot
// policy of spec.md §4.5. Grounded on original_source/parse_ppm_symbols.py
// (frame binning, the >1-event dark-count bump, and the commented-out
// timing-requirement gate) and, for the running-state idiom, the teacher's
// demod_9600.go.

// DemodResult is the demodulator's output: the slot-indexed symbol stream
// (ErasureSymbol where no valid detection occurred) and a dark-count
// statistic for session metadata.
type DemodResult struct {
	Symbols    []int
	DarkCounts int
}

// Demodulate bins pulseTimes into numSymbols consecutive symbol frames of
// length cfg.SymbolLength(), starting at startTime, and slot-quantizes
// each frame's pulses.
func Demodulate(cfg *Config, pulseTimes []float64, startTime float64, numSymbols int) (DemodResult, error) {
	if len(pulseTimes) == 0 {
		return DemodResult{}, &DemodulatorError{Reason: "empty timestamp stream"}
	}

	for i := 1; i < len(pulseTimes); i++ {
		if pulseTimes[i] < pulseTimes[i-1] {
			return DemodResult{}, &DemodulatorError{Reason: "timestamp stream is not monotonic"}
		}
	}

	symbolLength := cfg.SymbolLength()
	slotLength := cfg.SlotLength
	sigma := 0.1 * slotLength

	result := DemodResult{Symbols: make([]int, numSymbols)}

	lo := 0
	for i := 0; i < numSymbols; i++ {
		frameStart := startTime + float64(i)*symbolLength
		frameEnd := startTime + float64(i+1)*symbolLength

		for lo < len(pulseTimes) && pulseTimes[lo] < frameStart {
			lo++
		}

		hi := lo
		for hi < len(pulseTimes) && pulseTimes[hi] < frameEnd {
			hi++
		}

		framePulses := pulseTimes[lo:hi]

		if len(framePulses) == 0 {
			result.Symbols[i] = ErasureSymbol
			continue
		}

		multi := len(framePulses) > 1
		if multi {
			// All events but the one eventually chosen count as dark counts
			// (spec.md §4.5: "count the others as dark counts"), tallied
			// once here so the per-event loop below — which only decides
			// which slot is chosen — does not double-count them.
			result.DarkCounts += len(framePulses) - 1
		}

		symbol := ErasureSymbol
		for _, t := range framePulses {
			slot := int((t - frameStart) / slotLength)
			if slot < 0 || slot >= cfg.M {
				if !multi {
					result.DarkCounts++ // lone guard-slot event
				}
				continue
			}

			if cfg.CheckTimingRequirement && !withinTimingRequirement(t, frameStart, slotLength, sigma) {
				if !multi {
					result.DarkCounts++
				}
				continue
			}

			symbol = slot
			break
		}

		if multi && symbol == ErasureSymbol {
			// No event was chosen, so the one event the bulk count above
			// left out is a dark count too.
			result.DarkCounts++
		}

		result.Symbols[i] = symbol
	}

	return result, nil
}

// withinTimingRequirement implements the optional pulse-center timing gate
// named in spec.md §9 Open Question (a): a pulse more than 3σ from its
// slot's center is treated as a dark count rather than a detection.
func withinTimingRequirement(pulseTime, frameStart, slotLength, sigma float64) bool {
	slotIdx := math.Floor((pulseTime - frameStart) / slotLength)
	slotStart := frameStart + slotIdx*slotLength
	center := slotStart + slotLength/2
	return math.Abs(center-pulseTime) <= 3*sigma
}
