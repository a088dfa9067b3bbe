package scppm

import "math"

// Channel LLR builder (C10): per symbol frame, builds a length-M
// log-likelihood vector from a single slot observation under a Poisson
// channel model (spec.md §4.7).

// ChannelLLR returns λ[v] = log P(v | observation) (up to an additive
// constant common to all v, which cancels in BCJR) for one symbol frame.
// detectedSlot is the slot index in [0, M) that registered a photon, or
// ErasureSymbol if the frame had no valid detection (erasure frames get a
// uniform, all-zero LLR vector per spec.md §4.7).
func ChannelLLR(detectedSlot, ppmOrder int, ns, nb float64) []float64 {
	llr := make([]float64, ppmOrder)
	if detectedSlot == ErasureSymbol {
		return llr
	}

	signalTerm := math.Log(ns+nb) - math.Log(nb)
	penalty := ns / math.Ln2

	llr[detectedSlot] = signalTerm - penalty
	return llr
}

// EstimateChannelRates derives maximum-likelihood-style estimates of the
// signal rate n_s (photons per slot, signal slot) and background rate n_b
// (photons per slot, elsewhere) from a CSM region where the correct symbol
// values are known (spec.md §4.7: "n_s, n_b are estimated from the CSM
// regions").
//
// This is a practical closed-form estimator rather than a literal Poisson
// MLE derivation: the erasure rate over CSM frames bounds n_b (an empty
// frame requires every one of the M slots to be silent), and the fraction
// of non-erased CSM frames whose detection matches the known transmitted
// symbol bounds n_s net of that background. Both are floored away from
// zero so ChannelLLR's logarithms stay finite.
func EstimateChannelRates(detectedCSM []int, trueCSM []int, ppmOrder int) (ns, nb float64) {
	const floor = 1e-3

	total := len(trueCSM)
	if total == 0 {
		return 1, floor
	}

	erasures := 0
	correct := 0
	detections := 0
	for i, v := range detectedCSM {
		if v == ErasureSymbol {
			erasures++
			continue
		}
		detections++
		if i < len(trueCSM) && v == trueCSM[i] {
			correct++
		}
	}

	erasureRate := float64(erasures) / float64(total)
	if erasureRate < floor {
		erasureRate = floor
	}
	if erasureRate > 1-floor {
		erasureRate = 1 - floor
	}
	nb = -math.Log(erasureRate) / float64(ppmOrder)
	if nb < floor {
		nb = floor
	}

	correctRate := floor
	if detections > 0 {
		correctRate = float64(correct) / float64(detections)
	}
	if correctRate < floor {
		correctRate = floor
	}
	if correctRate > 1-floor {
		correctRate = 1 - floor
	}

	ns = -math.Log(1-correctRate) - nb
	if ns < floor {
		ns = floor
	}

	return ns, nb
}
