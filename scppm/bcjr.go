package scppm

import "math"

// BCJR SISO decoder (C8): log-domain forward/backward message passing over
// a generic Trellis, shared by the inner (APPM) and outer (convolutional)
// passes. All arithmetic stays in the log domain; the only place an
// exponential is evaluated is the small correction-term table behind
// maxStar (spec.md §9 numerical-fidelity note).

const negInf = math.MaxFloat64 * -0.5

// maxStarTable holds the Jacobi-logarithm correction term
// log(1 + exp(-|a-b|)) for |a-b| in [0, maxStarTableMax), sampled at
// maxStarTableStep resolution, so the hot BCJR recursion never calls
// math.Exp/math.Log directly.
const (
	maxStarTableStep = 0.1
	maxStarTableMax  = 20.0
)

var maxStarTable [int(maxStarTableMax/maxStarTableStep) + 1]float64

func init() {
	for i := range maxStarTable {
		delta := float64(i) * maxStarTableStep
		maxStarTable[i] = math.Log1p(math.Exp(-delta))
	}
}

// maxStar is the Jacobi logarithm max*(a,b) = max(a,b) + log(1+exp(-|a-b|)),
// with the correction term read from a clipped lookup table: |Δ| >= 20 is
// treated as exactly max(a,b) (spec.md §9).
func maxStar(a, b float64) float64 {
	if a <= negInf {
		return b
	}
	if b <= negInf {
		return a
	}

	delta := a - b
	if delta < 0 {
		delta = -delta
	}

	m := a
	if b > a {
		m = b
	}

	if delta >= maxStarTableMax {
		return m
	}

	idx := int(delta / maxStarTableStep)
	return m + maxStarTable[idx]
}

// maxStarOf reduces maxStar over a slice, returning negInf for an empty
// slice (the identity for this operation in log-domain "OR").
func maxStarOf(vals []float64) float64 {
	if len(vals) == 0 {
		return negInf
	}
	acc := vals[0]
	for _, v := range vals[1:] {
		acc = maxStar(acc, v)
	}
	return acc
}

// forwardBackward runs the α/β recursions over numStages edge-transitions
// of trellis t. gamma(stage, edge) supplies the branch metric for the edge
// leaving whatever state it leaves from, at the given stage index.
// terminated indicates the trellis is forced into state 0 by the final
// stage (spec.md §4.8: β_N(0)=0 if terminated, uniform otherwise).
//
// Per-stage normalization (subtracting the stage max from every entry)
// keeps magnitudes bounded over long codewords without changing any
// extrinsic difference, per spec.md §9.
func forwardBackward(t *Trellis, numStages int, gamma func(stage int, e Edge) float64, terminated bool) (alpha, beta [][]float64) {
	alpha = make([][]float64, numStages+1)
	beta = make([][]float64, numStages+1)

	alpha[0] = make([]float64, t.NumStates)
	for s := range alpha[0] {
		alpha[0][s] = negInf
	}
	alpha[0][0] = 0

	for i := 0; i < numStages; i++ {
		alpha[i+1] = make([]float64, t.NumStates)
		for s := range alpha[i+1] {
			alpha[i+1][s] = negInf
		}

		for s := 0; s < t.NumStates; s++ {
			if alpha[i][s] <= negInf {
				continue
			}
			for _, e := range t.Edges[s] {
				v := alpha[i][s] + gamma(i, e)
				alpha[i+1][e.NextState] = maxStar(alpha[i+1][e.NextState], v)
			}
		}

		normalizeStage(alpha[i+1])
	}

	beta[numStages] = make([]float64, t.NumStates)
	for s := range beta[numStages] {
		if terminated && s != t.TermState {
			beta[numStages][s] = negInf
		} else {
			beta[numStages][s] = 0
		}
	}

	for i := numStages - 1; i >= 0; i-- {
		beta[i] = make([]float64, t.NumStates)
		for s := range beta[i] {
			beta[i][s] = negInf
		}

		for s := 0; s < t.NumStates; s++ {
			for _, e := range t.Edges[s] {
				if beta[i+1][e.NextState] <= negInf {
					continue
				}
				v := gamma(i, e) + beta[i+1][e.NextState]
				beta[i][s] = maxStar(beta[i][s], v)
			}
		}

		normalizeStage(beta[i])
	}

	return alpha, beta
}

func normalizeStage(stage []float64) {
	m := negInf
	for _, v := range stage {
		if v > m {
			m = v
		}
	}
	if m <= negInf {
		return
	}
	for i := range stage {
		if stage[i] > negInf {
			stage[i] -= m
		}
	}
}

// bitContribution converts a bit value and its LLR into the additive
// log-domain term b*llr used to build edge gammas from per-bit priors;
// the b-independent normalizing term this drops is constant across every
// edge at a given stage and cancels in every extrinsic difference.
func bitContribution(bit int, llr float64) float64 {
	if bit == 1 {
		return llr
	}
	return 0
}

// DecodeInner runs one inner-APPM BCJR pass (spec.md §4.8–§4.9 step a).
// channelLLR[i] is the length-M channel LLR vector for stage i (symbol i,
// from the channel LLR builder, C10). priorBits[i] is the length-m prior
// LLR vector over this stage's input bits (from the outer decoder's last
// extrinsic, after the forward randomizer+bit-interleave of step d).
// Returns extrinsicBits[i], the length-m extrinsic LLR vector on the same
// input bits.
func DecodeInner(t *Trellis, m int, channelLLR [][]float64, priorBits [][]float64) [][]float64 {
	numStages := len(channelLLR)

	gamma := func(stage int, e Edge) float64 {
		g := channelLLR[stage][e.Output[0]]
		for j := 0; j < m; j++ {
			bit := (e.Input >> uint(m-1-j)) & 1
			g += bitContribution(bit, priorBits[stage][j])
		}
		return g
	}

	alpha, beta := forwardBackward(t, numStages, gamma, false)

	extrinsic := make([][]float64, numStages)
	for i := 0; i < numStages; i++ {
		extrinsic[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			var ones, zeros []float64
			for s := 0; s < t.NumStates; s++ {
				if alpha[i][s] <= negInf {
					continue
				}
				for _, e := range t.Edges[s] {
					if beta[i+1][e.NextState] <= negInf {
						continue
					}
					bit := (e.Input >> uint(m-1-j)) & 1
					v := alpha[i][s] + gamma(i, e) + beta[i+1][e.NextState]
					if bit == 1 {
						ones = append(ones, v)
					} else {
						zeros = append(zeros, v)
					}
				}
			}
			extrinsic[i][j] = maxStarOf(ones) - maxStarOf(zeros) - priorBits[i][j]
		}
	}

	return extrinsic
}

// OuterResult bundles the outer BCJR pass's outputs for one codeword.
type OuterResult struct {
	ExtrinsicCoded []float64 // length numStages*3: extrinsic LLR per mother-code output bit
	InfoLLR        []float64 // length numStages: a-posteriori LLR per information bit
	HardInfoBits   []byte    // length numStages: hard-decided information bits
}

// DecodeOuter runs one outer-convolutional BCJR pass (spec.md §4.8–§4.9
// step c). priorCoded is the length-(numStages*3) prior LLR vector over
// mother-code output bits (punctured positions already zero-filled via
// DepunctureLLR). numStages is the number of information-bit trellis
// transitions (InfoBlockBits, including the termination tail).
func DecodeOuter(t *Trellis, priorCoded []float64) OuterResult {
	numStages := len(priorCoded) / 3

	gamma := func(stage int, e Edge) float64 {
		g := 0.0
		for k, bit := range e.Output {
			g += bitContribution(bit, priorCoded[stage*3+k])
		}
		return g
	}

	alpha, beta := forwardBackward(t, numStages, gamma, true)

	res := OuterResult{
		ExtrinsicCoded: make([]float64, numStages*3),
		InfoLLR:        make([]float64, numStages),
		HardInfoBits:   make([]byte, numStages),
	}

	for i := 0; i < numStages; i++ {
		var infoOnes, infoZeros []float64
		codedOnes := make([][]float64, 3)
		codedZeros := make([][]float64, 3)

		for s := 0; s < t.NumStates; s++ {
			if alpha[i][s] <= negInf {
				continue
			}
			for _, e := range t.Edges[s] {
				if beta[i+1][e.NextState] <= negInf {
					continue
				}
				v := alpha[i][s] + gamma(i, e) + beta[i+1][e.NextState]

				if e.Input == 1 {
					infoOnes = append(infoOnes, v)
				} else {
					infoZeros = append(infoZeros, v)
				}

				for k, bit := range e.Output {
					if bit == 1 {
						codedOnes[k] = append(codedOnes[k], v)
					} else {
						codedZeros[k] = append(codedZeros[k], v)
					}
				}
			}
		}

		res.InfoLLR[i] = maxStarOf(infoOnes) - maxStarOf(infoZeros)
		if res.InfoLLR[i] > 0 {
			res.HardInfoBits[i] = 1
		}

		for k := 0; k < 3; k++ {
			res.ExtrinsicCoded[i*3+k] = maxStarOf(codedOnes[k]) - maxStarOf(codedZeros[k]) - priorCoded[i*3+k]
		}
	}

	return res
}
