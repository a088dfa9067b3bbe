package scppm

// Puncturing (part of C2): rates 1/2 and 2/3 are obtained by deterministically
// dropping positions from the rate-1/3 mother code's coded-bit stream. The
// pattern is fixed and known to both encoder and decoder (spec.md §4.1); the
// decoder re-inserts LLR erasures (zero) at punctured positions before BCJR.

// PuncturePattern describes a periodic keep/drop mask over the mother
// code's 3-bits-per-info-bit output stream.
type PuncturePattern struct {
	// Mask has length 3*period (period = information bits per cycle);
	// true means "transmitted", false means "punctured".
	Mask []bool
}

// puncturePatternFor returns the fixed puncture pattern for rate, or nil
// for the unpunctured rate-1/3 mother code.
func puncturePatternFor(rate CodeRate) *PuncturePattern {
	switch rate {
	case Rate1_3:
		return nil
	case Rate1_2:
		// 1 info bit per cycle, mother emits 3 bits, keep 2 -> rate 1/2.
		return &PuncturePattern{Mask: []bool{true, true, false}}
	case Rate2_3:
		// 2 info bits per cycle, mother emits 6 bits, keep 3 -> rate 2/3.
		return &PuncturePattern{Mask: []bool{true, true, false, false, true, false}}
	default:
		return nil
	}
}

// Puncture drops the positions marked false in pattern.Mask from motherBits,
// cycling the mask over the whole stream. len(motherBits) must be a
// multiple of len(pattern.Mask).
func Puncture(motherBits []byte, pattern *PuncturePattern) []byte {
	if pattern == nil {
		return append([]byte(nil), motherBits...)
	}

	out := make([]byte, 0, len(motherBits))
	for i, b := range motherBits {
		if pattern.Mask[i%len(pattern.Mask)] {
			out = append(out, b)
		}
	}
	return out
}

// Depuncture re-inserts zero bits at punctured positions, producing a
// stream of length motherLen. Depuncturing a punctured stream and then
// re-puncturing it reproduces the original punctured stream exactly
// (spec.md §8): the inserted filler never occupies a kept position.
func Depuncture(punctured []byte, pattern *PuncturePattern, motherLen int) []byte {
	if pattern == nil {
		return append([]byte(nil), punctured...)
	}

	out := make([]byte, motherLen)
	j := 0
	for i := 0; i < motherLen; i++ {
		if pattern.Mask[i%len(pattern.Mask)] {
			out[i] = punctured[j]
			j++
		}
	}
	return out
}

// DepunctureLLR re-inserts exact-zero (erasure) LLRs at punctured
// positions, producing a stream of length motherLen for the outer BCJR
// pass (spec.md §4.9: "puncturing is handled by zero-LLR insertion at
// punctured positions before outer BCJR").
func DepunctureLLR(punctured []float64, pattern *PuncturePattern, motherLen int) []float64 {
	if pattern == nil {
		return append([]float64(nil), punctured...)
	}

	out := make([]float64, motherLen)
	j := 0
	for i := 0; i < motherLen; i++ {
		if pattern.Mask[i%len(pattern.Mask)] {
			out[i] = punctured[j]
			j++
		}
	}
	return out
}

// PunctureLLR extracts the LLRs at kept positions from a full-length
// mother-code LLR stream, the inverse of DepunctureLLR, used when
// re-deriving extrinsic information at mother-code granularity.
func PunctureLLR(motherLLR []float64, pattern *PuncturePattern) []float64 {
	if pattern == nil {
		return append([]float64(nil), motherLLR...)
	}

	out := make([]float64, 0, len(motherLLR))
	for i, v := range motherLLR {
		if pattern.Mask[i%len(pattern.Mask)] {
			out = append(out, v)
		}
	}
	return out
}
