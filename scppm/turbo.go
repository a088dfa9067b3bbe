package scppm

// Turbo iteration driver (C9): exchanges extrinsic information between the
// inner (APPM) and outer (convolutional) BCJR passes, applying the forward
// or inverse randomizer/bit-interleave/channel-interleave transform at each
// crossing so both passes see their priors in the domain they expect.
// Grounded on spec.md §4.9's numbered iteration loop; the early-stop-on-CRC
// idiom mirrors the teacher's il2p code's CRC-verify-then-stop retry loops.

// CodewordResult is the outcome of turbo-decoding one codeword.
type CodewordResult struct {
	Payload        []byte // the original payload bits, CRC and tail stripped
	CRCValid       bool
	IterationsUsed int
}

// DecodeCodeword runs the turbo loop on one codeword's channel LLR vectors,
// which must be in channel-interleaved, inner-accumulated order (i.e.
// exactly the domain ChannelLLR naturally produces from a detected-slot
// stream) and number InterleavedSymbolsPerCodeword, each of length M.
func DecodeCodeword(cfg *Config, channelLLR [][]float64) CodewordResult {
	m := cfg.BitsPerSymbol()
	var inner *Trellis
	if cfg.UseInnerEncoder {
		inner = BuildInnerTrellis(m)
	} else {
		inner = buildTrivialInnerTrellis(m)
	}
	zeroVec := make([]float64, m)

	interleavedStages := cfg.InterleavedSymbolsPerCodeword()
	priorBits := make([][]float64, interleavedStages)
	for i := range priorBits {
		priorBits[i] = make([]float64, m)
	}

	pattern := puncturePatternFor(cfg.CodeRate)
	motherLen := cfg.InfoBlockBits() * 3

	var outerRes OuterResult
	iters := 0

	for iters = 1; iters <= cfg.MaxTurboIters; iters++ {
		extrinsicInner := DecodeInner(inner, m, channelLLR, priorBits)

		deinterleavedVecs := ChannelDeinterleaveLLR(cfg, extrinsicInner, zeroVec)
		pipelineDelay := (cfg.NInterleaver - 1) * cfg.BInterleaver
		preInterleaveVecs := deinterleavedVecs[pipelineDelay : pipelineDelay+cfg.SymbolsPerCodeword()]

		bitLevelExtrinsic := flattenVectors(preInterleaveVecs)
		codedLLR := bitDeinterleaveLLR(bitLevelExtrinsic, m)
		if cfg.UseRandomizer {
			codedLLR = applyRandomizerToLLR(codedLLR)
		}
		motherLLR := DepunctureLLR(codedLLR, pattern, motherLen)

		outerRes = DecodeOuter(outerTrellis, motherLLR)

		if verifyCRC(outerRes.HardInfoBits, outerMemory) {
			return CodewordResult{
				Payload:        append([]byte(nil), outerRes.HardInfoBits[16:len(outerRes.HardInfoBits)-outerMemory]...),
				CRCValid:       true,
				IterationsUsed: iters,
			}
		}

		if iters == cfg.MaxTurboIters {
			break
		}

		extrinsicCodedLLR := PunctureLLR(outerRes.ExtrinsicCoded, pattern)
		if cfg.UseRandomizer {
			extrinsicCodedLLR = applyRandomizerToLLR(extrinsicCodedLLR)
		}
		interleavedBitsLLR := bitInterleaveLLR(extrinsicCodedLLR, m)

		stageVecs := chunkVectors(interleavedBitsLLR, m)
		reinterleaved := runForney(stageVecs, cfg.NInterleaver, cfg.BInterleaver, zeroVec, false)
		priorBits = reinterleaved
	}

	payload := outerRes.HardInfoBits
	tail := len(payload) - outerMemory
	if tail < 16 {
		tail = 16
	}
	return CodewordResult{
		Payload:        append([]byte(nil), payload[16:tail]...),
		CRCValid:       false,
		IterationsUsed: iters,
	}
}

func flattenVectors(vecs [][]float64) []float64 {
	out := make([]float64, 0, len(vecs)*len(vecs[0]))
	for _, v := range vecs {
		out = append(out, v...)
	}
	return out
}

func chunkVectors(flat []float64, m int) [][]float64 {
	n := len(flat) / m
	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64(nil), flat[i*m:(i+1)*m]...)
	}
	return out
}

// bitDeinterleaveLLR is BitDeinterleave's LLR-domain counterpart: it
// permutes a flat column-major LLR stream back to row-major order using
// the exact same index mapping as BitDeinterleave on hard bits.
func bitDeinterleaveLLR(llrs []float64, m int) []float64 {
	cols := len(llrs) / m
	out := make([]float64, len(llrs))
	idx := 0
	for col := 0; col < cols; col++ {
		for row := 0; row < m; row++ {
			out[row*cols+col] = llrs[idx]
			idx++
		}
	}
	return out
}

// bitInterleaveLLR is BitInterleave's LLR-domain counterpart.
func bitInterleaveLLR(llrs []float64, m int) []float64 {
	cols := len(llrs) / m
	out := make([]float64, len(llrs))
	idx := 0
	for col := 0; col < cols; col++ {
		for row := 0; row < m; row++ {
			out[idx] = llrs[row*cols+col]
			idx++
		}
	}
	return out
}

// applyRandomizerToLLR applies the CCSDS 131.0 PN sequence's sign to a flat
// LLR stream: XORing a bit with pn[i]==1 corresponds, in the log-likelihood
// domain, to negating that position's LLR (spec.md §8 randomizer
// involution property extended to soft values).
func applyRandomizerToLLR(llrs []float64) []float64 {
	pn := randomizerSequence(len(llrs))
	out := make([]float64, len(llrs))
	for i, v := range llrs {
		if pn[i] == 1 {
			out[i] = -v
		} else {
			out[i] = v
		}
	}
	return out
}
