package scppm

import "fmt"

// Encoder pipeline (C5): sequences C1-C4 into the full per-codeword
// transmit chain, then frames codewords onto the slot-level wire format.
// Grounded on spec.md §4.4's numbered pipeline and, for the staged
// step-by-step construction idiom, the teacher's hdlc_send.go framing
// pipeline (bit-stuff, then CRC, then flag-frame).

var outerTrellis = BuildOuterTrellis()

// EncodeInfoBlock runs one information block through the full per-codeword
// transmit chain (spec.md §4.4 steps 1-7): CRC header, outer convolutional
// encode, puncture to the session's rate, randomize, block-bit-interleave,
// bits-to-symbols, Forney channel-interleave (flushed per codeword so
// codewords decode independently, spec.md §5), and inner accumulate-PPM
// encoding. The result is the sequence of PPM symbol values that follow
// this codeword's CSM on the wire (InterleavedSymbolsPerCodeword long).
//
// payload must be exactly InfoBlockBits()-16-6 bits (one bit per byte):
// the CRC header and 6-bit termination tail are added here.
func EncodeInfoBlock(cfg *Config, payload []byte) ([]int, error) {
	tailBits := outerMemory
	wantPayload := cfg.InfoBlockBits() - 16 - tailBits
	if len(payload) != wantPayload {
		return nil, newConfigError("payload must be %d bits for rate %v, got %d", wantPayload, cfg.CodeRate, len(payload))
	}

	crc := crc16(payload)
	infoBits := make([]byte, 0, cfg.InfoBlockBits())
	infoBits = append(infoBits, crc16Bits(crc)...)
	infoBits = append(infoBits, payload...)
	infoBits = append(infoBits, make([]byte, tailBits)...) // all-zero termination tail

	motherBits := convolutionalEncode(outerTrellis, infoBits)

	pattern := puncturePatternFor(cfg.CodeRate)
	codedBits := Puncture(motherBits, pattern)

	if cfg.UseRandomizer {
		codedBits = Randomize(codedBits)
	}

	interleavedBits := BitInterleave(codedBits, cfg.BitsPerSymbol())

	symbols := BitsToSymbols(interleavedBits, cfg.BitsPerSymbol())
	if len(symbols) != cfg.SymbolsPerCodeword() {
		return nil, newConfigError("internal: got %d symbols, want %d", len(symbols), cfg.SymbolsPerCodeword())
	}

	channelInterleaved := ChannelInterleave(cfg, symbols)

	if !cfg.UseInnerEncoder {
		return channelInterleaved, nil
	}
	return InnerEncode(channelInterleaved, cfg.BitsPerSymbol()), nil
}

// convolutionalEncode walks t from state 0, input bit by input bit,
// emitting each edge's output triplet in order.
func convolutionalEncode(t *Trellis, infoBits []byte) []byte {
	out := make([]byte, 0, len(infoBits)*3)
	state := 0
	for _, bit := range infoBits {
		e := t.Edges[state][bit]
		out = append(out, byte(e.Output[0]), byte(e.Output[1]), byte(e.Output[2]))
		state = e.NextState
	}
	return out
}

// EncodeSession runs every info block in payloads through EncodeInfoBlock
// and frames each with its CSM, producing the complete symbol-level stream
// ready for MapSymbolsToSlots (spec.md §4.4 step 8, §5 lifecycle).
func EncodeSession(cfg *Config, payloads [][]byte) ([]int, error) {
	var stream []int
	for i, payload := range payloads {
		symbols, err := EncodeInfoBlock(cfg, payload)
		if err != nil {
			return nil, fmt.Errorf("scppm: encoding codeword %d: %w", i, err)
		}
		stream = append(stream, PrependCSM(cfg, symbols)...)
	}
	return stream, nil
}
