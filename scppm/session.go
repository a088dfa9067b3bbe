package scppm

import (
	"context"

	"github.com/charmbracelet/log"
)

// Session (spec.md §5 lifecycle): the top-level object bound to one
// validated Config, exposing the full encode and decode pipelines. A
// Session holds no mutable state between calls other than its logger — all
// per-call state lives in the arguments and return values, so a *Session is
// safe to share across concurrent Encode/Decode calls.
type Session struct {
	cfg    *Config
	logger *log.Logger
}

// SessionOption configures optional Session behavior.
type SessionOption func(*Session)

// WithLogger overrides the session's default (warn-level, stderr) logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession binds a validated Config to a new Session.
func NewSession(cfg *Config, opts ...SessionOption) *Session {
	s := &Session{cfg: cfg, logger: defaultLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionMetadata reports decode-time diagnostics alongside the recovered
// payloads (spec.md §5).
type SessionMetadata struct {
	BERPre                 float64 // fraction of hard-demodulated symbols disagreeing with the transmitted CSM, sampled at CSM regions
	CSMPositions           []int
	IterationsUsed         []int
	UncorrectableCodewords []int
	DarkCounts             int
}

// Encode runs the full transmit chain (C1-C5) over payloads and renders the
// result as the slot-level wire format (C4).
func (s *Session) Encode(payloads [][]byte) ([]SlotRow, error) {
	symbols, err := EncodeSession(s.cfg, payloads)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("encoded session", "codewords", len(payloads), "symbols", len(symbols))
	return MapSymbolsToSlots(symbols, s.cfg), nil
}

// Decode runs the full receive chain (C6-C10): demodulation, frame sync,
// channel LLR construction, and concurrent per-codeword turbo decoding.
// pulseTimes must be sorted ascending; numSymbols bounds how many symbol
// frames to demodulate starting at startTime.
func (s *Session) Decode(ctx context.Context, pulseTimes []float64, startTime float64, numSymbols int) ([][]byte, SessionMetadata, error) {
	demod, err := Demodulate(s.cfg, pulseTimes, startTime, numSymbols)
	if err != nil {
		return nil, SessionMetadata{}, err
	}

	codewordSymbols, marks := SyncCodewords(s.cfg, demod.Symbols)
	if len(codewordSymbols) == 0 {
		return nil, SessionMetadata{}, &FrameSyncError{Reason: "no CSM found in symbol stream"}
	}

	csm := s.cfg.CSM()
	csmStart := marks[0].Position
	csmEnd := csmStart + len(csm)
	if csmEnd > len(demod.Symbols) {
		csmEnd = len(demod.Symbols)
	}
	ns, nb := EstimateChannelRates(demod.Symbols[csmStart:csmEnd], csm, s.cfg.M)

	codewordLLRs := make([][][]float64, len(codewordSymbols))
	for i, syms := range codewordSymbols {
		llrs := make([][]float64, len(syms))
		for j, v := range syms {
			llrs[j] = ChannelLLR(v, s.cfg.M, ns, nb)
		}
		codewordLLRs[i] = llrs
	}

	results := DecodeCodewordsConcurrently(ctx, s.cfg, codewordLLRs)

	meta := SessionMetadata{DarkCounts: demod.DarkCounts}
	payloads := make([][]byte, len(results))
	for i, r := range results {
		payloads[i] = r.Payload
		meta.IterationsUsed = append(meta.IterationsUsed, r.IterationsUsed)
		if !r.CRCValid {
			meta.UncorrectableCodewords = append(meta.UncorrectableCodewords, i)
		}
	}
	csmSampled, csmMismatched := 0, 0
	for _, mk := range marks {
		meta.CSMPositions = append(meta.CSMPositions, mk.Position)
		for k, want := range csm {
			if mk.Position+k >= len(demod.Symbols) {
				break
			}
			csmSampled++
			if demod.Symbols[mk.Position+k] != want {
				csmMismatched++
			}
		}
	}
	if csmSampled > 0 {
		meta.BERPre = float64(csmMismatched) / float64(csmSampled)
	}

	s.logger.Info("decoded session",
		"codewords", len(results),
		"uncorrectable", len(meta.UncorrectableCodewords),
		"dark_counts", meta.DarkCounts)

	if len(meta.UncorrectableCodewords) == len(results) && len(results) > 0 {
		return payloads, meta, &DecoderError{Reason: "every codeword uncorrectable after max iterations"}
	}

	return payloads, meta, nil
}
