package scppm

import "math/bits"

// CodeRate is the outer convolutional code rate, fixed per session.
type CodeRate int

const (
	Rate1_3 CodeRate = iota
	Rate1_2
	Rate2_3
)

func (r CodeRate) String() string {
	switch r {
	case Rate1_3:
		return "1/3"
	case Rate1_2:
		return "1/2"
	case Rate2_3:
		return "2/3"
	default:
		return "unknown"
	}
}

// infoBlockBits returns the outer-code information block size in bits for
// this rate, per spec.md §3: 5040, 7560, or 10080 depending on rate.
func (r CodeRate) infoBlockBits() int {
	switch r {
	case Rate1_3:
		return 5040
	case Rate1_2:
		return 7560
	case Rate2_3:
		return 10080
	default:
		return 0
	}
}

// Config is the immutable, validated set of parameters for one SCPPM
// session. It is built once via NewConfig and threaded explicitly to every
// component that needs it — there is no package-level mutable parameter
// namespace anywhere in this repository (spec.md §9).
type Config struct {
	M        int
	CodeRate CodeRate

	BInterleaver int
	NInterleaver int

	UseRandomizer   bool
	UseInnerEncoder bool

	SlotLength        float64 // seconds
	NumSamplesPerSlot int

	MaxTurboIters int
	CSMThresholdK float64

	// CheckTimingRequirement enables the optional pulse-center timing gate
	// in the demodulator (C6). Corresponds to Open Question (a) in
	// spec.md §9: the reference implementation defines but never calls
	// this check. Default false.
	CheckTimingRequirement bool

	// derived, cached at construction time
	m                      int
	slotsPerSymbol         int
	numGuardSlots          int
	symbolLength           float64
	symbolsPerCodeword     int
	interleavedPerCodeword int
}

// validMs enumerates the supported PPM orders (spec.md §3).
var validMs = map[int]bool{4: true, 8: true, 16: true, 32: true, 64: true, 128: true, 256: true}

// Option configures a Config before construction. Unknown fields are not
// representable by design — callers set exactly the enumerated options
// below, never an open keyword bag (spec.md §9).
type Option func(*Config)

func WithBInterleaver(b int) Option { return func(c *Config) { c.BInterleaver = b } }
func WithNInterleaver(n int) Option { return func(c *Config) { c.NInterleaver = n } }
func WithRandomizer(enabled bool) Option { return func(c *Config) { c.UseRandomizer = enabled } }
func WithInnerEncoder(enabled bool) Option { return func(c *Config) { c.UseInnerEncoder = enabled } }
func WithSlotLength(seconds float64) Option { return func(c *Config) { c.SlotLength = seconds } }
func WithNumSamplesPerSlot(n int) Option { return func(c *Config) { c.NumSamplesPerSlot = n } }
func WithMaxTurboIters(n int) Option { return func(c *Config) { c.MaxTurboIters = n } }
func WithCSMThresholdK(k float64) Option { return func(c *Config) { c.CSMThresholdK = k } }
func WithCheckTimingRequirement(enabled bool) Option {
	return func(c *Config) { c.CheckTimingRequirement = enabled }
}

// NewConfig validates M and CodeRate plus any Options and returns an
// immutable Config. All configuration errors are surfaced here, at session
// construction, per spec.md §7 — never as a late runtime panic.
func NewConfig(m int, rate CodeRate, opts ...Option) (*Config, error) {
	if !validMs[m] {
		return nil, newConfigError("unsupported PPM order M=%d", m)
	}

	if rate != Rate1_3 && rate != Rate1_2 && rate != Rate2_3 {
		return nil, newConfigError("unknown code rate %v", rate)
	}

	c := &Config{
		M:                 m,
		CodeRate:          rate,
		// N=1 (no channel interleaving) by default, with B one codeword
		// long so the default pair passes the B*N check below.
		BInterleaver:      15120 / (bits.Len(uint(m)) - 1),
		NInterleaver:       1,
		UseRandomizer:     true,
		UseInnerEncoder:   true,
		SlotLength:        1e-9,
		NumSamplesPerSlot: 1,
		MaxTurboIters:     10,
		CSMThresholdK:     4,
	}

	for _, opt := range opts {
		opt(c)
	}

	logM := bits.Len(uint(m)) - 1
	if 1<<uint(logM) != m {
		return nil, newConfigError("M=%d is not a power of two", m)
	}
	c.m = logM

	// Open Question (c): guard-slot count is M/4 throughout; assert it is
	// exact rather than silently truncating.
	if m%4 != 0 {
		return nil, newConfigError("M=%d is not a multiple of 4 (guard slots = M/4 must be exact)", m)
	}
	c.numGuardSlots = m / 4
	c.slotsPerSymbol = m + c.numGuardSlots

	if _, ok := csmTable[m]; !ok {
		return nil, newConfigError("no CSM pattern tabled for M=%d", m)
	}

	if 15120%c.m != 0 {
		return nil, newConfigError("15120 is not evenly divisible by m=log2(M)=%d", c.m)
	}
	c.symbolsPerCodeword = 15120 / c.m

	c.symbolLength = float64(c.slotsPerSymbol) * c.SlotLength

	// Each codeword's Forney channel interleaver (C3) is flushed
	// independently so codewords stay embarrassingly parallel to decode
	// (spec.md §5); the flush appends (N-1)*B null/blank symbols after the
	// codeword's SymbolsPerCodeword payload symbols.
	c.interleavedPerCodeword = c.symbolsPerCodeword + (c.NInterleaver-1)*c.BInterleaver

	if c.BInterleaver <= 0 || c.NInterleaver <= 0 {
		return nil, newConfigError("BInterleaver and NInterleaver must be positive, got B=%d N=%d",
			c.BInterleaver, c.NInterleaver)
	}

	if (c.BInterleaver*c.NInterleaver)%c.symbolsPerCodeword != 0 {
		return nil, newConfigError(
			"B*N=%d must be a multiple of SYMBOLS_PER_CODEWORD=%d",
			c.BInterleaver*c.NInterleaver, c.symbolsPerCodeword)
	}

	if c.MaxTurboIters <= 0 {
		return nil, newConfigError("MaxTurboIters must be positive, got %d", c.MaxTurboIters)
	}

	if c.CSMThresholdK <= 0 {
		return nil, newConfigError("CSMThresholdK must be positive, got %g", c.CSMThresholdK)
	}

	return c, nil
}

// BitsPerSymbol returns the bits-per-symbol exponent, log2(M).
func (c *Config) BitsPerSymbol() int { return c.m }

// SlotsPerSymbol is M + num_guard_slots.
func (c *Config) SlotsPerSymbol() int { return c.slotsPerSymbol }

// NumGuardSlots is M/4.
func (c *Config) NumGuardSlots() int { return c.numGuardSlots }

// SymbolLength is SlotsPerSymbol * SlotLength, in seconds.
func (c *Config) SymbolLength() float64 { return c.symbolLength }

// SymbolsPerCodeword is the CCSDS constant 15120/m.
func (c *Config) SymbolsPerCodeword() int { return c.symbolsPerCodeword }

// InterleavedSymbolsPerCodeword is SymbolsPerCodeword plus the Forney
// channel interleaver's per-codeword flush length, (N-1)*B. This is the
// number of symbols that follow each CSM on the wire.
func (c *Config) InterleavedSymbolsPerCodeword() int { return c.interleavedPerCodeword }

// InfoBlockBits is the outer-code information block size for this rate.
func (c *Config) InfoBlockBits() int { return c.CodeRate.infoBlockBits() }

// CSM returns the Codeword Synchronization Marker symbol sequence for this
// session's M, per Open Question (b).
func (c *Config) CSM() []int { return csmTable[c.M] }
