package scppm

// PPM slot mapping & CSM (C4).

// ErasureSymbol marks a symbol frame with no valid detection: spec.md §4.3
// calls it "a distinguished erasure marker consumed by the LLR builder."
const ErasureSymbol = -1

// SlotRow is one symbol's worth of slots: a one-hot vector of length
// SlotsPerSymbol on transmit, or zero/one-hot (erasures are all-zero) on
// receive.
type SlotRow []byte

// MapSymbolsToSlots renders each PPM symbol value as a one-hot slot row.
// Every transmit row has Hamming weight exactly 1 with the set bit in a
// column < M (spec.md §8 slot-map one-hotness property).
func MapSymbolsToSlots(symbols []int, cfg *Config) []SlotRow {
	rows := make([]SlotRow, len(symbols))
	for i, v := range symbols {
		row := make(SlotRow, cfg.SlotsPerSymbol())
		if v >= 0 && v < cfg.M {
			row[v] = 1
		}
		rows[i] = row
	}
	return rows
}

// SlotsToSymbols inverts MapSymbolsToSlots: for each row, the column index
// of its single set bit in [0, M) is the symbol; an all-zero row (no
// detection) decodes to ErasureSymbol.
func SlotsToSymbols(rows []SlotRow, cfg *Config) []int {
	out := make([]int, len(rows))
	for i, row := range rows {
		out[i] = ErasureSymbol
		for v := 0; v < cfg.M; v++ {
			if row[v] != 0 {
				out[i] = v
				break
			}
		}
	}
	return out
}

// PrependCSM inserts the session's CSM symbol sequence in front of one
// codeword's worth of symbols, as done before every codeword
// (spec.md §4.3, §4.4 step 8).
func PrependCSM(cfg *Config, codewordSymbols []int) []int {
	csm := cfg.CSM()
	out := make([]int, 0, len(csm)+len(codewordSymbols))
	out = append(out, csm...)
	out = append(out, codewordSymbols...)
	return out
}
