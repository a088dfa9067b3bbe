package scppm

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Artifact dumps: optional timestamped files capturing a session's
// bit-reference payloads or slot matrices, for offline comparison against a
// later decode run. Grounded on the teacher's xmit.go/tq.go use of
// lestrrat-go/strftime to name per-transmission log entries; adapted here
// to name whole-session dump files instead of individual frame log lines.

// DumpPayloads writes each codeword's payload bits to dir, one file per
// codeword, named with the given strftime pattern plus a zero-padded
// codeword index. Returns the written file paths.
func DumpPayloads(dir, strftimePattern string, payloads [][]byte, at time.Time) ([]string, error) {
	formatted, err := strftime.Format(strftimePattern, at)
	if err != nil {
		return nil, fmt.Errorf("scppm: formatting artifact timestamp: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scppm: creating artifact directory: %w", err)
	}

	paths := make([]string, len(payloads))
	for i, bits := range payloads {
		name := fmt.Sprintf("%s.codeword%04d.bits", formatted, i)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, BitsToBytes(bits), 0o644); err != nil {
			return nil, fmt.Errorf("scppm: writing artifact %s: %w", path, err)
		}
		paths[i] = path
	}

	return paths, nil
}

// DumpSlotMatrix writes a session's slot-level wire format as a plain-text
// matrix (one row per symbol, space-separated slot values), for visual
// inspection or comparison against a reference encoder's output.
func DumpSlotMatrix(dir, strftimePattern string, rows []SlotRow, at time.Time) (string, error) {
	formatted, err := strftime.Format(strftimePattern, at)
	if err != nil {
		return "", fmt.Errorf("scppm: formatting artifact timestamp: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("scppm: creating artifact directory: %w", err)
	}

	path := filepath.Join(dir, formatted+".slots.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("scppm: writing artifact %s: %w", path, err)
	}
	defer f.Close()

	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(f, " ")
			}
			fmt.Fprintf(f, "%d", v)
		}
		fmt.Fprintln(f)
	}

	return path, nil
}
