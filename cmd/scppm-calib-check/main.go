// Command scppm-calib-check verifies a slot-matrix artifact produced by
// scppm-calib-gen (spec.md §8 scenario 1): every row but the last should
// carry PPM symbol 1, and the last row symbol 0. Paired with
// scppm-calib-gen, grounded on the teacher's fxsend/fxrec tool pair.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/esawindowsystem/scppm/scppm"
)

func main() {
	m := pflag.IntP("m", "m", 8, "PPM order M.")
	inputPath := pflag.StringP("input", "i", "", "Slot-matrix artifact written by scppm-calib-gen.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scppm-calib-check - SCPPM calibration pattern checker.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help || *inputPath == "" {
		pflag.Usage()
		if *inputPath == "" {
			os.Exit(1)
		}
		return
	}

	cfg, err := scppm.NewConfig(*m, scppm.Rate2_3, scppm.WithRandomizer(false))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rows, err := readSlotMatrix(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	symbols := scppm.SlotsToSymbols(rows, cfg)

	errors := 0
	for i, v := range symbols {
		want := 1
		if i == len(symbols)-1 {
			want = 0
		}
		if v != want {
			errors++
		}
	}

	ber := float64(errors) / float64(len(symbols))
	status := scppm.Colorize(scppm.StatusOK, "PASS")
	if errors > 0 {
		status = scppm.Colorize(scppm.StatusError, "FAIL")
	}

	fmt.Printf("%s: %d/%d symbols mismatched (BER=%g)\n", status, errors, len(symbols), ber)
	if errors > 0 {
		os.Exit(1)
	}
}

func readSlotMatrix(path string) ([]scppm.SlotRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []scppm.SlotRow
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make(scppm.SlotRow, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("scppm-calib-check: parsing slot matrix: %w", err)
			}
			row[i] = byte(v)
		}
		rows = append(rows, row)
	}
	return rows, scanner.Err()
}
