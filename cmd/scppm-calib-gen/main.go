// Command scppm-calib-gen emits the SCPPM calibration pattern (spec.md §8
// scenario 1: 1890 copies of PPM symbol 1 followed by a single 0), mapped
// straight to the slot-level wire format with no outer/inner coding — a
// raw timing-alignment signal, not a coded test vector. Paired with
// scppm-calib-check, directly grounded on the teacher's fxsend/fxrec
// FX.25 round-trip test tool pair.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/esawindowsystem/scppm/scppm"
)

func main() {
	m := pflag.IntP("m", "m", 8, "PPM order M.")
	outputDir := pflag.StringP("output-dir", "o", ".", "Directory for the calibration artifact.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scppm-calib-gen - SCPPM calibration pattern generator.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}

	cfg, err := scppm.NewConfig(*m, scppm.Rate2_3, scppm.WithRandomizer(false))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	symbols := make([]int, 1891)
	for i := 0; i < 1890; i++ {
		symbols[i] = 1
	}
	symbols[1890] = 0

	rows := scppm.MapSymbolsToSlots(symbols, cfg)

	path, err := scppm.DumpSlotMatrix(*outputDir, "scppm-calib-%Y%m%d-%H%M%S", rows, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote calibration pattern (%d rows) to %s\n", len(rows), path)
}
