// Command scppm-decode demodulates a file of photon arrival timestamps and
// turbo-decodes the recovered symbol stream, following the teacher's
// cmd/direwolf pflag front-end idiom.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/esawindowsystem/scppm/scppm"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML session config file.")
	inputPath := pflag.StringP("input", "i", "", "Timestamp file, one arrival time in seconds per line. Reads stdin if omitted.")
	startTime := pflag.Float64P("start-time", "s", 0.0, "Start time of the first symbol frame, seconds.")
	numSymbols := pflag.IntP("num-symbols", "n", 0, "Number of symbol frames to demodulate.")
	outputDir := pflag.StringP("output-dir", "o", ".", "Directory for decoded payload artifacts.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scppm-decode - SCPPM decoder.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scppm-decode -c session.yaml -n 15000 [-i timestamps.txt]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *configPath == "" || *numSymbols <= 0 {
		pflag.Usage()
		if *configPath == "" || *numSymbols <= 0 {
			os.Exit(1)
		}
		return
	}

	cfg, err := scppm.LoadConfigFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pulseTimes, err := readTimestamps(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts []scppm.SessionOption
	if *verbose {
		opts = append(opts, scppm.WithLogger(scppm.NewDebugLogger()))
	}
	session := scppm.NewSession(cfg, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	payloads, meta, err := session.Decode(ctx, pulseTimes, *startTime, *numSymbols)
	if err != nil {
		fmt.Fprintln(os.Stderr, scppm.Colorize(scppm.StatusError, err.Error()))
	}

	for i := range payloads {
		status := scppm.Colorize(scppm.StatusDecoded, "OK")
		for _, bad := range meta.UncorrectableCodewords {
			if bad == i {
				status = scppm.Colorize(scppm.StatusUncorrectable, "UNCORRECTABLE")
			}
		}
		fmt.Printf("codeword %d: %s (%d iterations)\n", i, status, meta.IterationsUsed[i])
	}

	paths, err := scppm.DumpPayloads(*outputDir, "scppm-decode-%Y%m%d-%H%M%S", payloads, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d codewords to %s (dark counts: %d)\n", len(paths), *outputDir, meta.DarkCounts)
}

func readTimestamps(path string) ([]float64, error) {
	var f *os.File
	var err error
	if path == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	var times []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("scppm-decode: parsing timestamp %q: %w", line, err)
		}
		times = append(times, v)
	}
	return times, scanner.Err()
}
