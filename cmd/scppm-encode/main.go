// Command scppm-encode reads raw payload bytes and writes the SCPPM
// slot-level wire format, following the teacher's cmd/direwolf pflag
// front-end idiom.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/esawindowsystem/scppm/scppm"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML session config file.")
	inputPath := pflag.StringP("input", "i", "", "Input payload file (raw bytes). Reads stdin if omitted.")
	outputDir := pflag.StringP("output-dir", "o", ".", "Directory for the slot-matrix artifact.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scppm-encode - SCPPM encoder.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scppm-encode -c session.yaml [-i payload.bin]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *configPath == "" {
		pflag.Usage()
		if *configPath == "" {
			os.Exit(1)
		}
		return
	}

	cfg, err := scppm.LoadConfigFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var in *os.File
	if *inputPath == "" {
		in = os.Stdin
	} else {
		in, err = os.Open(*inputPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer in.Close()
	}

	payloadBytes, err := readAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	blockBits := cfg.InfoBlockBits() - 16 - 6
	payloads := chunkBits(scppm.BytesToBits(payloadBytes), blockBits)

	var opts []scppm.SessionOption
	if *verbose {
		opts = append(opts, scppm.WithLogger(scppm.NewDebugLogger()))
	}
	session := scppm.NewSession(cfg, opts...)

	rows, err := session.Encode(payloads)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	path, err := scppm.DumpSlotMatrix(*outputDir, "scppm-encode-%Y%m%d-%H%M%S", rows, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d symbol rows across %d codewords to %s\n", len(rows), len(payloads), path)
}
