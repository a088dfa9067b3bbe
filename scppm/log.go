package scppm

import (
	"os"

	"github.com/charmbracelet/log"
)

// Structured session logging, built on charmbracelet/log (kept from the
// teacher's go.mod, which declares it for its own tracker/beacon logging
// path). A Session without an explicit WithLogger carries a quiet default
// logger at warn level, matching the ambient-stack requirement that this
// component never be silently stdlib-log-only (SPEC_FULL.md, ambient
// component A2).

func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          "scppm",
	})
}

// NewDebugLogger returns a logger at debug level, for the cmd/ tools'
// -verbose flag.
func NewDebugLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "scppm",
	})
}
