package scppm

import "fmt"

// ConfigError reports an invalid or inconsistent session configuration.
// Configuration is refused at session construction; no *Config is ever
// returned alongside one.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scppm: config error: %s", e.Reason)
}

func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// FrameSyncError reports that fewer than two CSMs were found in a symbol
// stream, or that the spacing between confirmed CSMs was implausible.
type FrameSyncError struct {
	Reason string
}

func (e *FrameSyncError) Error() string {
	return fmt.Sprintf("scppm: frame sync error: %s", e.Reason)
}

// DecoderError reports that every codeword in a session failed CRC
// verification after MaxTurboIters iterations.
type DecoderError struct {
	Reason string
}

func (e *DecoderError) Error() string {
	return fmt.Sprintf("scppm: decoder error: %s", e.Reason)
}

// DemodulatorError reports a malformed timestamp stream: non-monotonic or
// empty arrival times.
type DemodulatorError struct {
	Reason string
}

func (e *DemodulatorError) Error() string {
	return fmt.Sprintf("scppm: demodulator error: %s", e.Reason)
}

// UncorrectableCodewordError is non-fatal: it is recorded in
// SessionMetadata.UncorrectableCodewords rather than returned from Decode.
// It is still a Go error type so callers processing per-codeword results
// directly can treat it uniformly.
type UncorrectableCodewordError struct {
	CodewordIndex int
}

func (e *UncorrectableCodewordError) Error() string {
	return fmt.Sprintf("scppm: codeword %d uncorrectable after max iterations", e.CodewordIndex)
}
