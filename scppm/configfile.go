package scppm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML-serializable session configuration loaded by the
// cmd/ tools, grounded on the teacher's deviceid.go use of gopkg.in/yaml.v3
// for declarative data (there, tocalls.yaml; here, a session profile).
// FileConfig mirrors Config's Option set rather than Config itself, since
// Config's derived fields are intentionally unexported and only ever
// produced by NewConfig's validation.
type FileConfig struct {
	M        int    `yaml:"m"`
	CodeRate string `yaml:"code_rate"`

	BInterleaver int `yaml:"b_interleaver"`
	NInterleaver int `yaml:"n_interleaver"`

	UseRandomizer   *bool `yaml:"use_randomizer"`
	UseInnerEncoder *bool `yaml:"use_inner_encoder"`

	SlotLength        float64 `yaml:"slot_length_seconds"`
	NumSamplesPerSlot int     `yaml:"num_samples_per_slot"`

	MaxTurboIters          int     `yaml:"max_turbo_iters"`
	CSMThresholdK          float64 `yaml:"csm_threshold_k"`
	CheckTimingRequirement bool    `yaml:"check_timing_requirement"`
}

func parseCodeRate(s string) (CodeRate, error) {
	switch s {
	case "", "1/3":
		return Rate1_3, nil
	case "1/2":
		return Rate1_2, nil
	case "2/3":
		return Rate2_3, nil
	default:
		return 0, fmt.Errorf("scppm: unknown code_rate %q", s)
	}
}

// LoadConfigFile reads a YAML session profile from path and validates it
// into a *Config via NewConfig, so a malformed file fails the same way a
// bad NewConfig call would.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scppm: reading config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("scppm: parsing config file: %w", err)
	}

	rate, err := parseCodeRate(fc.CodeRate)
	if err != nil {
		return nil, err
	}

	var opts []Option
	if fc.BInterleaver > 0 {
		opts = append(opts, WithBInterleaver(fc.BInterleaver))
	}
	if fc.NInterleaver > 0 {
		opts = append(opts, WithNInterleaver(fc.NInterleaver))
	}
	if fc.UseRandomizer != nil {
		opts = append(opts, WithRandomizer(*fc.UseRandomizer))
	}
	if fc.UseInnerEncoder != nil {
		opts = append(opts, WithInnerEncoder(*fc.UseInnerEncoder))
	}
	if fc.SlotLength > 0 {
		opts = append(opts, WithSlotLength(fc.SlotLength))
	}
	if fc.NumSamplesPerSlot > 0 {
		opts = append(opts, WithNumSamplesPerSlot(fc.NumSamplesPerSlot))
	}
	if fc.MaxTurboIters > 0 {
		opts = append(opts, WithMaxTurboIters(fc.MaxTurboIters))
	}
	if fc.CSMThresholdK > 0 {
		opts = append(opts, WithCSMThresholdK(fc.CSMThresholdK))
	}
	opts = append(opts, WithCheckTimingRequirement(fc.CheckTimingRequirement))

	return NewConfig(fc.M, rate, opts...)
}
