package gaps

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile bundles detector parameters for one deployment, so tolerances
// can be tuned per sensor fleet without recompiling.
type Profile struct {
	Stale         DiffConfig  `yaml:"stale"`
	StaleRounded  RoundConfig `yaml:"stale_rounded"`
	Interpolation DiffConfig  `yaml:"interpolation"`
}

// DefaultProfile returns a profile with the standard parameters of every
// detector.
func DefaultProfile() Profile {
	return Profile{
		Stale:         DefaultDiffConfig(),
		StaleRounded:  DefaultRoundConfig(),
		Interpolation: DefaultDiffConfig(),
	}
}

// ParseProfile parses a YAML detection profile. Omitted or zero-valued
// fields fall back to the defaults; a caller that needs a true zero
// tolerance should build a DiffConfig directly.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}

	// Fill defaults
	def := DefaultProfile()
	fillDiffDefaults(&p.Stale, def.Stale)
	fillDiffDefaults(&p.Interpolation, def.Interpolation)
	if p.StaleRounded.Decimals == 0 {
		p.StaleRounded.Decimals = def.StaleRounded.Decimals
	}
	if p.StaleRounded.Window == 0 {
		p.StaleRounded.Window = def.StaleRounded.Window
	}
	return p, nil
}

// LoadProfile reads and parses a YAML detection profile from disk.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(data)
}

func fillDiffDefaults(cfg *DiffConfig, def DiffConfig) {
	if cfg.Window == 0 {
		cfg.Window = def.Window
	}
	if cfg.RTol == 0 {
		cfg.RTol = def.RTol
	}
	if cfg.ATol == 0 {
		cfg.ATol = def.ATol
	}
}
