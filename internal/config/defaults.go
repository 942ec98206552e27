package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/tiers.yaml
var defaultTiersYAML []byte

// DefaultTiers returns the embedded tier table. The embedded file ships with
// the binary, so a parse or validation failure is a build defect and panics.
func DefaultTiers() Tiers {
	t, err := parseTiers(defaultTiersYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded tiers.yaml: %v", err))
	}
	return t
}

// DefaultYAML returns the embedded tier table source.
func DefaultYAML() []byte {
	return defaultTiersYAML
}

func parseTiers(data []byte) (Tiers, error) {
	var t Tiers
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, err
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}
