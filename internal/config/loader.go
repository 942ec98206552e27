package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var knownOperators = map[string]bool{"+": true, "-": true, "*": true, "/": true}

// Load loads the tier table.
// Search order: customPath -> ~/.brain-arcade/tiers.yaml -> ./configs/tiers.yaml -> embedded default
func Load(customPath string) (Tiers, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tiers{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		t, err := parseTiers(data)
		if err != nil {
			return Tiers{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return t, nil
	}

	// A broken user file falls through to the next location.
	for _, path := range []string{userConfigPath("tiers.yaml"), filepath.Join("configs", "tiers.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if t, err := parseTiers(data); err == nil {
			return t, nil
		}
	}

	return DefaultTiers(), nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brain-arcade", filename)
}

// Validate checks that the table covers every group and mode with playable
// settings, which is what makes Resolve total.
func (t Tiers) Validate() error {
	var errs []error

	bp := t.Breakpoints
	if bp.Child < 1 || bp.Teen <= bp.Child || bp.Adult <= bp.Teen {
		errs = append(errs, fmt.Errorf("breakpoints must be increasing and positive: %+v", bp))
	}
	if t.LevelPause < 0 {
		errs = append(errs, fmt.Errorf("level_pause must not be negative"))
	}

	for _, g := range Groups {
		gs, ok := t.Groups[g]
		if !ok {
			errs = append(errs, fmt.Errorf("group %q: missing", g))
			continue
		}
		for _, m := range Modes {
			ms, ok := gs.Modes[m]
			if !ok {
				errs = append(errs, fmt.Errorf("group %q: mode %q missing", g, m))
				continue
			}
			if err := ms.validate(m); err != nil {
				errs = append(errs, fmt.Errorf("group %q: mode %q: %w", g, m, err))
			}
		}
	}

	return errors.Join(errs...)
}

func (ms ModeSettings) validate(m Mode) error {
	if ms.ScoreMultiplier <= 0 {
		return errors.New("score_multiplier must be positive")
	}
	if ms.TimeBonus < 0 {
		return errors.New("time_bonus must not be negative")
	}

	switch m {
	case ModeMatch:
		cells := ms.Rows * ms.Cols
		if ms.Rows < 1 || ms.Cols < 1 || cells%2 != 0 {
			return fmt.Errorf("grid %dx%d must have an even number of cells", ms.Rows, ms.Cols)
		}
		if cells > 2*len(ms.Content) {
			return fmt.Errorf("grid %dx%d needs %d symbols, have %d", ms.Rows, ms.Cols, cells/2, len(ms.Content))
		}
	case ModeSequence:
		if ms.Size < 1 {
			return errors.New("size must be positive")
		}
		if len(ms.Content) < 2 {
			return errors.New("need at least two colours")
		}
	case ModeArithmetic:
		if ms.Size < 2 || ms.Target < 1 {
			return errors.New("size must be at least 2 and target positive")
		}
		if len(ms.Operators) == 0 {
			return errors.New("no operators")
		}
		for _, op := range ms.Operators {
			if !knownOperators[op] {
				return fmt.Errorf("unknown operator %q", op)
			}
		}
	case ModeWords:
		if ms.Size < 1 || ms.Target < 1 {
			return errors.New("size and target must be positive")
		}
		if !hasWordUpTo(ms.Content, ms.Size) {
			return fmt.Errorf("no word of length <= %d", ms.Size)
		}
	}
	return nil
}

func hasWordUpTo(words []string, n int) bool {
	for _, w := range words {
		if len([]rune(w)) <= n {
			return true
		}
	}
	return false
}
