package config

import (
	"fmt"
	"time"
)

// Breakpoints are the inclusive upper ages of the three younger groups.
// Anyone older than Adult is a senior.
type Breakpoints struct {
	Child int `yaml:"child"`
	Teen  int `yaml:"teen"`
	Adult int `yaml:"adult"`
}

// ModeSettings is the per-mode block of a tier in the YAML table.
type ModeSettings struct {
	Size            int           `yaml:"size"`             // sequence length, numeric ceiling, or max word length
	Rows            int           `yaml:"rows"`             // match grid rows
	Cols            int           `yaml:"cols"`             // match grid columns
	Target          int           `yaml:"target"`           // correct answers / words needed to clear a level
	ScoreMultiplier int           `yaml:"score_multiplier"` // points per correct outcome
	TimeBonus       int           `yaml:"time_bonus"`       // bonus pool per level, minus seconds spent
	Delay           time.Duration `yaml:"delay"`            // reveal window, playback step, or word display time
	Operators       []string      `yaml:"operators"`        // arithmetic only
	Content         []string      `yaml:"content"`          // symbols, colours, or words
	Instructions    string        `yaml:"instructions"`
}

// GroupSettings holds every mode's settings for one age group.
type GroupSettings struct {
	Label string                `yaml:"label"`
	Modes map[Mode]ModeSettings `yaml:"modes"`
}

// Tiers is the full difficulty table.
type Tiers struct {
	Breakpoints Breakpoints                `yaml:"breakpoints"`
	MaxLevels   int                        `yaml:"max_levels"`
	LevelPause  time.Duration              `yaml:"level_pause"`
	Groups      map[AgeGroup]GroupSettings `yaml:"groups"`
}

// Profile is the resolved difficulty for one session level. It is a value:
// Escalate returns a new Profile and never mutates the receiver's content.
type Profile struct {
	Mode            Mode
	Group           AgeGroup
	Label           string
	Level           int
	Size            int
	Rows            int
	Cols            int
	Target          int
	ScoreMultiplier int
	TimeBonus       int
	Delay           time.Duration
	Operators       []string
	Content         []string
	Instructions    string
}

// GroupForAge maps an age to its tier using the configured breakpoints.
func (t Tiers) GroupForAge(age int) (AgeGroup, error) {
	if age < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAge, age)
	}
	switch {
	case age <= t.Breakpoints.Child:
		return GroupChild, nil
	case age <= t.Breakpoints.Teen:
		return GroupTeen, nil
	case age <= t.Breakpoints.Adult:
		return GroupAdult, nil
	default:
		return GroupSenior, nil
	}
}

// Normalize fills Group from Age when the selector only carries an age.
func (t Tiers) Normalize(sel Selector) (Selector, error) {
	if sel.Group == "" {
		g, err := t.GroupForAge(sel.Age)
		if err != nil {
			return sel, err
		}
		sel.Group = g
	}
	if !sel.Group.Valid() {
		return sel, fmt.Errorf("%w: %q", ErrUnknownGroup, sel.Group)
	}
	if !sel.Mode.Valid() {
		return sel, fmt.Errorf("%w: %q", ErrUnknownMode, sel.Mode)
	}
	return sel, nil
}

// Resolve returns the level-1 profile for a normalized selector.
// The table is validated on load, so an unknown group or mode here means the
// caller skipped Normalize; that is a bug and Resolve panics.
func (t Tiers) Resolve(sel Selector) Profile {
	gs, ok := t.Groups[sel.Group]
	if !ok {
		panic(fmt.Sprintf("config: Resolve: unknown age group %q", sel.Group))
	}
	ms, ok := gs.Modes[sel.Mode]
	if !ok {
		panic(fmt.Sprintf("config: Resolve: unknown mode %q for group %q", sel.Mode, sel.Group))
	}

	return Profile{
		Mode:            sel.Mode,
		Group:           sel.Group,
		Label:           gs.Label,
		Level:           1,
		Size:            ms.Size,
		Rows:            ms.Rows,
		Cols:            ms.Cols,
		Target:          ms.Target,
		ScoreMultiplier: ms.ScoreMultiplier,
		TimeBonus:       ms.TimeBonus,
		Delay:           ms.Delay,
		Operators:       append([]string(nil), ms.Operators...),
		Content:         append([]string(nil), ms.Content...),
		Instructions:    ms.Instructions,
	}
}

// Levels returns MaxLevels, defaulting to 3 for tables that omit it.
func (t Tiers) Levels() int {
	if t.MaxLevels <= 0 {
		return 3
	}
	return t.MaxLevels
}
