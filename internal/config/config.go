// Package config provides the YAML tier table that maps a player's age and a
// game mode to a difficulty profile, plus the rules that escalate a profile
// between levels.
package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAge   = errors.New("config: age must be a positive number")
	ErrUnknownGroup = errors.New("config: unknown age group")
	ErrUnknownMode  = errors.New("config: unknown game mode")
)

// AgeGroup is one of the closed set of difficulty tiers.
type AgeGroup string

const (
	GroupChild  AgeGroup = "child"
	GroupTeen   AgeGroup = "teen"
	GroupAdult  AgeGroup = "adult"
	GroupSenior AgeGroup = "senior"
)

// Groups lists every age group from youngest to oldest.
var Groups = []AgeGroup{GroupChild, GroupTeen, GroupAdult, GroupSenior}

// Valid reports whether g is a known age group.
func (g AgeGroup) Valid() bool {
	switch g {
	case GroupChild, GroupTeen, GroupAdult, GroupSenior:
		return true
	}
	return false
}

// ParseAgeGroup converts user text to an AgeGroup.
func ParseAgeGroup(s string) (AgeGroup, error) {
	g := AgeGroup(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
	}
	return g, nil
}

// Mode is one of the closed set of game modes.
type Mode string

const (
	ModeMatch      Mode = "match"
	ModeSequence   Mode = "sequence"
	ModeArithmetic Mode = "arithmetic"
	ModeWords      Mode = "words"
)

// Modes lists every game mode in menu order.
var Modes = []Mode{ModeMatch, ModeSequence, ModeArithmetic, ModeWords}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeMatch, ModeSequence, ModeArithmetic, ModeWords:
		return true
	}
	return false
}

// ParseMode converts user text to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Selector is what the player picks on the setup screen. When Group is empty
// it is derived from Age through the tier breakpoints.
type Selector struct {
	Age   int
	Group AgeGroup
	Mode  Mode
}

// String formats the selector for logs.
func (s Selector) String() string {
	if s.Group != "" {
		return fmt.Sprintf("%s/%s", s.Group, s.Mode)
	}
	return fmt.Sprintf("age %d/%s", s.Age, s.Mode)
}
