// Package registry defines the contract every game-mode engine implements and
// a registry of engine factories. Engines register themselves in init()
// functions, so the session layer can dispatch on config.Mode without
// importing each engine package.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
)

// Env carries the collaborators an engine needs to build and run a round.
// The scheduler belongs to the session, which cancels every pending task when
// the session is torn down.
type Env struct {
	RNG       *core.RNG
	Scheduler *core.Scheduler
}

// Engine is one game mode. Engines are stateless: all mutable state lives in
// the Round they create, and only the engine that created a Round mutates it.
type Engine interface {
	// Mode returns the mode this engine plays.
	Mode() config.Mode

	// Title returns a human-readable name for display (e.g., "Match Pairs").
	Title() string

	// Begin builds a fresh round from the profile. Calling it again yields an
	// independent round.
	Begin(p config.Profile, env Env) Round

	// Submit applies one attempt to the round and reports the outcome.
	// Passing a round created by another engine is a bug and panics.
	Submit(r Round, a core.Attempt) Outcome

	// IsComplete reports whether the round reached the level's goal.
	IsComplete(r Round) bool
}

// Round is the live, mode-specific state of a level.
type Round interface {
	// Mode returns the mode of the engine that created the round.
	Mode() config.Mode

	// View returns a copy of the state suitable for rendering.
	View() RoundView
}

// Verdict classifies an Outcome.
type Verdict int

const (
	// VerdictIgnored means the input was a no-op: a flipped tile, input during
	// playback, or a selection inside the reveal window.
	VerdictIgnored Verdict = iota
	// VerdictPending means the input was accepted but not judged yet, like the
	// first tile of a pair or one step of a sequence.
	VerdictPending
	VerdictCorrect
	VerdictIncorrect
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictIgnored:
		return "ignored"
	case VerdictPending:
		return "pending"
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Outcome is the result of one Submit. Only Correct and Incorrect verdicts
// count as attempts.
type Outcome struct {
	Verdict       Verdict
	RoundComplete bool
}

// Judged reports whether the outcome counts as an attempt.
func (o Outcome) Judged() bool {
	return o.Verdict == VerdictCorrect || o.Verdict == VerdictIncorrect
}

// Correct reports whether the outcome was judged correct.
func (o Outcome) Correct() bool {
	return o.Verdict == VerdictCorrect
}

// Factory creates a new engine instance.
type Factory func() Engine

// Info contains metadata about a registered engine.
type Info struct {
	Mode  config.Mode
	Title string
}

var (
	factories = make(map[config.Mode]Factory)
	titles    = make(map[config.Mode]string)
	mu        sync.RWMutex
)

// Register adds an engine factory to the registry.
// Typically called from an engine's init() function.
// Panics if the mode is unknown or already registered.
func Register(f Factory) {
	mu.Lock()
	defer mu.Unlock()

	e := f()
	mode := e.Mode()
	if !mode.Valid() {
		panic(fmt.Sprintf("registry: engine for unknown mode %q", mode))
	}
	if _, exists := factories[mode]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", mode))
	}

	factories[mode] = f
	titles[mode] = e.Title()
}

// List returns all registered engines in menu order.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for mode := range factories {
		result = append(result, Info{Mode: mode, Title: titles[mode]})
	}

	order := make(map[config.Mode]int, len(config.Modes))
	for i, m := range config.Modes {
		order[m] = i
	}
	sort.Slice(result, func(i, j int) bool {
		return order[result[i].Mode] < order[result[j].Mode]
	})

	return result
}

// Create instantiates the engine for a mode.
// Returns an error if no engine is registered for it.
func Create(mode config.Mode) (Engine, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[mode]
	if !ok {
		return nil, fmt.Errorf("registry: no engine for mode %q", mode)
	}

	return f(), nil
}

// Exists checks if an engine is registered for the mode.
func Exists(mode config.Mode) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[mode]
	return ok
}
