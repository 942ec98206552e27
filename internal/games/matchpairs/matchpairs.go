// Package matchpairs implements the memory-matching card game: a grid of
// face-down tiles holding pairs of symbols, flipped two at a time.
package matchpairs

import (
	"fmt"
	"time"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

type tile struct {
	symbol   string
	revealed bool
	matched  bool
}

// Round is the state of one match-pairs grid.
type Round struct {
	tiles   []tile
	rows    int
	cols    int
	flipped []int // indices of face-up, unmatched tiles (at most two)
	pairs   int   // matched pairs
	locked  bool  // a mismatched pair is on show and selections are ignored

	delay     time.Duration
	scheduler *core.Scheduler
}

// Mode returns config.ModeMatch.
func (r *Round) Mode() config.Mode {
	return config.ModeMatch
}

// TotalPairs returns the number of pairs on the grid.
func (r *Round) TotalPairs() int {
	return len(r.tiles) / 2
}

// MatchedPairs returns the number of pairs found so far.
func (r *Round) MatchedPairs() int {
	return r.pairs
}

// Locked reports whether the mismatch reveal window is open.
func (r *Round) Locked() bool {
	return r.locked
}

// View returns a render-ready copy of the grid.
func (r *Round) View() registry.RoundView {
	tiles := make([]registry.TileView, len(r.tiles))
	for i, t := range r.tiles {
		switch {
		case t.matched:
			tiles[i] = registry.TileView{Symbol: t.symbol, State: registry.TileMatched}
		case t.revealed:
			tiles[i] = registry.TileView{Symbol: t.symbol, State: registry.TileRevealed}
		default:
			tiles[i] = registry.TileView{State: registry.TileHidden}
		}
	}
	return registry.RoundView{
		Mode:     config.ModeMatch,
		Progress: r.pairs,
		Goal:     r.TotalPairs(),
		Locked:   r.locked,
		Tiles:    tiles,
		Rows:     r.rows,
		Cols:     r.cols,
	}
}

// Engine plays match-pairs.
type Engine struct{}

// New creates a match-pairs engine.
func New() *Engine {
	return &Engine{}
}

func init() {
	registry.Register(func() registry.Engine {
		return New()
	})
}

// Mode returns config.ModeMatch.
func (e *Engine) Mode() config.Mode {
	return config.ModeMatch
}

// Title returns the display name.
func (e *Engine) Title() string {
	return "Match Pairs"
}

// Begin deals a new grid. Symbols are drawn from the shuffled pool, doubled,
// and the deck is shuffled again.
func (e *Engine) Begin(p config.Profile, env registry.Env) registry.Round {
	cells := p.Rows * p.Cols
	needed := cells / 2
	if cells%2 != 0 || needed > len(p.Content) {
		panic(fmt.Sprintf("matchpairs: grid %dx%d cannot be dealt from %d symbols", p.Rows, p.Cols, len(p.Content)))
	}

	pool := append([]string(nil), p.Content...)
	core.Shuffle(env.RNG, pool)
	deck := make([]string, 0, cells)
	deck = append(deck, pool[:needed]...)
	deck = append(deck, pool[:needed]...)
	core.Shuffle(env.RNG, deck)

	tiles := make([]tile, cells)
	for i, s := range deck {
		tiles[i] = tile{symbol: s}
	}

	return &Round{
		tiles:     tiles,
		rows:      p.Rows,
		cols:      p.Cols,
		delay:     p.Delay,
		scheduler: env.Scheduler,
	}
}

// Submit flips one tile. The second flip of a pair is judged; a mismatch
// stays face up for the profile's reveal delay and every selection in that
// window is ignored.
func (e *Engine) Submit(round registry.Round, a core.Attempt) registry.Outcome {
	r := roundOf(round)
	if a.Kind != core.AttemptSelect {
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}
	if a.Index < 0 || a.Index >= len(r.tiles) {
		panic(fmt.Sprintf("matchpairs: tile %d out of range [0, %d)", a.Index, len(r.tiles)))
	}

	t := &r.tiles[a.Index]
	if r.locked || t.revealed || t.matched {
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}

	t.revealed = true
	r.flipped = append(r.flipped, a.Index)
	if len(r.flipped) < 2 {
		return registry.Outcome{Verdict: registry.VerdictPending}
	}

	first, second := r.flipped[0], r.flipped[1]
	if r.tiles[first].symbol == r.tiles[second].symbol {
		r.tiles[first].matched = true
		r.tiles[second].matched = true
		r.flipped = r.flipped[:0]
		r.pairs++
		return registry.Outcome{
			Verdict:       registry.VerdictCorrect,
			RoundComplete: r.pairs == r.TotalPairs(),
		}
	}

	r.locked = true
	r.scheduler.After(r.delay, func() {
		r.tiles[first].revealed = false
		r.tiles[second].revealed = false
		r.flipped = r.flipped[:0]
		r.locked = false
	})
	return registry.Outcome{Verdict: registry.VerdictIncorrect}
}

// IsComplete reports whether every pair has been matched.
func (e *Engine) IsComplete(round registry.Round) bool {
	r := roundOf(round)
	return r.pairs == r.TotalPairs()
}

func roundOf(round registry.Round) *Round {
	r, ok := round.(*Round)
	if !ok {
		panic(fmt.Sprintf("matchpairs: foreign round %T", round))
	}
	return r
}
