package config

import (
	"fmt"
	"time"
)

// Escalation limits.
const (
	minRevealDelay   = 300 * time.Millisecond
	minPlaybackStep  = 250 * time.Millisecond
	minWordDisplay   = 800 * time.Millisecond
	maxSequenceSize  = 12
	maxWordLength    = 12
	maxNumericRange  = 1000
	revealDelayStep  = 100 * time.Millisecond
	playbackSpeedup  = 0.85
	wordDisplayScale = 0.80
)

// Escalate returns the profile for the next level. Each mode grows along its
// own axis: match grids get bigger, sequences longer, numbers larger and words
// longer, and the timed windows get shorter.
func (p Profile) Escalate() Profile {
	next := p
	next.Level = p.Level + 1
	next.Operators = append([]string(nil), p.Operators...)
	next.Content = append([]string(nil), p.Content...)

	switch p.Mode {
	case ModeMatch:
		next.Rows, next.Cols = growGrid(p.Rows, p.Cols, 2*len(p.Content))
		next.Size = next.Rows * next.Cols
		next.Delay = maxDuration(p.Delay-revealDelayStep, minRevealDelay)
	case ModeSequence:
		next.Size = min(p.Size+1, maxSequenceSize)
		next.Delay = maxDuration(scale(p.Delay, playbackSpeedup), minPlaybackStep)
	case ModeArithmetic:
		next.Size = min(p.Size*2, maxNumericRange)
	case ModeWords:
		next.Size = min(p.Size+1, maxWordLength)
		next.Delay = maxDuration(scale(p.Delay, wordDisplayScale), minWordDisplay)
	default:
		panic(fmt.Sprintf("config: Escalate: unknown mode %q", p.Mode))
	}
	return next
}

// growGrid returns the smallest larger grid with an even cell count that the
// symbol pool can still fill. The shorter side grows first so the board stays
// roughly square. Returns the input when nothing larger fits.
func growGrid(rows, cols, maxCells int) (int, int) {
	candidates := [][2]int{
		{rows, cols + 1},
		{rows + 1, cols},
		{rows, cols + 2},
		{rows + 2, cols},
	}
	if cols > rows {
		candidates[0], candidates[1] = candidates[1], candidates[0]
		candidates[2], candidates[3] = candidates[3], candidates[2]
	}
	for _, c := range candidates {
		cells := c[0] * c[1]
		if cells%2 == 0 && cells <= maxCells {
			return c[0], c[1]
		}
	}
	return rows, cols
}

func scale(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f).Round(time.Millisecond)
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
