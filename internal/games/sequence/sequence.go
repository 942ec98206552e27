// Package sequence implements a Simon-style memory game. The engine plays a
// growing prefix of a hidden colour sequence and the player repeats it.
package sequence

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

// startLength is the prefix length played first.
const startLength = 1

// Round is the state of one sequence level.
type Round struct {
	palette   []string
	target    []int // full hidden sequence, indices into palette
	length    int   // prefix currently being replayed
	entered   []int
	playing   bool
	highlight int
	done      bool
	feedback  string

	step      time.Duration
	scheduler *core.Scheduler
}

// Mode returns config.ModeSequence.
func (r *Round) Mode() config.Mode {
	return config.ModeSequence
}

// Playing reports whether the sequence is being shown.
func (r *Round) Playing() bool {
	return r.playing
}

// Length returns the prefix length the player has to repeat.
func (r *Round) Length() int {
	return r.length
}

// Expected returns a copy of the prefix the player has to repeat.
func (r *Round) Expected() []int {
	return append([]int(nil), r.target[:r.length]...)
}

// View returns a render-ready copy of the round.
func (r *Round) View() registry.RoundView {
	progress := r.length - 1
	if r.done {
		progress = len(r.target)
	}
	return registry.RoundView{
		Mode:      config.ModeSequence,
		Progress:  progress,
		Goal:      len(r.target),
		Locked:    r.playing,
		Feedback:  r.feedback,
		Palette:   append([]string(nil), r.palette...),
		Entered:   append([]int(nil), r.entered...),
		Highlight: r.highlight,
		Length:    r.length,
	}
}

// play schedules the highlight of every step of the current prefix. Each
// colour stays lit for three quarters of a step so repeats blink.
func (r *Round) play() {
	r.playing = true
	r.highlight = -1
	r.entered = r.entered[:0]

	lit := r.step * 3 / 4
	for i := 0; i < r.length; i++ {
		colour := r.target[i]
		start := time.Duration(i) * r.step
		r.scheduler.After(start, func() { r.highlight = colour })
		r.scheduler.After(start+lit, func() { r.highlight = -1 })
	}
	r.scheduler.After(time.Duration(r.length)*r.step, func() {
		r.highlight = -1
		r.playing = false
	})
}

// Engine plays sequence-repeat.
type Engine struct{}

// New creates a sequence engine.
func New() *Engine {
	return &Engine{}
}

func init() {
	registry.Register(func() registry.Engine {
		return New()
	})
}

// Mode returns config.ModeSequence.
func (e *Engine) Mode() config.Mode {
	return config.ModeSequence
}

// Title returns the display name.
func (e *Engine) Title() string {
	return "Sequence Repeat"
}

// Begin draws a hidden sequence of p.Size colours and starts playing its
// first step.
func (e *Engine) Begin(p config.Profile, env registry.Env) registry.Round {
	if p.Size < 1 || len(p.Content) < 2 {
		panic(fmt.Sprintf("sequence: size %d with %d colours", p.Size, len(p.Content)))
	}

	target := make([]int, p.Size)
	for i := range target {
		target[i] = env.RNG.Intn(len(p.Content))
	}

	r := &Round{
		palette:   append([]string(nil), p.Content...),
		target:    target,
		length:    min(startLength, p.Size),
		highlight: -1,
		step:      p.Delay,
		scheduler: env.Scheduler,
	}
	r.play()
	return r
}

// Submit records one colour (Select) or judges the entered steps against the
// current prefix (Submit). Input while the sequence plays is ignored. A
// correct replay lengthens the prefix; a wrong one replays the same prefix.
func (e *Engine) Submit(round registry.Round, a core.Attempt) registry.Outcome {
	r := roundOf(round)
	if r.playing || r.done {
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}

	switch a.Kind {
	case core.AttemptSelect:
		if a.Index < 0 || a.Index >= len(r.palette) {
			panic(fmt.Sprintf("sequence: colour %d out of range [0, %d)", a.Index, len(r.palette)))
		}
		if len(r.entered) >= r.length {
			return registry.Outcome{Verdict: registry.VerdictIgnored}
		}
		r.entered = append(r.entered, a.Index)
		r.feedback = ""
		return registry.Outcome{Verdict: registry.VerdictPending}

	case core.AttemptSubmit:
		if len(r.entered) == 0 {
			return registry.Outcome{Verdict: registry.VerdictIgnored}
		}
		if !slices.Equal(r.entered, r.target[:r.length]) {
			r.feedback = "Wrong order, watch again."
			r.play()
			return registry.Outcome{Verdict: registry.VerdictIncorrect}
		}
		if r.length == len(r.target) {
			r.done = true
			r.entered = r.entered[:0]
			r.feedback = "Sequence complete!"
			return registry.Outcome{Verdict: registry.VerdictCorrect, RoundComplete: true}
		}
		r.length++
		r.feedback = "Correct!"
		r.play()
		return registry.Outcome{Verdict: registry.VerdictCorrect}

	default:
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}
}

// IsComplete reports whether the whole sequence was repeated.
func (e *Engine) IsComplete(round registry.Round) bool {
	return roundOf(round).done
}

func roundOf(round registry.Round) *Round {
	r, ok := round.(*Round)
	if !ok {
		panic(fmt.Sprintf("sequence: foreign round %T", round))
	}
	return r
}
