// Package wordrecall implements the word-memory mode: a word is shown for a
// short time, hidden, and the player types it back.
package wordrecall

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

// Round is the state of one word-recall level.
type Round struct {
	words    []string // eligible words in draw order
	next     int
	word     string
	visible  bool
	recalled int
	target   int
	feedback string

	display   time.Duration
	rng       *core.RNG
	scheduler *core.Scheduler
}

// Mode returns config.ModeWords.
func (r *Round) Mode() config.Mode {
	return config.ModeWords
}

// Word returns the word the player has to recall.
func (r *Round) Word() string {
	return r.word
}

// Visible reports whether the word is on screen.
func (r *Round) Visible() bool {
	return r.visible
}

// Recalled returns the number of words recalled correctly.
func (r *Round) Recalled() int {
	return r.recalled
}

// View returns a render-ready copy of the round. The word is blank once it
// has been hidden.
func (r *Round) View() registry.RoundView {
	v := registry.RoundView{
		Mode:     config.ModeWords,
		Progress: r.recalled,
		Goal:     r.target,
		Locked:   r.visible,
		Feedback: r.feedback,
	}
	if r.visible {
		v.Word = r.word
	}
	return v
}

// show draws the next word and schedules hiding it. The pool is reshuffled
// when exhausted, so no word repeats until every eligible word was shown.
func (r *Round) show() {
	if r.next == len(r.words) {
		core.Shuffle(r.rng, r.words)
		r.next = 0
	}
	r.word = r.words[r.next]
	r.next++
	r.visible = true
	r.scheduler.After(r.display, func() { r.visible = false })
}

// Engine plays word-recall.
type Engine struct{}

// New creates a word-recall engine.
func New() *Engine {
	return &Engine{}
}

func init() {
	registry.Register(func() registry.Engine {
		return New()
	})
}

// Mode returns config.ModeWords.
func (e *Engine) Mode() config.Mode {
	return config.ModeWords
}

// Title returns the display name.
func (e *Engine) Title() string {
	return "Word Recall"
}

// Begin shows the first word. Only words of at most p.Size letters are used
// and p.Target correct recalls clear the level.
func (e *Engine) Begin(p config.Profile, env registry.Env) registry.Round {
	var words []string
	for _, w := range p.Content {
		if utf8.RuneCountInString(w) <= p.Size {
			words = append(words, w)
		}
	}
	if len(words) == 0 || p.Target < 1 {
		panic(fmt.Sprintf("wordrecall: %d words up to %d letters, target %d", len(words), p.Size, p.Target))
	}
	core.Shuffle(env.RNG, words)

	r := &Round{
		words:     words,
		target:    p.Target,
		display:   p.Delay,
		rng:       env.RNG,
		scheduler: env.Scheduler,
	}
	r.show()
	return r
}

// Submit judges a typed answer. Input while the word is on screen and blank
// answers are ignored. Comparison ignores case and surrounding space, with no
// partial credit; either way the next word is shown.
func (e *Engine) Submit(round registry.Round, a core.Attempt) registry.Outcome {
	r := roundOf(round)
	if a.Kind != core.AttemptText || r.visible || r.recalled >= r.target {
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}
	answer := strings.TrimSpace(a.Text)
	if answer == "" {
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}

	verdict := registry.VerdictIncorrect
	if Same(answer, r.word) {
		verdict = registry.VerdictCorrect
		r.recalled++
		r.feedback = "Correct!"
	} else {
		r.feedback = fmt.Sprintf("The word was %q.", r.word)
	}

	done := r.recalled >= r.target
	if !done {
		r.show()
	}
	return registry.Outcome{Verdict: verdict, RoundComplete: done}
}

// IsComplete reports whether enough words were recalled.
func (e *Engine) IsComplete(round registry.Round) bool {
	r := roundOf(round)
	return r.recalled >= r.target
}

// Same reports whether two words match after trimming and Unicode case
// folding.
func Same(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

func roundOf(round registry.Round) *Round {
	r, ok := round.(*Round)
	if !ok {
		panic(fmt.Sprintf("wordrecall: foreign round %T", round))
	}
	return r
}
