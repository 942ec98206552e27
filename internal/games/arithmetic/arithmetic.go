// Package arithmetic implements the mental-maths mode: a question with four
// answer options, repeated until enough correct answers clear the level.
package arithmetic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

// OptionCount is the number of answer options offered per question.
const OptionCount = 4

// Question is one arithmetic problem.
type Question struct {
	A, B    int
	Op      string
	Answer  int
	Options []int
}

// String renders the problem, e.g. "7 × 3 = ?".
func (q Question) String() string {
	return fmt.Sprintf("%d %s %d = ?", q.A, symbol(q.Op), q.B)
}

func symbol(op string) string {
	switch op {
	case "*":
		return "×"
	case "/":
		return "÷"
	case "-":
		return "−"
	default:
		return op
	}
}

// Round is the state of one arithmetic level.
type Round struct {
	ceiling   int
	operators []string
	target    int
	correct   int
	question  Question
	feedback  string
	rng       *core.RNG
}

// Mode returns config.ModeArithmetic.
func (r *Round) Mode() config.Mode {
	return config.ModeArithmetic
}

// Question returns a copy of the current question.
func (r *Round) Question() Question {
	q := r.question
	q.Options = append([]int(nil), q.Options...)
	return q
}

// Correct returns the number of correct answers so far.
func (r *Round) Correct() int {
	return r.correct
}

// View returns a render-ready copy of the round.
func (r *Round) View() registry.RoundView {
	v := registry.RoundView{
		Mode:     config.ModeArithmetic,
		Progress: r.correct,
		Goal:     r.target,
		Feedback: r.feedback,
	}
	if r.correct < r.target {
		v.Question = r.question.String()
		v.Options = append([]int(nil), r.question.Options...)
	}
	return v
}

func (r *Round) next() {
	r.question = Generate(r.rng, core.Pick(r.rng, r.operators), r.ceiling)
}

// Generate builds a question for op whose operands and answer are positive.
// Sums stay within ceiling, differences are at least one, products use
// factors up to sqrt(ceiling), and quotients pick the answer and divisor
// first so the division is exact.
func Generate(rng *core.RNG, op string, ceiling int) Question {
	if ceiling < 2 {
		panic(fmt.Sprintf("arithmetic: ceiling %d below 2", ceiling))
	}

	var q Question
	q.Op = op
	switch op {
	case "+":
		q.A = rng.IntRange(1, ceiling)
		q.B = rng.IntRange(1, ceiling-q.A+1)
		q.Answer = q.A + q.B
	case "-":
		q.A = rng.IntRange(2, ceiling+1)
		q.B = rng.IntRange(1, q.A)
		q.Answer = q.A - q.B
	case "*":
		limit := max(2, isqrt(ceiling))
		q.A = rng.IntRange(1, limit+1)
		q.B = rng.IntRange(1, limit+1)
		q.Answer = q.A * q.B
	case "/":
		divisor := rng.IntRange(2, max(3, isqrt(ceiling)+1))
		answer := rng.IntRange(1, max(2, ceiling/divisor+1))
		q.A = divisor * answer
		q.B = divisor
		q.Answer = answer
	default:
		panic(fmt.Sprintf("arithmetic: unknown operator %q", op))
	}
	q.Options = options(rng, q.Answer, max(3, ceiling/10))
	return q
}

// options returns OptionCount distinct positive values including answer, in
// random order. Distractors lie within spread of the answer; when the random
// draws keep colliding the nearest unused values above the answer fill in.
func options(rng *core.RNG, answer, spread int) []int {
	seen := map[int]bool{answer: true}
	out := []int{answer}
	for tries := 0; len(out) < OptionCount && tries < 50; tries++ {
		delta := rng.IntRange(1, spread+1)
		if rng.Intn(2) == 0 {
			delta = -delta
		}
		c := answer + delta
		if c > 0 && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for c := answer + 1; len(out) < OptionCount; c++ {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	core.Shuffle(rng, out)
	return out
}

func isqrt(n int) int {
	return int(math.Sqrt(float64(n)))
}

// Engine plays arithmetic.
type Engine struct{}

// New creates an arithmetic engine.
func New() *Engine {
	return &Engine{}
}

func init() {
	registry.Register(func() registry.Engine {
		return New()
	})
}

// Mode returns config.ModeArithmetic.
func (e *Engine) Mode() config.Mode {
	return config.ModeArithmetic
}

// Title returns the display name.
func (e *Engine) Title() string {
	return "Quick Maths"
}

// Begin asks the first question. Operands are bounded by p.Size and
// p.Target correct answers clear the level.
func (e *Engine) Begin(p config.Profile, env registry.Env) registry.Round {
	if len(p.Operators) == 0 || p.Target < 1 {
		panic(fmt.Sprintf("arithmetic: %d operators, target %d", len(p.Operators), p.Target))
	}
	r := &Round{
		ceiling:   p.Size,
		operators: append([]string(nil), p.Operators...),
		target:    p.Target,
		rng:       env.RNG,
	}
	r.next()
	return r
}

// Submit answers the current question, either by option index (Select) or
// by typing the number (Text). Every judged answer moves on to a new
// question until the level is cleared.
func (e *Engine) Submit(round registry.Round, a core.Attempt) registry.Outcome {
	r := roundOf(round)
	if r.correct >= r.target {
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}

	var answer int
	switch a.Kind {
	case core.AttemptSelect:
		if a.Index < 0 || a.Index >= len(r.question.Options) {
			panic(fmt.Sprintf("arithmetic: option %d out of range [0, %d)", a.Index, len(r.question.Options)))
		}
		answer = r.question.Options[a.Index]
	case core.AttemptText:
		n, err := strconv.Atoi(strings.TrimSpace(a.Text))
		if err != nil {
			return registry.Outcome{Verdict: registry.VerdictIgnored}
		}
		answer = n
	default:
		return registry.Outcome{Verdict: registry.VerdictIgnored}
	}

	q := r.question
	verdict := registry.VerdictIncorrect
	if answer == q.Answer {
		verdict = registry.VerdictCorrect
		r.correct++
		r.feedback = "Correct!"
	} else {
		r.feedback = fmt.Sprintf("Not quite: %d %s %d = %d", q.A, symbol(q.Op), q.B, q.Answer)
	}

	done := r.correct >= r.target
	if !done {
		r.next()
	}
	return registry.Outcome{Verdict: verdict, RoundComplete: done}
}

// IsComplete reports whether enough correct answers were given.
func (e *Engine) IsComplete(round registry.Round) bool {
	r := roundOf(round)
	return r.correct >= r.target
}

func roundOf(round registry.Round) *Round {
	r, ok := round.(*Round)
	if !ok {
		panic(fmt.Sprintf("arithmetic: foreign round %T", round))
	}
	return r
}
