package arithmetic

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

func begin(t *testing.T, group config.AgeGroup) (*Engine, *Round) {
	t.Helper()
	p := config.DefaultTiers().Resolve(config.Selector{Group: group, Mode: config.ModeArithmetic})
	e := New()
	r := e.Begin(p, registry.Env{RNG: core.NewRNG(3), Scheduler: core.NewScheduler(nil)})
	return e, r.(*Round)
}

func answerIndex(q Question) int {
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}

func TestGenerateInvariants(t *testing.T) {
	rng := core.NewRNG(42)
	for _, op := range []string{"+", "-", "*", "/"} {
		for _, ceiling := range []int{2, 10, 20, 50, 400} {
			for range 200 {
				q := Generate(rng, op, ceiling)
				assert.Positive(t, q.A)
				assert.Positive(t, q.B)
				assert.Positive(t, q.Answer)

				switch op {
				case "+":
					assert.Equal(t, q.A+q.B, q.Answer)
					assert.LessOrEqual(t, q.Answer, ceiling)
				case "-":
					assert.Equal(t, q.A-q.B, q.Answer)
					assert.LessOrEqual(t, q.A, ceiling)
				case "*":
					assert.Equal(t, q.A*q.B, q.Answer)
				case "/":
					assert.Zero(t, q.A%q.B, "%d / %d must divide exactly", q.A, q.B)
					assert.Equal(t, q.A/q.B, q.Answer)
					assert.GreaterOrEqual(t, q.B, 2)
				}

				require.Len(t, q.Options, OptionCount)
				seen := make(map[int]bool)
				for _, o := range q.Options {
					assert.Positive(t, o)
					assert.False(t, seen[o], "duplicate option %d in %v", o, q.Options)
					seen[o] = true
				}
				assert.True(t, seen[q.Answer])
			}
		}
	}
}

func TestGeneratePanicsOnBadInput(t *testing.T) {
	rng := core.NewRNG(1)
	assert.Panics(t, func() { Generate(rng, "%", 10) })
	assert.Panics(t, func() { Generate(rng, "+", 1) })
}

func TestQuestionString(t *testing.T) {
	assert.Equal(t, "7 × 3 = ?", Question{A: 7, B: 3, Op: "*"}.String())
	assert.Equal(t, "8 ÷ 2 = ?", Question{A: 8, B: 2, Op: "/"}.String())
	assert.Equal(t, "4 + 1 = ?", Question{A: 4, B: 1, Op: "+"}.String())
}

func TestTenCorrectAnswersClearLevel(t *testing.T) {
	e, r := begin(t, config.GroupChild)

	for i := 1; i <= 10; i++ {
		out := e.Submit(r, core.Select(answerIndex(r.Question())))
		assert.Equal(t, registry.VerdictCorrect, out.Verdict)
		assert.Equal(t, i == 10, out.RoundComplete)
		assert.Equal(t, i, r.Correct())
	}

	assert.True(t, e.IsComplete(r))
	assert.Empty(t, r.View().Question)
	assert.Equal(t, registry.VerdictIgnored, e.Submit(r, core.Select(0)).Verdict)
}

func TestWrongAnswerMovesOn(t *testing.T) {
	e, r := begin(t, config.GroupTeen)
	q := r.Question()
	wrong := (answerIndex(q) + 1) % OptionCount

	out := e.Submit(r, core.Select(wrong))
	assert.Equal(t, registry.VerdictIncorrect, out.Verdict)
	assert.False(t, out.RoundComplete)
	assert.Zero(t, r.Correct())
	assert.Contains(t, r.View().Feedback, strconv.Itoa(q.Answer))
}

func TestTypedAnswers(t *testing.T) {
	e, r := begin(t, config.GroupAdult)

	answer := r.Question().Answer
	out := e.Submit(r, core.Text(" "+strconv.Itoa(answer)+" "))
	assert.Equal(t, registry.VerdictCorrect, out.Verdict)

	assert.Equal(t, registry.VerdictIgnored, e.Submit(r, core.Text("twelve")).Verdict)
	assert.Equal(t, registry.VerdictIgnored, e.Submit(r, core.Submit()).Verdict)
	assert.Panics(t, func() { e.Submit(r, core.Select(OptionCount)) })
}

func TestEscalatedRangeIsUsed(t *testing.T) {
	tiers := config.DefaultTiers()
	p := tiers.Resolve(config.Selector{Group: config.GroupChild, Mode: config.ModeArithmetic}).Escalate()
	require.Equal(t, 20, p.Size)

	e := New()
	r := e.Begin(p, registry.Env{RNG: core.NewRNG(9), Scheduler: core.NewScheduler(nil)}).(*Round)
	assert.Equal(t, 20, r.ceiling)
}
