// Package session runs one game session: difficulty selection, the level
// loop with escalation, scoring and the final summary. The lifecycle is a
// finite state machine (github.com/looplab/fsm); everything else is plain
// single-threaded state driven by player attempts and scheduler ticks.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/core"
	"github.com/vovakirdan/brain-arcade/internal/registry"
)

// Phase is the controller's lifecycle state.
type Phase string

const (
	PhaseSelecting     Phase = "selecting"
	PhaseInProgress    Phase = "in_progress"
	PhaseLevelComplete Phase = "level_complete"
	PhaseFinished      Phase = "finished"
)

const (
	eventSelect        = "select"
	eventCompleteLevel = "complete_level"
	eventNextLevel     = "next_level"
	eventFinish        = "finish"
	eventReset         = "reset"
)

// ErrNoSelection is returned by RequestRestart before any difficulty was chosen.
var ErrNoSelection = errors.New("session: no difficulty selected yet")

// State is the running tally of a session.
type State struct {
	Score      int
	Level      int
	StartTime  time.Time
	EndTime    time.Time
	LevelStart time.Time
	Matches    int
	Attempts   int
	LastBonus  int // time bonus awarded for the most recent level
}

// Summary is the closing report of a finished session.
type Summary struct {
	Mode       config.Mode
	Group      config.AgeGroup
	Label      string
	FinalScore int
	FinalTime  time.Duration
	FinalLevel int
	Matches    int
	Attempts   int
	Accuracy   float64
	Tier       Tier
	Message    string
	FinishedAt time.Time
}

// Snapshot is a render-ready copy of the controller's state.
type Snapshot struct {
	Phase        Phase
	Mode         config.Mode
	Group        config.AgeGroup
	Title        string
	Label        string
	Instructions string
	Score        int
	Level        int
	MaxLevels    int
	LastBonus    int
	Elapsed      time.Duration
	Matches      int
	Attempts     int
	Round        registry.RoundView
	NextLevelIn  time.Duration // countdown of the level-clear pause
	Summary      *Summary      // set once Finished
}

// Recorder persists finished sessions.
type Recorder interface {
	RecordSession(Summary) error
}

// Options configures a Controller. Zero values pick defaults: the embedded
// tier table, a time-based seed, the system clock and a discarding logger.
type Options struct {
	Tiers    *config.Tiers
	Seed     int64
	RNG      *core.RNG
	Clock    core.Clock
	Logger   *log.Logger
	Recorder Recorder

	// OnUpdate is called after every state change.
	OnUpdate func(Snapshot)
	// OnFinish is called once when the session reaches Finished.
	OnFinish func(Summary)
}

// Controller owns one player's session.
type Controller struct {
	tiers     config.Tiers
	clock     core.Clock
	rng       *core.RNG
	scheduler *core.Scheduler
	logger    *log.Logger
	recorder  Recorder
	onUpdate  func(Snapshot)
	onFinish  func(Summary)

	machine *fsm.FSM
	sel     config.Selector
	chosen  bool
	profile config.Profile
	engine  registry.Engine
	round   registry.Round
	state   State
	summary *Summary
	pause   core.TaskID
}

// New creates a controller in the Selecting phase.
func New(opts Options) *Controller {
	c := &Controller{
		clock:    opts.Clock,
		rng:      opts.RNG,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		onUpdate: opts.OnUpdate,
		onFinish: opts.OnFinish,
	}
	if opts.Tiers != nil {
		c.tiers = *opts.Tiers
	} else {
		c.tiers = config.DefaultTiers()
	}
	if c.clock == nil {
		c.clock = core.SystemClock{}
	}
	if c.rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = core.NewRNG(seed)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.scheduler = core.NewScheduler(c.clock)

	active := []string{string(PhaseInProgress), string(PhaseLevelComplete), string(PhaseFinished)}
	c.machine = fsm.NewFSM(
		string(PhaseSelecting),
		fsm.Events{
			{Name: eventSelect, Src: []string{string(PhaseSelecting)}, Dst: string(PhaseInProgress)},
			{Name: eventCompleteLevel, Src: []string{string(PhaseInProgress)}, Dst: string(PhaseLevelComplete)},
			{Name: eventNextLevel, Src: []string{string(PhaseLevelComplete)}, Dst: string(PhaseInProgress)},
			{Name: eventFinish, Src: []string{string(PhaseLevelComplete)}, Dst: string(PhaseFinished)},
			{Name: eventReset, Src: active, Dst: string(PhaseSelecting)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("transition", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return c
}

// Phase returns the current lifecycle state.
func (c *Controller) Phase() Phase {
	return Phase(c.machine.Current())
}

// MaxLevels returns the number of levels in a session.
func (c *Controller) MaxLevels() int {
	return c.tiers.Levels()
}

// Profile returns the difficulty of the current level.
func (c *Controller) Profile() config.Profile {
	return c.profile
}

// State returns a copy of the running tally.
func (c *Controller) State() State {
	return c.state
}

// Selection returns the last selector passed to SelectDifficulty.
func (c *Controller) Selection() (config.Selector, bool) {
	return c.sel, c.chosen
}

// SelectDifficulty starts level 1 for the selector. The selector may carry
// only an age; invalid ages and unknown groups or modes are returned as
// errors and leave the controller in Selecting. Calling it outside Selecting
// is a bug and panics.
func (c *Controller) SelectDifficulty(sel config.Selector) error {
	if c.Phase() != PhaseSelecting {
		panic(fmt.Sprintf("session: SelectDifficulty in phase %s", c.Phase()))
	}

	norm, err := c.tiers.Normalize(sel)
	if err != nil {
		return err
	}
	engine, err := registry.Create(norm.Mode)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	c.sel = norm
	c.chosen = true
	c.engine = engine
	c.profile = c.tiers.Resolve(norm)
	c.summary = nil
	c.state = State{
		Level:      1,
		StartTime:  now,
		LevelStart: now,
	}
	c.round = engine.Begin(c.profile, c.env())
	c.fire(eventSelect)

	c.logger.Info("session started",
		"mode", norm.Mode, "group", norm.Group, "label", c.profile.Label, "seed", c.rng.Seed())
	c.emit()
	return nil
}

// HandleAttempt forwards one player input to the active engine and updates
// the tally. Only judged outcomes count as attempts. Calling it while no
// round is in progress is a bug and panics.
func (c *Controller) HandleAttempt(a core.Attempt) registry.Outcome {
	if c.Phase() != PhaseInProgress || c.round == nil {
		panic(fmt.Sprintf("session: HandleAttempt(%s) in phase %s", a, c.Phase()))
	}

	out := c.engine.Submit(c.round, a)
	if out.Judged() {
		c.state.Attempts++
	}
	if out.Correct() {
		c.state.Matches++
		c.state.Score += c.profile.ScoreMultiplier
	}
	c.logger.Debug("attempt", "input", a, "verdict", out.Verdict,
		"score", c.state.Score, "matches", c.state.Matches, "attempts", c.state.Attempts)

	if c.engine.IsComplete(c.round) {
		c.completeLevel()
	}
	c.emit()
	return out
}

// Tick runs scheduled tasks that are due and reports how many ran.
func (c *Controller) Tick() int {
	n := c.scheduler.Advance()
	if n > 0 {
		c.emit()
	}
	return n
}

// RequestRestart abandons the current session and starts a new one with
// the same selection.
func (c *Controller) RequestRestart() error {
	if !c.chosen {
		return ErrNoSelection
	}
	c.reset()
	return c.SelectDifficulty(c.sel)
}

// RequestChangeDifficulty abandons the current session and returns to
// Selecting. It is a no-op when already there.
func (c *Controller) RequestChangeDifficulty() {
	if c.Phase() == PhaseSelecting {
		return
	}
	c.reset()
	c.emit()
}

// Continue ends the level-clear pause early and starts the next level.
// Returns false when there is no pause to skip.
func (c *Controller) Continue() bool {
	if c.Phase() != PhaseLevelComplete || !c.scheduler.Cancel(c.pause) {
		return false
	}
	c.nextLevel()
	c.emit()
	return true
}

// Close cancels every pending timed task.
func (c *Controller) Close() {
	if n := c.scheduler.CancelAll(); n > 0 {
		c.logger.Debug("cancelled pending tasks", "count", n)
	}
}

// Elapsed returns the session time: zero before a selection, frozen once
// Finished.
func (c *Controller) Elapsed() time.Duration {
	switch c.Phase() {
	case PhaseSelecting:
		return 0
	case PhaseFinished:
		return c.state.EndTime.Sub(c.state.StartTime)
	default:
		return c.clock.Now().Sub(c.state.StartTime)
	}
}

// Summary returns the closing report, or false before Finished.
func (c *Controller) Summary() (Summary, bool) {
	if c.summary == nil {
		return Summary{}, false
	}
	return *c.summary, true
}

// Snapshot returns a render-ready copy of the controller's state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     c.Phase(),
		MaxLevels: c.MaxLevels(),
		Elapsed:   c.Elapsed(),
	}
	if c.Phase() == PhaseSelecting {
		return s
	}

	s.Mode = c.profile.Mode
	s.Group = c.profile.Group
	s.Title = c.engine.Title()
	s.Label = c.profile.Label
	s.Instructions = c.profile.Instructions
	s.Score = c.state.Score
	s.Level = c.state.Level
	s.LastBonus = c.state.LastBonus
	s.Matches = c.state.Matches
	s.Attempts = c.state.Attempts
	if c.round != nil {
		s.Round = c.round.View()
	}
	if s.Phase == PhaseLevelComplete {
		if due, ok := c.scheduler.NextDue(); ok {
			s.NextLevelIn = max(0, due.Sub(c.clock.Now()))
		}
	}
	if c.summary != nil {
		sum := *c.summary
		s.Summary = &sum
	}
	return s
}

// completeLevel awards the time bonus and either schedules the next level
// after the configured pause or finishes the session.
func (c *Controller) completeLevel() {
	now := c.clock.Now()
	spent := int(now.Sub(c.state.LevelStart) / time.Second)
	bonus := max(0, c.profile.TimeBonus-spent)
	c.state.Score += bonus
	c.state.LastBonus = bonus
	c.scheduler.CancelAll()
	c.fire(eventCompleteLevel)

	c.logger.Info("level complete",
		"level", c.state.Level, "bonus", bonus, "score", c.state.Score, "seconds", spent)

	if c.state.Level >= c.MaxLevels() {
		c.finish()
		return
	}
	if c.tiers.LevelPause <= 0 {
		c.nextLevel()
		return
	}
	c.pause = c.scheduler.After(c.tiers.LevelPause, c.nextLevel)
}

func (c *Controller) nextLevel() {
	c.profile = c.profile.Escalate()
	c.state.Level = c.profile.Level
	c.state.LevelStart = c.clock.Now()
	c.round = c.engine.Begin(c.profile, c.env())
	c.fire(eventNextLevel)
	c.logger.Debug("level started", "level", c.state.Level, "size", c.profile.Size, "delay", c.profile.Delay)
}

func (c *Controller) finish() {
	c.state.EndTime = c.clock.Now()
	c.fire(eventFinish)

	accuracy := Accuracy(c.state.Matches, c.state.Attempts)
	tier := Rate(accuracy)
	sum := Summary{
		Mode:       c.profile.Mode,
		Group:      c.profile.Group,
		Label:      c.profile.Label,
		FinalScore: c.state.Score,
		FinalTime:  c.state.EndTime.Sub(c.state.StartTime),
		FinalLevel: c.state.Level,
		Matches:    c.state.Matches,
		Attempts:   c.state.Attempts,
		Accuracy:   accuracy,
		Tier:       tier,
		Message:    tier.Message(),
		FinishedAt: c.state.EndTime,
	}
	c.summary = &sum

	c.logger.Info("session finished",
		"mode", sum.Mode, "score", sum.FinalScore, "level", sum.FinalLevel,
		"accuracy", fmt.Sprintf("%.2f", sum.Accuracy), "tier", sum.Tier)

	if c.recorder != nil {
		if err := c.recorder.RecordSession(sum); err != nil {
			c.logger.Warn("failed to record session", "err", err)
		}
	}
	if c.onFinish != nil {
		c.onFinish(sum)
	}
}

func (c *Controller) reset() {
	c.Close()
	if c.Phase() != PhaseSelecting {
		c.fire(eventReset)
	}
	c.round = nil
	c.engine = nil
	c.summary = nil
	c.state = State{}
}

func (c *Controller) env() registry.Env {
	return registry.Env{RNG: c.rng, Scheduler: c.scheduler}
}

// fire applies a transition. The event table mirrors the call sites, so a
// refused event is a bug.
func (c *Controller) fire(event string) {
	if err := c.machine.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("session: event %s from %s: %v", event, c.Phase(), err))
	}
}

func (c *Controller) emit() {
	if c.onUpdate != nil {
		c.onUpdate(c.Snapshot())
	}
}
