package core

import "time"

// TaskID identifies a scheduled task.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Time
	fn  func()
}

// Scheduler holds delayed callbacks and runs them when the owner advances it.
// Nothing runs on its own goroutine: the platform layer calls Advance from its
// tick loop, which keeps all session mutation on one thread.
type Scheduler struct {
	clock  Clock
	tasks  []task
	nextID TaskID
}

// NewScheduler creates a scheduler that measures delays with clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// After schedules fn to run once d has elapsed. A non-positive delay makes the
// task due on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, task{
		id:  s.nextID,
		due: s.clock.Now().Add(d),
		fn:  fn,
	})
	return s.nextID
}

// Cancel removes a pending task. Returns false if it already ran or was
// cancelled.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task and returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	n := len(s.tasks)
	s.tasks = nil
	return n
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance runs every task due at the clock's current time, earliest first and
// in scheduling order for equal deadlines. Tasks scheduled by a running task
// are considered in the same pass if they are already due.
func (s *Scheduler) Advance() int {
	ran := 0
	for {
		now := s.clock.Now()
		idx := -1
		for i, t := range s.tasks {
			if t.due.After(now) {
				continue
			}
			if idx < 0 || t.due.Before(s.tasks[idx].due) ||
				(t.due.Equal(s.tasks[idx].due) && t.id < s.tasks[idx].id) {
				idx = i
			}
		}
		if idx < 0 {
			return ran
		}
		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		t.fn()
		ran++
	}
}

// NextDue returns the earliest pending deadline, if any.
func (s *Scheduler) NextDue() (time.Time, bool) {
	if len(s.tasks) == 0 {
		return time.Time{}, false
	}
	due := s.tasks[0].due
	for _, t := range s.tasks[1:] {
		if t.due.Before(due) {
			due = t.due
		}
	}
	return due, true
}
