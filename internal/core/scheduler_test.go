package core

import (
	"testing"
	"time"
)

func newTestScheduler() (*Scheduler, *ManualClock) {
	clock := NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewScheduler(clock), clock
}

func TestSchedulerRunsDueTasksInOrder(t *testing.T) {
	s, clock := newTestScheduler()
	var order []string

	s.After(300*time.Millisecond, func() { order = append(order, "late") })
	s.After(100*time.Millisecond, func() { order = append(order, "early") })
	s.After(100*time.Millisecond, func() { order = append(order, "early-2") })

	if ran := s.Advance(); ran != 0 {
		t.Fatalf("Advance() before deadline ran %d tasks", ran)
	}

	clock.Advance(150 * time.Millisecond)
	if ran := s.Advance(); ran != 2 {
		t.Fatalf("Advance() ran %d tasks, expected 2", ran)
	}

	clock.Advance(time.Second)
	s.Advance()

	expected := []string{"early", "early-2", "late"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d] = %q, expected %q", i, order[i], expected[i])
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s, clock := newTestScheduler()
	fired := false
	id := s.After(time.Millisecond, func() { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel() should report a pending task")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() should report nothing to cancel")
	}

	clock.Advance(time.Second)
	s.Advance()
	if fired {
		t.Error("cancelled task ran")
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s, clock := newTestScheduler()
	fired := 0
	for i := 0; i < 3; i++ {
		s.After(time.Duration(i)*time.Millisecond, func() { fired++ })
	}

	if n := s.CancelAll(); n != 3 {
		t.Errorf("CancelAll() = %d, expected 3", n)
	}
	clock.Advance(time.Second)
	s.Advance()
	if fired != 0 || s.Pending() != 0 {
		t.Errorf("fired=%d pending=%d after CancelAll", fired, s.Pending())
	}
}

func TestSchedulerChainedTasks(t *testing.T) {
	s, clock := newTestScheduler()
	steps := 0
	s.After(0, func() {
		steps++
		s.After(0, func() { steps++ })
	})

	s.Advance()
	if steps != 2 {
		t.Errorf("chained zero-delay tasks ran %d times, expected 2", steps)
	}

	s.After(time.Second, func() {})
	due, ok := s.NextDue()
	if !ok || !due.Equal(clock.Now().Add(time.Second)) {
		t.Errorf("NextDue() = %v, %v", due, ok)
	}
}
