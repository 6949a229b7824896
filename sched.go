// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"errors"
	"io"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// defaultCapacity bounds the task table when Config.Capacity is zero.
const defaultCapacity = 128

// Config carries the scheduler's external collaborators. The zero value is
// usable: real monotonic clock, adaptive-backoff idle wait, no input source.
type Config struct {
	// Capacity is the maximum number of tasks, bootstrap included.
	// Zero means the default of 128.
	Capacity int

	// Clock returns monotonic milliseconds. It orders sleep wake times and
	// nothing else. Zero means milliseconds since New.
	Clock func() int64

	// Input is polled non-blockingly from the eligibility scan.
	// Nil means ReadChar can never complete.
	Input InputSource

	// IdleWait pauses between failed full scan passes.
	// Zero means adaptive backoff via iox.Backoff.
	IdleWait func()

	// Trace, when non-nil, observes every context transfer just after the
	// selected task became the running one. It is not called on the fast
	// path where a task reselects itself.
	Trace func(from, to Handle)
}

// Scheduler owns a bounded arena of task descriptors and drives them on a
// single goroutine. Create one with New; multiple schedulers are
// independent. A Scheduler must not be shared across goroutines.
type Scheduler struct {
	tasks    []taskInfo
	current  Handle
	capacity int

	clock    func() int64
	input    InputSource
	idleWait func()
	trace    func(from, to Handle)

	bo       iox.Backoff
	inputEOF bool
	ran      bool
	serial   Serial
}

// New creates a scheduler with the bootstrap task (handle 0) established as
// Running. The bootstrap task's body is supplied later to Run.
func New(cfg Config) *Scheduler {
	s := &Scheduler{
		capacity: cfg.Capacity,
		clock:    cfg.Clock,
		input:    cfg.Input,
		idleWait: cfg.IdleWait,
		trace:    cfg.Trace,
		serial:   nextSerial(),
	}
	if s.capacity <= 0 {
		s.capacity = defaultCapacity
	}
	if s.clock == nil {
		epoch := time.Now()
		s.clock = func() int64 { return time.Since(epoch).Milliseconds() }
	}
	s.tasks = make([]taskInfo, 1, min(s.capacity, defaultCapacity))
	s.tasks[0] = taskInfo{status: StatusRunning, started: true}
	return s
}

// Serial returns the process-monotonic serial assigned to this scheduler.
func (s *Scheduler) Serial() Serial {
	return s.serial
}

// Count returns the number of tasks created so far, bootstrap included.
func (s *Scheduler) Count() int {
	return len(s.tasks)
}

// Current returns the handle of the currently running task.
func (s *Scheduler) Current() Handle {
	return s.current
}

// Status returns the lifecycle state of a task. Panics on unknown handles.
func (s *Scheduler) Status(h Handle) Status {
	if h < 0 || h >= len(s.tasks) {
		panic("sched: status of unknown task")
	}
	return s.tasks[h].status
}

// Spawn registers a Cont-world task body with status Ready and returns its
// handle. Usable before Run; inside a running task, perform Spawn (the
// effect) or use SpawnBind instead.
func (s *Scheduler) Spawn(body kont.Eff[struct{}]) (Handle, error) {
	return s.SpawnExpr(kont.Reify(body))
}

// SpawnExpr registers an Expr-world task body with status Ready and returns
// its handle.
func (s *Scheduler) SpawnExpr(body kont.Expr[struct{}]) (Handle, error) {
	return s.alloc(body)
}

// alloc claims the next handle. Handles grow monotonically; exited slots
// are never recycled, so a handle stays valid for the scheduler's lifetime.
func (s *Scheduler) alloc(body kont.Expr[struct{}]) (Handle, error) {
	if len(s.tasks) >= s.capacity {
		return noTask, ErrTaskLimit
	}
	s.tasks = append(s.tasks, taskInfo{status: StatusReady, body: body})
	return len(s.tasks) - 1, nil
}

// schedule selects the next task to run after caller yielded. Candidates
// are scanned in ascending handle order starting at caller+1, wrapping;
// the first eligible candidate wins, with no priority or weighting. The
// caller itself is a valid candidate (it is scanned last).
//
// When a full pass finds nothing eligible, the table is classified: all
// tasks exited means the run is complete (noTask, nil); no sleeping task
// and no live input source means no blocked task can ever wake again
// (ErrDeadlock); otherwise the scheduler idle-waits and rescans from the
// same starting point.
func (s *Scheduler) schedule(caller Handle) (Handle, error) {
	n := len(s.tasks)
	start := (caller + 1) % n
	for {
		for i := range n {
			h := (start + i) % n
			if s.eligible(h, caller) {
				s.bo.Reset()
				return h, nil
			}
		}

		exited := 0
		canWake := false
		for h := range s.tasks {
			switch s.tasks[h].status {
			case StatusExited:
				exited++
			case StatusBlockedOnSleep:
				canWake = true
			case StatusBlockedOnInput:
				if s.input != nil && !s.inputEOF {
					canWake = true
				}
			}
		}
		if exited == n {
			return noTask, nil
		}
		if !canWake {
			return noTask, ErrDeadlock
		}
		if s.idleWait != nil {
			s.idleWait()
		} else {
			s.bo.Wait()
		}
	}
}

// eligible applies the per-status eligibility predicate to candidate h and,
// on success, records the value the candidate will be resumed with.
//
// The join predicate accepts the candidate when the yielding caller is its
// join target (the awaited task just reached the scheduler, normally while
// exiting) and also when the target is already exited, so joiners of an
// exited task wake on any later scan rather than blocking forever.
func (s *Scheduler) eligible(h, caller Handle) bool {
	t := &s.tasks[h]
	switch t.status {
	case StatusReady:
		t.resume = resumeUnit
		return true
	case StatusBlockedOnSleep:
		if s.clock() >= t.wakeTime {
			t.resume = resumeUnit
			return true
		}
	case StatusBlockedOnJoin:
		if caller == t.joinTarget || s.tasks[t.joinTarget].status == StatusExited {
			t.resume = resumeUnit
			return true
		}
	case StatusBlockedOnInput:
		if s.input == nil || s.inputEOF {
			return false
		}
		c, err := s.input.TryReadChar()
		if err == nil {
			t.pendingInput = c
			t.resume = t.pendingInput
			return true
		}
		if errors.Is(err, io.EOF) {
			s.inputEOF = true
		}
	}
	return false
}
