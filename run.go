// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// Run attaches the Cont-world body to the bootstrap task (handle 0) and
// drives the scheduler until every task has exited. Executes entirely on
// the calling goroutine; does not spawn goroutines or create channels.
//
// Returns nil on clean completion, ErrTaskLimit when a spawn exceeds the
// task table capacity, or ErrDeadlock when no blocked task can ever become
// eligible again. A Scheduler runs at most once; Run panics on reuse.
func (s *Scheduler) Run(boot kont.Eff[struct{}]) error {
	return s.RunExpr(kont.Reify(boot))
}

// RunExpr is Run for an Expr-world bootstrap body.
func (s *Scheduler) RunExpr(boot kont.Expr[struct{}]) error {
	if s.ran {
		panic("sched: scheduler already run")
	}
	s.ran = true

	_, susp := kont.StepExpr(boot)
	for {
		if susp == nil {
			// Exit continuation: the running task's function returned.
			// Runs exactly once per task; Exited is terminal.
			s.tasks[s.current].status = StatusExited
			next, err := s.schedule(s.current)
			if err != nil {
				return err
			}
			if next == noTask {
				return nil
			}
			susp = s.transfer(next)
			continue
		}

		op, ok := susp.Op().(schedDispatcher)
		if !ok {
			panic("sched: unhandled effect in scheduler")
		}
		v, yield, err := op.DispatchSched(s, s.current)
		if err != nil {
			return err
		}
		if !yield {
			_, susp = susp.Resume(v)
			continue
		}

		// The caller finished updating its own status inside DispatchSched
		// before this point; the scan below reads that state synchronously.
		s.tasks[s.current].park(susp)
		next, err := s.schedule(s.current)
		if err != nil {
			return err
		}
		if next == noTask {
			return nil
		}
		susp = s.transfer(next)
	}
}

// transfer makes h the running task and restores its execution context,
// running it up to its next yield. Returns the new suspension, or nil when
// the task's function returned. Selecting the yielding task itself restores
// the context it just parked (the no-switch fast path).
func (s *Scheduler) transfer(h Handle) *kont.Suspension[struct{}] {
	from := s.current
	t := &s.tasks[h]
	t.status = StatusRunning
	s.current = h
	if s.trace != nil && from != h {
		s.trace(from, h)
	}

	if !t.started {
		t.started = true
		body := t.body
		t.body = kont.Expr[struct{}]{}
		_, susp := kont.StepExpr(body)
		return susp
	}
	susp, v := t.take()
	_, next := susp.Resume(v)
	return next
}
