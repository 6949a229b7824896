// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// schedDispatcher is the structural interface for scheduling operations.
// DispatchSched runs on the scheduler goroutine on behalf of the calling
// task. It returns (v, false, nil) to resume the caller immediately with v,
// or (nil, true, nil) after marking the caller blocked, in which case the
// scheduler parks the caller's context and selects the next task.
type schedDispatcher interface {
	DispatchSched(s *Scheduler, caller Handle) (v kont.Resumed, yield bool, err error)
}

// resumeUnit is the pre-boxed resume value for operations whose result is
// struct{}. Boxing into Resumed (any) would otherwise allocate per yield.
var resumeUnit kont.Resumed = struct{}{}

// Spawn is the effect operation for creating a new task.
// Perform(Spawn{Body: b}) registers b with status Ready and resumes the
// caller immediately with the new task's Handle. The caller does not yield;
// the new task first runs when the scheduler selects it.
type Spawn struct {
	kont.Phantom[Handle]
	Body kont.Expr[struct{}]
}

// DispatchSched handles Spawn. Fails the run with ErrTaskLimit when the
// task table is at capacity; existing tasks are untouched.
func (op Spawn) DispatchSched(s *Scheduler, _ Handle) (kont.Resumed, bool, error) {
	h, err := s.alloc(op.Body)
	if err != nil {
		return nil, false, err
	}
	return h, false, nil
}

// Sleep is the effect operation for suspending the calling task for at
// least Ms milliseconds. Resumption is guaranteed no earlier than the
// requested delay; there is no upper bound, as the task then competes with
// every other eligible task.
type Sleep struct {
	kont.Phantom[struct{}]
	Ms int64
}

// DispatchSched handles Sleep. Records the absolute wake time and blocks
// the caller; a non-positive Ms still yields, with the caller immediately
// eligible on the next scan.
func (op Sleep) DispatchSched(s *Scheduler, caller Handle) (kont.Resumed, bool, error) {
	t := &s.tasks[caller]
	t.status = StatusBlockedOnSleep
	t.wakeTime = s.clock() + op.Ms
	return nil, true, nil
}

// Wait is the effect operation for joining another task.
// Perform(Wait{Task: h}) suspends the caller until task h next reaches the
// scheduler, normally by exiting but equally by blocking or yielding. If h
// has already exited the caller resumes immediately.
type Wait struct {
	kont.Phantom[struct{}]
	Task Handle
}

// DispatchSched handles Wait. Panics on an unknown handle.
func (op Wait) DispatchSched(s *Scheduler, caller Handle) (kont.Resumed, bool, error) {
	if op.Task < 0 || op.Task >= len(s.tasks) {
		panic("sched: wait on unknown task")
	}
	if s.tasks[op.Task].status == StatusExited {
		return resumeUnit, false, nil
	}
	t := &s.tasks[caller]
	t.status = StatusBlockedOnJoin
	t.joinTarget = op.Task
	return nil, true, nil
}

// ReadChar is the effect operation for reading one character.
// Perform(ReadChar{}) suspends the caller until the scheduler's
// non-blocking poll of the input source captures a character for it.
// Exactly one character is delivered per performed operation.
type ReadChar struct {
	kont.Phantom[rune]
}

// DispatchSched handles ReadChar. The caller blocks unconditionally; the
// poll happens inside the eligibility scan, never here.
func (ReadChar) DispatchSched(s *Scheduler, caller Handle) (kont.Resumed, bool, error) {
	s.tasks[caller].status = StatusBlockedOnInput
	return nil, true, nil
}

// Yield is the effect operation for a pure yield.
// Perform(Yield{}) re-enters Ready, letting every other eligible task run
// once before the caller is selected again.
type Yield struct {
	kont.Phantom[struct{}]
}

// DispatchSched handles Yield.
func (Yield) DispatchSched(s *Scheduler, caller Handle) (kont.Resumed, bool, error) {
	s.tasks[caller].status = StatusReady
	return nil, true, nil
}
