// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// Handle is a stable integer identifying a task for its whole lifetime.
// Handles are allocated in ascending order and never reused; handle 0 is
// the bootstrap task established by New.
type Handle = int

// noTask is the scan result when no candidate can run (all exited).
const noTask Handle = -1

// Status is the lifecycle state of a task.
type Status uint8

const (
	// StatusReady marks a task that may run whenever it is selected.
	StatusReady Status = iota
	// StatusRunning marks the single task currently executing.
	StatusRunning
	// StatusBlockedOnInput marks a task waiting for a polled character.
	StatusBlockedOnInput
	// StatusBlockedOnSleep marks a task waiting for its wake time.
	StatusBlockedOnSleep
	// StatusBlockedOnJoin marks a task waiting for another task to exit.
	StatusBlockedOnJoin
	// StatusExited is terminal. No field of an exited task is touched again.
	StatusExited
)

// String implements fmt.Stringer.
func (st Status) String() string {
	switch st {
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusBlockedOnInput:
		return "blocked-on-input"
	case StatusBlockedOnSleep:
		return "blocked-on-sleep"
	case StatusBlockedOnJoin:
		return "blocked-on-join"
	case StatusExited:
		return "exited"
	}
	return "invalid"
}

// taskInfo is one slot of the scheduler's task arena.
//
// The execution context is either an unstarted body (started == false) or a
// parked suspension plus the value to resume it with. The suspension is the
// saved state at the task's last yield point; Resume restores it exactly
// there. The conditional fields wakeTime, joinTarget and pendingInput are
// meaningful only under their corresponding blocked status.
type taskInfo struct {
	status Status

	body    kont.Expr[struct{}]
	susp    *kont.Suspension[struct{}]
	resume  kont.Resumed
	started bool

	wakeTime     int64
	joinTarget   Handle
	pendingInput rune
}

// park saves the execution context of a task that just yielded.
func (t *taskInfo) park(susp *kont.Suspension[struct{}]) {
	t.susp = susp
}

// take consumes the parked suspension and its resume value.
func (t *taskInfo) take() (*kont.Suspension[struct{}], kont.Resumed) {
	susp, v := t.susp, t.resume
	t.susp = nil
	t.resume = nil
	return susp, v
}
