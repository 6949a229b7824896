// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched_test

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/sched"
)

// simClock is a manual millisecond clock. tick advances it by 1ms and is
// installed as the scheduler's idle wait, standing in for real time: the
// clock moves only when no task is eligible.
type simClock struct {
	ms int64
}

func (c *simClock) now() int64 { return c.ms }
func (c *simClock) tick()      { c.ms++ }

// newSim creates a scheduler driven by a simulated clock.
func newSim() (*sched.Scheduler, *simClock) {
	clk := &simClock{}
	s := sched.New(sched.Config{Clock: clk.now, IdleWait: clk.tick})
	return s, clk
}

// effect lifts a side-effecting function into a task body step. The
// function runs when the step is reached during the task's execution,
// not when the body is constructed.
func effect(f func()) kont.Eff[struct{}] {
	return kont.Bind(kont.Pure(struct{}{}), func(_ struct{}) kont.Eff[struct{}] {
		f()
		return kont.Pure(struct{}{})
	})
}

// emit appends s to log when the step runs.
func emit(log *[]string, s string) kont.Eff[struct{}] {
	return effect(func() { *log = append(*log, s) })
}

// emitThen appends s to log and continues with next.
func emitThen(log *[]string, s string, next kont.Eff[struct{}]) kont.Eff[struct{}] {
	return kont.Then(emit(log, s), next)
}
