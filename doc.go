// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sched provides a cooperative single-threaded task scheduler via
// algebraic effects on [code.hybscloud.com/kont].
//
// Tasks share one goroutine. A task runs until it voluntarily yields by
// performing a scheduling effect; the scheduler then selects the next
// runnable task in round-robin order and transfers control by restoring
// that task's saved execution context.
//
// # Architecture
//
//   - Execution context: tasks are explicit state machines. An unstarted task
//     is a [code.hybscloud.com/kont.Expr] body; a yielded task is a parked
//     [code.hybscloud.com/kont.Suspension] plus its pending resume value.
//   - Single-threaded: [Scheduler.Run] drives every task on the calling
//     goroutine. Does not spawn goroutines or create channels. Selection is
//     deterministic given the clock and input adapters.
//   - Idle waiting: when no task is eligible, the scheduler waits with
//     adaptive backoff ([code.hybscloud.com/iox.Backoff]) and rescans.
//   - Input: a non-blocking [InputSource] polled only from the eligibility
//     scan. [QueueInput] adapts a producer goroutine via a bounded lock-free
//     SPSC queue from [code.hybscloud.com/lfq].
//
// # API Topologies
//
//   - Operations: [Spawn], [Sleep], [Wait], [ReadChar], [Yield]. These are
//     the only suspend points; a task that performs none of them and never
//     returns starves every other task.
//   - Cont-world: [SpawnBind], [SleepThen], [WaitThen], [ReadCharBind],
//     [YieldThen], [Done].
//   - Expr-world: Zero-allocation variants like [ExprSleepThen],
//     [ExprReadCharBind], etc. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop], [ExprLoop] and [Times] for iterative task bodies.
//
// # Scheduling
//
// Candidates are scanned in ascending handle order starting after the
// yielding task. Eligibility is per status: Ready always; sleeping tasks
// once the clock reaches their wake time; joining tasks when the awaited
// task yields into the scheduler or has exited; input-blocked tasks when a
// poll captures a character. Handle 0 is the bootstrap task, implicitly
// running when [Scheduler.Run] starts; handles are never reused.
//
// A run ends cleanly when every task has exited, or with [ErrDeadlock] when
// no blocked task can ever become eligible again. Capacity exhaustion
// surfaces as [ErrTaskLimit].
//
// # Example
//
//	s := sched.New(sched.Config{})
//	err := s.Run(sched.SpawnBind(
//		sched.SleepThen(10, sched.Done()),
//		func(h sched.Handle) kont.Eff[struct{}] {
//			return sched.WaitThen(h, sched.Done())
//		},
//	))
package sched
