// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"errors"
)

// ErrTaskLimit reports that creating a task would exceed the scheduler's
// capacity. The existing task table is unaffected: the creating call fails
// explicitly instead of overflowing.
var ErrTaskLimit = errors.New("sched: task limit reached")

// ErrDeadlock reports that every live task is blocked and no clock or input
// event can ever make one eligible again. Raised instead of spinning in the
// idle wait forever.
var ErrDeadlock = errors.New("sched: all tasks blocked with no wake source")
