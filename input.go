// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"io"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// InputSource is the pollable input collaborator consumed by the scheduler.
//
// TryReadChar is non-blocking: it returns the next character, or
// iox.ErrWouldBlock when none is available now, or io.EOF when the source
// is permanently exhausted. After io.EOF the scheduler stops treating the
// source as a wake source for liveness classification.
//
// The scheduler polls only from within the eligibility scan, and consumes
// exactly one character per successful poll.
type InputSource interface {
	TryReadChar() (rune, error)
}

// defaultQueueCapacity is the ring capacity for NewQueueInput(0).
const defaultQueueCapacity = 64

// QueueInput adapts a producer goroutine to an InputSource through a
// bounded lock-free SPSC queue. Exactly one goroutine may call Put/Close
// (the producer) while the scheduler goroutine polls TryReadChar (the
// consumer).
type QueueInput struct {
	q      lfq.SPSC[rune]
	closed atomix.Uint32
	slot   rune
}

// NewQueueInput creates a QueueInput with the given ring capacity.
// Non-positive capacity means the default of 64.
func NewQueueInput(capacity int) *QueueInput {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	in := &QueueInput{}
	in.q.Init(capacity)
	return in
}

// Put enqueues one character for the scheduler to deliver.
// Non-blocking: returns iox.ErrWouldBlock when the ring is full.
func (in *QueueInput) Put(c rune) error {
	in.slot = c
	return in.q.Enqueue(&in.slot)
}

// Close marks the source exhausted. Characters already enqueued are still
// delivered; once drained, TryReadChar returns io.EOF.
func (in *QueueInput) Close() {
	in.closed.Add(1)
}

// TryReadChar implements InputSource.
func (in *QueueInput) TryReadChar() (rune, error) {
	c, err := in.q.Dequeue()
	if err == nil {
		return c, nil
	}
	if in.closed.Load() != 0 {
		return 0, io.EOF
	}
	return 0, err
}
