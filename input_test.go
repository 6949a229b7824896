// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched_test

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/sched"
)

// feedInput returns a QueueInput pre-loaded with s and closed.
func feedInput(t *testing.T, s string) *sched.QueueInput {
	t.Helper()
	in := sched.NewQueueInput(len(s) + 1)
	for _, c := range s {
		if err := in.Put(c); err != nil {
			t.Fatalf("put %q: %v", c, err)
		}
	}
	in.Close()
	return in
}

func TestReadCharDelivery(t *testing.T) {
	clk := &simClock{}
	s := sched.New(sched.Config{Clock: clk.now, IdleWait: clk.tick, Input: feedInput(t, "ok")})
	var got []rune

	boot := sched.ReadCharBind(func(a rune) kont.Eff[struct{}] {
		return sched.ReadCharBind(func(b rune) kont.Eff[struct{}] {
			return effect(func() { got = append(got, a, b) })
		})
	})
	if err := s.Run(boot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if string(got) != "ok" {
		t.Fatalf("read %q, want %q", string(got), "ok")
	}
}

func TestReadCharInterleaved(t *testing.T) {
	// Two readers alternate: each poll delivers exactly one character to
	// exactly one task, in scan order, with no duplication or loss.
	clk := &simClock{}
	s := sched.New(sched.Config{Clock: clk.now, IdleWait: clk.tick, Input: feedInput(t, "abcd")})
	var log []string

	reader := func(name string) kont.Eff[struct{}] {
		return sched.ReadCharBind(func(a rune) kont.Eff[struct{}] {
			return sched.ReadCharBind(func(b rune) kont.Eff[struct{}] {
				return effect(func() {
					log = append(log, name+":"+string(a)+string(b))
				})
			})
		})
	}

	boot := sched.SpawnBind(reader("R1"), func(_ sched.Handle) kont.Eff[struct{}] {
		return sched.SpawnBind(reader("R2"), func(_ sched.Handle) kont.Eff[struct{}] {
			return sched.Done()
		})
	})
	if err := s.Run(boot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	// Boot exits first; the scan then wakes R1 with 'a', R2 with 'b',
	// then R1 with 'c' (completing it) and R2 with 'd'.
	want := []string{"R1:ac", "R2:bd"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("log got %v, want %v", log, want)
	}
}

func TestReadCharExhaustedDeadlock(t *testing.T) {
	// A closed and drained input source can never wake a blocked reader.
	clk := &simClock{}
	s := sched.New(sched.Config{Clock: clk.now, IdleWait: clk.tick, Input: feedInput(t, "x")})

	boot := sched.ReadCharBind(func(_ rune) kont.Eff[struct{}] {
		return sched.ReadCharBind(func(_ rune) kont.Eff[struct{}] {
			return sched.Done()
		})
	})
	if err := s.Run(boot); !errors.Is(err, sched.ErrDeadlock) {
		t.Fatalf("run got %v, want ErrDeadlock", err)
	}
}

func TestReadCharNoSourceDeadlock(t *testing.T) {
	s, _ := newSim()
	boot := sched.ReadCharBind(func(_ rune) kont.Eff[struct{}] { return sched.Done() })
	if err := s.Run(boot); !errors.Is(err, sched.ErrDeadlock) {
		t.Fatalf("run got %v, want ErrDeadlock", err)
	}
}

func TestQueueInputSemantics(t *testing.T) {
	in := sched.NewQueueInput(2)

	if _, err := in.TryReadChar(); !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("empty read got %v, want ErrWouldBlock", err)
	}
	if err := in.Put('a'); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := in.Put('b'); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := in.Put('c'); !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("full put got %v, want ErrWouldBlock", err)
	}

	in.Close()
	// Close still drains queued characters before reporting EOF.
	if c, err := in.TryReadChar(); err != nil || c != 'a' {
		t.Fatalf("read got %q, %v", c, err)
	}
	if c, err := in.TryReadChar(); err != nil || c != 'b' {
		t.Fatalf("read got %q, %v", c, err)
	}
	if _, err := in.TryReadChar(); !errors.Is(err, io.EOF) {
		t.Fatalf("drained read got %v, want io.EOF", err)
	}
}

func TestQueueInputProducerGoroutine(t *testing.T) {
	skipRace(t)
	// One producer goroutine, scheduler consuming. The scheduler side stays
	// on a single goroutine regardless.
	clk := &simClock{}
	in := sched.NewQueueInput(4)
	s := sched.New(sched.Config{Clock: clk.now, Input: in})

	go func() {
		var bo iox.Backoff
		for _, c := range "hi" {
			for in.Put(c) != nil {
				bo.Wait()
			}
		}
		in.Close()
	}()

	var got []rune
	boot := sched.ReadCharBind(func(a rune) kont.Eff[struct{}] {
		return sched.ReadCharBind(func(b rune) kont.Eff[struct{}] {
			return effect(func() { got = append(got, a, b) })
		})
	})
	if err := s.Run(boot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("read %q, want %q", string(got), "hi")
	}
}
