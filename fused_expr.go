// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprReadChar    kont.Erased = ReadChar{}
	exprYield       kont.Erased = Yield{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

func spawnBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Handle) kont.Expr[B])
	result := f(current.(Handle))
	return kont.Erased(result.Value), result.Frame
}

// ExprSpawnBind creates a task running body and passes its handle to f.
// Fuses ExprPerform(Spawn{...}) + ExprBind.
func ExprSpawnBind[B any](body kont.Expr[struct{}], f func(Handle) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = spawnBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Spawn{Body: body}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprSleepThen sleeps for at least ms milliseconds and then continues with next.
// Fuses ExprPerform(Sleep{Ms: ms}) + ExprThen.
func ExprSleepThen[B any](ms int64, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Sleep{Ms: ms}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprWaitThen joins task h and then continues with next.
// Fuses ExprPerform(Wait{Task: h}) + ExprThen.
func ExprWaitThen[B any](h Handle, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Wait{Task: h}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func readCharBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(rune) kont.Expr[B])
	result := f(current.(rune))
	return kont.Erased(result.Value), result.Frame
}

// ExprReadCharBind reads one character and passes it to f.
// Fuses ExprPerform(ReadChar{}) + ExprBind.
func ExprReadCharBind[B any](f func(rune) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = readCharBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprReadChar
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprYieldThen yields once and then continues with next.
// Fuses ExprPerform(Yield{}) + ExprThen.
func ExprYieldThen[B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprYield
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprDone is the terminal body of an Expr-world task.
func ExprDone() kont.Expr[struct{}] {
	return kont.ExprReturn(struct{}{})
}
