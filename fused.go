// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// SpawnBind creates a task running body and passes its handle to f.
// Fuses Perform(Spawn{...}) + Bind. The caller does not yield.
func SpawnBind[B any](body kont.Eff[struct{}], f func(Handle) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Spawn{Body: kont.Reify(body)}), f)
}

// SleepThen sleeps for at least ms milliseconds and then continues with next.
// Fuses Perform(Sleep{Ms: ms}) + Then.
func SleepThen[B any](ms int64, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Sleep{Ms: ms}), next)
}

// WaitThen joins task h and then continues with next.
// Fuses Perform(Wait{Task: h}) + Then.
func WaitThen[B any](h Handle, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Wait{Task: h}), next)
}

// ReadCharBind reads one character and passes it to f.
// Fuses Perform(ReadChar{}) + Bind.
func ReadCharBind[B any](f func(rune) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(ReadChar{}), f)
}

// YieldThen yields once and then continues with next.
// Fuses Perform(Yield{}) + Then.
func YieldThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield{}), next)
}

// Done is the terminal body of a task: a pure return with no further yield.
// The implicit exit continuation runs when it is reached.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}
