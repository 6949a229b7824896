// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world task body to Expr-world.
// The resulting Expr can be attached with SpawnExpr, RunExpr, or carried
// in a Spawn operation.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world task body to Cont-world.
// The resulting Eff can be attached with Spawn or Run.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
