package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ssair/internal/ir"
)

// wellFormedDiamond builds a function with a phi correctly merging
// two predecessors, each defining the value the phi consumes.
func wellFormedDiamond(c *ir.Context) {
	fun := c.MakeFun("f", 1, false)
	arg0 := c.FuncArgs(fun)[0].Value()

	bb0 := c.MakeBB("bb0")
	bb1 := c.MakeBB("bb1")
	bb2 := c.MakeBB("bb2")
	bb3 := c.MakeBB("bb3")
	c.BBInsertIn(bb0, fun)
	c.BBInsertIn(bb1, fun)
	c.BBInsertIn(bb2, fun)
	c.BBInsertIn(bb3, fun)

	cond := c.MakeIns("c", "cmplt", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(cond, bb0)
	bc := c.MakeIns("", "bc", false, []ir.ValueHandle{cond.Value(), bb1.Value(), bb2.Value()})
	c.InsInsertIn(bc, bb0)

	v1 := c.MakeIns("v1", "add", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(v1, bb1)
	b1 := c.MakeIns("", "b", false, []ir.ValueHandle{bb3.Value()})
	c.InsInsertIn(b1, bb1)

	v2 := c.MakeIns("v2", "sub", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(v2, bb2)
	b2 := c.MakeIns("", "b", false, []ir.ValueHandle{bb3.Value()})
	c.InsInsertIn(b2, bb2)

	phi := c.MakeIns("p", "phi", true, []ir.ValueHandle{bb1.Value(), v1.Value(), bb2.Value(), v2.Value()})
	c.InsInsertIn(phi, bb3)
	ret := c.MakeIns("", "ret", false, []ir.ValueHandle{phi.Value()})
	c.InsInsertIn(ret, bb3)
}

func TestCheckAcceptsWellFormedFunction(t *testing.T) {
	c := ir.NewContext()
	wellFormedDiamond(c)
	assert.NotPanics(t, func() { Check(c) })
}

func TestCheckRejectsPhiMissingPredecessor(t *testing.T) {
	c := ir.NewContext()
	fun := c.MakeFun("f", 1, false)
	arg0 := c.FuncArgs(fun)[0].Value()

	bb0 := c.MakeBB("bb0")
	bb1 := c.MakeBB("bb1")
	bb2 := c.MakeBB("bb2")
	bb3 := c.MakeBB("bb3")
	c.BBInsertIn(bb0, fun)
	c.BBInsertIn(bb1, fun)
	c.BBInsertIn(bb2, fun)
	c.BBInsertIn(bb3, fun)

	cond := c.MakeIns("c", "cmplt", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(cond, bb0)
	bc := c.MakeIns("", "bc", false, []ir.ValueHandle{cond.Value(), bb1.Value(), bb2.Value()})
	c.InsInsertIn(bc, bb0)

	v1 := c.MakeIns("v1", "add", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(v1, bb1)
	b1 := c.MakeIns("", "b", false, []ir.ValueHandle{bb3.Value()})
	c.InsInsertIn(b1, bb1)

	v2 := c.MakeIns("v2", "sub", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(v2, bb2)
	b2 := c.MakeIns("", "b", false, []ir.ValueHandle{bb3.Value()})
	c.InsInsertIn(b2, bb2)

	// Phi only lists bb1 as an incoming edge, even though bb2 is
	// also a predecessor of bb3 — must be rejected.
	phi := c.MakeIns("p", "phi", true, []ir.ValueHandle{bb1.Value(), v1.Value()})
	c.InsInsertIn(phi, bb3)
	ret := c.MakeIns("", "ret", false, []ir.ValueHandle{phi.Value()})
	c.InsInsertIn(ret, bb3)

	assert.PanicsWithValue(t,
		&ir.Fault{Op: "checkPhis", Msg: `phi predecessor value for "bb2" is missing in "bb3"`},
		func() { Check(c) })
}

func TestCheckRejectsUseBeforeDef(t *testing.T) {
	c := ir.NewContext()
	fun := c.MakeFun("f", 1, false)
	arg0 := c.FuncArgs(fun)[0].Value()

	bb0 := c.MakeBB("bb0")
	c.BBInsertIn(bb0, fun)

	// A forward reference to a not-yet-defined instruction handle:
	// place the use first in the block, referring to a value inserted
	// after it.
	future := c.MakeIns("late", "add", true, []ir.ValueHandle{arg0, arg0})

	use := c.MakeIns("", "ret", false, []ir.ValueHandle{future.Value()})
	c.InsInsertIn(use, bb0)
	c.InsInsertIn(future, bb0)

	assert.Panics(t, func() { Check(c) })
}

func TestCheckRejectsNonTerminatorLastInstruction(t *testing.T) {
	c := ir.NewContext()
	fun := c.MakeFun("f", 1, false)
	arg0 := c.FuncArgs(fun)[0].Value()

	bb0 := c.MakeBB("bb0")
	c.BBInsertIn(bb0, fun)

	add := c.MakeIns("v", "add", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(add, bb0)

	assert.Panics(t, func() { Check(c) })
}

func TestCheckRejectsEmptyFunction(t *testing.T) {
	c := ir.NewContext()
	c.MakeFun("f", 0, false)

	assert.Panics(t, func() { Check(c) })
}
