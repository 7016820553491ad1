package domtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssair/internal/cfg"
	"ssair/internal/ir"
)

// diamondFunction builds the classic if/then/else/merge shape:
//
//	bb0 -> bb1, bb0 -> bb2, bb1 -> bb3, bb2 -> bb3
//
// whose dominator tree is a star rooted at bb0: every other block's
// immediate dominator is bb0, since no single predecessor-free path
// reaches bb3 except through the branch in bb0.
func diamondFunction(c *ir.Context) ir.FunctionHandle {
	fun := c.MakeFun("diamond", 1, false)
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

	b1 := c.MakeIns("", "b", false, []ir.ValueHandle{bb3.Value()})
	c.InsInsertIn(b1, bb1)
	b2 := c.MakeIns("", "b", false, []ir.ValueHandle{bb3.Value()})
	c.InsInsertIn(b2, bb2)

	ret := c.MakeIns("", "ret", false, []ir.ValueHandle{arg0})
	c.InsInsertIn(ret, bb3)

	return fun
}

func TestDiamondDominatorTree(t *testing.T) {
	c := ir.NewContext()
	fun := diamondFunction(c)
	g := cfg.Build(c, fun)
	dt := Build(c, g)

	blocks := c.FuncBlocks(fun)
	bb0, bb1, bb2, bb3 := blocks[0], blocks[1], blocks[2], blocks[3]

	assert.Equal(t, bb0, dt.Root())
	assert.Equal(t, bb0, dt.Idom(bb1))
	assert.Equal(t, bb0, dt.Idom(bb2))
	assert.Equal(t, bb0, dt.Idom(bb3))

	assert.ElementsMatch(t, []ir.BlockHandle{bb1, bb2, bb3}, dt.Succs(bb0))
}

func TestDomChainEndsAtRoot(t *testing.T) {
	c := ir.NewContext()
	fun := diamondFunction(c)
	g := cfg.Build(c, fun)
	dt := Build(c, g)

	blocks := c.FuncBlocks(fun)
	bb0, bb3 := blocks[0], blocks[3]

	chain := dt.Dom(bb3)
	require.Len(t, chain, 2)
	assert.Equal(t, bb3, chain[0])
	assert.Equal(t, bb0, chain[1])
}

func TestDominatesReflexiveAndTransitive(t *testing.T) {
	c := ir.NewContext()
	fun := diamondFunction(c)
	g := cfg.Build(c, fun)
	dt := Build(c, g)

	blocks := c.FuncBlocks(fun)
	bb0, bb1 := blocks[0], blocks[1]

	assert.True(t, dt.Dominates(bb0, bb1))
	assert.True(t, dt.Dominates(bb1, bb1))
	assert.False(t, dt.Dominates(bb1, bb0))
}

func TestIdomPanicsOnRoot(t *testing.T) {
	c := ir.NewContext()
	fun := diamondFunction(c)
	g := cfg.Build(c, fun)
	dt := Build(c, g)

	assert.Panics(t, func() { dt.Idom(dt.Root()) })
}

// loopFunction builds bb0 -> bb1 -> bb1 (self loop) -> bb2, fact_iter's
// loop without fact_iter's direct bb0 -> bb2 edge: bb1's idom is bb0
// even though bb1 is also its own predecessor, and bb2's idom is bb1,
// its only predecessor.
func loopFunction(c *ir.Context) ir.FunctionHandle {
	fun := c.MakeFun("fact_iter", 1, false)
	arg0 := c.FuncArgs(fun)[0].Value()

	bb0 := c.MakeBB("bb0")
	bb1 := c.MakeBB("bb1")
	bb2 := c.MakeBB("bb2")
	c.BBInsertIn(bb0, fun)
	c.BBInsertIn(bb1, fun)
	c.BBInsertIn(bb2, fun)

	b0 := c.MakeIns("", "b", false, []ir.ValueHandle{bb1.Value()})
	c.InsInsertIn(b0, bb0)

	cond := c.MakeIns("c", "cmplt", true, []ir.ValueHandle{arg0, arg0})
	c.InsInsertIn(cond, bb1)
	bc := c.MakeIns("", "bc", false, []ir.ValueHandle{cond.Value(), bb1.Value(), bb2.Value()})
	c.InsInsertIn(bc, bb1)

	ret := c.MakeIns("", "ret", false, []ir.ValueHandle{arg0})
	c.InsInsertIn(ret, bb2)

	return fun
}

func TestLoopDominatorTree(t *testing.T) {
	c := ir.NewContext()
	fun := loopFunction(c)
	g := cfg.Build(c, fun)
	dt := Build(c, g)

	blocks := c.FuncBlocks(fun)
	bb0, bb1, bb2 := blocks[0], blocks[1], blocks[2]

	assert.Equal(t, bb0, dt.Idom(bb1))
	assert.Equal(t, bb1, dt.Idom(bb2))
}
