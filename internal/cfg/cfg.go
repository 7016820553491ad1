// Package cfg builds the control-flow graph of a function: one vertex
// per basic block, one edge per block-kind operand of each block's
// terminating instruction.
package cfg

import (
	"ssair/internal/graph"
	"ssair/internal/ir"
)

// CFG is a function's control-flow graph: a dense Digraph over its
// basic blocks, numbered by a VertexAdapter in block-list order so
// vertex 0 is always the entry block.
type CFG struct {
	fun ir.FunctionHandle
	va  *graph.VertexAdapter[ir.BlockHandle]
	g   *graph.Digraph
}

// Build constructs the CFG of fun. fun must be a definition (not a
// declaration): declarations have no blocks and no CFG.
func Build(ctx *ir.Context, fun ir.FunctionHandle) *CFG {
	blocks := ctx.FuncBlocks(fun)
	va := graph.NewVertexAdapter(blocks)
	g := graph.New(va.Count())

	c := &CFG{fun: fun, va: va, g: g}
	c.prepare(ctx, blocks)
	return c
}

func (c *CFG) prepare(ctx *ir.Context, blocks []ir.BlockHandle) {
	for _, bb := range blocks {
		v := c.va.O2V(bb)
		c.g.SetLabel(v, ctx.ValueName(bb.Value()))

		ins := ctx.BlockIns(bb)
		if len(ins) == 0 {
			continue
		}
		terminator := ins[len(ins)-1]
		for _, op := range ctx.ValueOps(terminator.Value()) {
			if target, ok := op.AsBlock(); ok {
				c.g.AddEdge(v, c.va.O2V(target))
			}
		}
	}
}

// Function returns the function this CFG was built for.
func (c *CFG) Function() ir.FunctionHandle { return c.fun }

// VertexAdapter exposes the block<->vertex numbering, for callers
// (the dominator tree) that need to build a second Digraph over the
// same vertex space.
func (c *CFG) VertexAdapter() *graph.VertexAdapter[ir.BlockHandle] { return c.va }

// Graph returns the underlying dense graph.
func (c *CFG) Graph() *graph.Digraph { return c.g }

// Preds returns bb's predecessor blocks.
func (c *CFG) Preds(bb ir.BlockHandle) []ir.BlockHandle {
	return c.fromVertices(c.g.Preds(c.va.O2V(bb)))
}

// Succs returns bb's successor blocks.
func (c *CFG) Succs(bb ir.BlockHandle) []ir.BlockHandle {
	return c.fromVertices(c.g.Succs(c.va.O2V(bb)))
}

// RevPostorder returns every block reachable from the entry block, in
// reverse-postorder, with any unreachable blocks appended at the end —
// exactly the order dominator-tree construction requires.
func (c *CFG) RevPostorder() []ir.BlockHandle {
	order := graph.DFS(c.g, graph.RevPost, 0, false)
	seen := make([]bool, c.g.V())
	for _, v := range order {
		seen[v] = true
	}
	for _, v := range c.g.Vertices() {
		if !seen[v] {
			order = append(order, v)
		}
	}
	return c.fromVertices(order)
}

func (c *CFG) fromVertices(vs []int) []ir.BlockHandle {
	out := make([]ir.BlockHandle, len(vs))
	for i, v := range vs {
		out[i] = c.va.V2O(v)
	}
	return out
}
