// Package domtree builds a function's dominator tree using the
// Cooper-Harvey-Kennedy iterative algorithm: a fixed-point over
// reverse-postorder that converges in a handful of passes for the
// small, mostly-reducible graphs real functions produce.
package domtree

import (
	"ssair/internal/cfg"
	"ssair/internal/graph"
	"ssair/internal/ir"
)

const undef = -1

// DomTree is the immediate-dominator relation of one function's CFG,
// represented as its own Digraph (idom -> bb edges) over the same
// vertex numbering the CFG uses.
type DomTree struct {
	va   *graph.VertexAdapter[ir.BlockHandle]
	root ir.BlockHandle

	idom   []int
	rpo    []ir.BlockHandle
	rpoPos []int
	tree   *graph.Digraph
}

// Build computes the dominator tree of g, g's CFG.
func Build(ctx *ir.Context, g *cfg.CFG) *DomTree {
	va := g.VertexAdapter()
	t := &DomTree{
		va:   va,
		root: va.V2O(0),
		tree: graph.New(va.Count()),
	}
	t.init(g)
	for !t.iterate(g) {
	}
	t.buildTree(ctx)
	return t
}

func (t *DomTree) init(g *cfg.CFG) {
	t.rpo = g.RevPostorder()
	if t.rpo[0] != t.root {
		panic("domtree: reverse-postorder did not start at the entry block")
	}

	t.rpoPos = make([]int, len(t.rpo))
	for idx, bb := range t.rpo {
		t.rpoPos[t.va.O2V(bb)] = idx
	}

	t.idom = make([]int, len(t.rpo))
	for i := range t.idom {
		t.idom[i] = undef
	}
	t.idom[t.va.O2V(t.root)] = t.va.O2V(t.root)
}

func (t *DomTree) iterate(g *cfg.CFG) bool {
	changed := false

	for _, bb := range t.rpo {
		if bb == t.root {
			continue
		}

		newIdom := undef
		for _, pred := range g.Preds(bb) {
			pv := t.va.O2V(pred)
			if t.idom[pv] == undef {
				continue
			}
			if newIdom == undef {
				newIdom = pv
			} else {
				newIdom = t.intersect(pv, newIdom)
			}
		}
		if newIdom == undef {
			panic("domtree: unreachable block has no dominator-bearing predecessor")
		}

		v := t.va.O2V(bb)
		if t.idom[v] != newIdom {
			t.idom[v] = newIdom
			changed = true
		}
	}

	return !changed
}

func (t *DomTree) intersect(i, j int) int {
	for i != j {
		for t.rpoPos[i] > t.rpoPos[j] {
			i = t.idom[i]
		}
		for t.rpoPos[j] > t.rpoPos[i] {
			j = t.idom[j]
		}
	}
	return i
}

func (t *DomTree) buildTree(ctx *ir.Context) {
	for _, v := range t.tree.Vertices() {
		bb := t.va.V2O(v)
		t.tree.SetLabel(v, ctx.ValueName(bb.Value()))
		if bb != t.root {
			t.tree.AddEdge(t.idom[v], v)
		}
	}
}

// Root returns the function's entry block.
func (t *DomTree) Root() ir.BlockHandle { return t.root }

// Idom returns bb's immediate dominator. Panics if bb is the root,
// which has none.
func (t *DomTree) Idom(bb ir.BlockHandle) ir.BlockHandle {
	if bb == t.root {
		panic("domtree: the root block has no immediate dominator")
	}
	return t.va.V2O(t.idom[t.va.O2V(bb)])
}

// Dom returns the dominator chain of bb: bb itself, its immediate
// dominator, that block's immediate dominator, and so on up to and
// including the root.
func (t *DomTree) Dom(bb ir.BlockHandle) []ir.BlockHandle {
	var res []ir.BlockHandle
	node := bb
	for node != t.root {
		res = append(res, node)
		node = t.Idom(node)
	}
	res = append(res, node)
	return res
}

// Dominates reports whether a dominates b (including a == b).
func (t *DomTree) Dominates(a, b ir.BlockHandle) bool {
	node := b
	for {
		if node == a {
			return true
		}
		if node == t.root {
			return false
		}
		node = t.Idom(node)
	}
}

// Succs returns the blocks whose immediate dominator is bb — bb's
// children in the dominator tree.
func (t *DomTree) Succs(bb ir.BlockHandle) []ir.BlockHandle {
	vs := t.tree.Succs(t.va.O2V(bb))
	out := make([]ir.BlockHandle, len(vs))
	for i, v := range vs {
		out[i] = t.va.V2O(v)
	}
	return out
}

// Tree exposes the underlying Digraph, e.g. for dot output.
func (t *DomTree) Tree() *graph.Digraph { return t.tree }

// VertexAdapter exposes the block<->vertex numbering shared with the CFG.
func (t *DomTree) VertexAdapter() *graph.VertexAdapter[ir.BlockHandle] { return t.va }
