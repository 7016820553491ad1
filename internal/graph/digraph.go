// Package graph implements a dense directed-graph representation and
// the vertex-numbering adapter the CFG and dominator-tree packages
// build on top of. Vertices are plain small integers; domain-level
// identity (blocks, functions) is layered on by VertexAdapter rather
// than stored in the graph itself.
package graph

import (
	"fmt"
	"io"
)

// Digraph is a directed graph over the dense vertex set [0, V). Edges
// are stored as a flat V×V boolean adjacency matrix, which keeps
// has_edge, add_edge and del_edge at O(1) at the cost of O(V²) memory —
// appropriate for the single-function-sized graphs (blocks, not whole
// programs) this library builds.
type Digraph struct {
	v      int
	e      int
	adj    []bool
	labels []string
}

// New returns an edgeless graph over v vertices.
func New(v int) *Digraph {
	return &Digraph{
		v:      v,
		adj:    make([]bool, v*v),
		labels: make([]string, v),
	}
}

// V returns the number of vertices.
func (g *Digraph) V() int { return g.v }

// E returns the number of edges currently present.
func (g *Digraph) E() int { return g.e }

func (g *Digraph) adjIndex(u, w int) int {
	if u < 0 || u >= g.v || w < 0 || w >= g.v {
		panic("graph: vertex index out of range")
	}
	return u*g.v + w
}

// HasEdge reports whether there is an edge u -> w.
func (g *Digraph) HasEdge(u, w int) bool {
	return g.adj[g.adjIndex(u, w)]
}

// AddEdge adds the edge u -> w, returning true if it was not already
// present.
func (g *Digraph) AddEdge(u, w int) bool {
	idx := g.adjIndex(u, w)
	added := !g.adj[idx]
	g.adj[idx] = true
	if added {
		g.e++
	}
	return added
}

// DelEdge removes the edge u -> w, returning true if it was present.
func (g *Digraph) DelEdge(u, w int) bool {
	idx := g.adjIndex(u, w)
	removed := g.adj[idx]
	g.adj[idx] = false
	if removed {
		g.e--
	}
	return removed
}

// Vertices returns every vertex in the graph, 0 through V-1.
func (g *Digraph) Vertices() []int {
	out := make([]int, g.v)
	for i := range out {
		out[i] = i
	}
	return out
}

// Edges returns every edge currently present, in row-major order.
func (g *Digraph) Edges() [][2]int {
	out := make([][2]int, 0, g.e)
	for u := 0; u < g.v; u++ {
		for w := 0; w < g.v; w++ {
			if g.HasEdge(u, w) {
				out = append(out, [2]int{u, w})
			}
		}
	}
	return out
}

// Preds returns the vertices with an edge into u.
func (g *Digraph) Preds(u int) []int {
	var out []int
	for w := 0; w < g.v; w++ {
		if g.HasEdge(w, u) {
			out = append(out, w)
		}
	}
	return out
}

// Succs returns the vertices u has an edge into.
func (g *Digraph) Succs(u int) []int {
	var out []int
	for w := 0; w < g.v; w++ {
		if g.HasEdge(u, w) {
			out = append(out, w)
		}
	}
	return out
}

// SetLabel attaches a display name to vertex u, used only by DumpDot.
func (g *Digraph) SetLabel(u int, name string) {
	g.labels[u] = name
}

// Label returns the display name previously set for u, or "".
func (g *Digraph) Label(u int) string {
	return g.labels[u]
}

// DumpDot writes g in Graphviz dot format: one node statement per
// vertex (carrying its label) followed by one edge statement per
// edge, matching digraph.rs's dump_tree layout.
func (g *Digraph) DumpDot(w io.Writer) error {
	if _, err := fmt.Fprint(w, "digraph G {\n"); err != nil {
		return err
	}
	for _, u := range g.Vertices() {
		if _, err := fmt.Fprintf(w, "  %d [ label=\"%s\" ];\n", u, g.labels[u]); err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(w, "  %d -> %d\n", e[0], e[1]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}
