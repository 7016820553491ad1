// Package dot renders a CFG or dominator tree to Graphviz dot format,
// for visual inspection of the structures the checker validates.
package dot

import (
	"io"

	"ssair/internal/cfg"
	"ssair/internal/domtree"
)

// WriteCFG writes g's control-flow graph in dot format.
func WriteCFG(w io.Writer, g *cfg.CFG) error {
	return g.Graph().DumpDot(w)
}

// WriteDomTree writes t's dominator tree in dot format.
func WriteDomTree(w io.Writer, t *domtree.DomTree) error {
	return t.Tree().DumpDot(w)
}
