package graph

// DFSOrder selects which traversal order DFS records vertices in.
type DFSOrder int

const (
	// Pre records each vertex when it is first visited.
	Pre DFSOrder = iota
	// Post records each vertex after all its successors are visited.
	Post
	// RevPost is Post reversed — the order dominator-tree
	// construction iterates blocks in.
	RevPost
)

type dfs struct {
	g                *Digraph
	order            DFSOrder
	visitUnreachable bool
	marked           []bool
	res              []int
}

func (d *dfs) run(start int) {
	d.walk(start)

	if d.visitUnreachable {
		for _, u := range d.g.Vertices() {
			if !d.marked[u] {
				d.walk(u)
			}
		}
	}

	if d.order == RevPost {
		reverse(d.res)
	}
}

func (d *dfs) walk(u int) {
	d.marked[u] = true

	if d.order == Pre {
		d.res = append(d.res, u)
	}

	for _, w := range d.g.Succs(u) {
		if !d.marked[w] {
			d.walk(w)
		}
	}

	if d.order == Post || d.order == RevPost {
		d.res = append(d.res, u)
	}
}

func reverse(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// DFS returns the vertices reachable from start in the requested
// order. When visitUnreachable is true, every vertex not reached from
// start then starts a walk of its own (in ascending vertex-id order),
// so the result always has length g.V(). For Pre and Post those
// vertices follow the ones reached from start; for RevPost the whole
// post-order is reversed, so they come first.
func DFS(g *Digraph, order DFSOrder, start int, visitUnreachable bool) []int {
	d := &dfs{
		g:                g,
		order:            order,
		visitUnreachable: visitUnreachable,
		marked:           make([]bool, g.V()),
	}
	d.run(start)
	if visitUnreachable && len(d.res) != g.V() {
		panic("graph: visit_unreachable traversal did not cover every vertex")
	}
	return d.res
}
