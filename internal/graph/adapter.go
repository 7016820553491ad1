package graph

// VertexAdapter is a bijection between a domain type T (a block
// handle, a function handle) and the dense vertex numbering a Digraph
// requires. It never mutates after construction: the vertex set is
// fixed at NewVertexAdapter time, matching vertex_adapter.rs.
type VertexAdapter[T comparable] struct {
	v2o []T
	o2v map[T]int
}

// NewVertexAdapter numbers data in order: data[i] becomes vertex i.
// Duplicate entries are a programming error — the caller is expected
// to pass a deduplicated domain set.
func NewVertexAdapter[T comparable](data []T) *VertexAdapter[T] {
	v2o := append([]T(nil), data...)
	o2v := make(map[T]int, len(data))
	for v, o := range data {
		if _, dup := o2v[o]; dup {
			panic("graph: duplicate vertex in VertexAdapter domain set")
		}
		o2v[o] = v
	}
	return &VertexAdapter[T]{v2o: v2o, o2v: o2v}
}

// Count returns the number of vertices.
func (a *VertexAdapter[T]) Count() int { return len(a.v2o) }

// V2O maps a dense vertex id back to its domain object.
func (a *VertexAdapter[T]) V2O(v int) T { return a.v2o[v] }

// O2V maps a domain object to its dense vertex id. Panics if o was
// not part of the adapter's original domain set.
func (a *VertexAdapter[T]) O2V(o T) int {
	v, ok := a.o2v[o]
	if !ok {
		panic("graph: object not present in VertexAdapter")
	}
	return v
}
