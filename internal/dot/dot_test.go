package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssair/internal/cfg"
	"ssair/internal/domtree"
	"ssair/internal/ir"
)

func buildTriangle(c *ir.Context) ir.FunctionHandle {
	fun := c.MakeFun("f", 0, false)
	bb0 := c.MakeBB("entry")
	bb1 := c.MakeBB("exit")
	c.BBInsertIn(bb0, fun)
	c.BBInsertIn(bb1, fun)

	b := c.MakeIns("", "b", false, []ir.ValueHandle{bb1.Value()})
	c.InsInsertIn(b, bb0)
	ret := c.MakeIns("", "ret", false, nil)
	c.InsInsertIn(ret, bb1)
	return fun
}

func TestWriteCFGContainsLabelsAndEdges(t *testing.T) {
	c := ir.NewContext()
	fun := buildTriangle(c)
	g := cfg.Build(c, fun)

	var buf bytes.Buffer
	require.NoError(t, WriteCFG(&buf, g))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	assert.Contains(t, out, `label="entry"`)
	assert.Contains(t, out, `label="exit"`)
	assert.Contains(t, out, "0 -> 1")
}

func TestWriteDomTree(t *testing.T) {
	c := ir.NewContext()
	fun := buildTriangle(c)
	g := cfg.Build(c, fun)
	dt := domtree.Build(c, g)

	var buf bytes.Buffer
	require.NoError(t, WriteDomTree(&buf, dt))

	out := buf.String()
	assert.Contains(t, out, `label="entry"`)
	assert.Contains(t, out, "0 -> 1")
}
