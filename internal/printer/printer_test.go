package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssair/internal/checker"
	"ssair/internal/loader"
	"ssair/internal/ir"
)

const factIter = `fact_iter:
	.fun int, %n

bb0:
	cmplt %c, %n, 1
	bc %c, @bb1, @bb2

bb1:
	sub %n2, %n, 1
	b @bb0

bb2:
	ret %n
`

func TestPrintRoundTripsThroughLoader(t *testing.T) {
	ctx1 := ir.NewContext()
	require.NoError(t, loader.LoadReader(ctx1, strings.NewReader(factIter)))
	assert.NotPanics(t, func() { checker.Check(ctx1) })

	printed := Print(ctx1)

	ctx2 := ir.NewContext()
	require.NoError(t, loader.LoadReader(ctx2, strings.NewReader(printed)))
	assert.NotPanics(t, func() { checker.Check(ctx2) })

	funcs1 := ctx1.Funcs()
	funcs2 := ctx2.Funcs()
	require.Len(t, funcs1, 1)
	require.Len(t, funcs2, 1)
	assert.Equal(t, ctx1.ValueName(funcs1[0].Value()), ctx2.ValueName(funcs2[0].Value()))

	blocks1 := ctx1.FuncBlocks(funcs1[0])
	blocks2 := ctx2.FuncBlocks(funcs2[0])
	require.Len(t, blocks2, len(blocks1))

	for i := range blocks1 {
		ins1 := ctx1.BlockIns(blocks1[i])
		ins2 := ctx2.BlockIns(blocks2[i])
		require.Len(t, ins2, len(ins1))
		for j := range ins1 {
			assert.Equal(t, ctx1.InsOpname(ins1[j]), ctx2.InsOpname(ins2[j]))
		}
	}
}

func TestPrintEmitsFunDirective(t *testing.T) {
	ctx := ir.NewContext()
	require.NoError(t, loader.LoadReader(ctx, strings.NewReader(factIter)))

	out := Print(ctx)
	assert.Contains(t, out, "fact_iter:")
	assert.Contains(t, out, ".fun int, %n")
	assert.Contains(t, out, "ret %n")
}

func TestPrintSkipsDeclarations(t *testing.T) {
	ctx := ir.NewContext()
	ctx.MakeFun("extern_f", 1, true)
	out := Print(ctx)
	assert.Equal(t, "\n", out)
}
