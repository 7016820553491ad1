// Package printer serializes an ir.Context back into the same
// textual form package loader reads, the inverse of loading: every
// defined function becomes a ".fun" directive followed by its blocks
// and instructions, each operand rendered as %name, @name, or a bare
// integer depending on what kind of value it refers to.
package printer

import (
	"fmt"

	"ssair/internal/gop"
	"ssair/internal/ir"
)

// Print renders every defined function in ctx as gop source text.
// Declarations (functions with no body) are omitted, since they have
// nothing to print but the name a caller already has.
func Print(ctx *ir.Context) string {
	return Module(ctx).String()
}

// Module builds the gop.Module corresponding to ctx, for callers that
// want to inspect or further transform the textual form before
// rendering it.
func Module(ctx *ir.Context) *gop.Module {
	var decls []gop.Decl

	for _, fun := range ctx.Funcs() {
		if ctx.FuncIsDecl(fun) {
			continue
		}
		decls = append(decls, funDecl(ctx, fun))
		decls = append(decls, blockDecls(ctx, fun)...)
	}

	return &gop.Module{Decls: decls}
}

func funDecl(ctx *ir.Context, fun ir.FunctionHandle) gop.Decl {
	args := ctx.FuncArgs(fun)
	dirArgs := make([]*gop.Arg, 0, len(args)+1)
	dirArgs = append(dirArgs, &gop.Arg{Bare: "int"})
	for _, a := range args {
		dirArgs = append(dirArgs, &gop.Arg{Reg: ctx.ValueName(a.Value())})
	}
	return gop.NewDirDecl([]string{ctx.ValueName(fun.Value())}, "fun", dirArgs)
}

func blockDecls(ctx *ir.Context, fun ir.FunctionHandle) []gop.Decl {
	var decls []gop.Decl
	for _, bb := range ctx.FuncBlocks(fun) {
		label := ctx.ValueName(bb.Value())
		first := true
		for _, insH := range ctx.BlockIns(bb) {
			opname := ctx.InsOpname(insH)
			var insArgs []*gop.Arg
			if ctx.ValueIsDef(insH.Value()) {
				insArgs = append(insArgs, &gop.Arg{Reg: ctx.ValueName(insH.Value())})
			}
			for _, op := range ctx.ValueOps(insH.Value()) {
				insArgs = append(insArgs, valueArg(ctx, op))
			}

			var labels []string
			if first {
				labels = []string{label}
				first = false
			}
			decls = append(decls, gop.NewInsDecl(labels, opname, insArgs))
		}
	}
	return decls
}

func valueArg(ctx *ir.Context, v ir.ValueHandle) *gop.Arg {
	switch v.Kind() {
	case ir.KindInstruction, ir.KindArgument:
		return &gop.Arg{Reg: ctx.ValueName(v)}
	case ir.KindBlock, ir.KindFunction:
		return &gop.Arg{Global: ctx.ValueName(v)}
	case ir.KindConstant:
		ch, _ := v.AsConstant()
		return &gop.Arg{Bare: fmt.Sprintf("%d", ctx.ConstValue(ch))}
	default:
		panic("printer: operand of unrecognized kind")
	}
}
