// Package loader resolves a parsed textual module (package gop) into
// an ir.Context. Forward references — a register or label used
// before its defining line — are handled in two passes: the first
// creates every instruction with a placeholder "mock" constant
// standing in for any as-yet-unresolved operand, and the second
// rewires each placeholder to its real target once every name in the
// function is known.
package loader

import (
	"fmt"
	"io"

	"ssair/internal/gop"
	"ssair/internal/ir"
	"ssair/internal/isa"
)

// pendingIns remembers, for one instruction created in the first
// pass, which of its operand positions still need resolving and from
// which source tokens.
type pendingIns struct {
	ins    ir.InstructionHandle
	opname string
	args   []*gop.Arg
}

type builder struct {
	ctx *ir.Context

	actFun *ir.FunctionHandle
	actBB  *ir.BlockHandle

	funsMap map[string]ir.FunctionHandle
	varsMap map[string]ir.ValueHandle
	bbsMap  map[string]ir.BlockHandle

	insList []pendingIns
	mockVar ir.ConstantHandle
}

// Load resolves m into ctx, creating every function, block and
// instruction it declares.
func Load(ctx *ir.Context, m *gop.Module) {
	b := &builder{
		ctx:     ctx,
		funsMap: make(map[string]ir.FunctionHandle),
		varsMap: make(map[string]ir.ValueHandle),
		bbsMap:  make(map[string]ir.BlockHandle),
	}
	b.run(m)
}

// LoadReader parses r as a gop module and loads it into ctx.
func LoadReader(ctx *ir.Context, r io.Reader) error {
	m, err := gop.Parse(r)
	if err != nil {
		return err
	}
	Load(ctx, m)
	return nil
}

func (b *builder) run(m *gop.Module) {
	b.mockVar = b.ctx.MakeConst("", 42)

	for _, decl := range m.Decls {
		if decl.Body.IsDir() {
			if decl.Body.Op() != "fun" {
				loaderFault("run", "unknown directive %q", decl.Body.Op())
			}
			if len(decl.LabelDefs) != 1 {
				loaderFault("run", "function directive is missing a function name")
			}
			b.handleFunDir(decl)
		} else {
			var label string
			if len(decl.LabelDefs) > 0 {
				label = decl.LabelDefs[0]
			}
			b.handleIns(decl.Body.Op(), decl.Body.Args(), label)
		}
	}

	b.finishFun()

	if len(b.ctx.ValueUsers(b.mockVar.Value())) != 0 {
		loaderFault("run", "mock placeholder constant still in use after resolution")
	}
	b.ctx.EraseConst(b.mockVar)
}

func (b *builder) handleFunDir(decl gop.Decl) {
	if b.actFun != nil {
		b.finishFun()
	}

	args := decl.Body.Args()
	if len(args) < 1 {
		loaderFault("handleFunDir", "function directive is missing a return type")
	}

	b.varsMap = make(map[string]ir.ValueHandle)
	b.bbsMap = make(map[string]ir.BlockHandle)
	b.insList = nil

	funName := decl.LabelDefs[0]
	argsCount := len(args) - 1

	fun := b.ctx.MakeFun(funName, argsCount, false)
	b.funsMap[funName] = fun

	argHandles := b.ctx.FuncArgs(fun)
	for idx, argH := range argHandles {
		argName := args[1+idx].Reg
		b.ctx.Rename(argH.Value(), argName)
		b.varsMap[argName] = argH.Value()
	}

	b.actFun = &fun
}

func (b *builder) handleIns(opname string, args []*gop.Arg, label string) {
	info := isa.MustLookup(opname)
	rawArgs := rawArgsOf(opname, args)
	isDef := info.IsDef(rawArgs)

	var defName string
	var restArgs []*gop.Arg
	if isDef {
		defName = args[0].Reg
		restArgs = args[1:]
	} else {
		restArgs = args
	}

	if b.actBB == nil {
		if label == "" {
			loaderFault("handleIns", "instruction %q has no active block and no label", opname)
		}
		bb := b.ctx.MakeBB(label)
		b.actBB = &bb
		b.ctx.BBInsertIn(bb, *b.actFun)
		b.bbsMap[label] = bb
	}

	ops := make([]ir.ValueHandle, len(restArgs))
	for i, a := range restArgs {
		ops[i] = b.handleArg(a)
	}

	ins := b.ctx.MakeIns(defName, opname, isDef, ops)
	b.ctx.InsInsertIn(ins, *b.actBB)
	b.insList = append(b.insList, pendingIns{ins: ins, opname: opname, args: restArgs})

	if isDef {
		b.varsMap[defName] = ins.Value()
	}

	if info.IsTerm() {
		b.actBB = nil
	}
}

// handleArg resolves a first-pass operand: a literal integer becomes
// a real constant immediately, while a register or label reference —
// which may name something not yet defined — becomes the mock
// placeholder, to be rewired once every name in the function is known.
func (b *builder) handleArg(a *gop.Arg) ir.ValueHandle {
	switch {
	case a.Reg != "", a.Global != "":
		return b.mockVar.Value()
	default:
		var n int64
		if _, err := fmt.Sscanf(a.Bare, "%d", &n); err != nil {
			loaderFault("handleArg", "invalid numeric operand %q", a.Bare)
		}
		return b.ctx.MakeConst("", n).Value()
	}
}

func (b *builder) finishFun() {
	if b.actBB != nil {
		loaderFault("finishFun", "function %q must finish with a terminator instruction", b.ctx.ValueName((*b.actFun).Value()))
	}

	pending := b.insList
	b.insList = nil
	for _, p := range pending {
		b.resolveIns(p)
	}
}

func (b *builder) resolveIns(p pendingIns) {
	ops := b.ctx.ValueOps(p.ins.Value())
	for i, a := range p.args {
		if ops[i] != b.mockVar.Value() {
			continue
		}
		b.ctx.InsSetOp(p.ins, i, b.resolveArg(p.opname, a))
	}
}

func (b *builder) resolveArg(opname string, a *gop.Arg) ir.ValueHandle {
	switch {
	case a.Reg != "":
		v, ok := b.varsMap[a.Reg]
		if !ok {
			loaderFault("resolveArg", "use of undefined register %%%s", a.Reg)
		}
		return v
	case a.Global != "":
		if opname == "call" {
			return b.findFun(a.Global).Value()
		}
		bb, ok := b.bbsMap[a.Global]
		if !ok {
			loaderFault("resolveArg", "use of undefined basic block @%s", a.Global)
		}
		return bb.Value()
	default:
		loaderFault("resolveArg", "bad operand %q", a.Bare)
		panic("unreachable")
	}
}

// findFun resolves a function name, inserting a zero-argument
// declaration if it has not been seen yet. This preserves the
// original loader's own limitation: a call to a function declared
// textually after the caller resolves to a freshly minted declaration
// rather than the later definition, since a function's operands are
// resolved when the next ".fun" directive begins, before that next
// function is created.
func (b *builder) findFun(name string) ir.FunctionHandle {
	if fun, ok := b.funsMap[name]; ok {
		return fun
	}
	fun := b.ctx.MakeFun(name, 0, true)
	b.funsMap[name] = fun
	return fun
}

func rawArgsOf(opname string, args []*gop.Arg) []string {
	out := make([]string, 0, len(args)+1)
	out = append(out, opname)
	for _, a := range args {
		out = append(out, a.String())
	}
	return out
}

func loaderFault(op, format string, args ...interface{}) {
	panic(&ir.Fault{Op: op, Msg: fmt.Sprintf(format, args...)})
}
