// Package checker validates SSA well-formedness: every non-phi
// operand must be defined on every control-flow path reaching its
// use, every phi's incoming value must be defined along the
// corresponding predecessor edge, and every block must end in exactly
// one terminator that only branches to blocks of the same function.
package checker

import (
	"fmt"

	"ssair/internal/cfg"
	"ssair/internal/domtree"
	"ssair/internal/ir"
	"ssair/internal/isa"
)

type checker struct {
	bbs  map[ir.BlockHandle]struct{}
	vals *scopedSet[ir.InstructionHandle]
	cfg  *cfg.CFG
	dom  *domtree.DomTree
}

// Check validates every defined function in ctx, panicking with an
// *ir.Fault on the first violation found. Declarations are skipped:
// they have no blocks to validate.
func Check(ctx *ir.Context) {
	c := &checker{}
	for _, fun := range ctx.Funcs() {
		if ctx.FuncIsDecl(fun) {
			continue
		}
		c.checkFunc(ctx, fun)
	}
}

func (c *checker) checkFunc(ctx *ir.Context, fun ir.FunctionHandle) {
	blocks := ctx.FuncBlocks(fun)
	if len(blocks) == 0 {
		faultf("checkFunc", "empty function %q", ctx.ValueName(fun.Value()))
	}

	c.bbs = make(map[ir.BlockHandle]struct{}, len(blocks))
	for _, bb := range blocks {
		c.bbs[bb] = struct{}{}
	}

	c.vals = newScopedSet[ir.InstructionHandle]()
	c.cfg = cfg.Build(ctx, fun)
	c.dom = domtree.Build(ctx, c.cfg)

	c.checkBB(ctx, c.dom.Root())

	c.dom = nil
	c.cfg = nil
	c.vals = nil
}

func (c *checker) checkBB(ctx *ir.Context, bb ir.BlockHandle) {
	c.vals.open()

	domSuccs := c.dom.Succs(bb)
	cfgSuccs := c.cfg.Succs(bb)

	ins := ctx.BlockIns(bb)
	if len(ins) == 0 {
		faultf("checkBB", "empty basic block %q", ctx.ValueName(bb.Value()))
	}

	for _, i := range ins {
		c.checkIns(ctx, i)
	}

	c.checkTerm(ctx, bb)

	for _, succ := range cfgSuccs {
		c.checkPhis(ctx, bb, succ)
	}

	for _, succ := range domSuccs {
		c.checkBB(ctx, succ)
	}

	c.vals.close()
}

func (c *checker) checkIns(ctx *ir.Context, insH ir.InstructionHandle) {
	if ctx.InsOpname(insH) != "phi" {
		// Phi operands are validated per-predecessor in checkPhis.
		for _, op := range ctx.ValueOps(insH.Value()) {
			opIns, ok := op.AsInstruction()
			if !ok {
				continue
			}
			if !c.vals.contains(opIns) {
				faultf("checkIns", "use before def of operand %q", ctx.ValueName(op))
			}
		}
	}

	if ctx.ValueIsDef(insH.Value()) {
		c.vals.put(insH)
	}
}

func (c *checker) checkPhis(ctx *ir.Context, parent, bb ir.BlockHandle) {
	parentVal := parent.Value()

	for _, insH := range ctx.BlockIns(bb) {
		if ctx.InsOpname(insH) != "phi" {
			break
		}

		ops := ctx.ValueOps(insH.Value())
		opPos := -1
		for idx, op := range ops {
			if op == parentVal {
				opPos = idx
			}
		}
		if opPos < 0 {
			faultf("checkPhis", "phi predecessor value for %q is missing in %q",
				ctx.ValueName(parentVal), ctx.ValueName(bb.Value()))
		}
		if opPos+1 >= len(ops) {
			faultf("checkPhis", "phi in %q has a predecessor with no paired incoming value",
				ctx.ValueName(bb.Value()))
		}

		if opIns, ok := ops[opPos+1].AsInstruction(); ok {
			if !c.vals.contains(opIns) {
				faultf("checkPhis", "use before def in phi of operand %q", ctx.ValueName(ops[opPos+1]))
			}
		}
	}
}

func (c *checker) checkTerm(ctx *ir.Context, bb ir.BlockHandle) {
	ins := ctx.BlockIns(bb)
	last := ins[len(ins)-1]

	info, ok := isa.Lookup(ctx.InsOpname(last))
	if !ok {
		faultf("checkTerm", "unknown last instruction %q of basic block %q", ctx.InsOpname(last), ctx.ValueName(bb.Value()))
	}
	if !info.IsTerm() {
		faultf("checkTerm", "last instruction of basic block %q is not a terminator", ctx.ValueName(bb.Value()))
	}

	for _, op := range ctx.ValueOps(last.Value()) {
		target, ok := op.AsBlock()
		if !ok {
			continue
		}
		if _, inFunc := c.bbs[target]; !inFunc {
			faultf("checkTerm", "terminator in basic block %q branches to foreign block %q",
				ctx.ValueName(bb.Value()), ctx.ValueName(target.Value()))
		}
	}
}

func faultf(op, format string, args ...interface{}) {
	panic(&ir.Fault{Op: op, Msg: fmt.Sprintf(format, args...)})
}
