// Package ir implements the value graph and ownership store: a
// handle-based arena holding every IR entity (instructions, basic
// blocks, functions, arguments, constants) and the def-use
// bookkeeping the rest of the toolchain (CFG, dominator tree,
// checker) reads back out.
package ir

// Context owns every IR entity. It is five parallel slot arrays, one
// per Kind; a slot either holds a live entity or is nil (a
// tombstone). Handles are plain comparable values and remain valid
// until their referent is erased — erasure never reuses a slot, so a
// stale handle always resolves to a tombstone rather than a
// different, newer entity.
type Context struct {
	instructions []*instruction
	blocks       []*basicBlock
	functions    []*function
	arguments    []*argument
	constants    []*constant
}

// NewContext returns an empty arena.
func NewContext() *Context {
	return &Context{}
}

// --- slot access -----------------------------------------------------

func (c *Context) ins(h InstructionHandle) *instruction {
	idx := h.raw.index()
	if idx < 0 || idx >= len(c.instructions) || c.instructions[idx] == nil {
		fault("ins", "dereference of tombstoned or out-of-range handle")
	}
	return c.instructions[idx]
}

func (c *Context) bb(h BlockHandle) *basicBlock {
	idx := h.raw.index()
	if idx < 0 || idx >= len(c.blocks) || c.blocks[idx] == nil {
		fault("bb", "dereference of tombstoned or out-of-range handle")
	}
	return c.blocks[idx]
}

func (c *Context) fun(h FunctionHandle) *function {
	idx := h.raw.index()
	if idx < 0 || idx >= len(c.functions) || c.functions[idx] == nil {
		fault("fun", "dereference of tombstoned or out-of-range handle")
	}
	return c.functions[idx]
}

func (c *Context) arg(h ArgumentHandle) *argument {
	idx := h.raw.index()
	if idx < 0 || idx >= len(c.arguments) || c.arguments[idx] == nil {
		fault("arg", "dereference of tombstoned or out-of-range handle")
	}
	return c.arguments[idx]
}

func (c *Context) konst(h ConstantHandle) *constant {
	idx := h.raw.index()
	if idx < 0 || idx >= len(c.constants) || c.constants[idx] == nil {
		fault("const", "dereference of tombstoned or out-of-range handle")
	}
	return c.constants[idx]
}

// valueOf dispatches a union handle to the shared value record of
// whichever entity it names.
func (c *Context) valueOf(h ValueHandle) *value {
	switch h.Kind() {
	case KindInstruction:
		ih, _ := h.AsInstruction()
		return &c.ins(ih).val
	case KindBlock:
		bh, _ := h.AsBlock()
		return &c.bb(bh).val
	case KindFunction:
		fh, _ := h.AsFunction()
		return &c.fun(fh).val
	case KindArgument:
		ah, _ := h.AsArgument()
		return &c.arg(ah).val
	case KindConstant:
		ch, _ := h.AsConstant()
		return &c.konst(ch).val
	default:
		fault("valueOf", "invalid handle kind")
		return nil
	}
}

func (c *Context) linkOperands(owner ValueHandle, ops []ValueHandle) {
	for _, op := range ops {
		c.valueOf(op).addUser(owner)
	}
}

// --- creation ----------------------------------------------------------

// MakeIns creates an instruction unattached to any block and
// registers it in every listed operand's user set.
func (c *Context) MakeIns(name, opname string, isDef bool, ops []ValueHandle) InstructionHandle {
	h := instructionHandle(len(c.instructions))
	val := newValue(name, h.Value(), isDef, ops)
	ins := &instruction{val: val, opname: opname}
	c.instructions = append(c.instructions, ins)
	c.linkOperands(h.Value(), ops)
	return h
}

// MakeBB creates an orphan block.
func (c *Context) MakeBB(name string) BlockHandle {
	h := blockHandle(len(c.blocks))
	val := newValue(name, h.Value(), true, nil)
	c.blocks = append(c.blocks, &basicBlock{val: val})
	return h
}

// MakeFun creates a function with argCount fresh positional
// arguments (empty names).
func (c *Context) MakeFun(name string, argCount int, isDecl bool) FunctionHandle {
	h := functionHandle(len(c.functions))
	val := newValue(name, h.Value(), true, nil)
	args := make([]ArgumentHandle, argCount)
	for i := 0; i < argCount; i++ {
		args[i] = c.makeArg("", i, h)
	}
	c.functions = append(c.functions, &function{val: val, args: args, isDecl: isDecl})
	return h
}

func (c *Context) makeArg(name string, pos int, fun FunctionHandle) ArgumentHandle {
	h := argumentHandle(len(c.arguments))
	val := newValue(name, h.Value(), true, nil)
	c.arguments = append(c.arguments, &argument{val: val, pos: pos, fun: fun})
	return h
}

// MakeConst creates a constant.
func (c *Context) MakeConst(name string, n int64) ConstantHandle {
	h := constantHandle(len(c.constants))
	val := newValue(name, h.Value(), true, nil)
	c.constants = append(c.constants, &constant{val: val, n: n})
	return h
}

// --- erasure -------------------------------------------------------------
//
// Erasure tombstones the slot. The precondition — the entity is
// detached and has no users — is the caller's responsibility; the
// Context does not check it (§4.2) and erasing a live, used entity
// corrupts the arena silently, exactly as the spec says.

// EraseIns tombstones ins's slot.
func (c *Context) EraseIns(ins InstructionHandle) {
	c.instructions[ins.raw.index()] = nil
}

// EraseBB tombstones bb's slot.
func (c *Context) EraseBB(bb BlockHandle) {
	c.blocks[bb.raw.index()] = nil
}

// EraseFun tombstones fun's slot.
func (c *Context) EraseFun(fun FunctionHandle) {
	c.functions[fun.raw.index()] = nil
}

// EraseConst tombstones c's slot.
func (c *Context) EraseConst(k ConstantHandle) {
	c.constants[k.raw.index()] = nil
}

// --- operand rewiring ----------------------------------------------------

// InsSetOp rewires operand idx of ins to v, updating user sets. If the
// replaced operand still occurs elsewhere in ins's operand list, its
// user set is left alone; otherwise the old user link is removed. The
// new target gains ins as a user idempotently.
func (c *Context) InsSetOp(ins InstructionHandle, idx int, v ValueHandle) {
	insVal := &c.ins(ins).val
	old := insVal.ops[idx]
	if old == v {
		return
	}

	insVal.ops[idx] = v

	if !insVal.hasOp(old) {
		c.valueOf(old).delUser(ins.Value())
	}
	c.valueOf(v).addUser(ins.Value())
}

// --- instruction placement -----------------------------------------------

// InsDetach removes ins from its parent block, if any, setting its
// parent to none.
func (c *Context) InsDetach(insH InstructionHandle) {
	insObj := c.ins(insH)
	if insObj.parent == nil {
		return
	}
	bbObj := c.bb(*insObj.parent)
	idx := bbObj.insIndex(insH)
	if idx < 0 {
		fault("InsDetach", "instruction missing from its own parent's list")
	}
	bbObj.ins = append(bbObj.ins[:idx], bbObj.ins[idx+1:]...)
	insObj.parent = nil
}

// InsInsertIn appends ins to the end of bb. Inserting a non-orphan
// instruction is a programming error.
func (c *Context) InsInsertIn(insH InstructionHandle, bbH BlockHandle) {
	insObj := c.ins(insH)
	if insObj.parent != nil {
		fault("InsInsertIn", "instruction already belongs to a basic block")
	}
	bbObj := c.bb(bbH)
	bbObj.ins = append(bbObj.ins, insH)
	insObj.parent = &bbH
}

// InsInsertBefore inserts ins immediately before pos in pos's parent
// block. Inserting a non-orphan instruction is a programming error.
func (c *Context) InsInsertBefore(insH, pos InstructionHandle) {
	posObj := c.ins(pos)
	if posObj.parent == nil {
		fault("InsInsertBefore", "reference instruction is not attached to a block")
	}
	bbH := *posObj.parent
	insObj := c.ins(insH)
	if insObj.parent != nil {
		fault("InsInsertBefore", "instruction already belongs to a basic block")
	}
	bbObj := c.bb(bbH)
	idx := bbObj.insIndex(pos)
	if idx < 0 {
		fault("InsInsertBefore", "reference instruction missing from its parent's list")
	}
	bbObj.ins = append(bbObj.ins, InstructionHandle{})
	copy(bbObj.ins[idx+1:], bbObj.ins[idx:])
	bbObj.ins[idx] = insH
	insObj.parent = &bbH
}

// InsInsertAfter inserts ins immediately after pos in pos's parent
// block. Inserting a non-orphan instruction is a programming error.
func (c *Context) InsInsertAfter(insH, pos InstructionHandle) {
	posObj := c.ins(pos)
	if posObj.parent == nil {
		fault("InsInsertAfter", "reference instruction is not attached to a block")
	}
	bbH := *posObj.parent
	insObj := c.ins(insH)
	if insObj.parent != nil {
		fault("InsInsertAfter", "instruction already belongs to a basic block")
	}
	bbObj := c.bb(bbH)
	idx := bbObj.insIndex(pos)
	if idx < 0 {
		fault("InsInsertAfter", "reference instruction missing from its parent's list")
	}
	bbObj.ins = append(bbObj.ins, InstructionHandle{})
	copy(bbObj.ins[idx+2:], bbObj.ins[idx+1:])
	bbObj.ins[idx+1] = insH
	insObj.parent = &bbH
}

// --- block placement ------------------------------------------------------

// BBDetach removes bb from its parent function, if any, setting its
// parent to none.
func (c *Context) BBDetach(bbH BlockHandle) {
	bbObj := c.bb(bbH)
	if bbObj.parent == nil {
		return
	}
	funObj := c.fun(*bbObj.parent)
	idx := funObj.blockIndex(bbH)
	if idx < 0 {
		fault("BBDetach", "block missing from its own parent's list")
	}
	funObj.blocks = append(funObj.blocks[:idx], funObj.blocks[idx+1:]...)
	bbObj.parent = nil
}

// BBInsertIn appends bb to the end of fun. Inserting a non-orphan
// block is a programming error.
func (c *Context) BBInsertIn(bbH BlockHandle, funH FunctionHandle) {
	bbObj := c.bb(bbH)
	if bbObj.parent != nil {
		fault("BBInsertIn", "block already belongs to a function")
	}
	funObj := c.fun(funH)
	if funObj.isDecl {
		fault("BBInsertIn", "cannot insert a block into a declaration-only function")
	}
	funObj.blocks = append(funObj.blocks, bbH)
	bbObj.parent = &funH
}

// BBInsertBefore inserts bb immediately before pos in pos's parent
// function. Inserting a non-orphan block is a programming error.
func (c *Context) BBInsertBefore(bbH, pos BlockHandle) {
	posObj := c.bb(pos)
	if posObj.parent == nil {
		fault("BBInsertBefore", "reference block is not attached to a function")
	}
	funH := *posObj.parent
	bbObj := c.bb(bbH)
	if bbObj.parent != nil {
		fault("BBInsertBefore", "block already belongs to a function")
	}
	funObj := c.fun(funH)
	idx := funObj.blockIndex(pos)
	if idx < 0 {
		fault("BBInsertBefore", "reference block missing from its parent's list")
	}
	funObj.blocks = append(funObj.blocks, BlockHandle{})
	copy(funObj.blocks[idx+1:], funObj.blocks[idx:])
	funObj.blocks[idx] = bbH
	bbObj.parent = &funH
}

// BBInsertAfter inserts bb immediately after pos in pos's parent
// function. Inserting a non-orphan block is a programming error.
func (c *Context) BBInsertAfter(bbH, pos BlockHandle) {
	posObj := c.bb(pos)
	if posObj.parent == nil {
		fault("BBInsertAfter", "reference block is not attached to a function")
	}
	funH := *posObj.parent
	bbObj := c.bb(bbH)
	if bbObj.parent != nil {
		fault("BBInsertAfter", "block already belongs to a function")
	}
	funObj := c.fun(funH)
	idx := funObj.blockIndex(pos)
	if idx < 0 {
		fault("BBInsertAfter", "reference block missing from its parent's list")
	}
	funObj.blocks = append(funObj.blocks, BlockHandle{})
	copy(funObj.blocks[idx+2:], funObj.blocks[idx+1:])
	funObj.blocks[idx+1] = bbH
	bbObj.parent = &funH
}

// --- iteration -----------------------------------------------------------

// Funcs returns every live function handle in slot-ascending order.
func (c *Context) Funcs() []FunctionHandle {
	out := make([]FunctionHandle, 0, len(c.functions))
	for i, f := range c.functions {
		if f != nil {
			out = append(out, functionHandle(i))
		}
	}
	return out
}

// --- read-only accessors ---------------------------------------------------

// ValueName returns the name of whatever entity h addresses.
func (c *Context) ValueName(h ValueHandle) string { return c.valueOf(h).name }

// ValueIsDef reports whether h produces a usable result.
func (c *Context) ValueIsDef(h ValueHandle) bool { return c.valueOf(h).isDef }

// ValueOps returns h's ordered operand list.
func (c *Context) ValueOps(h ValueHandle) []ValueHandle {
	ops := c.valueOf(h).ops
	return append([]ValueHandle(nil), ops...)
}

// ValueUsers returns, in a deterministic (kind, slot) order, every
// handle that currently lists h as an operand.
func (c *Context) ValueUsers(h ValueHandle) []ValueHandle {
	return c.valueOf(h).sortedUsers()
}

// InsOpname returns ins's opcode mnemonic.
func (c *Context) InsOpname(ins InstructionHandle) string { return c.ins(ins).opname }

// InsParent returns ins's parent block, if attached.
func (c *Context) InsParent(ins InstructionHandle) (BlockHandle, bool) {
	p := c.ins(ins).parent
	if p == nil {
		return BlockHandle{}, false
	}
	return *p, true
}

// BlockIns returns bb's instructions in program order.
func (c *Context) BlockIns(bb BlockHandle) []InstructionHandle {
	ins := c.bb(bb).ins
	return append([]InstructionHandle(nil), ins...)
}

// BlockParent returns bb's parent function, if attached.
func (c *Context) BlockParent(bb BlockHandle) (FunctionHandle, bool) {
	p := c.bb(bb).parent
	if p == nil {
		return FunctionHandle{}, false
	}
	return *p, true
}

// FuncArgs returns fun's arguments in positional order.
func (c *Context) FuncArgs(fun FunctionHandle) []ArgumentHandle {
	args := c.fun(fun).args
	return append([]ArgumentHandle(nil), args...)
}

// FuncIsDecl reports whether fun is a declaration (no basic blocks).
func (c *Context) FuncIsDecl(fun FunctionHandle) bool { return c.fun(fun).isDecl }

// FuncBlocks returns fun's basic blocks in program order; the first
// is the entry block. Panics if fun is a declaration.
func (c *Context) FuncBlocks(fun FunctionHandle) []BlockHandle {
	f := c.fun(fun)
	if f.isDecl {
		fault("FuncBlocks", "function %q is a declaration and has no blocks", f.val.name)
	}
	return append([]BlockHandle(nil), f.blocks...)
}

// ArgPos returns arg's zero-based position.
func (c *Context) ArgPos(arg ArgumentHandle) int { return c.arg(arg).pos }

// ArgFunc returns arg's owning function.
func (c *Context) ArgFunc(arg ArgumentHandle) FunctionHandle { return c.arg(arg).fun }

// ConstValue returns k's signed 64-bit payload.
func (c *Context) ConstValue(k ConstantHandle) int64 { return c.konst(k).n }

// Rename changes the name of whatever entity h addresses. Used by the
// loader to assign names to positional arguments after MakeFun
// creates them anonymously.
func (c *Context) Rename(h ValueHandle, name string) {
	c.valueOf(h).name = name
}
