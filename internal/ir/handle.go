package ir

// Kind tags which of the five arena slot vectors a handle addresses.
type Kind uint8

const (
	// KindInstruction addresses the instruction arena.
	KindInstruction Kind = iota + 1
	// KindBlock addresses the basic block arena.
	KindBlock
	// KindFunction addresses the function arena.
	KindFunction
	// KindArgument addresses the argument arena.
	KindArgument
	// KindConstant addresses the constant arena.
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindInstruction:
		return "instruction"
	case KindBlock:
		return "block"
	case KindFunction:
		return "function"
	case KindArgument:
		return "argument"
	case KindConstant:
		return "constant"
	default:
		return "invalid"
	}
}

// RawHandle packs a Kind and a slot index into a single comparable
// integer. The top byte carries the kind, the low 56 bits the index —
// ample headroom for any arena this library will ever build.
type RawHandle uint64

func makeRaw(k Kind, index int) RawHandle {
	if index < 0 || index > 0x00FFFFFFFFFFFFFF {
		panic("ir: slot index out of range")
	}
	return RawHandle(uint64(k)<<56 | uint64(index))
}

func (r RawHandle) kind() Kind { return Kind(r >> 56) }
func (r RawHandle) index() int { return int(r & 0x00FFFFFFFFFFFFFF) }

// ValueHandle is the union handle type: it erases the kind statically
// enforced by the typed handles below and supports dispatch into one
// of the five kinds via Kind/As*.
type ValueHandle RawHandle

// Kind reports which arena this handle addresses.
func (v ValueHandle) Kind() Kind { return RawHandle(v).kind() }

// AsInstruction returns the typed handle if v addresses an
// instruction slot.
func (v ValueHandle) AsInstruction() (InstructionHandle, bool) {
	if v.Kind() != KindInstruction {
		return InstructionHandle{}, false
	}
	return InstructionHandle{raw: RawHandle(v)}, true
}

// AsBlock returns the typed handle if v addresses a block slot.
func (v ValueHandle) AsBlock() (BlockHandle, bool) {
	if v.Kind() != KindBlock {
		return BlockHandle{}, false
	}
	return BlockHandle{raw: RawHandle(v)}, true
}

// AsFunction returns the typed handle if v addresses a function slot.
func (v ValueHandle) AsFunction() (FunctionHandle, bool) {
	if v.Kind() != KindFunction {
		return FunctionHandle{}, false
	}
	return FunctionHandle{raw: RawHandle(v)}, true
}

// AsArgument returns the typed handle if v addresses an argument slot.
func (v ValueHandle) AsArgument() (ArgumentHandle, bool) {
	if v.Kind() != KindArgument {
		return ArgumentHandle{}, false
	}
	return ArgumentHandle{raw: RawHandle(v)}, true
}

// AsConstant returns the typed handle if v addresses a constant slot.
func (v ValueHandle) AsConstant() (ConstantHandle, bool) {
	if v.Kind() != KindConstant {
		return ConstantHandle{}, false
	}
	return ConstantHandle{raw: RawHandle(v)}, true
}

// InstructionHandle names a slot in the instruction arena.
type InstructionHandle struct{ raw RawHandle }

// Value erases the kind of h into the union handle type.
func (h InstructionHandle) Value() ValueHandle { return ValueHandle(h.raw) }

func instructionHandle(idx int) InstructionHandle {
	return InstructionHandle{raw: makeRaw(KindInstruction, idx)}
}

// BlockHandle names a slot in the basic block arena.
type BlockHandle struct{ raw RawHandle }

// Value erases the kind of h into the union handle type.
func (h BlockHandle) Value() ValueHandle { return ValueHandle(h.raw) }

func blockHandle(idx int) BlockHandle {
	return BlockHandle{raw: makeRaw(KindBlock, idx)}
}

// FunctionHandle names a slot in the function arena.
type FunctionHandle struct{ raw RawHandle }

// Value erases the kind of h into the union handle type.
func (h FunctionHandle) Value() ValueHandle { return ValueHandle(h.raw) }

func functionHandle(idx int) FunctionHandle {
	return FunctionHandle{raw: makeRaw(KindFunction, idx)}
}

// ArgumentHandle names a slot in the argument arena.
type ArgumentHandle struct{ raw RawHandle }

// Value erases the kind of h into the union handle type.
func (h ArgumentHandle) Value() ValueHandle { return ValueHandle(h.raw) }

func argumentHandle(idx int) ArgumentHandle {
	return ArgumentHandle{raw: makeRaw(KindArgument, idx)}
}

// ConstantHandle names a slot in the constant arena.
type ConstantHandle struct{ raw RawHandle }

// Value erases the kind of h into the union handle type.
func (h ConstantHandle) Value() ValueHandle { return ValueHandle(h.raw) }

func constantHandle(idx int) ConstantHandle {
	return ConstantHandle{raw: makeRaw(KindConstant, idx)}
}
