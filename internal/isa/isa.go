// Package isa holds the process-wide opcode registry: the fixed table
// mapping an instruction mnemonic to whether it terminates a block and
// whether it produces a usable result.
package isa

import "strings"

// Info describes one opcode's static properties.
type Info struct {
	name   string
	isTerm bool
	isDef  bool
}

// Name returns the opcode mnemonic.
func (i Info) Name() string { return i.name }

// IsTerm reports whether an instruction with this opcode must be the
// last instruction of its basic block.
func (i Info) IsTerm() bool { return i.isTerm }

// IsDef reports whether an instruction with this opcode produces a
// named result usable as an operand. For "call" this depends on the
// raw argument list: a call only defines a result if its second token
// begins with '%'.
func (i Info) IsDef(args []string) bool {
	if i.name == "call" {
		return isDefCall(args)
	}
	return i.isDef
}

func isDefCall(args []string) bool {
	if len(args) < 2 || len(args[1]) == 0 {
		return false
	}
	return strings.HasPrefix(args[1], "%")
}

var table = map[string]Info{
	"add":   {name: "add", isTerm: false, isDef: true},
	"sub":   {name: "sub", isTerm: false, isDef: true},
	"mul":   {name: "mul", isTerm: false, isDef: true},
	"cmplt": {name: "cmplt", isTerm: false, isDef: true},
	"call":  {name: "call", isTerm: false, isDef: false},
	"phi":   {name: "phi", isTerm: false, isDef: true},
	"b":     {name: "b", isTerm: true, isDef: false},
	"bc":    {name: "bc", isTerm: true, isDef: false},
	"ret":   {name: "ret", isTerm: true, isDef: false},
}

// Lookup returns the Info for a mnemonic, or false if it is not a
// recognized opcode.
func Lookup(name string) (Info, bool) {
	info, ok := table[name]
	return info, ok
}

// MustLookup is Lookup but panics with a diagnostic naming the opcode
// when it is not recognized, for callers in the core that have already
// validated input shape and treat an unknown opcode as a programming
// error.
func MustLookup(name string) Info {
	info, ok := table[name]
	if !ok {
		panic("isa: unknown opcode " + name)
	}
	return info
}
