package gop

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// contentLexer tokenizes a single already-isolated declaration line
// (a directive or an instruction, with any leading label defs and
// comments already stripped by the line scanner in gop.go). No two
// token patterns can match the same leading character, so their order
// does not change how a line is split.
var contentLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `-?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "At", Pattern: `@`},
	{Name: "Percent", Pattern: `%`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Arg is one comma-separated operand: a register (%name), a global
// reference (@name, a function or block label), or a bare token —
// either a decimal integer constant or an unprefixed keyword such as
// "fun"/"int" in a directive's argument list.
type Arg struct {
	Reg    string `(  "%" @Ident`
	Global string ` | "@" @Ident`
	Bare   string ` | @(Number|Ident) )`
}

// String renders the operand back to its original surface syntax.
func (a Arg) String() string {
	switch {
	case a.Reg != "":
		return "%" + a.Reg
	case a.Global != "":
		return "@" + a.Global
	default:
		return a.Bare
	}
}

// content is either a directive (". name arg, arg, ...") or an
// instruction ("name arg, arg, ...").
type content struct {
	Dir *dirContent `  @@`
	Ins *insContent `| @@`
}

// Args' first element is not comma-prefixed (it follows the opcode
// directly, separated only by whitespace); every later element is —
// mirroring gop.rs's Ins::parse/Dir::parse, which split on the first
// space and then split the remainder on commas.
type dirContent struct {
	Op   string `"." @Ident`
	Args []*Arg `(@@ ("," @@)*)?`
}

type insContent struct {
	Op   string `@Ident`
	Args []*Arg `(@@ ("," @@)*)?`
}

var contentParser = participle.MustBuild[content](
	participle.Lexer(contentLexer),
	participle.Elide("Whitespace"),
)
