// SPDX-License-Identifier: MIT

package decfmt

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Token stream shared by the DEC and BLK dialects. Backslash and hash
// comments vanish in the lexer, newlines are ordinary whitespace, and
// section keywords are their own token type so constraint and variable
// names never collide with them. Both keyword-per-line and same-line
// layouts parse identically.
var structureLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `[\\#][^\n]*`},
	{Name: "Keyword", Pattern: `\b(CONSDEFAULTMASTER|PRESOLVED|NBLOCKS|MASTERCONSS|BLOCK)\b`},
	{Name: "Name", Pattern: `[^\s\\#]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

// intValue is an integer token that remembers where it was read, for
// claims checked after parsing (block counts, flag ranges).
type intValue struct {
	Pos   lexer.Position
	Value int `parser:"@Name"`
}

// nameRef is one constraint or variable name token with its position.
type nameRef struct {
	Pos  lexer.Position
	Name string `parser:"@Name"`
}

// section is one BLOCK paragraph listing member names.
type section struct {
	Number intValue  `parser:"\"BLOCK\" @@"`
	Names  []nameRef `parser:"@@*"`
}

type decFile struct {
	ConsDefaultMaster *intValue `parser:"(\"CONSDEFAULTMASTER\" @@)?"`
	Presolved         *intValue `parser:"(\"PRESOLVED\" @@)?"`
	NBlocks           intValue  `parser:"\"NBLOCKS\" @@"`
	Blocks            []section `parser:"@@*"`
	Master            []nameRef `parser:"(\"MASTERCONSS\" @@*)?"`
}

type blkFile struct {
	Presolved *intValue `parser:"(\"PRESOLVED\" @@)?"`
	NBlocks   intValue  `parser:"\"NBLOCKS\" @@"`
	Blocks    []section `parser:"@@*"`
}

var (
	decParser = participle.MustBuild[decFile](participle.Lexer(structureLexer))
	blkParser = participle.MustBuild[blkFile](participle.Lexer(structureLexer))
)
