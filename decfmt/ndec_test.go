// SPDX-License-Identifier: MIT

package decfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dantzig/decfmt"
	"github.com/katalvlaran/dantzig/decomp"
)

func TestReadNDEC_NestedTree(t *testing.T) {
	p := chainProblem(t)
	src := `version: 1
name: chain
presolved: false
decomposition:
  masterconstraints: [c3]
  blocks:
    - constraints: [c1, c2]
      decomposition:
        masterconstraints: [c2]
        blocks:
          - constraints: [c1]
    - constraints: [c4]
`
	doc, err := decfmt.ReadNDEC(p, strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, "chain", doc.Name)
	require.Len(t, doc.Root.Blocks, 2)
	require.NotNil(t, doc.Root.Blocks[0].Nested)
	assert.Equal(t, "c2", doc.Root.Blocks[0].Nested.MasterConss[0].Name)

	d, err := doc.Flatten(p)
	require.NoError(t, err)
	assert.Equal(t, 2, d.NBlocks())
	assert.Equal(t, []int{0, 1}, d.BlockConss(1))
	assert.Equal(t, []int{3}, d.BlockConss(2))
	assert.Equal(t, []int{2}, d.LinkingConss())
	assert.Equal(t, decomp.TypeBordered, d.Type())
}

func TestReadNDEC_BlockDefinedBySubtree(t *testing.T) {
	p := chainProblem(t)
	src := `version: 1
decomposition:
  blocks:
    - decomposition:
        masterconstraints: [c2]
        blocks:
          - constraints: [c1]
    - constraints: [c3, c4]
`
	doc, err := decfmt.ReadNDEC(p, strings.NewReader(src))
	require.NoError(t, err)

	d, err := doc.Flatten(p)
	require.NoError(t, err)
	assert.Equal(t, 2, d.NBlocks())
	assert.Equal(t, []int{0, 1}, d.BlockConss(1))
	assert.Equal(t, []int{2, 3}, d.BlockConss(2))
	assert.Empty(t, d.LinkingConss())
	assert.Equal(t, decomp.TypeDiagonal, d.Type())
}

func TestReadNDEC_VersionGate(t *testing.T) {
	p := chainProblem(t)
	src := `version: 2
decomposition:
  blocks:
    - constraints: [c1]
`
	_, err := decfmt.ReadNDEC(p, strings.NewReader(src))
	assert.ErrorIs(t, err, decfmt.ErrVersion)
}

func TestReadNDEC_Errors(t *testing.T) {
	p := chainProblem(t)

	t.Run("unknown constraint", func(t *testing.T) {
		src := "version: 1\ndecomposition:\n  blocks:\n    - constraints: [c9]\n"
		_, err := decfmt.ReadNDEC(p, strings.NewReader(src))
		var pe *decfmt.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 4, pe.Line)
		assert.Contains(t, pe.Msg, `unknown constraint "c9"`)
	})

	t.Run("claimed twice", func(t *testing.T) {
		src := `version: 1
decomposition:
  masterconstraints: [c1]
  blocks:
    - constraints: [c1, c2]
`
		_, err := decfmt.ReadNDEC(p, strings.NewReader(src))
		var pe *decfmt.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Msg, "claimed twice")
	})

	t.Run("refinement escapes block", func(t *testing.T) {
		src := `version: 1
decomposition:
  blocks:
    - constraints: [c1, c2]
      decomposition:
        blocks:
          - constraints: [c4]
`
		_, err := decfmt.ReadNDEC(p, strings.NewReader(src))
		var pe *decfmt.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, pe.Msg, "outside its enclosing block")
	})

	t.Run("empty block", func(t *testing.T) {
		src := "version: 1\ndecomposition:\n  blocks:\n    - constraints: []\n"
		_, err := decfmt.ReadNDEC(p, strings.NewReader(src))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "block 1 is empty")
	})

	t.Run("no decomposition", func(t *testing.T) {
		_, err := decfmt.ReadNDEC(p, strings.NewReader("version: 1\nname: bare\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no decomposition")
	})
}

func TestWriteNDEC_RoundTrip(t *testing.T) {
	p := chainProblem(t)
	d, err := decfmt.ReadDEC(p, strings.NewReader(scenarioDEC))
	require.NoError(t, err)

	doc, err := decfmt.NewNestedDocument(p, d)
	require.NoError(t, err)
	assert.Equal(t, decfmt.NDECVersion, doc.Version)

	var buf bytes.Buffer
	require.NoError(t, decfmt.WriteNDEC(&buf, doc))
	assert.Contains(t, buf.String(), "version: 1")
	assert.Contains(t, buf.String(), "masterconstraints:")

	back, err := decfmt.ReadNDEC(p, &buf)
	require.NoError(t, err)
	flat, err := back.Flatten(p)
	require.NoError(t, err)

	assert.Equal(t, d.NBlocks(), flat.NBlocks())
	for k := 1; k <= d.NBlocks(); k++ {
		assert.ElementsMatch(t, d.BlockConss(k), flat.BlockConss(k))
	}
	assert.ElementsMatch(t, d.LinkingConss(), flat.LinkingConss())
	assert.Equal(t, d.Type(), flat.Type())
}

func TestWriteNDEC_VersionGate(t *testing.T) {
	var buf bytes.Buffer
	err := decfmt.WriteNDEC(&buf, &decfmt.NestedDocument{Version: 0})
	assert.ErrorIs(t, err, decfmt.ErrVersion)
}
