// SPDX-License-Identifier: MIT

package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dantzig/params"
)

func TestStore_Defaults(t *testing.T) {
	s := params.NewStore()

	assert.Equal(t, 9, s.Int(params.KeyMaxNClasses))
	assert.Equal(t, 5, s.Int(params.KeyMaxNClassesLarge))
	assert.Equal(t, 50000, s.Int(params.KeyLargeProblemSize))
	assert.True(t, s.Bool(params.KeySetppcMaster))
	assert.Equal(t, 2, s.Int(params.KeyMaxRounds))
	assert.Equal(t, "maxwhite", s.String(params.KeyScore))
	assert.Equal(t, 1, s.Int(params.KeyParallelism))
}

func TestStore_SetOverridesDefault(t *testing.T) {
	s := params.NewStore()
	s.Set(params.KeyMaxRounds, 5)
	s.Set(params.KeySetppcMaster, false)
	s.Set(params.KeyScore, "borderarea")

	assert.Equal(t, 5, s.Int(params.KeyMaxRounds))
	assert.False(t, s.Bool(params.KeySetppcMaster))
	assert.Equal(t, "borderarea", s.String(params.KeyScore))
}

func TestStore_UnknownKey(t *testing.T) {
	s := params.NewStore()
	assert.False(t, s.Has("detection/unheard-of"))
	assert.Equal(t, 0, s.Int("detection/unheard-of"))
	assert.Equal(t, "", s.String("detection/unheard-of"))
	assert.True(t, s.Has(params.KeyScore))
}

func TestStore_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detection.yaml")
	content := []byte("detection:\n  maxrounds: 4\n  score: blockdensity\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	s := params.NewStore()
	require.NoError(t, s.LoadFile(path))

	// File values override defaults; untouched keys keep theirs.
	assert.Equal(t, 4, s.Int(params.KeyMaxRounds))
	assert.Equal(t, "blockdensity", s.String(params.KeyScore))
	assert.Equal(t, 9, s.Int(params.KeyMaxNClasses))

	// Explicit Set still wins over the file.
	s.Set(params.KeyMaxRounds, 7)
	assert.Equal(t, 7, s.Int(params.KeyMaxRounds))
}

func TestStore_LoadFileMissing(t *testing.T) {
	s := params.NewStore()
	assert.Error(t, s.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
}
