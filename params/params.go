// SPDX-License-Identifier: MIT

package params

import (
	"github.com/spf13/viper"
)

// Canonical parameter keys.
const (
	// KeyMaxNClasses caps the classes a classifier may expose to
	// propagation on normally sized problems.
	KeyMaxNClasses = "detection/maxnclasses"

	// KeyMaxNClassesLarge is the tighter cap applied to large problems.
	KeyMaxNClassesLarge = "detection/maxnclasseslarge"

	// KeyLargeProblemSize is the nconss+nvars threshold above which a
	// problem counts as large.
	KeyLargeProblemSize = "detection/largeproblemsize"

	// KeySetppcMaster controls whether set-like rows are forced to the
	// master border before connectivity runs.
	KeySetppcMaster = "detection/setppcmaster"

	// KeyMaxRounds bounds the engine's propagation rounds.
	KeyMaxRounds = "detection/maxrounds"

	// KeyScore names the scoring function ranking finished candidates.
	KeyScore = "detection/score"

	// KeyParallelism is the number of workers propagating candidates.
	KeyParallelism = "detection/parallelism"
)

// Store holds the parameters of one detection session.
type Store struct {
	v *viper.Viper
}

// NewStore returns a store populated with the built-in defaults.
func NewStore() *Store {
	s := &Store{v: viper.NewWithOptions(viper.KeyDelimiter("/"))}
	s.v.SetDefault(KeyMaxNClasses, 9)
	s.v.SetDefault(KeyMaxNClassesLarge, 5)
	s.v.SetDefault(KeyLargeProblemSize, 50000)
	s.v.SetDefault(KeySetppcMaster, true)
	s.v.SetDefault(KeyMaxRounds, 2)
	s.v.SetDefault(KeyScore, "maxwhite")
	s.v.SetDefault(KeyParallelism, 1)
	return s
}

// LoadFile merges parameter overrides from a YAML file into the store.
func (s *Store) LoadFile(path string) error {
	s.v.SetConfigFile(path)
	return s.v.MergeInConfig()
}

// Set overrides key with value, taking precedence over file and default.
func (s *Store) Set(key string, value any) { s.v.Set(key, value) }

// Int returns the integer value of key (0 when unset).
func (s *Store) Int(key string) int { return s.v.GetInt(key) }

// Bool returns the boolean value of key (false when unset).
func (s *Store) Bool(key string) bool { return s.v.GetBool(key) }

// String returns the string value of key ("" when unset).
func (s *Store) String(key string) string { return s.v.GetString(key) }

// Has reports whether key has a value from any source.
func (s *Store) Has(key string) bool { return s.v.IsSet(key) }
