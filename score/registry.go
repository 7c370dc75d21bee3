package score

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
)

// Func computes the score of d for p. Implementations must return a
// value in [0,1] and must not mutate either argument.
type Func func(p *core.Problem, d *decomp.Decomposition) float64

// Score is one registered scoring function.
type Score struct {
	// Name is the full registration name, unique per registry.
	Name string
	// ShortName is the abbreviated lookup alias, unique per registry.
	ShortName string
	// Desc says in one line what the score rewards.
	Desc string
	// Fn is the scoring function itself.
	Fn Func
}

// Registry holds the scoring functions of one detection session. The
// zero value is not usable; create with NewRegistry or DefaultRegistry.
type Registry struct {
	byName  map[string]*Score
	byShort map[string]*Score
	order   []*Score
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Score),
		byShort: make(map[string]*Score),
	}
}

// DefaultRegistry returns a fresh registry with the built-in scores
// registered: borderarea, blockdensity and maxwhite.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Score{
		Name:      "borderarea",
		ShortName: "bar",
		Desc:      "one minus the fraction of matrix area taken by the border",
		Fn:        BorderArea,
	})
	r.Register(Score{
		Name:      "blockdensity",
		ShortName: "dens",
		Desc:      "mean nonzero density over the block interiors",
		Fn:        BlockDensity,
	})
	r.Register(Score{
		Name:      "maxwhite",
		ShortName: "mw",
		Desc:      "fraction of matrix area covered by neither blocks nor border",
		Fn:        MaxWhite,
	})
	return r
}

// Register adds s to the registry. An empty name, a nil function, or a
// name or short name already taken is a programming error and panics.
func (r *Registry) Register(s Score) {
	if s.Name == "" || s.Fn == nil {
		panic("score: Register needs a name and a function")
	}
	if _, ok := r.byName[s.Name]; ok {
		panic(fmt.Sprintf("score: duplicate registration of %q", s.Name))
	}
	if s.ShortName != "" {
		if _, ok := r.byShort[s.ShortName]; ok {
			panic(fmt.Sprintf("score: duplicate short name %q", s.ShortName))
		}
	}
	stored := s
	r.byName[s.Name] = &stored
	if s.ShortName != "" {
		r.byShort[s.ShortName] = &stored
	}
	r.order = append(r.order, &stored)
}

// Lookup finds a score by full name first, short name second.
func (r *Registry) Lookup(name string) (*Score, bool) {
	if s, ok := r.byName[name]; ok {
		return s, true
	}
	s, ok := r.byShort[name]
	return s, ok
}

// Len returns the number of registered scores.
func (r *Registry) Len() int { return len(r.order) }

// Names returns the full names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, s := range r.order {
		names[i] = s.Name
	}
	return names
}
