package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/dantzig/classify"
	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/params"
)

// Detector is one refinement strategy over partial decompositions.
//
// Propagate must not mutate cand: refinements are booked on clones. An
// empty result with a nil error means "did not find" and the engine
// simply moves on; errors are reserved for cancellation and real faults.
type Detector interface {
	Name() string
	Propagate(ctx context.Context, cand *decomp.Candidate) ([]*decomp.Candidate, error)
}

// Registry holds the detectors of one detection session in registration
// order.
type Registry struct {
	detectors []Detector
	names     map[string]bool
}

// NewRegistry returns an empty detector registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// Register appends d. Registering two detectors under one name is a
// programming error and panics.
func (r *Registry) Register(d Detector) {
	name := d.Name()
	if name == "" {
		panic("detect: detector with empty name")
	}
	if r.names[name] {
		panic(fmt.Sprintf("detect: duplicate detector %q", name))
	}
	r.names[name] = true
	r.detectors = append(r.detectors, d)
}

// Detectors returns the registered detectors in order.
func (r *Registry) Detectors() []Detector { return r.detectors }

// Len returns the number of registered detectors.
func (r *Registry) Len() int { return len(r.detectors) }

// DefaultRegistry wires the standard detector lineup for p: the
// connected-blocks detector and class detectors over the four built-in
// classifiers.
func DefaultRegistry(p *core.Problem, store *params.Store) *Registry {
	r := NewRegistry()
	r.Register(NewConnectedBlocks(store))
	r.Register(NewVarClasses(classify.VarsByType(p), store))
	r.Register(NewVarClasses(classify.VarsByObjSign(p), store))
	r.Register(NewConsClasses(classify.ConssByFlavor(p), store))
	r.Register(NewConsClasses(classify.ConssByNNonzeros(p), store))
	return r
}

// classCeiling returns the class-count ceiling for p: the large-problem
// ceiling once nconss+nvars passes the configured threshold.
func classCeiling(p *core.Problem, store *params.Store) int {
	if p.Size() > store.Int(params.KeyLargeProblemSize) {
		return store.Int(params.KeyMaxNClassesLarge)
	}
	return store.Int(params.KeyMaxNClasses)
}

// mustMatchUniverse aborts when a classifier was built for a different
// problem than the candidate refines. That is a plugin defect, not a
// runtime condition.
func mustMatchUniverse(cl *classify.Classifier, cand *decomp.Candidate) {
	want := cand.Problem().NVars()
	if cl.Kind() == classify.KindCons {
		want = cand.Problem().NConss()
	}
	if cl.Universe() != want {
		panic(fmt.Sprintf("detect: classifier %s covers %d %s indices, problem has %d",
			cl.Name(), cl.Universe(), cl.Kind(), want))
	}
}

// bookVarSplit books every open variable of cand whose class falls in
// subset as linking, then open variables of linking-tagged classes as
// linking, then open variables of master-tagged classes as master.
// First match wins per variable. Returns the number of bookings.
func bookVarSplit(cand *decomp.Candidate, cl *classify.Classifier, subset []int) int {
	inSubset := make(map[int]bool, len(subset))
	for _, ci := range subset {
		inSubset[ci] = true
	}
	booked := 0
	for _, v := range cand.OpenVarIndices() {
		ci := cl.ClassOf(v)
		if ci == classify.Unclassified {
			continue
		}
		switch {
		case inSubset[ci]:
			cand.BookVarToLinking(v)
		case cl.ClassRole(ci) == classify.RoleLinking:
			cand.BookVarToLinking(v)
		case cl.ClassRole(ci) == classify.RoleMaster:
			cand.BookVarToMaster(v)
		default:
			continue
		}
		booked++
	}
	return booked
}

// bookConsSplit books every open constraint of cand whose class falls in
// subset for the master border, then open constraints of master-tagged
// classes. First match wins per constraint. Returns the number of
// bookings.
func bookConsSplit(cand *decomp.Candidate, cl *classify.Classifier, subset []int) int {
	inSubset := make(map[int]bool, len(subset))
	for _, ci := range subset {
		inSubset[ci] = true
	}
	booked := 0
	for _, i := range cand.OpenConsIndices() {
		ci := cl.ClassOf(i)
		if ci == classify.Unclassified {
			continue
		}
		if !inSubset[ci] && cl.ClassRole(ci) != classify.RoleMaster {
			continue
		}
		cand.BookConsToMaster(i)
		booked++
	}
	return booked
}

// classNames renders a class subset for provenance lines.
func classNames(cl *classify.Classifier, subset []int) string {
	if len(subset) == 0 {
		return "(none)"
	}
	names := make([]string, len(subset))
	for i, ci := range subset {
		names[i] = cl.ClassName(ci)
	}
	return strings.Join(names, ",")
}

// PropagateWithClasses is the interactive entry point: it applies one
// user-chosen class subset to cand with the same booking semantics the
// class detectors use, returning the refined clone, or (nil, false) when
// the choice books nothing. Variable classes become linking splits,
// constraint classes master splits.
func PropagateWithClasses(cand *decomp.Candidate, cl *classify.Classifier, selected ...int) (*decomp.Candidate, bool) {
	mustMatchUniverse(cl, cand)
	chosen := classNames(cl, selected) // validates the class ids
	next := cand.Clone()
	var booked int
	if cl.Kind() == classify.KindVar {
		booked = bookVarSplit(next, cl, selected)
	} else {
		booked = bookConsSplit(next, cl, selected)
	}
	if booked == 0 {
		return nil, false
	}
	next.Flush()
	next.AddHistory(fmt.Sprintf("manual %s: classes %s", cl.Name(), chosen))
	return next, true
}
