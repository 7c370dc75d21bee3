package detect

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dantzig/classify"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/params"
)

// VarClasses turns one variable classifier into candidate linking
// splits: every subset of its classes is tried as the set of linking
// variables, with linking- and master-tagged classes booked by role for
// the variables the subset leaves open.
type VarClasses struct {
	classifier *classify.Classifier
	store      *params.Store
}

// NewVarClasses wraps a variable classifier as a detector. Passing a
// constraint classifier is a programming error and panics.
func NewVarClasses(cl *classify.Classifier, store *params.Store) *VarClasses {
	if cl.Kind() != classify.KindVar {
		panic(fmt.Sprintf("detect: NewVarClasses got %s classifier %s", cl.Kind(), cl.Name()))
	}
	return &VarClasses{classifier: cl, store: store}
}

// Name implements Detector.
func (d *VarClasses) Name() string { return "varclass_" + d.classifier.Name() }

// Propagate implements Detector: one refined candidate per class subset
// that books at least one variable. A classifier exposing more classes
// than the ceiling is skipped wholesale to bound the 2^k enumeration.
func (d *VarClasses) Propagate(ctx context.Context, cand *decomp.Candidate) ([]*decomp.Candidate, error) {
	if cand.OpenConss() == 0 && cand.OpenVars() == 0 {
		return nil, nil
	}
	mustMatchUniverse(d.classifier, cand)
	if d.classifier.NClasses() > classCeiling(cand.Problem(), d.store) {
		return nil, nil
	}

	all := make([]int, d.classifier.NClasses())
	for i := range all {
		all[i] = i
	}

	var out []*decomp.Candidate
	for _, subset := range d.classifier.GetAllSubsets(all...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := cand.Clone()
		if bookVarSplit(next, d.classifier, subset) == 0 {
			continue
		}
		next.Flush()
		next.AddHistory(fmt.Sprintf("%s: linking classes %s",
			d.Name(), classNames(d.classifier, subset)))
		out = append(out, next)
	}
	return out, nil
}
