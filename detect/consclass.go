package detect

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dantzig/classify"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/params"
)

// ConsClasses turns one constraint classifier into candidate master
// splits: every subset of its classes is tried as the set of master
// constraints, master-tagged classes joining in by role.
type ConsClasses struct {
	classifier *classify.Classifier
	store      *params.Store
}

// NewConsClasses wraps a constraint classifier as a detector. Passing a
// variable classifier is a programming error and panics.
func NewConsClasses(cl *classify.Classifier, store *params.Store) *ConsClasses {
	if cl.Kind() != classify.KindCons {
		panic(fmt.Sprintf("detect: NewConsClasses got %s classifier %s", cl.Kind(), cl.Name()))
	}
	return &ConsClasses{classifier: cl, store: store}
}

// Name implements Detector.
func (d *ConsClasses) Name() string { return "consclass_" + d.classifier.Name() }

// Propagate implements Detector: one refined candidate per class subset
// that books at least one constraint, under the same class-count ceiling
// as the variable side.
func (d *ConsClasses) Propagate(ctx context.Context, cand *decomp.Candidate) ([]*decomp.Candidate, error) {
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
		if bookConsSplit(next, d.classifier, subset) == 0 {
			continue
		}
		next.Flush()
		next.AddHistory(fmt.Sprintf("%s: master classes %s",
			d.Name(), classNames(d.classifier, subset)))
		out = append(out, next)
	}
	return out, nil
}
