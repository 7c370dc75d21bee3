package detect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/params"
	"github.com/katalvlaran/dantzig/score"
)

// ErrUnknownScore is returned by Run when the detection/score parameter
// names no registered scoring function.
var ErrUnknownScore = errors.New("detect: unknown score")

// Engine runs breadth-first candidate expansion over a detector lineup
// and pools the scored results.
type Engine struct {
	problem     *core.Problem
	store       *params.Store
	scores      *score.Registry
	detectors   *Registry
	parallelism int
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithParams supplies the parameter store; defaults to params.NewStore().
func WithParams(store *params.Store) EngineOption {
	return func(e *Engine) { e.store = store }
}

// WithScores supplies the score registry; defaults to the built-ins.
func WithScores(reg *score.Registry) EngineOption {
	return func(e *Engine) { e.scores = reg }
}

// WithDetectors supplies the detector registry; defaults to
// DefaultRegistry over the engine's problem and params.
func WithDetectors(reg *Registry) EngineOption {
	return func(e *Engine) { e.detectors = reg }
}

// WithParallelism pins the propagation worker count for this engine,
// taking precedence over the detection/parallelism parameter. Values
// below one leave the store setting in charge.
func WithParallelism(n int) EngineOption {
	return func(e *Engine) { e.parallelism = n }
}

// NewEngine builds an engine for p. Options missing fall back to the
// session defaults.
func NewEngine(p *core.Problem, opts ...EngineOption) *Engine {
	e := &Engine{problem: p}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = params.NewStore()
	}
	if e.scores == nil {
		e.scores = score.DefaultRegistry()
	}
	if e.detectors == nil {
		e.detectors = DefaultRegistry(p, e.store)
	}
	return e
}

// Run expands candidates for at most detection/maxrounds rounds, then
// completes whatever is still partial, scores every distinct finished
// decomposition with the configured score and returns the pool, best
// first. An empty pool is the ordinary "nothing found" outcome, not an
// error. Cancellation aborts between propagation steps and returns the
// pool built so far together with ctx's error.
func (e *Engine) Run(ctx context.Context) (*decomp.Pool, error) {
	name := e.store.String(params.KeyScore)
	scorer, ok := e.scores.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScore, name)
	}

	workers := e.parallelism
	if workers < 1 {
		workers = e.store.Int(params.KeyParallelism)
	}
	if workers < 1 {
		workers = 1
	}

	pool := decomp.NewPool()
	seen := make(map[uint64]bool)
	root := decomp.NewCandidate(e.problem)
	seen[root.Fingerprint()] = true
	frontier := []*decomp.Candidate{root}

	rounds := e.store.Int(params.KeyMaxRounds)
	for round := 1; round <= rounds && len(frontier) > 0; round++ {
		results, err := e.propagateRound(ctx, frontier, workers)

		var next []*decomp.Candidate
		for _, outs := range results {
			for _, cand := range outs {
				fp := cand.Fingerprint()
				if seen[fp] {
					continue
				}
				seen[fp] = true
				if cand.IsFinished() {
					e.finalize(cand, scorer, pool)
					continue
				}
				next = append(next, cand)
			}
		}
		klog.V(1).Infof("detect: round %d: %d open candidates, %d pooled",
			round, len(next), pool.Len())
		if err != nil {
			return pool, err
		}
		frontier = next
	}

	// Complete the stragglers: leftover open constraints go to the
	// master border, open variables follow their blocks. Candidates
	// that never grew a block would finalize into an all-master
	// decomposition and are dropped instead.
	for _, cand := range frontier {
		if err := ctx.Err(); err != nil {
			return pool, err
		}
		if cand.NBlocks() == 0 {
			continue
		}
		done := cand.Clone()
		done.AssignOpenConssToMaster()
		done.AssignOpenVarsByBlocks()
		fp := done.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		done.AddHistory("completed: open conss to master, vars by blocks")
		e.finalize(done, scorer, pool)
	}

	if pool.Len() == 0 {
		klog.V(1).Info("detect: no decomposition found")
	} else if best, s, ok := pool.Best(); ok {
		klog.V(1).Infof("detect: %d decompositions, best %s with %s=%.4f",
			pool.Len(), best.Type(), scorer.Name, s)
	}
	return pool, nil
}

// finalize converts a finished candidate and pools it. A candidate that
// fails structural validation at this point is a detector defect.
func (e *Engine) finalize(cand *decomp.Candidate, scorer *score.Score, pool *decomp.Pool) {
	d, err := cand.ToDecomposition()
	if err != nil {
		panic("detect: finished candidate is inconsistent: " + err.Error())
	}
	pool.Add(d, scorer.Fn(e.problem, d))
}

// propagateRound sends every frontier candidate through every detector.
// Jobs are enumerated candidate-major; with several workers each takes a
// strided share, and results are merged by job index, so the round's
// outcome does not depend on scheduling.
func (e *Engine) propagateRound(ctx context.Context, frontier []*decomp.Candidate, workers int) ([][]*decomp.Candidate, error) {
	type job struct {
		cand *decomp.Candidate
		det  Detector
	}
	jobs := make([]job, 0, len(frontier)*e.detectors.Len())
	for _, cand := range frontier {
		for _, det := range e.detectors.Detectors() {
			jobs = append(jobs, job{cand: cand, det: det})
		}
	}

	results := make([][]*decomp.Candidate, len(jobs))
	errs := make([]error, len(jobs))
	if workers == 1 || len(jobs) <= 1 {
		for j := range jobs {
			if err := ctx.Err(); err != nil {
				errs[j] = err
				break
			}
			results[j], errs[j] = jobs[j].det.Propagate(ctx, jobs[j].cand)
		}
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for j := w; j < len(jobs); j += workers {
					if err := ctx.Err(); err != nil {
						errs[j] = err
						return
					}
					results[j], errs[j] = jobs[j].det.Propagate(ctx, jobs[j].cand)
				}
			}(w)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
