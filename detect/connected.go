package detect

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/params"
	"github.com/katalvlaran/dantzig/partition"
)

// ConnectedBlocks finds the connectivity blocks among the still-open
// constraints of a candidate. The setppcmaster parameter decides whether
// set-like rows are carved out to the master border first; if that
// attempt finds fewer than two blocks the detector retries exactly once
// with the flipped policy. Branching rows always go to the master border.
type ConnectedBlocks struct {
	store *params.Store
}

// NewConnectedBlocks returns the detector reading its policy from store.
func NewConnectedBlocks(store *params.Store) *ConnectedBlocks {
	return &ConnectedBlocks{store: store}
}

// Name implements Detector.
func (d *ConnectedBlocks) Name() string { return "connected" }

// Propagate implements Detector. On success it emits exactly one refined
// candidate with every previously open element assigned.
func (d *ConnectedBlocks) Propagate(ctx context.Context, cand *decomp.Candidate) ([]*decomp.Candidate, error) {
	if cand.OpenConss() == 0 && cand.OpenVars() == 0 {
		return nil, nil
	}

	setppc := d.store.Bool(params.KeySetppcMaster)
	res, used, err := d.partitionOpen(ctx, cand, setppc)
	if errors.Is(err, partition.ErrSingleBlock) {
		res, used, err = d.partitionOpen(ctx, cand, !setppc)
	}
	if errors.Is(err, partition.ErrSingleBlock) {
		return nil, nil // no exploitable structure either way
	}
	if err != nil {
		return nil, err
	}

	next := cand.Clone()
	base := next.NBlocks()
	for b := 0; b < res.NBlocks; b++ {
		next.AddBlock()
	}
	for i, l := range res.ConsLabel {
		if !cand.ConsLabel(i).IsOpen() {
			continue
		}
		switch b, ok := l.Block(); {
		case ok:
			next.BookConsToBlock(i, base+b)
		case l.IsIgnored():
			next.BookConsIgnored(i)
		default:
			next.BookConsToMaster(i)
		}
	}
	for v, l := range res.VarLabel {
		if !cand.VarLabel(v).IsOpen() {
			continue
		}
		switch b, ok := l.Block(); {
		case ok:
			next.BookVarToBlock(v, base+b)
		case l.IsLinking():
			next.BookVarToLinking(v)
		default:
			next.BookVarToMaster(v)
		}
	}
	next.Flush()
	next.AddHistory(fmt.Sprintf("connected: %d blocks (setppcmaster=%t)", res.NBlocks, used))
	return []*decomp.Candidate{next}, nil
}

// partitionOpen runs the partitioner over the candidate's open part:
// assigned and branching rows are excluded up front, set-like rows too
// when the policy says so, and already-assigned variables do not conduct.
func (d *ConnectedBlocks) partitionOpen(ctx context.Context, cand *decomp.Candidate, setppc bool) (*partition.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, setppc, err
	}
	masterPred := func(p *core.Problem, i int) bool {
		if !cand.ConsLabel(i).IsOpen() || p.IsBranching(i) {
			return true
		}
		return setppc && p.ConsFlavorOf(i).IsSetLike()
	}
	skipPred := func(_ *core.Problem, v int) bool {
		return !cand.VarLabel(v).IsOpen()
	}
	res, err := partition.Partition(cand.Problem(),
		partition.WithMasterPredicate(masterPred),
		partition.WithSkipPredicate(skipPred))
	return res, setppc, err
}
