package decomp

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// poolKey orders pool entries: higher score first, insertion order
// breaking ties so equal-scored decompositions keep a stable order.
type poolKey struct {
	score float64
	seq   uint64
}

func comparePoolKeys(a, b interface{}) int {
	ka, kb := a.(poolKey), b.(poolKey)
	switch {
	case ka.score > kb.score:
		return -1
	case ka.score < kb.score:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// Pool collects finalized decompositions ordered by score, best first.
// Append and read may run concurrently; entries are never removed.
type Pool struct {
	mu   sync.RWMutex
	tree *redblacktree.Tree
	seq  uint64
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{tree: redblacktree.NewWith(comparePoolKeys)}
}

// Add inserts d with the given score.
func (p *Pool) Add(d *Decomposition, score float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.tree.Put(poolKey{score: score, seq: p.seq}, d)
}

// Len returns the number of pooled decompositions.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tree.Size()
}

// Best returns the highest-scored decomposition, or false on an empty
// pool. Ties resolve to the earliest inserted.
func (p *Pool) Best() (*Decomposition, float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	node := p.tree.Left()
	if node == nil {
		return nil, 0, false
	}
	return node.Value.(*Decomposition), node.Key.(poolKey).score, true
}

// Decompositions returns all entries best first.
func (p *Pool) Decompositions() []*Decomposition {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Decomposition, 0, p.tree.Size())
	it := p.tree.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Decomposition))
	}
	return out
}

// Each calls fn for every entry best first, stopping early when fn
// returns false.
func (p *Pool) Each(fn func(d *Decomposition, score float64) bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	it := p.tree.Iterator()
	for it.Next() {
		if !fn(it.Value().(*Decomposition), it.Key().(poolKey).score) {
			return
		}
	}
}
