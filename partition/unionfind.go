package partition

import "fmt"

// UnionFind is a disjoint-set forest over the indices [0,n) that keeps the
// smallest member of every set as its representative. Union therefore only
// ever lowers a representative, and after path compression Find(i) <= i
// for every i.
type UnionFind struct {
	parent []int
}

// NewUnionFind returns a forest of n singleton sets.
func NewUnionFind(n int) *UnionFind {
	if n < 0 {
		panic(fmt.Sprintf("partition: NewUnionFind(%d): negative size", n))
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &UnionFind{parent: parent}
}

// Len returns the universe size.
func (u *UnionFind) Len() int { return len(u.parent) }

// Find returns the representative of i's set, compressing the walked path.
func (u *UnionFind) Find(i int) int {
	u.mustIndex(i)
	root := i
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[i] != root {
		u.parent[i], i = root, u.parent[i]
	}
	return root
}

// Union merges the sets of a and b. The smaller of the two representatives
// becomes the representative of the merged set.
func (u *UnionFind) Union(a, b int) {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}

// Same reports whether a and b are in one set.
func (u *UnionFind) Same(a, b int) bool { return u.Find(a) == u.Find(b) }

func (u *UnionFind) mustIndex(i int) {
	if i < 0 || i >= len(u.parent) {
		panic(fmt.Sprintf("partition: index %d out of range [0,%d)", i, len(u.parent)))
	}
}
