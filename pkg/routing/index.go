package routing

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// indexedPoint is a node position stored in the k-d tree.
type indexedPoint struct {
	idx int
	p   geo.Point2D
}

func (ip indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	if d == 0 {
		return ip.p.X - q.p.X
	}
	return ip.p.Y - q.p.Y
}

func (ip indexedPoint) Dims() int { return 2 }

func (ip indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	dx, dy := ip.p.X-q.p.X, ip.p.Y-q.p.Y
	return dx*dx + dy*dy
}

// nodeIndex answers nearest-node queries over a growing node set.
// Insertion order is fixed by the growth loop, so the tree shape and
// therefore tie-breaking are identical between runs.
type nodeIndex struct {
	tree *kdtree.Tree
}

func newNodeIndex() *nodeIndex {
	return &nodeIndex{tree: &kdtree.Tree{}}
}

func (ni *nodeIndex) insert(idx int, p geo.Point2D) {
	ni.tree.Insert(indexedPoint{idx: idx, p: p}, false)
}

// nearest returns the closest node and its distance, or -1 when empty.
func (ni *nodeIndex) nearest(p geo.Point2D) (int, float64) {
	if ni.tree.Root == nil {
		return -1, math.Inf(1)
	}
	c, d2 := ni.tree.Nearest(indexedPoint{idx: -1, p: p})
	if c == nil {
		return -1, math.Inf(1)
	}
	return c.(indexedPoint).idx, math.Sqrt(d2)
}
