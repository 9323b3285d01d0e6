package routing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// ErrNotForest is wrapped by CheckForest failures.
var ErrNotForest = errors.New("road graph is not a forest")

// Edge joins two node indices. To is always the node created by the edge.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is the append-only road graph. Node 0 is the root.
type Graph struct {
	Nodes []geo.Point2D `json:"nodes"`
	Edges []Edge        `json:"edges"`
}

// AddNode appends a node grown from parent and returns its index. A
// negative parent adds an unconnected node.
func (g *Graph) AddNode(p geo.Point2D, parent int) int {
	g.Nodes = append(g.Nodes, p)
	idx := len(g.Nodes) - 1
	if parent >= 0 {
		g.Edges = append(g.Edges, Edge{From: parent, To: idx})
	}
	return idx
}

// Adjacency returns sorted neighbour lists for every node.
func (g Graph) Adjacency() [][]int {
	adj := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	for _, ns := range adj {
		sort.Ints(ns)
	}
	return adj
}

// Segments returns one straight segment per edge.
func (g Graph) Segments() []geo.Segment {
	segs := make([]geo.Segment, len(g.Edges))
	for i, e := range g.Edges {
		segs[i] = geo.Segment{A: g.Nodes[e.From], B: g.Nodes[e.To]}
	}
	return segs
}

// Length returns the summed length of all edges.
func (g Graph) Length() float64 {
	total := 0.0
	for _, s := range g.Segments() {
		total += s.Length()
	}
	return total
}

// CheckForest verifies that every edge joins an earlier node to a node it
// created, that no node is created twice, and that no cycle exists.
func CheckForest(g Graph) error {
	n := len(g.Nodes)
	created := make([]bool, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for i, e := range g.Edges {
		switch {
		case e.From < 0 || e.From >= n || e.To < 0 || e.To >= n:
			return fmt.Errorf("%w: edge %d references missing node", ErrNotForest, i)
		case e.From >= e.To:
			return fmt.Errorf("%w: edge %d does not create a new node (%d -> %d)", ErrNotForest, i, e.From, e.To)
		case created[e.To]:
			return fmt.Errorf("%w: node %d created twice", ErrNotForest, e.To)
		}
		created[e.To] = true
		a, b := find(e.From), find(e.To)
		if a == b {
			return fmt.Errorf("%w: edge %d closes a cycle", ErrNotForest, i)
		}
		parent[b] = a
	}
	return nil
}

// Polylines merges chains of degree-2 nodes into single polylines. Every
// edge appears in exactly one polyline.
func (g Graph) Polylines() []geo.Polyline {
	adj := g.Adjacency()
	type key struct{ a, b int }
	used := make(map[key]bool, len(g.Edges))
	mark := func(a, b int) {
		used[key{a, b}] = true
		used[key{b, a}] = true
	}

	walk := func(start, next int) geo.Polyline {
		pts := []geo.Point2D{g.Nodes[start]}
		prev, cur := start, next
		mark(prev, cur)
		for {
			pts = append(pts, g.Nodes[cur])
			if len(adj[cur]) != 2 {
				break
			}
			nxt := adj[cur][0]
			if nxt == prev {
				nxt = adj[cur][1]
			}
			if used[key{cur, nxt}] {
				break
			}
			mark(cur, nxt)
			prev, cur = cur, nxt
		}
		return geo.Polyline{Points: pts}
	}

	var out []geo.Polyline
	for i := range g.Nodes {
		if len(adj[i]) == 2 {
			continue
		}
		for _, j := range adj[i] {
			if !used[key{i, j}] {
				out = append(out, walk(i, j))
			}
		}
	}
	// A forest has no pure degree-2 loops, but stray edges are still
	// emitted so no edge is lost.
	for _, e := range g.Edges {
		if !used[key{e.From, e.To}] {
			out = append(out, walk(e.From, e.To))
		}
	}
	return out
}
