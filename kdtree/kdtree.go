// SPDX-License-Identifier: MIT

package kdtree

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/distance"
)

const (
	opNew      = "kdtree.New"
	opAdd      = "Tree.Add"
	opKNearest = "Tree.KNearest"
	opSearch   = "Tree.Search"
)

// Neighbors holds parallel id and distance slices, nearest first.
type Neighbors struct {
	IDs       []string
	Distances []float64
}

type node struct {
	id    string
	point []float64
	seq   int
	left  *node
	right *node
}

// Tree is an append-only k-d tree.
type Tree struct {
	dims int

	mu   sync.RWMutex
	root *node
	size int
}

// New returns an empty tree for dims-dimensional points.
//
// Errors: ErrInvalidParameter (dims < 1).
func New(dims int) (*Tree, error) {
	if dims < 1 {
		return nil, fmt.Errorf("%s: dims=%d: %w", opNew, dims, dataset.ErrInvalidParameter)
	}

	return &Tree{dims: dims}, nil
}

// Dims returns the fixed point dimensionality.
func (t *Tree) Dims() int { return t.dims }

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.size
}

// Add indexes a copy of point under id. Ids need not be unique: every call
// adds a separate point.
//
// Errors: ErrDimensionMismatch (len(point) != Dims()), ErrInvalidParameter
// (NaN/Inf coordinate).
func (t *Tree) Add(id string, point []float64) error {
	if err := t.checkPoint(point); err != nil {
		return fmt.Errorf("%s: %w", opAdd, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n := &node{id: id, point: append([]float64(nil), point...), seq: t.size}
	t.size++

	if t.root == nil {
		t.root = n
		return nil
	}
	cur, depth := t.root, 0
	for {
		axis := depth % t.dims
		next := &cur.right
		if n.point[axis] < cur.point[axis] {
			next = &cur.left
		}
		if *next == nil {
			*next = n
			return nil
		}
		cur = *next
		depth++
	}
}

// KNearest returns the k closest points to input; k is clamped to Len().
//
// Errors: ErrDimensionMismatch, ErrInvalidParameter (k < 1, NaN/Inf input).
func (t *Tree) KNearest(input []float64, k int) (Neighbors, error) {
	res, err := t.search(input, k, 0)
	if err != nil {
		return Neighbors{}, fmt.Errorf("%s: %w", opKNearest, err)
	}

	return res, nil
}

// Search is KNearest limited to points within radius of input.
// A radius of 0 means unbounded.
//
// Errors: as KNearest, plus ErrInvalidParameter for a negative or NaN radius.
func (t *Tree) Search(input []float64, k int, radius float64) (Neighbors, error) {
	if math.IsNaN(radius) || radius < 0 {
		return Neighbors{}, fmt.Errorf("%s: radius=%g: %w", opSearch, radius, dataset.ErrInvalidParameter)
	}
	res, err := t.search(input, k, radius)
	if err != nil {
		return Neighbors{}, fmt.Errorf("%s: %w", opSearch, err)
	}

	return res, nil
}

func (t *Tree) checkPoint(p []float64) error {
	if len(p) != t.dims {
		return fmt.Errorf("len=%d dims=%d: %w", len(p), t.dims, dataset.ErrDimensionMismatch)
	}
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite coordinate: %w", dataset.ErrInvalidParameter)
		}
	}

	return nil
}

func (t *Tree) search(input []float64, k int, radius float64) (Neighbors, error) {
	if err := t.checkPoint(input); err != nil {
		return Neighbors{}, err
	}
	if k < 1 {
		return Neighbors{}, fmt.Errorf("k=%d: %w", k, dataset.ErrInvalidParameter)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	s := searcher{
		q:     input,
		dims:  t.dims,
		k:     min(k, t.size),
		bound: math.Inf(1),
	}
	if radius > 0 {
		s.bound = radius * radius
	}
	s.visit(t.root, 0)

	best := []candidate(s.best)
	sort.Slice(best, func(i, j int) bool { return worse(best[j], best[i]) })
	out := Neighbors{
		IDs:       make([]string, len(best)),
		Distances: make([]float64, len(best)),
	}
	for i, c := range best {
		out.IDs[i] = c.node.id
		out.Distances[i] = math.Sqrt(c.dist)
	}

	return out, nil
}

// searcher carries one query's state down the tree.
type searcher struct {
	q     []float64
	dims  int
	k     int
	bound float64 // squared radius, +Inf when unbounded
	best  candidateHeap
}

// worst is the squared distance a new candidate must not exceed.
func (s *searcher) worst() float64 {
	if len(s.best) < s.k {
		return s.bound
	}

	return s.best[0].dist
}

func (s *searcher) offer(n *node) {
	c := candidate{node: n, dist: distance.SquaredL2(s.q, n.point)}
	if c.dist > s.bound {
		return
	}
	if len(s.best) < s.k {
		heap.Push(&s.best, c)
		return
	}
	if worse(s.best[0], c) {
		s.best[0] = c
		heap.Fix(&s.best, 0)
	}
}

func (s *searcher) visit(n *node, depth int) {
	if n == nil || s.k == 0 {
		return
	}
	s.offer(n)

	axis := depth % s.dims
	diff := s.q[axis] - n.point[axis]
	near, far := n.right, n.left
	if diff < 0 {
		near, far = n.left, n.right
	}
	s.visit(near, depth+1)
	if diff*diff <= s.worst() {
		s.visit(far, depth+1)
	}
}
