// SPDX-License-Identifier: MIT

package kdtree

// candidate is a scored point held while searching.
type candidate struct {
	node *node
	dist float64 // squared Euclidean distance
}

// worse reports whether a ranks after b: larger distance, then later insertion.
func worse(a, b candidate) bool {
	if a.dist != b.dist {
		return a.dist > b.dist
	}

	return a.node.seq > b.node.seq
}

// candidateHeap is a max-heap of candidates: the root is the current worst.
type candidateHeap []candidate

// Len returns the number of candidates in the heap.
func (h candidateHeap) Len() int { return len(h) }

// Less puts the worst candidate on top.
func (h candidateHeap) Less(i, j int) bool { return worse(h[i], h[j]) }

// Swap swaps two elements in the heap.
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type candidate.
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }

// Pop removes and returns the worst element from the heap.
// Called by heap.Pop; returns interface{} that must be cast to candidate.
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
