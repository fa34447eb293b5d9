// SPDX-License-Identifier: MIT

package cluster

import (
	"math"
	"math/rand"

	"github.com/viterin/vek"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/featkit/distance"
	"github.com/katalvlaran/featkit/logging"
)

// engine runs one fit over prepared rows. For the spherical variant the rows
// are already unit-normalized and means are renormalized after every update.
type engine struct {
	data      []float64
	rows      int
	dims      int
	k         int
	spherical bool
	workers   int
	logger    *logging.Logger

	means  []float64
	assign []int
	counts []int
}

func newEngine(data []float64, rows, dims, k int, spherical bool, opts Options) *engine {
	return &engine{
		data:      data,
		rows:      rows,
		dims:      dims,
		k:         k,
		spherical: spherical,
		workers:   opts.workers,
		logger:    opts.logger,
		means:     make([]float64, k*dims),
		assign:    make([]int, rows),
		counts:    make([]int, k),
	}
}

func (e *engine) row(i int) []float64  { return e.data[i*e.dims : (i+1)*e.dims] }
func (e *engine) mean(c int) []float64 { return e.means[c*e.dims : (c+1)*e.dims] }

// dissimilarity is squared Euclidean distance, or 1 - cosine for unit vectors.
func (e *engine) dissimilarity(x, m []float64) float64 {
	if e.spherical {
		return 1 - vek.Dot(x, m)
	}

	return distance.SquaredL2(x, m)
}

// nearest returns the closest mean to x; ties go to the lower index.
func (e *engine) nearest(x []float64) int {
	best, bestD := 0, math.Inf(1)
	for c := 0; c < e.k; c++ {
		if d := e.dissimilarity(x, e.mean(c)); d < bestD {
			best, bestD = c, d
		}
	}

	return best
}

// run executes initialization plus at most maxIter reassignment rounds.
func (e *engine) run(cfg Config) Result {
	rng := rngFromSeed(cfg.Seed)
	switch cfg.Init {
	case RandomPartition:
		for i := range e.assign {
			e.assign[i] = rng.Intn(e.k)
		}
	case RandomSampling:
		e.seedPlusPlus(rng)
		e.reassign()
	default:
		perm := permRange(e.rows, rng)
		for c := 0; c < e.k; c++ {
			copy(e.mean(c), e.row(perm[c]))
		}
		e.reassign()
	}
	e.repairEmpty()
	e.updateMeans()

	var iterations int
	converged := false
	for iterations < cfg.MaxIter {
		changed := e.reassign()
		iterations++
		e.logger.LogIteration(iterations, changed)
		if changed == 0 {
			converged = true
			break
		}
		e.repairEmpty()
		e.updateMeans()
	}
	e.logger.LogConvergence(e.k, iterations, converged)

	return Result{
		Means:       append([]float64(nil), e.means...),
		Assignments: append([]int(nil), e.assign...),
		K:           e.k,
		Dims:        e.dims,
		Iterations:  iterations,
		Converged:   converged,
	}
}

// seedPlusPlus picks the first mean uniformly, then each next mean with
// probability proportional to its dissimilarity from the closest chosen mean.
func (e *engine) seedPlusPlus(rng *rand.Rand) {
	first := rng.Intn(e.rows)
	copy(e.mean(0), e.row(first))

	closest := make([]float64, e.rows)
	var total float64
	for i := 0; i < e.rows; i++ {
		closest[i] = math.Max(0, e.dissimilarity(e.row(i), e.mean(0)))
		total += closest[i]
	}
	for c := 1; c < e.k; c++ {
		pick := sampleWeighted(closest, total, rng)
		copy(e.mean(c), e.row(pick))
		total = 0
		for i := 0; i < e.rows; i++ {
			if d := math.Max(0, e.dissimilarity(e.row(i), e.mean(c))); d < closest[i] {
				closest[i] = d
			}
			total += closest[i]
		}
	}
}

// reassign moves every row to its nearest mean and returns how many rows
// changed cluster. Rows are split into contiguous chunks, one per worker;
// each chunk writes only its own slots, so the result is order-independent.
func (e *engine) reassign() int {
	workers := min(e.workers, e.rows)
	if workers <= 1 {
		return e.reassignRange(0, e.rows)
	}

	changed := make([]int, workers)
	chunk := (e.rows + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, e.rows)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			changed[w] = e.reassignRange(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	var total int
	for _, n := range changed {
		total += n
	}

	return total
}

func (e *engine) reassignRange(lo, hi int) int {
	var changed int
	for i := lo; i < hi; i++ {
		if c := e.nearest(e.row(i)); c != e.assign[i] {
			e.assign[i] = c
			changed++
		}
	}

	return changed
}

// updateMeans recomputes every mean as the centroid of its rows. Callers run
// repairEmpty first, so every cluster has at least one row.
func (e *engine) updateMeans() {
	for i := range e.means {
		e.means[i] = 0
	}
	for c := range e.counts {
		e.counts[c] = 0
	}
	for i := 0; i < e.rows; i++ {
		c := e.assign[i]
		floats.Add(e.mean(c), e.row(i))
		e.counts[c]++
	}
	for c := 0; c < e.k; c++ {
		m := e.mean(c)
		if e.counts[c] > 0 {
			floats.Scale(1/float64(e.counts[c]), m)
		}
		if e.spherical {
			if n := vek.Norm(m); n > 0 {
				floats.Scale(1/n, m)
			}
		}
	}
}

// repairEmpty hands every empty cluster the row farthest from its current
// mean, taken from a cluster that keeps at least one row. Means are brought
// up to date first so "farthest" is measured against the current centroids.
func (e *engine) repairEmpty() {
	for c := range e.counts {
		e.counts[c] = 0
	}
	for _, c := range e.assign {
		e.counts[c]++
	}

	repaired := false
	for c := 0; c < e.k; c++ {
		if e.counts[c] > 0 {
			continue
		}
		if !repaired {
			e.updateMeans()
			repaired = true
		}
		row, bestD := -1, math.Inf(-1)
		for i := 0; i < e.rows; i++ {
			owner := e.assign[i]
			if e.counts[owner] < 2 {
				continue
			}
			if d := e.dissimilarity(e.row(i), e.mean(owner)); d > bestD {
				row, bestD = i, d
			}
		}
		if row < 0 {
			// Unreachable while k <= rows: k-1 non-empty clusters cannot hold
			// rows ≥ k points without one of them holding two.
			continue
		}
		donor := e.assign[row]
		e.assign[row] = c
		e.counts[donor]--
		e.counts[c]++
		copy(e.mean(c), e.row(row))
		e.logger.LogReseed(c, donor, row)
	}
}
