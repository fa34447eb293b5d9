// SPDX-License-Identifier: MIT

package grid

import "math"

// assign solves the rectangular assignment problem for a rows×cols cost
// matrix (rows <= cols) with the Hungarian method on dual potentials.
// It returns, for every row, the column it is matched to; no column is
// used twice and the summed cost is minimal.
//
// Implementation:
//   - Stage 1: rows are added one at a time; each addition grows a
//     shortest augmenting path from the new row over reduced costs.
//   - Stage 2: potentials are shifted by the path slack so reduced costs
//     stay non-negative, then the matching is flipped along the path.
//
// Complexity:
//   - Time O(rows²·cols), Space O(cols).
func assign(cost []float64, rows, cols int) []int {
	// Index 0 is a virtual row/column; real ones are 1-based.
	u := make([]float64, rows+1)
	v := make([]float64, cols+1)
	match := make([]int, cols+1) // column -> row
	way := make([]int, cols+1)
	minv := make([]float64, cols+1)
	used := make([]bool, cols+1)

	var i, j int
	for i = 1; i <= rows; i++ {
		match[0] = i
		j0 := 0
		for j = 0; j <= cols; j++ {
			minv[j] = math.Inf(1)
			used[j] = false
		}
		for {
			used[j0] = true
			i0, delta, j1 := match[j0], math.Inf(1), 0
			for j = 1; j <= cols; j++ {
				if used[j] {
					continue
				}
				if cur := cost[(i0-1)*cols+j-1] - u[i0] - v[j]; cur < minv[j] {
					minv[j], way[j] = cur, j0
				}
				if minv[j] < delta {
					delta, j1 = minv[j], j
				}
			}
			for j = 0; j <= cols; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	owner := make([]int, rows)
	for j = 1; j <= cols; j++ {
		if match[j] != 0 {
			owner[match[j]-1] = j - 1
		}
	}

	return owner
}
