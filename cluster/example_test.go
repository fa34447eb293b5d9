// SPDX-License-Identifier: MIT

package cluster_test

import (
	"fmt"

	"github.com/katalvlaran/featkit/cluster"
)

func ExampleKMeans_Fit() {
	data := []float64{
		0, 0, 0.2, 0, 0, 0.2,
		5, 5, 5.2, 5, 5, 5.2,
	}
	km := cluster.NewKMeans()
	res, err := km.Fit(data, 6, 2, cluster.Config{K: 2, MaxIter: 16, Init: cluster.RandomSampling, Seed: 7})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	c := res.Assignments[3]
	fmt.Printf("same cluster: %v\n", res.Assignments[3] == res.Assignments[5])
	fmt.Printf("mean: [%.4f %.4f]\n", res.Means[c*2], res.Means[c*2+1])
	// Output:
	// same cluster: true
	// mean: [5.0667 5.0667]
}

func ExampleSKMeans_Encode() {
	data := []float64{
		1, 0, 2, 0.1,
		0, 1, 0.1, 2,
	}
	sk := cluster.NewSKMeans()
	if _, err := sk.Fit(data, 4, 2, cluster.Config{K: 2, MaxIter: 16, Init: cluster.RandomPoint, Seed: 1}); err != nil {
		fmt.Println("error:", err)
		return
	}
	w, err := sk.Encode([]float64{3, 3}, 1, 2, 4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("[%.2f %.2f]\n", w[0], w[1])
	// Output:
	// [0.50 0.50]
}
