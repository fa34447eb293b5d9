// SPDX-License-Identifier: MIT

package kdtree_test

import (
	"fmt"

	"github.com/katalvlaran/featkit/kdtree"
)

func ExampleTree_KNearest() {
	tree, _ := kdtree.New(2)
	_ = tree.Add("origin", []float64{0, 0})
	_ = tree.Add("east", []float64{3, 0})
	_ = tree.Add("north", []float64{0, 4})
	_ = tree.Add("corner", []float64{3, 4})

	nn, err := tree.KNearest([]float64{0.5, 0}, 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(nn.IDs)
	fmt.Println(nn.Distances)
	// Output:
	// [origin east]
	// [0.5 2.5]
}
