// SPDX-License-Identifier: MIT

package stats_test

import (
	"fmt"

	"github.com/katalvlaran/featkit/stats"
)

func ExampleBufStats_Process() {
	cfg := stats.DefaultBufStatsConfig()
	cfg.Select = stats.Select(stats.Mean, stats.Mid)
	cfg.NumDerivatives = 1
	b, err := stats.NewBufStats(cfg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	// Two channels of five frames, channel-major.
	src := []float64{
		1, 2, 4, 7, 11,
		0, 0, 0, 0, 0,
	}
	out, err := b.Process(src, 5, 2, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for ch := 0; ch < out.NumChannels; ch++ {
		v, _ := out.Channel(ch)
		fmt.Println(v)
	}
	// Output:
	// [5 4 2.5 2.5]
	// [0 0 0 0]
}

func ExampleRunningStats_Process() {
	rs, _ := stats.NewRunningStats(3, 1)
	for _, v := range []float64{2, 4, 6, 8} {
		mean, sd, _ := rs.Process([]float64{v})
		fmt.Printf("%.0f %.0f\n", mean[0], sd[0])
	}
	// Output:
	// 2 0
	// 3 1
	// 4 2
	// 6 2
}
