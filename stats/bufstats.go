// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/featkit/dataset"
)

const (
	opNewBufStats = "stats.NewBufStats"
	opSetConfig   = "BufStats.SetConfig"
	opProcess     = "BufStats.Process"
)

// Stat names one summary statistic.
type Stat int

const (
	Mean Stat = iota
	Std
	Skew
	Kurtosis
	Low
	Mid
	High

	numStats = 7
)

var statNames = [...]string{"Mean", "Std", "Skew", "Kurtosis", "Low", "Mid", "High"}

// String returns the statistic name.
func (s Stat) String() string {
	if s < Mean || s > High {
		return fmt.Sprintf("Stat(%d)", int(s))
	}

	return statNames[s]
}

// Selection is a bit set of statistics to emit.
type Selection uint8

// SelectAll enables all seven statistics.
const SelectAll Selection = 1<<numStats - 1

// Select builds a Selection from a list of statistics.
func Select(stats ...Stat) Selection {
	var s Selection
	for _, st := range stats {
		if st >= Mean && st <= High {
			s |= 1 << st
		}
	}

	return s
}

// Has reports whether st is selected.
func (s Selection) Has(st Stat) bool { return s&(1<<st) != 0 }

// Count returns the number of selected statistics.
func (s Selection) Count() int {
	var n int
	for st := Mean; st <= High; st++ {
		if s.Has(st) {
			n++
		}
	}

	return n
}

// NoOutlierCutoff disables outlier removal.
const NoOutlierCutoff = -1.0

// MaxDerivatives is the highest supported derivative order.
const MaxDerivatives = 2

// BufStatsConfig selects the analysed span and the statistics.
// NumFrames and NumChannels of 0 mean "everything from the start offset".
type BufStatsConfig struct {
	StartFrame       int
	NumFrames        int
	StartChannel     int
	NumChannels      int
	Select           Selection
	NumDerivatives   int
	LowPercentile    float64
	MiddlePercentile float64
	HighPercentile   float64
	// OutliersCutoff < 0 disables outlier removal.
	OutliersCutoff float64
}

// DefaultBufStatsConfig covers the whole buffer with all statistics,
// no derivatives, percentiles 0/50/100 and no outlier removal.
func DefaultBufStatsConfig() BufStatsConfig {
	return BufStatsConfig{
		Select:           SelectAll,
		LowPercentile:    0,
		MiddlePercentile: 50,
		HighPercentile:   100,
		OutliersCutoff:   NoOutlierCutoff,
	}
}

// Validate checks the span-independent parts of the configuration.
func (c BufStatsConfig) Validate() error {
	switch {
	case c.StartFrame < 0 || c.NumFrames < 0 || c.StartChannel < 0 || c.NumChannels < 0:
		return fmt.Errorf("negative span: %w", dataset.ErrInvalidParameter)
	case c.NumDerivatives < 0 || c.NumDerivatives > MaxDerivatives:
		return fmt.Errorf("numDerivatives=%d not in [0,%d]: %w", c.NumDerivatives, MaxDerivatives, dataset.ErrInvalidParameter)
	case c.Select&SelectAll == 0:
		return fmt.Errorf("no statistic selected: %w", dataset.ErrInvalidParameter)
	case !(c.LowPercentile >= 0 && c.LowPercentile <= c.MiddlePercentile &&
		c.MiddlePercentile <= c.HighPercentile && c.HighPercentile <= 100):
		return fmt.Errorf("percentiles %g/%g/%g not ordered within [0,100]: %w",
			c.LowPercentile, c.MiddlePercentile, c.HighPercentile, dataset.ErrInvalidParameter)
	case math.IsNaN(c.OutliersCutoff) || math.IsInf(c.OutliersCutoff, 0):
		return fmt.Errorf("outliersCutoff=%g: %w", c.OutliersCutoff, dataset.ErrInvalidParameter)
	}

	return nil
}

// Output is a channel-major summary: ValuesPerChannel values per channel.
type Output struct {
	Values           []float64
	NumChannels      int
	ValuesPerChannel int
}

// Channel returns a copy of one channel's values.
func (o Output) Channel(ch int) ([]float64, error) {
	if ch < 0 || ch >= o.NumChannels {
		return nil, fmt.Errorf("channel %d outside [0,%d): %w", ch, o.NumChannels, dataset.ErrInvalidParameter)
	}
	start := ch * o.ValuesPerChannel

	return append([]float64(nil), o.Values[start:start+o.ValuesPerChannel]...), nil
}

// BufStats computes per-channel summaries of channel-major buffers.
type BufStats struct {
	mu  sync.RWMutex
	cfg BufStatsConfig
}

// NewBufStats validates cfg.
func NewBufStats(cfg BufStatsConfig) (*BufStats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewBufStats, err)
	}

	return &BufStats{cfg: cfg}, nil
}

// Config returns the current configuration.
func (b *BufStats) Config() BufStatsConfig {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cfg
}

// SetConfig replaces the configuration; an invalid cfg leaves it unchanged.
func (b *BufStats) SetConfig(cfg BufStatsConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", opSetConfig, err)
	}
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()

	return nil
}

// Process summarizes source, laid out as numChannels runs of numFrames
// samples. weights, when non-nil, holds one weight per selected frame;
// non-positive weights exclude their frame, and all non-positive weights
// produce an all-zero output.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch (source or weights length),
// ErrInvalidParameter (span outside the buffer, selected frames not
// exceeding NumDerivatives, NaN/Inf samples or weights).
func (b *BufStats) Process(source []float64, numFrames, numChannels int, weights []float64) (Output, error) {
	cfg := b.Config()
	out, err := process(cfg, source, numFrames, numChannels, weights)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", opProcess, err)
	}

	return out, nil
}

func process(cfg BufStatsConfig, source []float64, numFrames, numChannels int, weights []float64) (Output, error) {
	// Channel-major: one "row" per channel.
	if err := dataset.ValidateFinite(source, numChannels, numFrames); err != nil {
		return Output{}, err
	}

	frames := cfg.NumFrames
	if frames == 0 {
		frames = numFrames - cfg.StartFrame
	}
	channels := cfg.NumChannels
	if channels == 0 {
		channels = numChannels - cfg.StartChannel
	}
	switch {
	case cfg.StartFrame >= numFrames || frames < 1 || cfg.StartFrame+frames > numFrames:
		return Output{}, fmt.Errorf("frames [%d,+%d) outside %d: %w", cfg.StartFrame, frames, numFrames, dataset.ErrInvalidParameter)
	case cfg.StartChannel >= numChannels || channels < 1 || cfg.StartChannel+channels > numChannels:
		return Output{}, fmt.Errorf("channels [%d,+%d) outside %d: %w", cfg.StartChannel, channels, numChannels, dataset.ErrInvalidParameter)
	case frames <= cfg.NumDerivatives:
		return Output{}, fmt.Errorf("frames=%d must exceed numDerivatives=%d: %w", frames, cfg.NumDerivatives, dataset.ErrInvalidParameter)
	}

	perChannel := cfg.Select.Count() * (cfg.NumDerivatives + 1)
	out := Output{
		Values:           make([]float64, channels*perChannel),
		NumChannels:      channels,
		ValuesPerChannel: perChannel,
	}

	series := make([][]float64, channels)
	for ch := range series {
		start := (cfg.StartChannel+ch)*numFrames + cfg.StartFrame
		series[ch] = append([]float64(nil), source[start:start+frames]...)
	}

	var w []float64
	if weights != nil {
		if len(weights) != frames {
			return Output{}, fmt.Errorf("weights len=%d frames=%d: %w", len(weights), frames, dataset.ErrDimensionMismatch)
		}
		w = make([]float64, frames)
		positive := false
		for i, v := range weights {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Output{}, fmt.Errorf("non-finite weight: %w", dataset.ErrInvalidParameter)
			}
			if v > 0 {
				w[i] = v
				positive = true
			}
		}
		if !positive {
			return out, nil
		}
	}

	if cfg.OutliersCutoff >= 0 {
		series, w = dropOutliers(series, w, cfg.OutliersCutoff, cfg.NumDerivatives+1)
	}

	for ch, x := range series {
		dst := out.Values[ch*perChannel : (ch+1)*perChannel]
		cur, cw := x, w
		pos := 0
		for d := 0; d <= cfg.NumDerivatives; d++ {
			if d > 0 {
				cur, cw = difference(cur, cw)
			}
			pos += summarize(dst[pos:], cur, cw, cfg)
		}
	}

	return out, nil
}

// difference returns the forward difference of x; each difference keeps the
// smaller weight of its two frames.
func difference(x, w []float64) ([]float64, []float64) {
	dx := make([]float64, len(x)-1)
	for i := range dx {
		dx[i] = x[i+1] - x[i]
	}
	if w == nil {
		return dx, nil
	}
	dw := make([]float64, len(w)-1)
	for i := range dw {
		dw[i] = math.Min(w[i], w[i+1])
	}

	return dx, dw
}

// summarize writes the selected statistics of x into dst and returns how
// many values it wrote. A weight set with no positive entry yields zeros.
func summarize(dst, x, w []float64, cfg BufStatsConfig) int {
	var all [numStats]float64
	if w == nil || hasPositive(w) {
		all = describe(x, w, cfg)
	}

	n := 0
	for st := Mean; st <= High; st++ {
		if cfg.Select.Has(st) {
			dst[n] = all[st]
			n++
		}
	}

	return n
}

func hasPositive(w []float64) bool {
	for _, v := range w {
		if v > 0 {
			return true
		}
	}

	return false
}

// describe computes all seven statistics of x under optional weights w.
func describe(x, w []float64, cfg BufStatsConfig) [numStats]float64 {
	var out [numStats]float64
	mean := stat.Mean(x, w)
	variance := stat.Moment(2, x, w)
	sd := math.Sqrt(variance)
	out[Mean] = mean
	out[Std] = sd
	if sd > 0 {
		out[Skew] = stat.Moment(3, x, w) / (variance * sd)
		out[Kurtosis] = stat.Moment(4, x, w) / (variance * variance)
	}

	sorted := append([]float64(nil), x...)
	var sw []float64
	if w != nil {
		sw = append([]float64(nil), w...)
		stat.SortWeighted(sorted, sw)
	} else {
		sort.Float64s(sorted)
	}
	out[Low] = quantile(sorted, sw, cfg.LowPercentile)
	out[Mid] = quantile(sorted, sw, cfg.MiddlePercentile)
	out[High] = quantile(sorted, sw, cfg.HighPercentile)

	return out
}

// quantile is Percentile for unweighted data and the weighted empirical
// quantile otherwise.
func quantile(sorted, w []float64, p float64) float64 {
	if w == nil {
		return Percentile(sorted, p)
	}

	return stat.Quantile(p/100, stat.Empirical, sorted, w)
}

// dropOutliers removes frames where any channel lies outside its
// [Q1 - c·IQR, Q3 + c·IQR] fence. When fewer than minFrames frames would
// survive, the input is returned unchanged.
func dropOutliers(series [][]float64, w []float64, c float64, minFrames int) ([][]float64, []float64) {
	frames := len(series[0])
	keep := make([]bool, frames)
	for i := range keep {
		keep[i] = true
	}
	sorted := make([]float64, frames)
	for _, x := range series {
		copy(sorted, x)
		sort.Float64s(sorted)
		q1, q3 := Percentile(sorted, 25), Percentile(sorted, 75)
		lo, hi := q1-c*(q3-q1), q3+c*(q3-q1)
		for i, v := range x {
			if v < lo || v > hi {
				keep[i] = false
			}
		}
	}

	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	if kept == frames || kept < minFrames {
		return series, w
	}

	outSeries := make([][]float64, len(series))
	for ch, x := range series {
		y := make([]float64, 0, kept)
		for i, v := range x {
			if keep[i] {
				y = append(y, v)
			}
		}
		outSeries[ch] = y
	}
	if w == nil {
		return outSeries, nil
	}
	outW := make([]float64, 0, kept)
	for i, v := range w {
		if keep[i] {
			outW = append(outW, v)
		}
	}

	return outSeries, outW
}
