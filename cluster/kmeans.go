// SPDX-License-Identifier: MIT

package cluster

const (
	opKMeansFit     = "KMeans.Fit"
	opKMeansPredict = "KMeans.Predict"
)

// KMeans clusters rows by squared Euclidean distance to centroids.
type KMeans struct {
	m model
}

// NewKMeans returns an unfitted KMeans.
func NewKMeans(opts ...Option) *KMeans {
	return &KMeans{m: model{opts: gatherOptions("kmeans", opts...)}}
}

// Fit clusters a rows×dims dataset and keeps the means for Predict.
// Identical data and Config (including Seed) give identical results.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch, ErrInvalidParameter
// (dims<1, NaN/Inf, K outside [1,rows], MaxIter<1, unknown Init).
func (k *KMeans) Fit(data []float64, rows, dims int, cfg Config) (Result, error) {
	return k.m.fit(opKMeansFit, data, rows, dims, cfg)
}

// Predict returns the nearest fitted mean for every row.
//
// Errors: ErrNotFitted, ErrEmptyInput, ErrDimensionMismatch, ErrInvalidParameter.
func (k *KMeans) Predict(data []float64, rows, dims int) ([]int, error) {
	return k.m.predict(opKMeansPredict, data, rows, dims)
}

// Means returns a copy of the fitted k×dims means.
func (k *KMeans) Means() ([]float64, error) {
	means, _, _, err := k.m.meansCopy()
	return means, err
}

// IsFitted reports whether Fit has succeeded.
func (k *KMeans) IsFitted() bool { return k.m.isFitted() }
