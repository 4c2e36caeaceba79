package stats

import (
	"fmt"
	"slices"
)

// FitResult is the outcome of fitting one family to a sample.
//
// Params depend on Type:
//   - Normal: [mu, sigma]
//   - Exponential: [scale, loc]; the rate is 1/scale
//   - Uniform: [loc, scale]; the support is [loc, loc+scale]
//
// Errs holds the goodness of fit as [KS statistic, KS p-value].
type FitResult struct {
	Params []float64 `json:"params" yaml:"params"`
	Errs   []float64 `json:"errs" yaml:"errs"`
	Type   Family    `json:"type" yaml:"type"`
}

// Fit fits family to x.
//
// An empty family means Normal. Fit never searches across families; use
// OptimalDistribution for that.
func Fit(x []float64, family Family) (FitResult, error) {
	if family == "" {
		family = Normal
	}
	params, err := estimate(x, family)
	if err != nil {
		return FitResult{}, fmt.Errorf("stats: fitting %s: %w", family, err)
	}
	dist, err := newDistribution(family, params)
	if err != nil {
		return FitResult{}, fmt.Errorf("stats: fitting %s: %w", family, err)
	}
	d, p := KSTest(x, dist.CDF)
	return FitResult{Params: params, Errs: []float64{d, p}, Type: family}, nil
}

// PDF evaluates the fitted probability density at x.
func (r FitResult) PDF(x float64) (float64, error) {
	dist, err := newDistribution(r.Type, r.Params)
	if err != nil {
		return 0, err
	}
	return dist.Prob(x), nil
}

// CDF evaluates the fitted cumulative distribution at x.
func (r FitResult) CDF(x float64) (float64, error) {
	dist, err := newDistribution(r.Type, r.Params)
	if err != nil {
		return 0, err
	}
	return dist.CDF(x), nil
}

// Statistic returns the KS statistic of the fit, or +Inf when Errs is empty.
func (r FitResult) Statistic() float64 {
	if len(r.Errs) == 0 {
		return inf
	}
	return r.Errs[0]
}

// Equal reports whether r and o have the same family and identical numbers.
func (r FitResult) Equal(o FitResult) bool {
	return r.Type == o.Type && slices.Equal(r.Params, o.Params) && slices.Equal(r.Errs, o.Errs)
}
