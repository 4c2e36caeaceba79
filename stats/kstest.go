package stats

import (
	"math"
	"slices"
)

// KSTest runs the one-sample Kolmogorov-Smirnov test of x against cdf. It
// returns the statistic D, the largest absolute gap between the empirical
// and the reference CDF, and the asymptotic p-value of D.
//
// x must be non-empty; it is not modified.
func KSTest(x []float64, cdf func(float64) float64) (d, p float64) {
	sorted := slices.Clone(x)
	slices.Sort(sorted)

	n := float64(len(sorted))
	for i, v := range sorted {
		f := cdf(v)
		if gap := float64(i+1)/n - f; gap > d {
			d = gap
		}
		if gap := f - float64(i)/n; gap > d {
			d = gap
		}
	}
	return d, kolmogorovSurvival(ksLambda(d, n))
}

// ksLambda scales D by Stephens' small-sample correction.
func ksLambda(d, n float64) float64 {
	sn := math.Sqrt(n)
	return (sn + 0.12 + 0.11/sn) * d
}

// kolmogorovSurvival returns P(K > lambda) for the Kolmogorov distribution,
// 2 * sum_{k>=1} (-1)^(k-1) exp(-2 k^2 lambda^2).
func kolmogorovSurvival(lambda float64) float64 {
	const (
		eps      = 1e-12
		maxTerms = 100
	)
	if lambda < 0.2 {
		return 1
	}

	var sum float64
	sign := 1.0
	for k := 1; k <= maxTerms; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < eps*math.Abs(sum) {
			break
		}
		sign = -sign
	}
	return math.Min(1, math.Max(0, 2*sum))
}
