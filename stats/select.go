package stats

import (
	"fmt"
	"math"
)

var inf = math.Inf(1)

// OptimalDistribution fits each candidate family to x and returns the fit
// with the smallest KS statistic. With no candidates it tries Candidates.
// Exact ties go to the family listed first.
//
// Unlike Fit, which defaults to Normal, OptimalDistribution always searches.
// Any fitting error aborts the search and is returned.
func OptimalDistribution(x []float64, candidates ...Family) (FitResult, error) {
	if len(candidates) == 0 {
		candidates = Candidates
	}
	for _, f := range candidates {
		if !f.valid() {
			return FitResult{}, fmt.Errorf("stats: optimal distribution: %w: %q", ErrUnsupportedFamily, string(f))
		}
	}

	fits := make([]FitResult, 0, len(candidates))
	for _, f := range candidates {
		fit, err := Fit(x, f)
		if err != nil {
			return FitResult{}, err
		}
		fits = append(fits, fit)
	}
	return selectBest(fits), nil
}

// selectBest returns the fit with the smallest Statistic. Ties keep the
// earlier fit.
func selectBest(fits []FitResult) FitResult {
	var best FitResult
	bestScore := inf
	for i, fit := range fits {
		if score := fit.Statistic(); i == 0 || score < bestScore {
			best, bestScore = fit, score
		}
	}
	return best
}
