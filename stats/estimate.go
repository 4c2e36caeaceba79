package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrEmptySample is returned when there is nothing to fit.
	ErrEmptySample = errors.New("stats: empty sample")

	// ErrNonFiniteSample is returned when a sample contains NaN or ±Inf.
	ErrNonFiniteSample = errors.New("stats: sample contains non-finite values")

	// ErrDegenerateSample is returned when every value of a sample is equal,
	// leaving no spread to estimate a scale from.
	ErrDegenerateSample = errors.New("stats: sample has zero spread")

	// ErrInvalidParams is returned when a FitResult's parameters do not match
	// its family.
	ErrInvalidParams = errors.New("stats: invalid parameters for family")
)

// distribution is the part of a fitted gonum distribution the package needs.
type distribution interface {
	CDF(x float64) float64
	Prob(x float64) float64
}

// shifted is an exponential distribution moved to start at loc.
type shifted struct {
	exp distuv.Exponential
	loc float64
}

func (s shifted) CDF(x float64) float64  { return s.exp.CDF(x - s.loc) }
func (s shifted) Prob(x float64) float64 { return s.exp.Prob(x - s.loc) }

// checkSample validates x and returns its minimum and maximum.
func checkSample(x []float64) (lo, hi float64, err error) {
	if len(x) == 0 {
		return 0, 0, ErrEmptySample
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("%w: x[%d] = %v", ErrNonFiniteSample, i, v)
		}
	}
	lo, hi = floats.Min(x), floats.Max(x)
	if lo == hi {
		return 0, 0, fmt.Errorf("%w: all %d values are %v", ErrDegenerateSample, len(x), lo)
	}
	return lo, hi, nil
}

// estimate returns the parameters of family f fitted to x.
func estimate(x []float64, f Family) ([]float64, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFamily, string(f))
	}
	lo, hi, err := checkSample(x)
	if err != nil {
		return nil, err
	}

	switch f {
	case Normal:
		var d distuv.Normal
		d.Fit(x, nil)
		return []float64{d.Mu, d.Sigma}, nil
	case Exponential:
		shiftedX := make([]float64, len(x))
		copy(shiftedX, x)
		floats.AddConst(-lo, shiftedX)
		var d distuv.Exponential
		d.Fit(shiftedX, nil)
		return []float64{1 / d.Rate, lo}, nil
	case Uniform:
		return []float64{lo, hi - lo}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFamily, string(f))
	}
}

// newDistribution builds the gonum distribution described by params.
func newDistribution(f Family, params []float64) (distribution, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFamily, string(f))
	}
	if len(params) != 2 {
		return nil, fmt.Errorf("%w: %s wants 2 parameters, got %d", ErrInvalidParams, f, len(params))
	}
	a, b := params[0], params[1]
	switch f {
	case Normal:
		if !(b > 0) {
			return nil, fmt.Errorf("%w: sigma = %v", ErrInvalidParams, b)
		}
		return distuv.Normal{Mu: a, Sigma: b}, nil
	case Exponential:
		if !(a > 0) {
			return nil, fmt.Errorf("%w: scale = %v", ErrInvalidParams, a)
		}
		return shifted{exp: distuv.Exponential{Rate: 1 / a}, loc: b}, nil
	default:
		if !(b > 0) {
			return nil, fmt.Errorf("%w: scale = %v", ErrInvalidParams, b)
		}
		return distuv.Uniform{Min: a, Max: a + b}, nil
	}
}
