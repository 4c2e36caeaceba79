package stats

import (
	"errors"
	"fmt"
	"strings"
)

// Family names a distribution family.
type Family string

const (
	Normal      Family = "norm"
	Exponential Family = "expon"
	Uniform     Family = "uniform"
)

// Candidates is the default set of families tried by OptimalDistribution.
// Its order is the tie-break precedence: on equal scores the earlier family
// wins.
var Candidates = []Family{Normal, Exponential, Uniform}

// ErrUnsupportedFamily is returned for a family name outside Candidates.
var ErrUnsupportedFamily = errors.New("stats: unsupported distribution family")

// dictNames are the type names used in ParamDict output.
var dictNames = map[Family]string{
	Normal:      "normal",
	Exponential: "exponential",
	Uniform:     "uniform",
}

// ParseFamily converts a family name into a Family. Both the short names
// ("norm", "expon", "uniform") and the ParamDict names ("normal",
// "exponential") are accepted, case-insensitively. An empty name is returned
// as the empty Family, which Fit treats as Normal.
func ParseFamily(name string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", nil
	}
	for f, long := range dictNames {
		if key == string(f) || key == long {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFamily, name)
}

func (f Family) valid() bool {
	_, ok := dictNames[f]
	return ok
}
