// Package stats fits parametric distribution families to empirical samples
// and reports the fitted parameters by name.
//
// Three families are supported: [Normal], [Exponential] and [Uniform].
// [Fit] estimates a single family; [OptimalDistribution] fits every
// candidate and keeps the one whose Kolmogorov-Smirnov statistic is lowest.
// [ToDict] converts a [FitResult] into a [ParamDict] suitable for JSON or
// YAML output, optionally attaching truncation bounds.
//
// Basic usage:
//
//	fit, err := stats.OptimalDistribution(lengths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	d, _ := stats.ToDict(fit, stats.WithMinBound(0))
//	out, _ := json.Marshal(d) // {"type":"exponential","lambda":...,"min":0}
//
// Estimation is done with gonum's stat/distuv. All values are float64 and
// never rounded.
package stats
