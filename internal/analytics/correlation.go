package analytics

import (
	"math"
	"sort"

	"github.com/mfeld/lucid/internal/model"
)

// minCorrelationSamples is the smallest co-occurrence count for which a
// correlation coefficient is defined.
const minCorrelationSamples = 2

// FactorCorrelation is the Pearson correlation between the influence
// series of two factors, restricted to the explanations containing both.
type FactorCorrelation struct {
	FactorA     string  `json:"factor_a"`
	FactorB     string  `json:"factor_b"`
	Coefficient float64 `json:"coefficient"`
	Samples     int     `json:"samples"`
}

// CorrelateFactors computes the Pearson correlation coefficient for every
// pair of distinct factor names over the explanations where both are
// present. Pairs co-occurring fewer than two times are omitted, as are
// pairs where either series has zero variance: in both cases the
// coefficient is undefined, which is not the same as zero. Results are
// ordered by factor pair, FactorA < FactorB.
func CorrelateFactors(explanations []*model.Explanation) []FactorCorrelation {
	ordered := sortedByTime(explanations)

	// Gather the influence series per factor, keyed by explanation index
	// so pair series can be aligned on co-occurrence.
	series := make(map[string][]observation)
	for i, e := range ordered {
		for name, score := range e.ContextInfluence {
			series[name] = append(series[name], observation{index: i, score: score})
		}
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []FactorCorrelation
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := series[names[i]], series[names[j]]
			xs, ys := alignSeries(a, b)
			if len(xs) < minCorrelationSamples {
				continue
			}
			coeff, ok := pearson(xs, ys)
			if !ok {
				continue
			}
			out = append(out, FactorCorrelation{
				FactorA:     names[i],
				FactorB:     names[j],
				Coefficient: coeff,
				Samples:     len(xs),
			})
		}
	}
	return out
}

// observation is one influence score tagged with the index of the
// explanation it came from.
type observation struct {
	index int
	score float64
}

// alignSeries intersects two observation lists on explanation index.
// Both inputs are ordered by index since explanations were walked in
// timestamp order.
func alignSeries(a, b []observation) (xs, ys []float64) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].index < b[j].index:
			i++
		case a[i].index > b[j].index:
			j++
		default:
			xs = append(xs, a[i].score)
			ys = append(ys, b[j].score)
			i++
			j++
		}
	}
	return xs, ys
}

// pearson computes the Pearson correlation coefficient of two equal-length
// series. The second return value is false when the coefficient is
// undefined (zero variance in either series).
func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}
