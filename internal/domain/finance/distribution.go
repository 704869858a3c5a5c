package finance

import (
	"sort"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ticksPerHalfDistance matches the percentile iterator of HDR histograms: the ladder
// reports 5 levels for each halving of the distance to the 100th percentile.
const ticksPerHalfDistance = 5

var (
	baseLadderStep = decimal.NewFromInt(100 / (ticksPerHalfDistance * 2))
	half           = decimal.RequireFromString("0.5")
)

// Percentiles walks the percentile ladder 0, 10, 20 .. 50, 55 .. 75, 77.5 .. over samples.
// The ladder stops refining once a step covers less than one sample and always ends at
// the 100th percentile. Each rung reports the value at that level and the number of samples
// at or below it, with the level reported as a fraction. Zero samples yield an empty slice.
func Percentiles(samples []decimal.Decimal) []entities.PercentileSample {
	out := []entities.PercentileSample{}
	if len(samples) == 0 {
		return out
	}

	sorted := sortedCopy(samples)
	n := decimal.NewFromInt(int64(len(sorted)))

	level := decimal.Zero
	for level.LessThan(hundred) {
		out = append(out, sampleAt(sorted, level))

		step := ladderStep(level)
		if step.Mul(n).LessThan(hundred) {
			break
		}
		level = level.Add(step)
	}

	return append(out, sampleAt(sorted, hundred))
}

// ladderStep halves the base step once per halving of the remaining distance to 100
func ladderStep(level decimal.Decimal) decimal.Decimal {
	remaining := hundred.Sub(level)
	step := baseLadderStep
	for remaining.Mul(two).LessThanOrEqual(hundred) {
		remaining = remaining.Mul(two)
		step = step.Mul(half)
	}
	return step
}

func sampleAt(sorted []decimal.Decimal, level decimal.Decimal) entities.PercentileSample {
	n := int64(len(sorted))
	rank := level.Mul(decimal.NewFromInt(n)).Shift(-2).Ceil().IntPart()
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return entities.PercentileSample{
		Value:      sorted[rank-1],
		TotalCount: rank,
		Level:      level.Shift(-2),
	}
}

// HistogramBins splits [from, to] into bucketCount equal-width buckets reported in ascending
// order. Buckets are half-open [lower, upper) except the last, which is closed at to, so
// every counted sample lies within the bounds of its bin. Samples outside [from, to] are
// excluded, not clamped.
func HistogramBins(samples []decimal.Decimal, from, to decimal.Decimal, bucketCount int) ([]entities.DistributionBin, error) {
	if bucketCount < 1 {
		return nil, ErrInvalidBucketCount
	}
	if !to.GreaterThan(from) {
		return nil, ErrInvalidDomain
	}

	count := decimal.NewFromInt(int64(bucketCount))
	width := mustDiv(to.Sub(from), count)
	last := bucketCount - 1

	bins := make([]entities.DistributionBin, bucketCount)
	for i := range bins {
		lower := from.Add(width.Mul(decimal.NewFromInt(int64(i))))
		upper := from.Add(width.Mul(decimal.NewFromInt(int64(i + 1))))
		if i == last {
			upper = to
		}
		bins[i] = entities.DistributionBin{Index: i, LowerBound: lower, UpperBound: upper}
	}

	for _, s := range samples {
		if s.LessThan(from) || s.GreaterThan(to) {
			continue
		}
		idx := int(mustDiv(s.Sub(from), width).Floor().IntPart())
		if idx > last {
			idx = last
		}
		// the width is rounded, settle samples sitting on a computed bound
		for idx > 0 && s.LessThan(bins[idx].LowerBound) {
			idx--
		}
		for idx < last && !s.LessThan(bins[idx].UpperBound) {
			idx++
		}
		bins[idx].Count++
	}

	return bins, nil
}

// Stats summarizes loan sizes: count, min, max, average, median and the percentile ladder
func Stats(samples []decimal.Decimal) entities.LoanStats {
	stats := entities.LoanStats{
		Min:          decimal.Zero,
		Max:          decimal.Zero,
		Average:      decimal.Zero,
		Median:       decimal.Zero,
		Distribution: Percentiles(samples),
	}
	if len(samples) == 0 {
		return stats
	}

	sorted := sortedCopy(samples)
	n := len(sorted)

	sum := decimal.Zero
	for _, s := range sorted {
		sum = sum.Add(s)
	}

	stats.Total = int64(n)
	stats.Min = sorted[0]
	stats.Max = sorted[n-1]
	stats.Average = mustDiv(sum, decimal.NewFromInt(int64(n)))

	middle := n / 2
	if n%2 == 0 {
		stats.Median = mustDiv(sorted[middle-1].Add(sorted[middle]), two)
	} else {
		stats.Median = sorted[middle]
	}

	return stats
}

func sortedCopy(samples []decimal.Decimal) []decimal.Decimal {
	sorted := make([]decimal.Decimal, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})
	return sorted
}
