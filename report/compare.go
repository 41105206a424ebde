package report

import (
	"context"
	"fmt"
	"math"
)

// decimalsFor returns the display precision for a metric. Spin rate is a
// whole-number quantity; everything else gets one decimal place.
func decimalsFor(m Metric) int {
	if m == MetricSpinRate {
		return 0
	}
	return 1
}

// FormatValue renders a metric value for display. Absent values render as
// "N/A".
func FormatValue(m Metric, v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimalsFor(m), *v)
}

// FormatSigned renders a difference with an explicit leading sign.
func FormatSigned(m Metric, diff float64) string {
	return fmt.Sprintf("%+.*f", decimalsFor(m), diff)
}

// Comparator builds per-type metric comparisons against benchmark levels.
type Comparator struct {
	src BenchmarkSource
}

func NewComparator(src BenchmarkSource) *Comparator {
	return &Comparator{src: src}
}

// CompareLevel compares each pitch-type group against a single benchmark
// level. Benchmark lookup failures and absent benchmarks degrade the
// affected cells to benchmark-only "N/A" displays rather than failing the
// whole comparison.
func (c *Comparator) CompareLevel(ctx context.Context, groups []PitchTypeGroup, handedness string, level Level) []TypeComparison {
	out := make([]TypeComparison, 0, len(groups))
	for _, g := range groups {
		tc := TypeComparison{
			PitchType:  g.Name,
			Count:      g.Count,
			Aggregates: make(map[Metric]string, len(ComparedMetrics)),
			Levels:     []LevelComparison{c.compareGroup(ctx, g, handedness, level)},
		}
		for _, m := range ComparedMetrics {
			tc.Aggregates[m] = FormatValue(m, g.metricValue(m))
		}
		out = append(out, tc)
	}
	return out
}

// CompareAllLevels compares each pitch-type group against every benchmark
// level in order.
func (c *Comparator) CompareAllLevels(ctx context.Context, groups []PitchTypeGroup, handedness string) []TypeComparison {
	out := make([]TypeComparison, 0, len(groups))
	for _, g := range groups {
		tc := TypeComparison{
			PitchType:  g.Name,
			Count:      g.Count,
			Aggregates: make(map[Metric]string, len(ComparedMetrics)),
		}
		for _, m := range ComparedMetrics {
			tc.Aggregates[m] = FormatValue(m, g.metricValue(m))
		}
		for _, level := range ComparisonLevels {
			tc.Levels = append(tc.Levels, c.compareGroup(ctx, g, handedness, level))
		}
		out = append(out, tc)
	}
	return out
}

func (c *Comparator) compareGroup(ctx context.Context, g PitchTypeGroup, handedness string, level Level) LevelComparison {
	lc := LevelComparison{
		Level: level,
		Cells: make(map[Metric]MetricCell, len(ComparedMetrics)),
	}

	avgs, err := c.src.Averages(ctx, g.Name, level, handedness)
	if err != nil {
		avgs = nil
	}
	maxVelo, err := c.src.MaxVelocity(ctx, g.Name, level, handedness)
	if err != nil {
		maxVelo = nil
	}

	for _, m := range ComparedMetrics {
		bench := benchmarkValue(avgs, maxVelo, m)
		cell := MetricCell{Benchmark: FormatValue(m, bench)}
		if value := g.metricValue(m); value != nil && bench != nil {
			diff := *value - *bench
			cell.Comparison = &MetricComparison{
				PitcherValue:   *value,
				BenchmarkValue: *bench,
				Diff:           diff,
				AbsDiff:        math.Abs(diff),
				Improved:       IsImprovement(m, g.Name, diff, handedness),
				Display:        FormatSigned(m, diff),
			}
		}
		lc.Cells[m] = cell
	}

	return lc
}
