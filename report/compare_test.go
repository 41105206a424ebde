package report

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBenchmarks serves canned benchmark rows keyed by pitch type and
// level.
type stubBenchmarks struct {
	averages map[string]*BenchmarkAverages
	maxVelos map[string]*MaxVelocityBenchmark
	err      error
}

func benchKey(pitchType string, level Level) string {
	return pitchType + "|" + string(level)
}

func (s *stubBenchmarks) Averages(_ context.Context, pitchType string, level Level, _ string) (*BenchmarkAverages, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.averages[benchKey(pitchType, level)], nil
}

func (s *stubBenchmarks) MaxVelocity(_ context.Context, pitchType string, level Level, _ string) (*MaxVelocityBenchmark, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.maxVelos[benchKey(pitchType, level)], nil
}

// TestFormatValue tests metric display precision
func TestFormatValue(t *testing.T) {
	tests := []struct {
		name   string
		metric Metric
		value  *float64
		want   string
	}{
		{"velocity one decimal", MetricVelocity, f(92.345), "92.3"},
		{"spin rate whole number", MetricSpinRate, f(2245.6), "2246"},
		{"absent value", MetricIVB, nil, "N/A"},
		{"extension one decimal", MetricExtension, f(6.0), "6.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.metric, tt.value))
		})
	}
}

// TestFormatSigned tests explicit-sign difference formatting
func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+1.5", FormatSigned(MetricVelocity, 1.5))
	assert.Equal(t, "-0.8", FormatSigned(MetricIVB, -0.8))
	assert.Equal(t, "+120", FormatSigned(MetricSpinRate, 120.4))
	assert.Equal(t, "+0.0", FormatSigned(MetricVelocity, 0))
}

// TestFormatSignedRoundTrip tests that parsing a formatted difference back
// recovers the signed value at the metric's display precision
func TestFormatSignedRoundTrip(t *testing.T) {
	cases := []struct {
		metric Metric
		diff   float64
	}{
		{MetricVelocity, 1.54},
		{MetricVelocity, -2.37},
		{MetricIVB, -0.05},
		{MetricHB, 3.96},
		{MetricSpinRate, 120.4},
		{MetricSpinRate, -87.6},
		{MetricExtension, 0},
	}

	for _, tc := range cases {
		display := FormatSigned(tc.metric, tc.diff)
		parsed, err := strconv.ParseFloat(display, 64)
		require.NoError(t, err, display)

		scale := math.Pow(10, float64(decimalsFor(tc.metric)))
		want := math.Round(tc.diff*scale) / scale
		assert.InDelta(t, want, parsed, 1e-9, display)
		assert.False(t, math.Signbit(parsed) && want > 0, display)
	}
}

// TestCompareLevel tests a full single-level comparison
func TestCompareLevel(t *testing.T) {
	src := &stubBenchmarks{
		averages: map[string]*BenchmarkAverages{
			benchKey("Fastball", LevelD1): {
				Velocity:   f(91.0),
				SpinRate:   f(2200),
				PitchCount: 5000,
			},
		},
		maxVelos: map[string]*MaxVelocityBenchmark{
			benchKey("Fastball", LevelD1): {Mean: 94.0, PitcherCount: 300},
		},
	}
	c := NewComparator(src)

	groups := Aggregate([]Pitch{
		{PitchType: "Fastball", RelSpeed: f(92.0), SpinRate: f(2150)},
		{PitchType: "Fastball", RelSpeed: f(93.0), SpinRate: f(2250)},
	})
	out := c.CompareLevel(context.Background(), groups, RightHanded, LevelD1)
	require.Len(t, out, 1)

	tc := out[0]
	assert.Equal(t, "Fastball", tc.PitchType)
	assert.Equal(t, 2, tc.Count)
	assert.Equal(t, "92.5", tc.Aggregates[MetricVelocity])
	require.Len(t, tc.Levels, 1)

	cells := tc.Levels[0].Cells
	velo := cells[MetricVelocity]
	assert.Equal(t, "91.0", velo.Benchmark)
	require.NotNil(t, velo.Comparison)
	assert.InDelta(t, 1.5, velo.Comparison.Diff, 1e-9)
	assert.True(t, velo.Comparison.Improved)
	assert.Equal(t, "+1.5", velo.Comparison.Display)

	maxVelo := cells[MetricMaxVelocity]
	require.NotNil(t, maxVelo.Comparison)
	assert.InDelta(t, -1.0, maxVelo.Comparison.Diff, 1e-9)
	assert.False(t, maxVelo.Comparison.Improved)

	spin := cells[MetricSpinRate]
	require.NotNil(t, spin.Comparison)
	assert.Equal(t, "+0", spin.Comparison.Display)
	assert.False(t, spin.Comparison.Improved)

	// No benchmark mean recorded for break or release metrics.
	ivb := cells[MetricIVB]
	assert.Equal(t, "N/A", ivb.Benchmark)
	assert.Nil(t, ivb.Comparison)
}

// TestCompareAllLevels tests the multi-level table ordering
func TestCompareAllLevels(t *testing.T) {
	src := &stubBenchmarks{
		averages: map[string]*BenchmarkAverages{
			benchKey("Slider", LevelD2): {Velocity: f(82.0)},
		},
	}
	c := NewComparator(src)

	groups := Aggregate([]Pitch{{PitchType: "Slider", RelSpeed: f(84.0)}})
	out := c.CompareAllLevels(context.Background(), groups, RightHanded)
	require.Len(t, out, 1)
	require.Len(t, out[0].Levels, 3)

	assert.Equal(t, LevelD1, out[0].Levels[0].Level)
	assert.Equal(t, LevelD2, out[0].Levels[1].Level)
	assert.Equal(t, LevelD3, out[0].Levels[2].Level)

	// Only D2 has data for this type.
	assert.Nil(t, out[0].Levels[0].Cells[MetricVelocity].Comparison)
	require.NotNil(t, out[0].Levels[1].Cells[MetricVelocity].Comparison)
	assert.Nil(t, out[0].Levels[2].Cells[MetricVelocity].Comparison)
}

// TestCompareLevelSourceFailure tests that lookup errors degrade to absent
// benchmarks instead of failing the comparison
func TestCompareLevelSourceFailure(t *testing.T) {
	src := &stubBenchmarks{err: errors.New("warehouse unavailable")}
	c := NewComparator(src)

	groups := Aggregate([]Pitch{{PitchType: "Fastball", RelSpeed: f(92.0)}})
	out := c.CompareLevel(context.Background(), groups, RightHanded, LevelD1)
	require.Len(t, out, 1)

	for _, m := range ComparedMetrics {
		cell := out[0].Levels[0].Cells[m]
		assert.Equal(t, "N/A", cell.Benchmark)
		assert.Nil(t, cell.Comparison)
	}
	// The pitcher's own aggregates are unaffected.
	assert.Equal(t, "92.0", out[0].Aggregates[MetricVelocity])
}
