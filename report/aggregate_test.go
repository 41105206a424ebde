package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

// TestAggregateGrouping tests grouping, counts, and the priority ordering
func TestAggregateGrouping(t *testing.T) {
	pitches := []Pitch{
		{PitchType: "Slider", RelSpeed: f(84.0)},
		{PitchType: "Fastball", RelSpeed: f(92.0)},
		{PitchType: "Slider", RelSpeed: f(86.0)},
		{PitchType: "Eephus", RelSpeed: f(55.0)},
		{PitchType: "ChangeUp", RelSpeed: f(83.0)},
	}

	groups := Aggregate(pitches)
	require.Len(t, groups, 4)
	assert.Equal(t, "Fastball", groups[0].Name)
	assert.Equal(t, "Slider", groups[1].Name)
	assert.Equal(t, "ChangeUp", groups[2].Name)
	assert.Equal(t, "Eephus", groups[3].Name)
	assert.Equal(t, 2, groups[1].Count)
	require.NotNil(t, groups[1].AvgVelocity)
	assert.InDelta(t, 85.0, *groups[1].AvgVelocity, 1e-9)
}

// TestAggregateOrderStable tests that when two observed types match the same
// priority keyword, the first type encountered in the batch claims the slot,
// on every run
func TestAggregateOrderStable(t *testing.T) {
	pitches := []Pitch{
		{PitchType: "Four-Seam Fastball", RelSpeed: f(95.0)},
		{PitchType: "Fastball", RelSpeed: f(93.0)},
	}

	for i := 0; i < 200; i++ {
		groups := Aggregate(pitches)
		require.Len(t, groups, 2)
		assert.Equal(t, "Four-Seam Fastball", groups[0].Name)
		assert.Equal(t, "Fastball", groups[1].Name)
	}
}

// TestAggregateSkipsAbsentValues tests that missing measurements are
// excluded from means rather than counted as zero
func TestAggregateSkipsAbsentValues(t *testing.T) {
	pitches := []Pitch{
		{PitchType: "Fastball", RelSpeed: f(90.0), SpinRate: f(2200)},
		{PitchType: "Fastball", RelSpeed: f(94.0)},
		{PitchType: "Fastball"},
	}

	groups := Aggregate(pitches)
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, 3, g.Count)
	require.NotNil(t, g.AvgVelocity)
	assert.InDelta(t, 92.0, *g.AvgVelocity, 1e-9)
	require.NotNil(t, g.MaxVelocity)
	assert.InDelta(t, 94.0, *g.MaxVelocity, 1e-9)
	require.NotNil(t, g.AvgSpinRate)
	assert.InDelta(t, 2200, *g.AvgSpinRate, 1e-9)
	assert.Nil(t, g.AvgIVB)
}

// TestAggregateUnknownType tests that untyped pitches fall into an Unknown
// bucket
func TestAggregateUnknownType(t *testing.T) {
	groups := Aggregate([]Pitch{{RelSpeed: f(88.0)}})
	require.Len(t, groups, 1)
	assert.Equal(t, "Unknown", groups[0].Name)
}

// TestAggregateEmpty tests the empty batch
func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

// TestSortPitchTypes tests substring priority matching and the alphabetical
// tail
func TestSortPitchTypes(t *testing.T) {
	got := sortPitchTypes([]string{
		"Eephus", "Four-Seam Fastball", "Sweeper", "Palmball", "Sinker",
	})
	assert.Equal(t, []string{
		"Four-Seam Fastball", "Sinker", "Sweeper", "Eephus", "Palmball",
	}, got)
}
