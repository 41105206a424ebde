package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInStrikeZone tests boundary handling and the horizontal sign flip
func TestInStrikeZone(t *testing.T) {
	halfWidth := 9.97 / 12.0
	bottom := 18.00 / 12.0
	top := 40.53 / 12.0

	tests := []struct {
		name   string
		side   float64
		height float64
		want   bool
	}{
		{"center of zone", 0, 2.5, true},
		{"on left edge", halfWidth, 2.5, true},
		{"on right edge", -halfWidth, 2.5, true},
		{"just outside width", halfWidth + 0.01, 2.5, false},
		{"on bottom edge", 0, bottom, true},
		{"on top edge", 0, top, true},
		{"below zone", 0, bottom - 0.01, false},
		{"above zone", 0, top + 0.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inStrikeZone(tt.side, tt.height))
		})
	}
}

// TestZoneRates tests per-type tallies and the handling of unlocated
// pitches
func TestZoneRates(t *testing.T) {
	pitches := []Pitch{
		{PitchType: "Fastball", PlateLocSide: f(0), PlateLocHeight: f(2.5)},
		{PitchType: "Fastball", PlateLocSide: f(0), PlateLocHeight: f(4.0)},
		{PitchType: "Fastball", PlateLocHeight: f(2.5)},
		{PitchType: "Slider", PlateLocSide: f(0.2), PlateLocHeight: f(2.0)},
	}

	summary := ZoneRates(pitches)

	assert.Equal(t, 2, summary.Overall.InZone)
	assert.Equal(t, 3, summary.Overall.Total)
	assert.InDelta(t, 66.7, summary.Overall.Percent, 0.1)

	require.Len(t, summary.PerType, 2)
	assert.Equal(t, "Fastball", summary.PerType[0].PitchType)
	assert.Equal(t, 1, summary.PerType[0].InZone)
	assert.Equal(t, 2, summary.PerType[0].Total)
	assert.Equal(t, "Slider", summary.PerType[1].PitchType)
	assert.Equal(t, 1, summary.PerType[1].InZone)
}

// TestZoneRatesNoLocations tests the zero-denominator case
func TestZoneRatesNoLocations(t *testing.T) {
	summary := ZoneRates([]Pitch{{PitchType: "Fastball"}})
	assert.Equal(t, 0, summary.Overall.Total)
	assert.Equal(t, 0.0, summary.Overall.Percent)
	require.Len(t, summary.PerType, 1)
	assert.Equal(t, 0.0, summary.PerType[0].Percent)
}
