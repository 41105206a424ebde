package report

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNoPitches is returned when a report is requested for a pitcher with no
// pitches on the requested date.
var ErrNoPitches = errors.New("no pitches found for pitcher")

// Assembler builds complete reports from a batch of pitches and a benchmark
// source.
type Assembler struct {
	comparator *Comparator
}

func NewAssembler(src BenchmarkSource) *Assembler {
	return &Assembler{comparator: NewComparator(src)}
}

// BuildReport assembles the full report document for one pitcher's outing:
// per-type aggregates compared against the selected level, the same
// aggregates compared across every level, zone rates, and movement charts.
func (a *Assembler) BuildReport(ctx context.Context, pitcher string, pitches []Pitch, date string, level Level) (*Report, error) {
	if strings.TrimSpace(pitcher) == "" {
		return nil, errors.New("pitcher name is required")
	}
	if len(pitches) == 0 {
		return nil, ErrNoPitches
	}

	groups := Aggregate(pitches)
	handedness := Handedness(pitches)

	r := &Report{
		ID:           uuid.NewString(),
		Pitcher:      FormatPitcherName(pitcher),
		Date:         date,
		Handedness:   handedness,
		Level:        level,
		TotalPitches: len(pitches),
		Breakdown:    a.comparator.CompareLevel(ctx, groups, handedness, level),
		MultiLevel:   a.comparator.CompareAllLevels(ctx, groups, handedness),
		Zone:         ZoneRates(pitches),
		Movement:     movementCharts(groups),
	}

	return r, nil
}

// FormatPitcherName converts "Last, First" data-file names to "First Last"
// for display. Names without a comma pass through unchanged.
func FormatPitcherName(name string) string {
	last, first, found := strings.Cut(name, ",")
	if !found {
		return strings.TrimSpace(name)
	}
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return last
	}
	return first + " " + last
}

// Handedness returns the first recorded throwing hand in the batch,
// defaulting to right-handed when the column is empty throughout.
func Handedness(pitches []Pitch) string {
	for _, p := range pitches {
		if p.PitcherThrows != "" {
			return p.PitcherThrows
		}
	}
	return RightHanded
}

// movementCharts builds one horizontal-by-vertical break scatter per pitch
// type, with a confidence ellipse when the cloud supports one.
func movementCharts(groups []PitchTypeGroup) []MovementChart {
	charts := make([]MovementChart, 0, len(groups))
	for _, g := range groups {
		chart := MovementChart{PitchType: g.Name}
		var xs, ys []float64
		for _, p := range g.Pitches {
			if p.HorzBreak == nil || p.InducedVertBreak == nil {
				continue
			}
			chart.Points = append(chart.Points, Point{X: *p.HorzBreak, Y: *p.InducedVertBreak})
			xs = append(xs, *p.HorzBreak)
			ys = append(ys, *p.InducedVertBreak)
		}
		if e, ok := ConfidenceEllipse(xs, ys); ok {
			chart.Ellipse = e
		}
		charts = append(charts, chart)
	}
	return charts
}
